package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// ExportCard mirrors the persisted card layout.
type ExportCard struct {
	ID        int    `json:"id" yaml:"id"`
	Category  string `json:"category" yaml:"category"`
	Question  string `json:"question" yaml:"question"`
	Answer    string `json:"answer" yaml:"answer"`
	EasyCount int    `json:"easyCount" yaml:"easyCount"`
}

// ExportGroup mirrors the persisted group layout.
type ExportGroup struct {
	ID    int          `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Cards []ExportCard `json:"cards" yaml:"cards"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the whole deck keyed by group ID",
		Long: `Print the whole deck in the layout it is saved in, keyed by group ID.

A deck that has never been saved exports as the sample groups.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, FormatJSON, FormatYAML); err != nil {
				return err
			}
			return runExport(cmd, rootOpts, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "output format (json|yaml)")
	return cmd
}

func runExport(cmd *cobra.Command, opts *RootOptions, format string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	ctx = a.scope(ctx, cmd)

	state, _ := a.adapter.Load(ctx)
	return writeStructured(cmd.OutOrStdout(), format, exportState(state))
}

func exportState(state *domain.State) map[string]ExportGroup {
	out := make(map[string]ExportGroup, len(state.Groups))
	for _, g := range state.SortedGroups() {
		eg := ExportGroup{ID: int(g.ID), Name: g.Name, Cards: make([]ExportCard, 0, len(g.Cards))}
		for _, c := range g.Cards {
			eg.Cards = append(eg.Cards, ExportCard{
				ID:        int(c.ID),
				Category:  c.Category,
				Question:  c.Question,
				Answer:    c.Answer,
				EasyCount: c.EasyCount,
			})
		}
		out[strconv.Itoa(int(g.ID))] = eg
	}
	return out
}
