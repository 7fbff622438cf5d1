package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// GroupSummary is one row of the groups listing.
type GroupSummary struct {
	ID         int      `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	CardCount  int      `json:"card_count" yaml:"card_count"`
	EasyTotal  int      `json:"easy_total" yaml:"easy_total"`
	Categories []string `json:"categories" yaml:"categories"`
}

// NewGroupsCommand creates the groups command.
func NewGroupsCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:           "groups",
		Short:         "List groups with card counts and categories",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, FormatText, FormatJSON, FormatYAML); err != nil {
				return err
			}
			return runGroups(cmd, rootOpts, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format (text|json|yaml)")
	return cmd
}

func runGroups(cmd *cobra.Command, opts *RootOptions, format string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	ctx = a.scope(ctx, cmd)

	deck, _, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	groups := deck.Groups()
	summaries := make([]GroupSummary, 0, len(groups))
	for i := range groups {
		summaries = append(summaries, summarize(&groups[i]))
	}

	if format == FormatText {
		return writeGroupsText(cmd.OutOrStdout(), summaries)
	}
	return writeStructured(cmd.OutOrStdout(), format, summaries)
}

func summarize(g *domain.Group) GroupSummary {
	s := GroupSummary{
		ID:         int(g.ID),
		Name:       g.Name,
		CardCount:  len(g.Cards),
		Categories: g.Categories()[1:],
	}
	for _, c := range g.Cards {
		s.EasyTotal += c.EasyCount
	}
	return s
}

func writeGroupsText(w io.Writer, groups []GroupSummary) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "no groups")
		return err
	}
	for _, g := range groups {
		categories := "(none)"
		if len(g.Categories) > 0 {
			categories = strings.Join(g.Categories, ", ")
		}
		if _, err := fmt.Fprintf(w, "#%d %s - %d cards, %d easy\n   categories: %s\n",
			g.ID, g.Name, g.CardCount, g.EasyTotal, categories); err != nil {
			return err
		}
	}
	return nil
}
