package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/phrazzld/flashdeck/internal/navigation"
	"github.com/phrazzld/flashdeck/internal/study"
	"github.com/phrazzld/flashdeck/internal/tui"
)

// NewStudyCommand creates the study command.
func NewStudyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Open the study screen (default)",
		Long: `Open the terminal UI: pick a group, flip cards and mark them easy or hard.

Keys on the group list: enter study, n new group, d delete, q quit.
Keys while studying: space flip, e easy, h hard, c next category,
a add card, esc back.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudy(cmd, rootOpts)
		},
	}
}

func runStudy(cmd *cobra.Command, opts *RootOptions) error {
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

	nav := navigation.NewController(deck, a.logger)
	model := tui.NewModel(ctx, deck, nav, a.logger,
		study.WithAdvanceDelay(a.cfg.Study.AdvanceDelay))

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return WrapExitError(ExitFailure, "run terminal UI", err)
	}
	return nil
}
