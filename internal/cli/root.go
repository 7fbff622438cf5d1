// Package cli wires the flashdeck command tree: the terminal UI and a few
// read-only reporting commands over the same deck.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	DBPath     string
	Ephemeral  bool
	LogLevel   string
}

// NewRootCommand creates the root command. Without a subcommand it starts
// the study UI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "flashdeck",
		Short: "flashdeck - flashcards in the terminal",
		Long: `Study question/answer flashcards organized in groups and categories.

The deck is saved to a local SQLite database after every change.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudy(cmd, opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: ./flashdeck.yaml or <user config dir>/flashdeck/flashdeck.yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "SQLite database file")
	cmd.PersistentFlags().BoolVar(&opts.Ephemeral, "ephemeral", false, "keep the deck in memory only")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewStudyCommand(opts))
	cmd.AddCommand(NewGroupsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}
