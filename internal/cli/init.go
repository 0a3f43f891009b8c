package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database if needed and print its stats",
		Long: `Open the configured database, creating it and its schema if missing.

Running init against an existing database is safe; it only replays it.

Examples:
  chatstore init --db ./chat.db
  chatstore init --config chatstore.yaml --format json

Exit codes:
  0 - Success
  1 - Database could not be replayed
  2 - Command error (bad config, database not writable)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	return cmd
}

func runInit(cmd *cobra.Command, opts *InitOptions) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sess, err := openSession(cmd.Context(), opts.RootOptions, cmd.ErrOrStderr(), nil)
	if err != nil {
		return fail(formatter, GetExitCode(err), "init", err)
	}
	defer sess.Close()

	return formatter.Success(initView{sess.stats()})
}

// initView is statsView with a line saying whether the file was created.
type initView struct {
	statsView
}

func (v initView) String() string {
	verb := "Opened existing"
	if v.Created {
		verb = "Created"
	}
	return fmt.Sprintf("%s database %s\n%s", verb, v.Database, v.statsView)
}
