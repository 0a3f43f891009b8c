package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
}

// statsView is the JSON shape of stats and init output.
type statsView struct {
	Database      string `json:"database"`
	Created       bool   `json:"created"`
	Users         int    `json:"users"`
	Conversations int    `json:"conversations"`
	Messages      int    `json:"messages"`
	Generation    string `json:"generation"`

	GenerationsLeft uint64 `json:"generations_left"`
}

func (v statsView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Database:      %s\n", v.Database)
	fmt.Fprintf(&b, "Users:         %d\n", v.Users)
	fmt.Fprintf(&b, "Conversations: %d\n", v.Conversations)
	fmt.Fprintf(&b, "Messages:      %d\n", v.Messages)
	fmt.Fprintf(&b, "Generation:    %s\n", v.Generation)
	fmt.Fprintf(&b, "Remaining:     %d", v.GenerationsLeft)
	return b.String()
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show entity counts and the current user generation",
		Long: `Replay the database and print entity counts.

The generation is advanced once per replayed user, so it reflects how
many users have been added since the database was created.

Exit codes:
  0 - Success
  1 - Database could not be replayed
  2 - Command error (bad config, database not found)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts)
		},
	}

	return cmd
}

func runStats(cmd *cobra.Command, opts *StatsOptions) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sess, err := openSession(cmd.Context(), opts.RootOptions, cmd.ErrOrStderr(), nil)
	if err != nil {
		return fail(formatter, GetExitCode(err), "stats", err)
	}
	defer sess.Close()

	return formatter.Success(sess.stats())
}

func (s *session) stats() statsView {
	st := s.model.Stats()
	return statsView{
		Database:      s.store.Path(),
		Created:       s.store.Created(),
		Users:         st.Users,
		Conversations: st.Conversations,
		Messages:      st.Messages,
		Generation:    st.Generation.String(),

		GenerationsLeft: st.GenerationsLeft,
	}
}
