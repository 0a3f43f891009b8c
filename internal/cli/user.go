package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/chatstore/internal/chat"
	"github.com/roach88/chatstore/internal/controller"
	"github.com/roach88/chatstore/internal/model"
)

// timeLayout renders creation times in UTC with millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Orderings accepted by user list --by.
var validOrders = []string{"id", "time", "text"}

// UserListOptions holds flags for the user list command.
type UserListOptions struct {
	*RootOptions
	By    string
	Limit int
}

// userView is the JSON shape of a user.
type userView struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
}

func newUserView(u chat.User) userView {
	return userView{ID: u.ID.String(), Name: u.Name, Created: u.Creation.UTC()}
}

// addedUser renders the result of user add.
type addedUser userView

func (u addedUser) String() string {
	return fmt.Sprintf("Added user %s %q", u.ID, u.Name)
}

// userTable renders user list as an aligned table.
type userTable []userView

func (t userTable) String() string {
	if len(t) == 0 {
		return "No users."
	}

	idWidth := len("ID")
	for _, u := range t {
		idWidth = max(idWidth, len(u.ID))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %-24s  %s\n", idWidth, "ID", "CREATED", "NAME")
	for _, u := range t {
		fmt.Fprintf(&b, "%-*s  %-24s  %s\n", idWidth, u.ID, u.Created.Format(timeLayout), u.Name)
	}
	fmt.Fprintf(&b, "\n%d %s", len(t), plural(len(t), "user", "users"))
	return b.String()
}

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Add and list users",
	}

	cmd.AddCommand(newUserAddCommand(rootOpts))
	cmd.AddCommand(newUserListCommand(rootOpts))

	return cmd
}

func newUserAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a user and persist it",
		Long: `Create a user with the next free identifier under the server root.

The user is written to the database before the command reports success.

Examples:
  chatstore user add alice
  chatstore user add "Bob Smith" --format json

Exit codes:
  0 - User created
  1 - Persistence failure or identifiers exhausted
  2 - Command error (empty name, bad config)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserAdd(cmd, rootOpts, args[0])
		},
	}
}

func runUserAdd(cmd *cobra.Command, opts *RootOptions, name string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sess, err := openSession(cmd.Context(), opts, cmd.ErrOrStderr(), nil)
	if err != nil {
		return fail(formatter, GetExitCode(err), "user add", err)
	}
	defer sess.Close()

	u, err := sess.controller.NewUser(cmd.Context(), name)
	if err != nil {
		code := ExitFailure
		if errors.Is(err, controller.ErrInvalidArgument) {
			code = ExitCommandError
		}
		return fail(formatter, code, "failed to add user", err)
	}
	formatter.VerboseLog("Generation now %s", sess.model.UserGeneration())

	return formatter.Success(addedUser(newUserView(u)))
}

func newUserListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UserListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users in id, creation time, or name order",
		Long: `List every persisted user.

--by selects the ordering:
  id    identifier order
  time  creation time, oldest first
  text  case-insensitive name order

Examples:
  chatstore user list
  chatstore user list --by text --limit 20

Exit codes:
  0 - Success
  1 - Database could not be replayed
  2 - Command error (unknown ordering, bad config)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.By, "by", "id", "ordering (id|time|text)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum users to print (0 for all)")

	return cmd
}

func runUserList(cmd *cobra.Command, opts *UserListOptions) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if !isValidOrder(opts.By) {
		err := fmt.Errorf("unknown ordering %q: must be one of %v", opts.By, validOrders)
		return fail(formatter, ExitCommandError, "user list", err)
	}
	if opts.Limit < 0 {
		return fail(formatter, ExitCommandError, "user list", fmt.Errorf("limit must not be negative, got %d", opts.Limit))
	}

	sess, err := openSession(cmd.Context(), opts.RootOptions, cmd.ErrOrStderr(), nil)
	if err != nil {
		return fail(formatter, GetExitCode(err), "user list", err)
	}
	defer sess.Close()

	users := listUsers(sess.model, opts.By)
	if opts.Limit > 0 && len(users) > opts.Limit {
		users = users[:opts.Limit]
	}

	table := make(userTable, 0, len(users))
	for _, u := range users {
		table = append(table, newUserView(u))
	}
	return formatter.Success(table)
}

func listUsers(m *model.Model, by string) []chat.User {
	switch by {
	case "time":
		return m.UserByTime().All()
	case "text":
		return m.UserByText().All()
	default:
		return m.UserByID().All()
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func isValidOrder(by string) bool {
	return slices.Contains(validOrders, by)
}
