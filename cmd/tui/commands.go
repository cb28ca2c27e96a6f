package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Varun5711/taskflow/cmd/tui/client"
	"github.com/Varun5711/taskflow/cmd/tui/ui"
	"github.com/Varun5711/taskflow/internal/auth"
	"github.com/Varun5711/taskflow/internal/session"
)

type options struct {
	server    string
	sessionDB string
}

func defaultServer() string {
	if v := os.Getenv("TASKFLOW_SERVER"); v != "" {
		return v
	}
	return "http://localhost:5000"
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "taskflow",
		Short:        "TaskFlow terminal client",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", defaultServer(), "TaskFlow API base URL")
	cmd.PersistentFlags().StringVar(&opts.sessionDB, "session-db",
		filepath.Join(xdg.StateHome, "taskflow", "session.db"), "path of the local session database")

	cmd.AddCommand(
		statusCommand(opts),
		logoutCommand(opts),
	)
	return cmd
}

// openSession wires a session manager over the SQLite store at opts.sessionDB.
// The caller must close the returned store.
func openSession(ctx context.Context, opts *options, nav session.Navigator) (*session.Manager, *session.SQLiteStorage, *client.AuthClient, error) {
	store, err := session.OpenSQLite(ctx, opts.sessionDB)
	if err != nil {
		return nil, nil, nil, err
	}

	api := client.NewAuthClient(opts.server, nil)
	sess, err := session.NewManager(api, store, nav)
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}

	return sess, store, api, nil
}

func runUI(ctx context.Context, opts *options) error {
	router := ui.NewRouter()
	sess, store, _, err := openSession(ctx, opts, router)
	if err != nil {
		return err
	}
	defer store.Close()

	model, err := ui.NewModel(sess, router)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func statusCommand(opts *options) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Long: "Shows who is logged in according to the local session. With --verify the\n" +
			"token is also checked by the server.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, store, api, err := openSession(ctx, opts, session.NavigatorFunc(func(session.Route) {}))
			if err != nil {
				return err
			}
			defer store.Close()

			if err := sess.Init(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			state := sess.State()
			if !state.IsAuthenticated() {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}

			fmt.Fprintf(out, "Logged in as %s <%s> (id %d)\n", state.User.Name, state.User.Email, state.User.ID)
			if claims, err := auth.DecodeUnverified(state.Token); err == nil {
				fmt.Fprintf(out, "Token expires %s\n", claims.Expiry().Local().Format(time.RFC1123))
			}

			if verify {
				ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
				defer cancel()

				user, err := api.Me(ctx, state.Token)
				switch {
				case client.IsUnauthorized(err):
					fmt.Fprintln(out, "Server rejected the token; logging out")
					sess.Logout(ctx)
				case err != nil:
					return fmt.Errorf("failed to verify session: %w", err)
				default:
					fmt.Fprintf(out, "Verified by server as user %d\n", user.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check the token with the server")
	return cmd
}

func logoutCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, store, _, err := openSession(cmd.Context(), opts, session.NavigatorFunc(func(session.Route) {}))
			if err != nil {
				return err
			}
			defer store.Close()

			sess.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
