package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/inventory-tracker/internal/session"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
	serverURL     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to a running server and remember the identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *session.Store, client *session.Client) error {
			identity, err := client.Login(ctx, loginUsername, loginPassword)
			if err != nil {
				return err
			}
			if err := store.SaveIdentity(ctx, *identity); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", identity.User.Username, identity.User.Department)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the remembered identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *session.Store, client *session.Client) error {
			identity, err := store.LoadIdentity(ctx)
			if errors.Is(err, session.ErrNoIdentity) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			if err != nil {
				return err
			}
			// The server may be gone; the local identity is dropped regardless.
			if err := client.Logout(ctx, identity.AccessToken); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "server logout failed: %v\n", err)
			}
			if err := store.ClearIdentity(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", identity.User.Username)
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the remembered identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, store *session.Store, _ *session.Client) error {
			identity, err := store.LoadIdentity(ctx)
			if errors.Is(err, session.ErrNoIdentity) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			if err != nil {
				return err
			}
			printIdentity(cmd.OutOrStdout(), identity)
			return nil
		})
	},
}

func printIdentity(w io.Writer, identity *session.Identity) {
	u := identity.User
	role := "member"
	if u.IsAdmin {
		role = "administrator"
	}
	perms := make([]string, len(u.Permissions))
	for i, p := range u.Permissions {
		perms[i] = string(p)
	}
	fmt.Fprintf(w, "%s (%s)\n", u.Name, u.Username)
	fmt.Fprintf(w, "department:  %s\n", u.Department)
	fmt.Fprintf(w, "role:        %s\n", role)
	fmt.Fprintf(w, "permissions: %s\n", strings.Join(perms, ", "))
	fmt.Fprintf(w, "expires:     %s\n", identity.ExpiresAt.Local().Format("2006-01-02 15:04"))
}

func withSession(cmd *cobra.Command, fn func(context.Context, *session.Store, *session.Client) error) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	store, err := session.Open(cfg.Session.File)
	if err != nil {
		return err
	}
	defer store.Close()

	base := cfg.Session.ServerURL
	if serverURL != "" {
		base = serverURL
	}
	return fn(cmd.Context(), store, session.NewClient(base, nil))
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username to sign in with")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password to sign in with")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")

	for _, c := range []*cobra.Command{loginCmd, logoutCmd} {
		c.Flags().StringVar(&serverURL, "server", "", "server base url, overrides session.server_url")
	}
}
