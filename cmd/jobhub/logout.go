package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of the current session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if _, ok := a.ids.CurrentUser(); !ok {
		fmt.Fprintln(os.Stdout, "Nenhuma sessão ativa.")
		return nil
	}

	// Flush pending account writes before dropping the session.
	a.favs.Flush(ctx)

	if err := a.ids.SignOut(ctx); err != nil {
		return err
	}
	if err := a.favs.SetUser(ctx, ""); err != nil {
		a.logger.Warn("failed to reload local favorites: %v", err)
	}

	fmt.Fprintln(os.Stdout, "Sessão encerrada.")
	return nil
}
