package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your account",
	Long:  "Sign in with email and password. Favorites stored on this device are migrated to the account the first time it signs in.",
	RunE:  runLogin,
}

var (
	loginEmail    string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")

	loginCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	password := loginPassword
	if password == "" {
		password, err = promptPassword("Senha: ")
		if err != nil {
			return err
		}
	}

	u, err := a.ids.SignIn(ctx, loginEmail, password)
	if err != nil {
		return err
	}

	// Switch the favorites session; first sign-in migrates the local list.
	if a.docs != nil {
		if err := a.favs.SetUser(ctx, u.UID); err != nil {
			a.logger.Warn("failed to load account favorites: %v", err)
		}
	}

	name := u.DisplayName
	if name == "" {
		name = u.Email
	}
	fmt.Fprintf(os.Stdout, "Bem-vindo(a), %s!\n", name)

	if a.docs != nil {
		if admin, err := a.ids.IsAdmin(ctx, u.UID); err == nil && admin {
			fmt.Fprintln(os.Stdout, "Sessão com privilégios de administrador.")
		}
	}
	return nil
}

func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
