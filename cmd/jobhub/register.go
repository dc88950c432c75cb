package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE:  runRegister,
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

func init() {
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "Display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Account password (prompted when omitted)")

	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	password := registerPassword
	if password == "" {
		password, err = promptPassword("Senha: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirme sua senha: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("as senhas não coincidem")
		}
	}

	u, err := a.ids.SignUp(ctx, registerName, registerEmail, password)
	if err != nil {
		return err
	}

	if a.docs != nil {
		if err := a.favs.SetUser(ctx, u.UID); err != nil {
			a.logger.Warn("failed to load account favorites: %v", err)
		}
	}

	fmt.Fprintf(os.Stdout, "Conta criada. Bem-vindo(a), %s!\n", u.DisplayName)
	return nil
}
