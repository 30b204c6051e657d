package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print an access token",
		Long:  "Log in and print an access token. Export it as " + EnvToken + " for later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Email").Value(&email).Validate(required("email")),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).Validate(required("password")),
				))
				if err := app.runForm(form); err != nil {
					return err
				}
			}
			res, err := app.client().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Err, "logged in as %s (%s)\n", res.Email, res.Role)
			fmt.Fprintln(app.Out, res.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func required(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}
