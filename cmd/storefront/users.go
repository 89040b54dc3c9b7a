package main

import (
	"github.com/spf13/cobra"

	"storefront/internal/models"
)

func newRegisterCmd(a *app) *cobra.Command {
	var (
		req  models.RegisterRequest
		role string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Role = models.Role(role)
			id, err := a.api.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			printf(a.out, "registered %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, at least 6 characters")
	cmd.Flags().StringVar(&role, "role", "", "admin or customer")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var req models.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and show the account role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.api.Login(cmd.Context(), req)
			if err != nil {
				return err
			}
			printf(a.out, "%s: %s (%s, id %s)\n", resp.Message, resp.Name, resp.Role, resp.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	return cmd
}
