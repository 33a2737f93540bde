package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/focloireacht-backend/internal/auth"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	usersvc "github.com/heartmarshall/focloireacht-backend/internal/service/user"
)

func userCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Provision users, issue tokens and change roles",
	}
	cmd.AddCommand(userAddCommand(e), userTokenCommand(e), userRoleCommand(e))
	return cmd
}

// withUsers opens a pool, builds the user service and runs fn with it.
func (e *env) withUsers(ctx context.Context, fn func(*usersvc.Service) error) error {
	pool, err := e.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	tokens := auth.NewJWTManager(e.cfg.Auth.JWTSecret, e.cfg.Auth.JWTIssuer, e.cfg.Auth.AccessTokenTTL)
	return fn(usersvc.NewService(e.logger, user.New(pool), tokens))
}

func userAddCommand(e *env) *cobra.Command {
	var email, name, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user, or print the existing one with that email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withUsers(cmd.Context(), func(svc *usersvc.Service) error {
				u, created, err := svc.Provision(cmd.Context(), usersvc.ProvisionInput{
					Email: email,
					Name:  name,
					Role:  domain.UserRole(strings.ToUpper(role)),
				})
				if err != nil {
					return err
				}
				verb := "exists"
				if created {
					verb = "created"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", verb, u.ID, u.Email, u.Role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email (required)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "", "CONTRIBUTOR, EDITOR or ADMIN (default CONTRIBUTOR)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func userTokenCommand(e *env) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an identity token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withUsers(cmd.Context(), func(svc *usersvc.Service) error {
				token, err := svc.IssueTokenByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(email)))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email (required)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func userRoleCommand(e *env) *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "role",
		Short: "Change a user's role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := domain.UserRole(strings.ToUpper(role))
			if !r.IsValid() {
				return fmt.Errorf("invalid role %q: must be CONTRIBUTOR, EDITOR or ADMIN", role)
			}
			return e.withUsers(cmd.Context(), func(svc *usersvc.Service) error {
				u, err := svc.SetRoleByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(email)), r)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", u.ID, u.Email, u.Role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email (required)")
	cmd.Flags().StringVar(&role, "role", "", "CONTRIBUTOR, EDITOR or ADMIN (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
