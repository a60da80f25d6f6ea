package main

import (
	"errors"
	"fmt"
	"time"

	"cathedral-bridge/pkg/auth"

	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		roles []string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.AuthEnabled() {
				return errors.New("JWT_SECRET is not set")
			}
			generator, err := auth.NewJWTGenerator(a.cfg.JWTSecret, a.cfg.JWTIssuer, ttl)
			if err != nil {
				return err
			}
			token, err := generator.GenerateToken(args[0], roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&roles, "roles", nil, "Roles to embed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
