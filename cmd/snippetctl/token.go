package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/infra/jwt"
	"github.com/spf13/cobra"
)

const secretKeyEnv = "SERVER_SECRET_KEY"

func newTokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the admin API",
		Long:  "Signs a token with the server secret read from " + secretKeyEnv + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv(secretKeyEnv)
			if secret == "" {
				return errors.New(secretKeyEnv + " is not set")
			}
			token, err := jwt.NewJwtManager(secret, nil).CreateToken(subject, role, ttl)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "snippetctl", "token subject")
	cmd.Flags().StringVar(&role, "role", jwt.RoleAdmin, "token role")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime, 0 for no expiry")
	return cmd
}
