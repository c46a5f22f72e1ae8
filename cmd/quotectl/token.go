package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwtmw "quote_backend/internal/platform/jwt"
)

func newTokenCmd(c *cli) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator token for PUT /settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl <= 0 {
				ttl = c.cfg.JWT.Expiration
			}
			token, err := jwtmw.NewGenerator(c.cfg.JWT.Secret, ttl).GenerateToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default jwt.expiration)")
	return cmd
}
