package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "mandate/internal/jwt_token"
	id "mandate/pkg/domain"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an org-scoped bearer token for the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		orgFlag, _ := cmd.Flags().GetString("org")
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		org, err := id.ParseOrgID(orgFlag)
		if err != nil {
			return err
		}
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Auth.SigningKey == "" {
			return errors.New("auth.jwt_signing_key is not configured")
		}

		raw, err := jwttoken.New(cfg.Auth).Mint(subject, org, ttl)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), raw)
		return err
	},
}

func init() {
	tokenCmd.Flags().String("org", "", "Org ID the token is scoped to")
	tokenCmd.Flags().String("subject", "operator", "Token subject")
	tokenCmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("org")
}
