package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local development",
	Long:  "Signs a token with AUTH_JWT_SECRET (and AUTH_ISSUER / AUTH_AUDIENCE when set) that the server accepts for the given owner.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		authCfg, err := config.NewAuthConfig()
		if err != nil {
			return fmt.Errorf("failed to load auth config: %w", err)
		}
		if authCfg.Disabled {
			return fmt.Errorf("authentication is disabled; no token is needed")
		}
		token, err := server.NewVerifier(authCfg).IssueToken(tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Owner id to put in the sub claim (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}
