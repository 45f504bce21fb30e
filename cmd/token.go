package cmd

import (
	"billora-backend/internal/utils"
	"billora-backend/pkg/jwt"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	tokenUserID string
	tokenRole   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a Bearer token for the callable endpoints",
	Long:  `Signs an identity token with JWT_SECRET and JWT_ISSUER so operators and client builds can call the authenticated endpoints.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		token, err := mintToken(cfg, tokenUserID, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func mintToken(cfg *utils.Config, userID string, role string) (string, error) {
	if cfg.JWTSecret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}
	if userID == "" {
		return "", errors.New("--user is required")
	}
	return jwt.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer).GenerateTokenUser(userID, role)
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user", "u", "", "user id carried by the token")
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", "owner", "role carried by the token")
	rootCmd.AddCommand(tokenCmd)
}
