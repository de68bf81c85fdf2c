package auth

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zenGate-Global/tenantgate/apps/cli/cmd/clienv"
	"github.com/zenGate-Global/tenantgate/platform/go/auth/devtoken"
)

func devTokenCommand() *cobra.Command {
	var params devtoken.Params

	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Mint an HS256 bearer token accepted by the API in hs256 verifier mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := clienv.Load()
			if err != nil {
				return err
			}
			if params.Secret, err = clienv.Pick("secret (--secret or AUTH_JWT_SECRET)", params.Secret, cfg.AuthJWTSecret); err != nil {
				return err
			}
			if params.Audience == "" {
				params.Audience = cfg.AuthJWTAudience
			}

			token, err := devtoken.BuildHS256Token(params, time.Now().UTC())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	// Required claims
	cmd.Flags().StringVar(&params.UserID, "user-id", "", "sub claim (user profile id)")
	cmd.Flags().StringVar(&params.Email, "email", "", "email claim")

	// Optional claims
	cmd.Flags().StringVar(&params.Secret, "secret", "", "HS256 secret; defaults to AUTH_JWT_SECRET")
	cmd.Flags().StringVar(&params.Audience, "audience", "", "aud claim; defaults to AUTH_JWT_AUDIENCE")
	cmd.Flags().StringVar(&params.Issuer, "issuer", "", "iss claim")
	cmd.Flags().DurationVar(&params.ExpiresIn, "expires-in", time.Hour, "token lifetime (e.g. 30m, 2h)")

	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
