package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	jobtrack "github.com/dan-yates1/job-tracker"
)

const EnvPassword = "JOBTRACK_PASSWORD"

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(EnvPassword)
			}
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password (or %s) are required", EnvPassword)
			}

			if _, err := app.api.Login(cmd.Context(), email, password); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Signed in as %s", email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.jobtrack.Logout(cmd.Context())
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored and what it says",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			if !app.jobtrack.Tokens().IsAuthenticated(ctx) {
				fmt.Fprintln(out, pterm.Info.Sprint("Not signed in"))
				return nil
			}

			claims, _, err := jobtrack.StoredTokenClaims(ctx, app.jobtrack.Tokens())
			if err != nil {
				// opaque tokens are fine, the server decides
				fmt.Fprintln(out, pterm.Success.Sprint("Signed in"))
				return nil
			}

			f := app.jobtrack.Formatter()
			rows := pterm.TableData{
				{"Email", claims.Email()},
				{"Role", claims.Role},
				{"Issued", f.FormatTime(claims.Issued())},
				{"Expires", f.FormatTime(claims.Expires())},
			}
			if claims.Expired(time.Now()) {
				rows = append(rows, []string{"State", "expired"})
			} else {
				rows = append(rows, []string{"State", "active"})
			}

			table, err := pterm.DefaultTable.WithData(rows).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
}
