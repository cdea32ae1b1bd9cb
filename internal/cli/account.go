package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/isdelr/pixelgram/internal/auth"
	"github.com/isdelr/pixelgram/internal/forms"
	"github.com/isdelr/pixelgram/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// terminalNavigator only logs navigation; the command line has no routes.
var terminalNavigator = forms.NavigatorFunc(func(_ context.Context, route string) {
	log.Debug().Str("route", route).Msg("Navigated")
})

func loginCmd(a *app) *cobra.Command {
	var creds models.Credentials
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Log in and remember the session token",
		Args:    cobra.NoArgs,
		PreRunE: a.remote,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := forms.NewLoginForm(a.dispatcher, terminalNavigator)
			res, err := form.Submit(cmd.Context(), creds)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	var (
		profile    models.RegistrationProfile
		avatarPath string
	)
	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create a new account",
		Args:    cobra.NoArgs,
		PreRunE: a.remote,
		RunE: func(cmd *cobra.Command, args []string) error {
			if avatarPath != "" {
				data, err := os.ReadFile(avatarPath)
				if err != nil {
					return fmt.Errorf("read avatar: %w", err)
				}
				avatar, err := forms.AvatarDataURL(data)
				if err != nil {
					return err
				}
				profile.Avatar = avatar
			}

			form := forms.NewSignUpForm(a.dispatcher, terminalNavigator)
			res, err := form.Submit(cmd.Context(), profile)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&profile.Name, "name", "", "display name")
	cmd.Flags().StringVar(&profile.NameID, "name-id", "", "unique user handle")
	cmd.Flags().StringVar(&profile.Email, "email", "", "account email")
	cmd.Flags().StringVar(&profile.Password, "password", "", "account password")
	cmd.Flags().StringVar(&avatarPath, "avatar", "", "path to an avatar image")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessions.ClearSession(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.sessions.CurrentSession()
			if err != nil {
				return err
			}
			if session == nil || session.Token == "" {
				return auth.ErrNoSession
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Email:     %s\n", session.Email)
			fmt.Fprintf(out, "Logged in: %s\n", session.CreatedAt.Format(time.RFC3339))

			claims, err := auth.ParseClaims(session.Token)
			if err != nil {
				// Opaque tokens carry nothing more to show.
				return nil
			}
			if claims.UserID != "" {
				fmt.Fprintf(out, "User ID:   %s\n", claims.UserID)
			}
			if claims.ExpiresAt != nil {
				fmt.Fprintf(out, "Expires:   %s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
			}
			return nil
		},
	}
}
