package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/sahana-9314/odk-central-client/internal/constants"
	"github.com/sahana-9314/odk-central-client/pkg/odkclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		serverURL string
		email     string
		password  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to an ODK Central server",
		Long:  "Authenticate against an ODK Central server and store the server URL and email in the config file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if serverURL == "" {
				serverURL = viper.GetString("url")
			}

			if serverURL == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Server URL: ")
				serverURL, _ = reader.ReadString('\n')
				serverURL = strings.TrimSpace(serverURL)
			}

			if serverURL == "" {
				return ErrURLRequired
			}

			if email == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Email: ")
				email, _ = reader.ReadString('\n')
				email = strings.TrimSpace(email)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			ctx := cmd.Context()

			client, err := odkclient.NewWithPassword(ctx, serverURL, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			user, err := client.CurrentUser(ctx)
			if err != nil {
				return fmt.Errorf("verifying session: %w", err)
			}

			// The session opened for verification is not reused; the next
			// command opens its own.
			if err := client.Close(ctx); err != nil {
				return fmt.Errorf("closing session: %w", err)
			}

			viper.Set("url", serverURL)
			viper.Set("user", email)

			if err := writeConfig(); err != nil {
				return err
			}

			fmt.Printf("Logged in to %s as %s\n", serverURL, user.DisplayName)

			return nil
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", "", "Central server URL")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored server and account",
		RunE: func(_ *cobra.Command, _ []string) error {
			viper.Set("url", "")
			viper.Set("user", "")
			viper.Set("token", "")

			if err := writeConfig(); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}

func writeConfig() error {
	if err := viper.WriteConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("writing config: %w", err)
		}

		if err := viper.SafeWriteConfig(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	if file := viper.ConfigFileUsed(); file != "" {
		if err := os.Chmod(file, constants.ConfigFilePerm); err != nil {
			return fmt.Errorf("restricting config permissions: %w", err)
		}
	}

	return nil
}
