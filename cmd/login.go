package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"twiga-dash/internal/client"
	"twiga-dash/internal/config"
)

// Variables to hold flag values
var (
	loginServer string
	loginUser   string
	loginPass   string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the EarthRanger server",
	Long: `Authenticates using the provided credentials, obtains an API token,
and saves it locally for future commands.

Example:
  twiga-dash login --username jdoe --password secret`,
	Run: func(cmd *cobra.Command, args []string) {
		// Clean up input server (remove trailing slash if present)
		loginServer = strings.TrimRight(loginServer, "/")

		cfg := client.ClientConfig{
			Server:   loginServer,
			Username: loginUser,
			Password: loginPass,
		}

		fmt.Printf("Authenticating against %s as user '%s'...\n", loginServer, loginUser)

		api := client.New(cfg)

		token, err := api.Login()
		if err != nil {
			log.Fatalf("Fatal: Login failed: %v", err)
		}

		fmt.Println("Login successful. Saving configuration...")

		viper.Set("server", loginServer)

		if err := config.SaveLogin(loginServer, token); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		fmt.Println("Token saved. You can now run commands like './twiga-dash subjects list'.")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginServer, "server", client.DefaultServer, "EarthRanger server URL")
	loginCmd.Flags().StringVarP(&loginUser, "username", "u", "", "EarthRanger username")
	loginCmd.Flags().StringVarP(&loginPass, "password", "p", "", "EarthRanger password")

	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
