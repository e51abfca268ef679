package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".twiga-dash" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".twiga-dash")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		// Config loaded successfully
	}
}

// SaveLogin updates the config file with the server URL and API token
func SaveLogin(server, token string) error {
	viper.Set("server", server)
	viper.Set("token", token)

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".twiga-dash.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
