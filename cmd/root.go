package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"twiga-dash/internal/config"
)

var cfgFile string
var jsonOutput bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "twiga-dash",
	Short: "CLI and web dashboard for EarthRanger giraffe monitoring",
	Long: `Query giraffe subjects and monitoring sightings from an EarthRanger
server, and serve the NW Namibia monitoring dashboard.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.twiga-dash.yaml)")

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}
