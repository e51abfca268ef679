package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"twiga-dash/internal/catalog"
	"twiga-dash/internal/client"
	"twiga-dash/pkg/models"
)

var (
	subjectGroup   string
	includeRetired bool
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Query tracked giraffe subjects",
}

var subjectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the monitoring roster",
	Run: func(cmd *cobra.Command, args []string) {
		api := apiFromConfig()

		subjects, err := api.GetSubjects(subjectGroup)
		if err != nil {
			fmt.Printf("Error fetching subjects: %v\n", err)
			os.Exit(1)
		}

		if !includeRetired {
			active := subjects[:0]
			for _, s := range subjects {
				if s.IsActive {
					active = append(active, s)
				}
			}
			subjects = active
		}

		printSubjects(subjects)
	},
}

var subjectsSponsoredCmd = &cobra.Command{
	Use:   "sponsored",
	Short: "List the Adopt A Giraffe roster",
	Run: func(cmd *cobra.Command, args []string) {
		api := apiFromConfig()

		subjects, err := api.GetSubjects(catalog.AdoptAGiraffeGroupID)
		if err != nil {
			fmt.Printf("Error fetching sponsored subjects: %v\n", err)
			os.Exit(1)
		}

		printSubjects(subjects)
	},
}

// apiFromConfig builds a client from the saved server URL and token,
// exiting when the user has not logged in yet.
func apiFromConfig() *client.RangerClient {
	server := viper.GetString("server")
	token := viper.GetString("token")

	if server == "" || token == "" {
		fmt.Println("Error: Not logged in. Please run 'twiga-dash login' first.")
		os.Exit(1)
	}

	return client.New(client.ClientConfig{Server: server, Token: token})
}

func printSubjects(subjects []models.Subject) {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(subjects); err != nil {
			fmt.Printf("Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSEX\tACTIVE")
	fmt.Fprintln(w, "--\t----\t---\t------")

	for _, s := range subjects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", s.ID, s.Name, s.Sex, s.IsActive)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(subjectsCmd)
	subjectsCmd.AddCommand(subjectsListCmd)
	subjectsCmd.AddCommand(subjectsSponsoredCmd)

	subjectsListCmd.Flags().StringVar(&subjectGroup, "group", catalog.NamibiaNWGroupID, "Subject group ID")
	subjectsListCmd.Flags().BoolVar(&includeRetired, "all", false, "Include inactive subjects")
}
