package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"twiga-dash/internal/catalog"
	"twiga-dash/internal/flatten"
)

var (
	sightingCategory string
	sightingSince    string
)

var sightingsCmd = &cobra.Command{
	Use:   "sightings",
	Short: "Query monitoring sighting events",
	Long:  `Fetch giraffe monitoring events, flatten the per-giraffe herd observations, and print one row per giraffe seen.`,
}

var sightingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List flattened sighting rows",
	Run: func(cmd *cobra.Command, args []string) {
		api := apiFromConfig()

		since, err := time.Parse(time.RFC3339, sightingSince)
		if err != nil {
			fmt.Printf("Error parsing --since: %v\n", err)
			os.Exit(1)
		}
		until := time.Now().UTC()

		fmt.Printf("Fetching %s events from %s to %s (UTC)...\n",
			sightingCategory, since.Format("2006-01-02"), until.Format("2006-01-02"))

		events, err := api.GetEvents(sightingCategory, since, until)
		if err != nil {
			fmt.Printf("Error fetching events: %v\n", err)
			os.Exit(1)
		}

		rows, dropped := flatten.Flatten(events)
		if dropped > 0 {
			log.Printf("Warning: dropped %d rows with unparseable timestamps", dropped)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rows); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if len(rows) == 0 {
			fmt.Println("No sightings found in this time range.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TIMESTAMP\tGIRAFFE\tAGE\tSEX\tHERD\tRIVER\tREPORTER")
		fmt.Fprintln(w, "---------\t-------\t---\t---\t----\t-----\t--------")

		for _, r := range rows {
			herd := "-"
			if r.HerdSize != nil {
				herd = fmt.Sprintf("%.0f", *r.HerdSize)
			}
			gid := r.GiraffeID
			if gid == "" {
				gid = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Time.Local().Format("2006-01-02 15:04:05"),
				gid, r.GiraffeAge, r.GiraffeSex, herd, r.RiverSystem, r.UserName)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sightingsCmd)
	sightingsCmd.AddCommand(sightingsListCmd)

	sightingsListCmd.Flags().StringVar(&sightingCategory, "category", catalog.EventCategory, "Event category")
	sightingsListCmd.Flags().StringVar(&sightingSince, "since", catalog.SightingsSince, "Window start (RFC 3339)")
}
