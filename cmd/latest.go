package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cumenu/yemekhane/pkg/snapshot"
)

var reArgMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)

var latestCmd = &cobra.Command{
	Use:   "latest [YYYY-MM]",
	Short: "Summarize the newest snapshot for a month (current month by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		month := time.Now().Format("2006-01")
		if len(args) == 1 {
			month = args[0]
		}
		if !reArgMonth.MatchString(month) {
			return fmt.Errorf("invalid month: %s (want YYYY-MM)", month)
		}

		snap, err := newStore().Latest(month)
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			return fmt.Errorf("no snapshot found for %s, run 'yemekhane scrape' first", month)
		}
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}

		fmt.Printf("Month %s, scraped %s (%d days)\n", snap.Month, snap.ScrapeDate, snap.TotalDays)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, day := range snap.Days {
			if day.HasData {
				fmt.Fprintf(w, "%s\t%s\t%d meals\t%d kcal\n", day.Date, day.DayName, len(day.Meals), day.TotalCalories)
			} else {
				fmt.Fprintf(w, "%s\t%s\tno data\t\n", day.Date, day.DayName)
			}
		}
		return w.Flush()
	},
}

func init() {
	latestCmd.Flags().Bool("json", false, "Print the full snapshot as JSON")
	rootCmd.AddCommand(latestCmd)
}
