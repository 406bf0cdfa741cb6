package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cumenu/yemekhane/internal/utils"
)

// scrapeCmd is the scheduled batch entry point: one run fetches the
// month page, writes one snapshot and prunes old ones. Fetch or parse
// failures exit non-zero for the scheduler; prune failures never do.
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the current month's menu and store a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.Log.Info("scraping cafeteria site...")

		snap, err := newScraper().FetchMonth()
		if err != nil {
			return err
		}

		store := newStore()
		path, err := store.Write(snap)
		if err != nil {
			return err
		}

		daysWithData := 0
		totalMeals := 0
		for _, day := range snap.Days {
			if day.HasData {
				daysWithData++
			}
			totalMeals += len(day.Meals)
		}

		utils.Log.Infof("wrote %s", path)
		utils.Log.Infof("month %s: %d days (%d with data), %d meals total",
			snap.Month, snap.TotalDays, daysWithData, totalMeals)
		if daysWithData > 0 {
			utils.Log.Infof("average %.1f meals per served day", float64(totalMeals)/float64(daysWithData))
		}

		for i, day := range snap.Days {
			if i == 3 {
				break
			}
			if day.HasData {
				utils.Log.Infof("  %s (%s): %d meals, %d kcal", day.Date, day.DayName, len(day.Meals), day.TotalCalories)
			} else {
				utils.Log.Infof("  %s (%s): no data", day.Date, day.DayName)
			}
		}

		if deleted := store.Prune(snap.Month, viper.GetInt("data.keep")); deleted > 0 {
			utils.Log.Infof("pruned %d old snapshots for %s", deleted, snap.Month)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
