package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cumenu/yemekhane/internal/utils"
	"github.com/cumenu/yemekhane/pkg/menu"
	"github.com/cumenu/yemekhane/pkg/storage"
	"github.com/cumenu/yemekhane/pkg/turkish"
)

var mealCmd = &cobra.Command{
	Use:   "meal <id>",
	Short: "Show calorie and ingredient details for a dish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		noCache, _ := cmd.Flags().GetBool("no-cache")

		var cache *storage.DB
		if !noCache {
			cache = openCache()
			if cache != nil {
				defer cache.Close()
			}
		}

		var detail *menu.MealDetail
		if cache != nil {
			cached, err := cache.GetMealDetail(cmd.Context(), id, storage.DefaultTTL)
			if err != nil {
				utils.Log.Warnf("meal cache read failed: %v", err)
			}
			detail = cached
		}

		if detail == nil {
			fresh, err := newScraper().FetchMealDetail(id)
			if err != nil {
				return err
			}
			detail = fresh
			if cache != nil {
				if err := cache.PutMealDetail(cmd.Context(), detail); err != nil {
					utils.Log.Warnf("meal cache write failed: %v", err)
				}
			}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(detail)
		}

		fmt.Printf("%s: %d kcal\n", detail.Name, detail.Calories)
		if detail.ImageURL != nil {
			fmt.Printf("Image: %s\n", *detail.ImageURL)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, ing := range detail.Ingredients {
			fmt.Fprintf(w, "%s\t%g %s\n", turkish.TitleCase(ing.Name), ing.Amount, ing.Unit)
		}
		return w.Flush()
	},
}

func init() {
	mealCmd.Flags().Bool("no-cache", false, "Skip the meal detail cache and scrape the page")
	mealCmd.Flags().Bool("json", false, "Print the detail record as JSON")
	rootCmd.AddCommand(mealCmd)
}
