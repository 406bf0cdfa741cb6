package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cumenu/yemekhane/pkg/turkish"
)

var reArgDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var menuCmd = &cobra.Command{
	Use:   "menu [YYYY-MM-DD]",
	Short: "Show the menu for a date (today by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().Format("2006-01-02")
		if len(args) == 1 {
			date = args[0]
		}
		if !reArgDate.MatchString(date) {
			return fmt.Errorf("invalid date: %s (want YYYY-MM-DD)", date)
		}

		day, found := newStore().FindDay(date)
		if !found {
			return fmt.Errorf("no menu found for %s", date)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(day)
		}

		fmt.Printf("%s %s\n", day.Date, day.DayName)
		if !day.HasData {
			fmt.Println("No menu entered for this day.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, meal := range day.Meals {
			fmt.Fprintf(w, "%s\t%d kcal\n", turkish.TitleCase(meal.Name), meal.Calories)
		}
		fmt.Fprintf(w, "Toplam\t%d kcal\n", day.TotalCalories)
		return w.Flush()
	},
}

func init() {
	menuCmd.Flags().Bool("json", false, "Print the raw day record as JSON")
	rootCmd.AddCommand(menuCmd)
}
