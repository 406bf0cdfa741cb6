package menu

import "time"

// Category buckets a dish into one of the site's informal groups. The
// listing page does not expose the category, so scraped meals default
// to CategoryMain until classified elsewhere.
type Category string

const (
	CategoryMain    Category = "ana_yemek"
	CategorySide    Category = "yan_yemek"
	CategorySoup    Category = "corba"
	CategoryExtra   Category = "yan_urun"
	CategoryDessert Category = "tatli"
	CategoryDrink   Category = "icecek"
)

// Meal is a single dish entry within a day. The ID comes from the
// per-dish detail link and is stable across days and months.
type Meal struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Calories int      `json:"calories"`
	Category Category `json:"category"`
}

// DayMenu is one calendar day's cafeteria offering. Ymk is the site's
// opaque per-day sequence number; it drives the snapshot ordering and
// some detail lookups. When HasData is false the site printed its
// "no menu entered" notice for that day: Meals stays empty and
// TotalCalories stays 0.
type DayMenu struct {
	Ymk           int    `json:"ymk"`
	Date          string `json:"date"`    // ISO, e.g. "2025-11-03"
	DayName       string `json:"dayName"` // e.g. "Pazartesi", may be empty
	HasData       bool   `json:"hasData"`
	Meals         []Meal `json:"meals"`
	TotalCalories int    `json:"totalCalories"`
}

// MenuSnapshot is one scrape run's full-month result. Snapshots are
// immutable once written; a newer run for the same month supersedes
// rather than mutates. TotalDays always equals len(Days).
type MenuSnapshot struct {
	Month       string    `json:"month"`      // "2025-11"
	LastUpdated time.Time `json:"lastUpdated"`
	ScrapeDate  string    `json:"scrapeDate"` // "2025-11-15"
	TotalDays   int       `json:"totalDays"`
	Days        []DayMenu `json:"days"`
}

// Day returns the menu for an ISO date, if the snapshot has it.
func (s *MenuSnapshot) Day(date string) (*DayMenu, bool) {
	for i := range s.Days {
		if s.Days[i].Date == date {
			return &s.Days[i], true
		}
	}
	return nil, false
}

// Ingredient is one row of a meal's ingredient table. Amounts on the
// site use a Turkish decimal comma and mixed units (GR, ADET, LT...).
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// MealDetail is the richer record scraped from a dish's own page. It
// is fetched lazily and cached by callers rather than persisted with
// the month snapshots. The detail page carries no reliable dish title,
// so Name is a synthesized placeholder.
type MealDetail struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Calories    int          `json:"calories"`
	ImageURL    *string      `json:"imageUrl"`
	Ingredients []Ingredient `json:"ingredients"`
}
