// Package scraper turns the cafeteria site's legacy table/font markup
// into typed menu records. The monthly listing page and the per-dish
// detail pages have different shapes and are parsed separately.
package scraper

import (
	stdhtml "html"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/cumenu/yemekhane/internal/utils"
	"github.com/cumenu/yemekhane/pkg/menu"
	"github.com/cumenu/yemekhane/pkg/turkish"
	"github.com/cumenu/yemekhane/pkg/whttp"
)

const (
	// DefaultBaseURL is the cafeteria site origin.
	DefaultBaseURL = "https://yemekhane.cu.edu.tr"

	monthPagePath  = "/default.asp"
	mealDetailPath = "/yemek-goster.asp?id="

	// The site prints this phrase on days without an entered menu.
	noDataPhrase = "Yemekhane yemek bilgileri girilmemiştir"

	// Day totals come in two flavors; the one mentioning the main dish
	// is authoritative when present.
	mainDishMarker = "Ana Yemekli"
)

var (
	reYmk    = regexp.MustCompile(`ymk=(\d+)`)
	reMealID = regexp.MustCompile(`id=(\d+)`)
	reDigits = regexp.MustCompile(`(\d+)`)
	reBreak  = regexp.MustCompile(`(?i)<br\s*/?>`)
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reSpaces = regexp.MustCompile(`\s+`)
)

// ParseError reports a page whose markup yielded nothing usable.
type ParseError struct {
	Page   string
	Reason string
}

func (e *ParseError) Error() string {
	return "parsing " + e.Page + " failed: " + e.Reason
}

// Scraper fetches and parses the cafeteria site.
type Scraper struct {
	BaseURL string
	Client  *http.Client
}

func New(baseURL string, client *http.Client) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Scraper{BaseURL: baseURL, Client: client}
}

// FetchMonth retrieves the full-month listing page and parses it into a
// snapshot stamped with today's scrape date.
func (sc *Scraper) FetchMonth() (*menu.MenuSnapshot, error) {
	res, err := whttp.FetchDecoded(&whttp.Request{URL: sc.BaseURL + monthPagePath}, sc.Client)
	if err != nil {
		return nil, err
	}

	snap, err := ParseMonth(res.Body)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	snap.LastUpdated = now
	snap.ScrapeDate = now.Format("2006-01-02")
	return snap, nil
}

// cardResult is the outcome of parsing one day card. Cards the page
// renders without a usable date header are skipped, not fatal; keeping
// the reason makes that tolerance visible in logs and tests.
type cardResult struct {
	skipped bool
	reason  string
	day     menu.DayMenu
}

// ParseMonth parses decoded listing-page HTML into a month snapshot.
// It fails only when no day card parses at all; individual malformed
// cards and meal links are dropped with a log line.
func ParseMonth(htmlText string) (*menu.MenuSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, &ParseError{Page: "month listing", Reason: err.Error()}
	}

	var days []menu.DayMenu
	// Both layout classes mark day cards; the split is a markup quirk,
	// not a semantic one.
	cards := doc.Find(".col-md-2, .col-md-3")
	utils.Log.Debugf("found %d day cards", cards.Length())

	cards.Each(func(i int, card *goquery.Selection) {
		res := parseDayCard(card)
		if res.skipped {
			utils.Log.Warnf("skipping day card %d: %s", i, res.reason)
			return
		}
		days = append(days, res.day)
	})

	if len(days) == 0 {
		return nil, &ParseError{Page: "month listing", Reason: "no parseable day cards"}
	}

	// Contract is ymk order, not date order; they normally coincide.
	sort.Slice(days, func(i, j int) bool { return days[i].Ymk < days[j].Ymk })

	return &menu.MenuSnapshot{
		Month:     days[0].Date[:7],
		TotalDays: len(days),
		Days:      days,
	}, nil
}

func parseDayCard(card *goquery.Selection) cardResult {
	hasData := !strings.Contains(card.Text(), noDataPhrase)

	header := card.Find(`font[size="6"]`)

	ymk := 0
	if href, ok := header.Find("a").Attr("href"); ok {
		if m := reYmk.FindStringSubmatch(href); m != nil {
			ymk, _ = strconv.Atoi(m[1])
		}
	}

	headerText := textWithBreaks(header)
	date, dateOK := turkish.ParseDate(headerText)

	if !dateOK || ymk == 0 {
		return cardResult{skipped: true, reason: "no valid date or ymk in header"}
	}

	dayName := ""
	if fields := strings.Fields(headerText); len(fields) > 1 {
		dayName = fields[1]
	}
	if dayName == "" {
		alt := strings.TrimSpace(card.Find(`font[size="5"]`).Text())
		dayName = strings.TrimSpace(strings.SplitN(alt, ",", 2)[0])
	}

	day := menu.DayMenu{
		Ymk:     ymk,
		Date:    date,
		DayName: dayName,
		HasData: hasData,
		Meals:   []menu.Meal{},
	}
	if !hasData {
		return cardResult{day: day}
	}

	card.Find("ul li a").Each(func(i int, link *goquery.Selection) {
		meal, ok := parseMealLink(link)
		if !ok {
			utils.Log.Debugf("skipping meal link %d on %s: no dish id", i, date)
			return
		}
		day.Meals = append(day.Meals, meal)
	})

	day.TotalCalories = parseDayTotal(card)

	return cardResult{day: day}
}

// parseMealLink reads one "ul li a" dish link. The href carries the
// dish id, the inner markup is "<name><br><n> Kalori".
func parseMealLink(link *goquery.Selection) (menu.Meal, bool) {
	href, _ := link.Attr("href")
	m := reMealID.FindStringSubmatch(href)
	if m == nil {
		return menu.Meal{}, false
	}

	inner, err := link.Html()
	if err != nil {
		return menu.Meal{}, false
	}
	parts := reBreak.Split(inner, 2)

	name := strings.TrimSpace(stdhtml.UnescapeString(reTags.ReplaceAllString(parts[0], "")))

	calories := 0
	if len(parts) > 1 {
		if cm := reDigits.FindStringSubmatch(parts[1]); cm != nil {
			calories, _ = strconv.Atoi(cm[1])
		}
	}

	return menu.Meal{
		ID:       m[1],
		Name:     name,
		Calories: calories,
		Category: menu.CategoryMain,
	}, true
}

// parseDayTotal reads the printed day total out of the card's styled
// spans. The "Ana Yemekli : 891 Kalori" figure wins over the plain
// "Toplam 797 Kalori" one when both appear; real pages carry either.
// The total is the site's own annotation and is trusted as-is, it is
// not recomputed from the itemized meals.
func parseDayTotal(card *goquery.Selection) int {
	total := 0
	card.Find(`span[style*="color: rgb(204, 0, 0)"]`).Each(func(i int, span *goquery.Selection) {
		text := span.Text()
		m := reDigits.FindStringSubmatch(text)
		if m == nil {
			return
		}
		if strings.Contains(text, mainDishMarker) || i == 0 {
			total, _ = strconv.Atoi(m[1])
		}
	})
	return total
}

// textWithBreaks flattens a selection to text with <br> tags turned
// into spaces, so "03.11.2025<br>Pazartesi" keeps its word boundary.
func textWithBreaks(sel *goquery.Selection) string {
	inner, err := sel.Html()
	if err != nil {
		return strings.TrimSpace(sel.Text())
	}
	inner = reBreak.ReplaceAllString(inner, " ")
	text := stdhtml.UnescapeString(reTags.ReplaceAllString(inner, ""))
	return strings.TrimSpace(reSpaces.ReplaceAllString(text, " "))
}
