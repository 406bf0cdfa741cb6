package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cumenu/yemekhane/internal/utils"
	"github.com/cumenu/yemekhane/pkg/menu"
	"github.com/cumenu/yemekhane/pkg/turkish"
	"github.com/cumenu/yemekhane/pkg/whttp"
)

// Ingredient rows read like "DANA ETİ 150 GR" or "SARIMSAK 0,2 GR":
// name tokens, a comma-decimal amount, then unit tokens.
var reIngredient = regexp.MustCompile(`^(.+?)\s+([\d,\.]+)\s+(.+)$`)

// FetchMealDetail retrieves and parses a single dish's page. Detail
// pages change at most daily; callers are expected to cache the result
// for a day rather than re-fetch per request.
func (sc *Scraper) FetchMealDetail(id string) (*menu.MealDetail, error) {
	res, err := whttp.FetchDecoded(&whttp.Request{URL: sc.BaseURL + mealDetailPath + id}, sc.Client)
	if err != nil {
		return nil, err
	}
	return ParseMealDetail(res.Body, id, sc.BaseURL)
}

// ParseMealDetail parses a decoded detail page. Rows that are headers
// or unrelated content simply don't match the ingredient shape and are
// dropped; only a broken document is an error.
func ParseMealDetail(htmlText, id, baseURL string) (*menu.MealDetail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, &ParseError{Page: "meal " + id, Reason: err.Error()}
	}

	// The page can print the calorie figure more than once; the last
	// red-styled value is the authoritative one.
	calories := 0
	doc.Find(`font[color="red"]`).Each(func(i int, el *goquery.Selection) {
		if m := reDigits.FindStringSubmatch(el.Text()); m != nil {
			calories, _ = strconv.Atoi(m[1])
		}
	})

	var imageURL *string
	if src, ok := doc.Find(`img[src^="yemekler/"]`).Attr("src"); ok {
		u := baseURL + "/" + src
		imageURL = &u
	}

	ingredients := []menu.Ingredient{}
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cell := strings.TrimSpace(row.Find("td").First().Text())
		if cell == "" {
			return
		}
		m := reIngredient.FindStringSubmatch(cell)
		if m == nil {
			return
		}
		amount, err := turkish.ParseAmount(m[2])
		if err != nil {
			utils.Log.Debugf("meal %s: unparseable amount %q in row %d", id, m[2], i)
			return
		}
		ingredients = append(ingredients, menu.Ingredient{
			Name:   strings.TrimSpace(m[1]),
			Amount: amount,
			Unit:   strings.TrimSpace(m[3]),
		})
	})

	return &menu.MealDetail{
		ID: id,
		// The detail page has no reliable dish title of its own.
		Name:        fmt.Sprintf("Yemek #%s", id),
		Calories:    calories,
		ImageURL:    imageURL,
		Ingredients: ingredients,
	}, nil
}
