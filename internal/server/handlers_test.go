package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/cumenu/yemekhane/pkg/menu"
	"github.com/cumenu/yemekhane/pkg/scraper"
	"github.com/cumenu/yemekhane/pkg/snapshot"
	"github.com/cumenu/yemekhane/pkg/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	store := snapshot.NewStore(t.TempDir())
	snap := &menu.MenuSnapshot{
		Month:       "2026-02",
		LastUpdated: time.Now(),
		ScrapeDate:  "2026-02-03",
		TotalDays:   1,
		Days: []menu.DayMenu{
			{
				Ymk:     1,
				Date:    "2026-02-03",
				DayName: "Salı",
				HasData: true,
				Meals: []menu.Meal{
					{ID: "157", Name: "Ekşili Köfte", Calories: 294, Category: menu.CategoryMain},
				},
				TotalCalories: 797,
			},
		},
	}
	if _, err := store.Write(snap); err != nil {
		t.Fatal(err)
	}

	cache, err := storage.Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cache.Close() })

	return New(store, cache, scraper.New("http://unreachable.invalid", nil))
}

func get(t *testing.T, handler http.HandlerFunc, path string, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleMenuDate(t *testing.T) {
	s := testServer(t)

	rec := get(t, s.handleMenuDate, "/api/menu/date/2026-02-03", map[string]string{"date": "2026-02-03"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp dayResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Found || resp.Day == nil || resp.Day.Date != "2026-02-03" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleMenuDateMiss(t *testing.T) {
	s := testServer(t)

	rec := get(t, s.handleMenuDate, "/api/menu/date/2024-01-01", map[string]string{"date": "2024-01-01"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp dayResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Found || resp.Day != nil {
		t.Errorf("expected a found=false response, got %+v", resp)
	}
}

func TestHandleMenuDateBadFormat(t *testing.T) {
	s := testServer(t)

	rec := get(t, s.handleMenuDate, "/api/menu/date/tomorrow", map[string]string{"date": "tomorrow"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleMonth(t *testing.T) {
	s := testServer(t)

	rec := get(t, s.handleMonth, "/api/menu/month/2026-02", map[string]string{"month": "2026-02"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var snap menu.MenuSnapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Month != "2026-02" || snap.TotalDays != 1 {
		t.Errorf("unexpected snapshot: month %s, days %d", snap.Month, snap.TotalDays)
	}

	rec = get(t, s.handleMonth, "/api/menu/month/2023-01", map[string]string{"month": "2023-01"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status for missing month = %d, want 404", rec.Code)
	}
}

func TestHandleMealDetailFromCache(t *testing.T) {
	s := testServer(t)

	cached := &menu.MealDetail{
		ID:          "157",
		Name:        "Yemek #157",
		Calories:    294,
		Ingredients: []menu.Ingredient{{Name: "DANA ETİ", Amount: 150, Unit: "GR"}},
	}
	if err := s.Cache.PutMealDetail(context.Background(), cached); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s.handleMealDetail, "/api/meal/157", map[string]string{"id": "157"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var detail menu.MealDetail
	if err := json.NewDecoder(rec.Body).Decode(&detail); err != nil {
		t.Fatal(err)
	}
	if detail.ID != "157" || detail.Calories != 294 {
		t.Errorf("unexpected detail: %+v", detail)
	}
}

func TestHandleMealDetailBadID(t *testing.T) {
	s := testServer(t)

	rec := get(t, s.handleMealDetail, "/api/meal/drop-tables", map[string]string{"id": "drop-tables"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
