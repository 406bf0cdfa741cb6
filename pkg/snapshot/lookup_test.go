package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cumenu/yemekhane/pkg/menu"
)

func day(ymk int, date string, calories int) menu.DayMenu {
	return menu.DayMenu{
		Ymk:     ymk,
		Date:    date,
		HasData: true,
		Meals: []menu.Meal{
			{ID: "157", Name: "Ekşili Köfte", Calories: 294, Category: menu.CategoryMain},
		},
		TotalCalories: calories,
	}
}

func TestFindDaySameMonth(t *testing.T) {
	store := NewStore(t.TempDir())
	snap := testSnapshot("2026-02", "2026-02-03",
		day(1, "2026-02-02", 800),
		day(2, "2026-02-03", 750),
	)
	if _, err := store.Write(snap); err != nil {
		t.Fatal(err)
	}

	found, ok := store.FindDay("2026-02-03")
	if !ok {
		t.Fatal("expected day to be found in its own month")
	}
	if found.Ymk != 2 || found.TotalCalories != 750 {
		t.Errorf("unexpected day: %+v", found)
	}
}

func TestFindDayCrossMonth(t *testing.T) {
	store := NewStore(t.TempDir())

	// The December page carried a few edge days from January; the
	// 2026-01 collection itself was never scraped.
	older := testSnapshot("2025-12", "2025-12-20",
		day(30, "2025-12-31", 700),
		day(31, "2026-01-02", 820),
	)
	current := testSnapshot("2026-02", "2026-02-01", day(1, "2026-02-01", 600))
	for _, s := range []*menu.MenuSnapshot{older, current} {
		if _, err := store.Write(s); err != nil {
			t.Fatal(err)
		}
	}

	found, ok := store.FindDay("2026-01-02")
	if !ok {
		t.Fatal("expected cross-month scan to find the day")
	}
	if found.Ymk != 31 || found.TotalCalories != 820 {
		t.Errorf("unexpected day: %+v", found)
	}
}

func TestFindDayNotFound(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Write(testSnapshot("2026-02", "2026-02-01", day(1, "2026-02-01", 600))); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.FindDay("2024-01-01"); ok {
		t.Error("expected not-found for a date in no snapshot")
	}
	if _, ok := store.FindDay("not-a-date"); ok {
		t.Error("expected not-found for garbage input")
	}
}

func TestFindDaySkipsCorruptSnapshot(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	if _, err := store.Write(testSnapshot("2026-02", "2026-02-01", day(1, "2026-02-01", 600))); err != nil {
		t.Fatal(err)
	}
	// A newer but corrupt file must not hide the older readable one.
	corrupt := filepath.Join(root, "2026-02", "menu-20260204.json")
	if err := os.WriteFile(corrupt, []byte("{{{ not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, ok := store.FindDay("2026-02-01")
	if !ok {
		t.Fatal("expected lookup to skip the corrupt snapshot and continue")
	}
	if found.TotalCalories != 600 {
		t.Errorf("unexpected day: %+v", found)
	}
}
