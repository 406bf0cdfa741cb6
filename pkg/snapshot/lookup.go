package snapshot

import (
	"encoding/json"
	"os"
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/cumenu/yemekhane/internal/utils"
	"github.com/cumenu/yemekhane/pkg/menu"
)

var reISODate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FindDay locates the menu for an ISO date. The date's own month is the
// fast path; otherwise month collections are scanned most-recent-first
// and the first latest-snapshot carrying the date wins. Unreadable
// snapshot files are skipped and the scan moves on; only exhausting
// every month yields not-found.
func (s *Store) FindDay(date string) (*menu.DayMenu, bool) {
	if !reISODate.MatchString(date) {
		return nil, false
	}

	if day, ok := s.findInMonth(date[:7], date); ok {
		return day, true
	}

	for _, month := range s.Months() {
		if month == date[:7] {
			continue // already checked
		}
		if day, ok := s.findInMonth(month, date); ok {
			return day, true
		}
	}
	return nil, false
}

// findInMonth searches a month's snapshots newest-first for the date.
// Snapshots are probed with gjson so a corrupt file costs a validity
// check, not an unmarshal of the whole month.
func (s *Store) findInMonth(month, date string) (*menu.DayMenu, bool) {
	for _, e := range s.monthEntries(month) {
		raw, err := os.ReadFile(e.path)
		if err != nil {
			utils.Log.Warnf("skipping snapshot %s: %v", e.path, err)
			continue
		}
		if !gjson.ValidBytes(raw) {
			utils.Log.Warnf("skipping corrupt snapshot %s", e.path)
			continue
		}

		hit := gjson.GetBytes(raw, `days.#(date=="`+date+`")`)
		if hit.Exists() {
			var day menu.DayMenu
			if err := json.Unmarshal([]byte(hit.Raw), &day); err != nil {
				utils.Log.Warnf("skipping malformed day in %s: %v", e.path, err)
				continue
			}
			return &day, true
		}
		// Each snapshot of a month covers the whole month; the newest
		// readable one is authoritative for it.
		return nil, false
	}
	return nil, false
}
