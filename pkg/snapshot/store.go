// Package snapshot persists scraped month menus as dated JSON files
// and answers "menu for this date" queries over them.
//
// Layout: {root}/{YYYY-MM}/menu-YYYYMMDD.json, one file per scrape
// day. Re-running on the same day overwrites that day's file. Older
// deployments wrote flat menu-YYYY-MM-YYYYMMDD.json files directly
// under the root; those are still readable but never written.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cumenu/yemekhane/internal/utils"
	"github.com/cumenu/yemekhane/pkg/menu"
)

// DefaultKeep is how many snapshots of a month survive pruning.
const DefaultKeep = 5

var (
	reSnapshotFile = regexp.MustCompile(`^menu-(\d{8})\.json$`)
	reLegacyFile   = regexp.MustCompile(`^menu-(\d{4}-\d{2})-(\d{8})\.json$`)
	reMonthDir     = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// ErrNoSnapshot is returned by Latest when a month has no entries.
var ErrNoSnapshot = errors.New("no snapshot for month")

// StorageError reports a snapshot file that exists but cannot be read
// or decoded. During multi-month scans these are skipped; it surfaces
// only when the specific snapshot asked for is the broken one.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("snapshot %s unreadable: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

type Store struct {
	Root string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

// Write persists a snapshot under its month's directory, keyed by the
// compact scrape date. Same-day reruns overwrite, so the operation is
// idempotent per calendar day.
func (s *Store) Write(snap *menu.MenuSnapshot) (string, error) {
	if snap.Month == "" || snap.ScrapeDate == "" {
		return "", errors.New("snapshot missing month or scrape date")
	}

	dir := filepath.Join(s.Root, snap.Month)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}

	compact := strings.ReplaceAll(snap.ScrapeDate, "-", "")
	path := filepath.Join(dir, "menu-"+compact+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Latest loads the month's newest snapshot, or ErrNoSnapshot when the
// month has none.
func (s *Store) Latest(month string) (*menu.MenuSnapshot, error) {
	entries := s.monthEntries(month)
	if len(entries) == 0 {
		return nil, ErrNoSnapshot
	}
	return s.load(entries[0].path)
}

// Prune deletes the oldest snapshots of a month beyond keep. Legacy
// flat files are left alone; the old layout is read-only. Deletion
// failures are logged and swallowed so a scrape run never fails on
// cleanup, and returns how many files were removed.
func (s *Store) Prune(month string, keep int) int {
	if keep <= 0 {
		keep = DefaultKeep
	}

	var nested []entry
	for _, e := range s.monthEntries(month) {
		if !e.legacy {
			nested = append(nested, e)
		}
	}
	if len(nested) <= keep {
		return 0
	}

	deleted := 0
	for _, e := range nested[keep:] {
		if err := os.Remove(e.path); err != nil {
			utils.Log.Warnf("pruning %s failed: %v", e.path, err)
			continue
		}
		utils.Log.Infof("pruned old snapshot %s", e.path)
		deleted++
	}
	return deleted
}

// Months lists every month with at least one snapshot, newest first.
func (s *Store) Months() []string {
	seen := map[string]bool{}
	dirents, err := os.ReadDir(s.Root)
	if err != nil {
		return nil
	}
	for _, de := range dirents {
		if de.IsDir() && reMonthDir.MatchString(de.Name()) {
			seen[de.Name()] = true
			continue
		}
		if m := reLegacyFile.FindStringSubmatch(de.Name()); m != nil {
			seen[m[1]] = true
		}
	}

	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

type entry struct {
	path    string
	dateKey int // scrape date as YYYYMMDD
	legacy  bool
}

// monthEntries lists a month's snapshot files newest-first, merging the
// nested layout with any legacy flat files for that month.
func (s *Store) monthEntries(month string) []entry {
	var out []entry

	if dirents, err := os.ReadDir(filepath.Join(s.Root, month)); err == nil {
		for _, de := range dirents {
			m := reSnapshotFile.FindStringSubmatch(de.Name())
			if m == nil {
				continue
			}
			key, _ := strconv.Atoi(m[1])
			out = append(out, entry{path: filepath.Join(s.Root, month, de.Name()), dateKey: key})
		}
	}

	if dirents, err := os.ReadDir(s.Root); err == nil {
		for _, de := range dirents {
			if de.IsDir() {
				continue
			}
			m := reLegacyFile.FindStringSubmatch(de.Name())
			if m == nil || m[1] != month {
				continue
			}
			key, _ := strconv.Atoi(m[2])
			out = append(out, entry{path: filepath.Join(s.Root, de.Name()), dateKey: key, legacy: true})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].dateKey > out[j].dateKey })
	return out
}

func (s *Store) load(path string) (*menu.MenuSnapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Path: path, Err: err}
	}
	var snap menu.MenuSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, &StorageError{Path: path, Err: err}
	}
	return &snap, nil
}
