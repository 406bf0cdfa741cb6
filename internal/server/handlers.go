package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/cumenu/yemekhane/internal/utils"
	"github.com/cumenu/yemekhane/pkg/menu"
	"github.com/cumenu/yemekhane/pkg/snapshot"
	"github.com/cumenu/yemekhane/pkg/storage"
)

var (
	reISODate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reMonth   = regexp.MustCompile(`^\d{4}-\d{2}$`)
	reMealID  = regexp.MustCompile(`^\d+$`)
)

type dayResponse struct {
	Found bool          `json:"found"`
	Day   *menu.DayMenu `json:"day,omitempty"`
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	s.respondDay(w, time.Now().Format("2006-01-02"))
}

func (s *Server) handleMenuDate(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if !reISODate.MatchString(date) {
		http.Error(w, "invalid date format", http.StatusBadRequest)
		return
	}
	s.respondDay(w, date)
}

func (s *Server) respondDay(w http.ResponseWriter, date string) {
	day, found := s.Store.FindDay(date)
	json.NewEncoder(w).Encode(dayResponse{Found: found, Day: day})
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	month := r.PathValue("month")
	if !reMonth.MatchString(month) {
		http.Error(w, "invalid month format", http.StatusBadRequest)
		return
	}

	snap, err := s.Store.Latest(month)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		http.Error(w, "no menu data for month", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleMealDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !reMealID.MatchString(id) {
		http.Error(w, "invalid meal id", http.StatusBadRequest)
		return
	}

	if s.Cache != nil {
		cached, err := s.Cache.GetMealDetail(r.Context(), id, storage.DefaultTTL)
		if err != nil {
			utils.Log.Warnf("meal cache read failed for %s: %v", id, err)
		}
		if cached != nil {
			json.NewEncoder(w).Encode(cached)
			return
		}
	}

	detail, err := s.Scraper.FetchMealDetail(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if s.Cache != nil {
		if err := s.Cache.PutMealDetail(r.Context(), detail); err != nil {
			utils.Log.Warnf("meal cache write failed for %s: %v", id, err)
		}
	}
	json.NewEncoder(w).Encode(detail)
}
