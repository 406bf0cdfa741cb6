// Package server exposes the read-only menu API the web frontends
// consume: day lookups over the snapshot store and lazily scraped,
// day-cached meal details.
package server

import (
	"net/http"

	"github.com/cumenu/yemekhane/internal/utils"
	"github.com/cumenu/yemekhane/pkg/scraper"
	"github.com/cumenu/yemekhane/pkg/snapshot"
	"github.com/cumenu/yemekhane/pkg/storage"
)

type Server struct {
	Store   *snapshot.Store
	Cache   *storage.DB // may be nil, details are then scraped every time
	Scraper *scraper.Scraper
}

func New(store *snapshot.Store, cache *storage.DB, sc *scraper.Scraper) *Server {
	return &Server{
		Store:   store,
		Cache:   cache,
		Scraper: sc,
	}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/menu/today", s.handleToday)
	mux.HandleFunc("GET /api/menu/date/{date}", s.handleMenuDate)
	mux.HandleFunc("GET /api/menu/month/{month}", s.handleMonth)
	mux.HandleFunc("GET /api/meal/{id}", s.handleMealDetail)

	utils.Log.Infof("starting menu API on %s", addr)
	return http.ListenAndServe(addr, mux)
}
