package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtwatch/courtwatch/internal/logger"
	"github.com/courtwatch/courtwatch/internal/metrics"
	"github.com/courtwatch/courtwatch/internal/refresh"
	"github.com/courtwatch/courtwatch/internal/schedule"
)

// SnapshotSource loads the latest availability snapshot.
type SnapshotSource interface {
	Load() (*schedule.Snapshot, error)
}

// VenueInfo is the public shape of one configured venue. Days carries
// the dates present in the current snapshot.
type VenueInfo struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Days []string `json:"days"`
}

// Server exposes the availability API.
type Server struct {
	snapshots   SnapshotSource
	coordinator *refresh.Coordinator
	refreshFn   func() error
	venues      []VenueInfo
	m           *metrics.Metrics
}

// NewServer wires the API handlers. refreshFn runs a full scrape cycle
// and is invoked through the coordinator, never directly. Metrics may be
// nil.
func NewServer(snapshots SnapshotSource, coordinator *refresh.Coordinator, refreshFn func() error, venues []VenueInfo, m *metrics.Metrics) *Server {
	return &Server{
		snapshots:   snapshots,
		coordinator: coordinator,
		refreshFn:   refreshFn,
		venues:      venues,
		m:           m,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.observe)

	r.HandleFunc("/api/data", s.handleData).Methods(http.MethodGet)
	r.HandleFunc("/api/data/{venue}", s.handleVenue).Methods(http.MethodGet)
	r.HandleFunc("/api/data/{venue}/{date}", s.handleVenueDate).Methods(http.MethodGet)
	r.HandleFunc("/api/venues", s.handleVenues).Methods(http.MethodGet)
	r.HandleFunc("/api/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/api/refresh/status", s.handleRefreshStatus).Methods(http.MethodGet)
	r.Handle("/metrics", s.m.Handler()).Methods(http.MethodGet)

	return r
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.snapshots.Load()
	if err != nil {
		logger.Error("loading snapshot failed", nil, err)
		writeError(w, http.StatusInternalServerError, "failed to load availability data")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleVenue(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.snapshots.Load()
	if err != nil {
		logger.Error("loading snapshot failed", nil, err)
		writeError(w, http.StatusInternalServerError, "failed to load availability data")
		return
	}

	id := mux.Vars(r)["venue"]
	venue, ok := snapshot.Venues[id]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown venue: "+id)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleVenueDate(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.snapshots.Load()
	if err != nil {
		logger.Error("loading snapshot failed", nil, err)
		writeError(w, http.StatusInternalServerError, "failed to load availability data")
		return
	}

	vars := mux.Vars(r)
	venue, ok := snapshot.Venues[vars["venue"]]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown venue: "+vars["venue"])
		return
	}
	day, ok := venue.Days[vars["date"]]
	if !ok {
		writeError(w, http.StatusNotFound, "no data for date: "+vars["date"])
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleVenues(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.snapshots.Load()
	if err != nil {
		logger.Error("loading snapshot failed", nil, err)
		writeError(w, http.StatusInternalServerError, "failed to load availability data")
		return
	}

	venues := make([]VenueInfo, len(s.venues))
	for i, v := range s.venues {
		venues[i] = VenueInfo{ID: v.ID, Name: v.Name, Days: []string{}}
		if result, ok := snapshot.Venues[v.ID]; ok {
			venues[i].Days = result.Dates()
		}
	}
	writeJSON(w, http.StatusOK, venues)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.coordinator.Trigger(s.refreshFn) {
		logger.Info("refresh started via API", nil)
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
		return
	}
	writeJSON(w, http.StatusConflict, map[string]string{"status": "already_running"})
}

func (s *Server) handleRefreshStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Status())
}

// observe records request counts against the route template, keeping the
// metric's path label bounded.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		s.m.ObserveRequest(path, rec.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response failed", nil, err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
