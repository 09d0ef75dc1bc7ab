package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/courtwatch/courtwatch/internal/refresh"
	"github.com/courtwatch/courtwatch/internal/schedule"
)

type fakeSource struct {
	snapshot *schedule.Snapshot
	err      error
}

func (f *fakeSource) Load() (*schedule.Snapshot, error) {
	return f.snapshot, f.err
}

func testSnapshot() *schedule.Snapshot {
	venues := map[string]schedule.VenueResult{
		"darebin": {
			Name: "Darebin",
			Days: map[string]schedule.Day{
				"2025-06-02": {
					{TimeLabel: "6:00 AM", Time24h: "06:00", RawStatus: "3 / 5 AVAILABLE", Available: 3, Capacity: 5},
				},
			},
		},
		"macleod": {
			Name:  "Macleod",
			Days:  map[string]schedule.Day{},
			Error: "navigation timeout",
		},
	}
	return schedule.NewSnapshot(venues, time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC))
}

func newTestServer(source SnapshotSource, refreshFn func() error) *Server {
	if refreshFn == nil {
		refreshFn = func() error { return nil }
	}
	venues := []VenueInfo{
		{ID: "darebin", Name: "Darebin"},
		{ID: "macleod", Name: "Macleod"},
	}
	return NewServer(source, refresh.NewCoordinator(), refreshFn, venues, nil)
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestGetData(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/data")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var snapshot schedule.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(snapshot.Venues) != 2 {
		t.Errorf("expected 2 venues, got %d", len(snapshot.Venues))
	}
	if snapshot.Venues["macleod"].Error != "navigation timeout" {
		t.Errorf("error field lost: %+v", snapshot.Venues["macleod"])
	}
}

func TestGetDataStorageFailure(t *testing.T) {
	s := newTestServer(&fakeSource{err: errors.New("disk gone")}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/data")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, expected 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message in the body")
	}
}

func TestGetVenue(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/data/darebin")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var venue schedule.VenueResult
	if err := json.Unmarshal(rec.Body.Bytes(), &venue); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if venue.Name != "Darebin" || len(venue.Days) != 1 {
		t.Errorf("unexpected venue payload: %+v", venue)
	}
}

func TestGetVenueNotFound(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/data/msac")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, expected 404", rec.Code)
	}
}

func TestGetVenueDate(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/data/darebin/2025-06-02")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var day schedule.Day
	if err := json.Unmarshal(rec.Body.Bytes(), &day); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(day) != 1 || day[0].Time24h != "06:00" {
		t.Errorf("unexpected day payload: %+v", day)
	}
}

func TestGetVenueDateNotFound(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/data/darebin/2025-12-25")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, expected 404", rec.Code)
	}
}

func TestGetVenues(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/venues")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var venues []VenueInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &venues); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(venues) != 2 || venues[0].ID != "darebin" {
		t.Errorf("unexpected venue list: %+v", venues)
	}
	if len(venues[0].Days) != 1 || venues[0].Days[0] != "2025-06-02" {
		t.Errorf("darebin days = %v, expected snapshot dates", venues[0].Days)
	}
	if len(venues[1].Days) != 0 {
		t.Errorf("macleod should have no days, got %v", venues[1].Days)
	}
}

func TestPostRefresh(t *testing.T) {
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, func() error {
		started.Done()
		<-release
		return nil
	})

	rec := doRequest(t, s, http.MethodPost, "/api/refresh")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, expected 202", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "started" {
		t.Errorf("status field = %q", body["status"])
	}

	// A second trigger while the first is still running conflicts.
	started.Wait()
	rec = doRequest(t, s, http.MethodPost, "/api/refresh")
	if rec.Code != http.StatusConflict {
		t.Fatalf("second refresh status = %d, expected 409", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "already_running" {
		t.Errorf("status field = %q", body["status"])
	}
	close(release)
}

func TestRefreshStatus(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/refresh/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var state refresh.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if state.InProgress {
		t.Error("expected an idle coordinator")
	}
}

func TestRefreshOnlyAcceptsPost(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/refresh")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, expected 405", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot()}, nil)

	rec := doRequest(t, s, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
}
