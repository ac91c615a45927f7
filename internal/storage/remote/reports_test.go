package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/Yimmi-urbano/dencia-app-front/internal/config"
	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, h http.Handler) *ReportsClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewReportsClient(config.ReportsConfig{BaseURL: srv.URL + "/api/", Timeout: 2 * time.Second}, newTestLogger())
}

func TestReportsClient_List(t *testing.T) {
	t.Parallel()

	body := `[
		{"_id":"1","description":"celular","incidentType":"robo","coordinates":{"lat":-12.05,"lon":-77.03},"address":"Av. X"},
		{"_id":"2","description":"","incidentType":"extorsion","coordinates":{"lat":-12.1,"lon":-77.0},"address":""},
		{"_id":"3","incidentType":"robo","coordinates":{"lat":"abc","lon":-77.0}},
		{"_id":"4","incidentType":"robo"},
		{"_id":"5","incidentType":"robo","coordinates":{"lat":null,"lon":-77.0}},
		{"_id":"6","incidentType":"otro","coordinates":{"lat":-12.2,"lon":-76.9}},
		{"_id":"","incidentType":"robo","coordinates":{"lat":-12.3,"lon":-76.8}},
		{"incidentType":"robo","coordinates":{"lat":-12.3,"lon":-76.8}},
		{"_id":"1","description":"repetido","incidentType":"extorsion","coordinates":{"lat":-12.4,"lon":-76.7}}
	]`

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/reports" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(body))
	}))

	got, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := []domain.Incident{
		{ID: "1", Description: "celular", IncidentType: domain.CategoryRobbery, Coordinates: domain.Coordinates{Lat: -12.05, Lon: -77.03}, Address: "Av. X"},
		{ID: "2", IncidentType: domain.CategoryExtortion, Coordinates: domain.Coordinates{Lat: -12.1, Lon: -77.0}},
		{ID: "6", IncidentType: "otro", Coordinates: domain.Coordinates{Lat: -12.2, Lon: -76.9}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestReportsClient_List_Empty(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	got, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestReportsClient_List_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]http.HandlerFunc{
		"500": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"not an array": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"x"}`))
		},
	}

	for name, h := range cases {
		c := newTestClient(t, h)
		_, err := c.List(context.Background())
		if !errors.Is(err, e.ErrService) {
			t.Fatalf("%s: expected ErrService, got %v", name, err)
		}
	}
}

func TestReportsClient_Create_WireShape(t *testing.T) {
	t.Parallel()

	var calls int
	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost || r.URL.Path != "/api/reports" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type=%q", ct)
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"abc"}`))
	}))

	err := c.Create(context.Background(), domain.NewIncident{
		Description:  "extorsion a bodega",
		IncidentType: domain.CategoryExtortion,
		Address:      "Jr. Y",
		Coordinates:  domain.Coordinates{Lat: -12.05, Lon: -77.03},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}

	want := map[string]any{
		"description":  "extorsion a bodega",
		"incidentType": "extorsion",
		"address":      "Jr. Y",
		"coordinates":  map[string]any{"lat": -12.05, "lon": -77.03},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("body=%v want=%v", got, want)
	}
}

func TestReportsClient_Create_Errors(t *testing.T) {
	t.Parallel()

	var calls int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	ok := domain.NewIncident{IncidentType: domain.CategoryRobbery, Coordinates: domain.Coordinates{Lat: 1, Lon: 1}}
	if err := c.Create(context.Background(), ok); !errors.Is(err, e.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}

	bad := domain.NewIncident{IncidentType: "all", Coordinates: domain.Coordinates{Lat: 1, Lon: 1}}
	if err := c.Create(context.Background(), bad); !errors.Is(err, e.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("invalid payload must not reach the service, calls=%d", calls)
	}
}

// fakeService keeps posted reports in memory and lists them back.
type fakeService struct {
	mu      sync.Mutex
	reports []map[string]any
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		var in map[string]any
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		in["_id"] = "id-" + string(rune('a'+len(f.reports)))
		f.reports = append(f.reports, in)
		w.WriteHeader(http.StatusCreated)
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(f.reports)
	}
}

func TestReportsClient_RoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, &fakeService{})

	in := domain.NewIncident{
		Description:  "robo al paso",
		IncidentType: domain.CategoryRobbery,
		Address:      "Av. X",
		Coordinates:  domain.Coordinates{Lat: -12.05, Lon: -77.03},
	}
	if err := c.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 report, got %d", len(list))
	}
	got := list[0]
	if got.ID == "" || got.IncidentType != in.IncidentType || got.Coordinates != in.Coordinates ||
		got.Description != in.Description || got.Address != in.Address {
		t.Fatalf("round trip mismatch: got=%+v in=%+v", got, in)
	}
}
