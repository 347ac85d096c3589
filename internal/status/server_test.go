package status

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferrovax/vidrelay/internal/walker"
)

type fakeSnapshotter struct {
	snap walker.Snapshot
}

func (f *fakeSnapshotter) Snapshot() walker.Snapshot {
	return f.snap
}

func TestHealthz(t *testing.T) {
	router := newRouter(&fakeSnapshotter{}, nil, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestStatus(t *testing.T) {
	src := &fakeSnapshotter{snap: walker.Snapshot{
		RunID:          "run-1",
		State:          walker.StateRunning,
		CurrentChannel: "general (911)",
		ChannelsTotal:  3,
		Processed:      2,
	}}
	router := newRouter(src, nil, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /status = %d, want 200", rec.Code)
	}

	var snap walker.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.RunID != "run-1" || snap.Processed != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestRuns_OmittedWithoutArchive(t *testing.T) {
	router := newRouter(&fakeSnapshotter{}, nil, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /runs without archive = %d, want 404", rec.Code)
	}
}
