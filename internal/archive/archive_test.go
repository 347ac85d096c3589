package archive

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/ferrovax/vidrelay/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordRunAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	report := domain.NewRunReport("run-1", []string{"a", "b"})
	report.Channel("a").Processed = 2
	report.Channel("b").Skipped = true
	report.FinishedAt = report.StartedAt.Add(time.Minute)

	if err := s.RecordRun(ctx, report); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	runs, err := s.LastRuns(ctx, 10)
	if err != nil {
		t.Fatalf("LastRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("LastRuns() = %d rows, want 1", len(runs))
	}
	if runs[0].ID != "run-1" || runs[0].TotalProcessed != 2 {
		t.Errorf("LastRuns()[0] = %+v", runs[0])
	}
}

func TestRecordRun_DuplicateIDFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	report := domain.NewRunReport("run-dup", []string{"a"})
	if err := s.RecordRun(ctx, report); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordRun(ctx, report); err == nil {
		t.Error("second RecordRun with same ID should fail")
	}
}

func TestRecordReply(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	msg := domain.Message{ID: "m1", ChannelID: "a", AuthorTag: "u#1", CreatedAt: time.Now()}
	if err := s.RecordReply(ctx, "run-1", msg, "https://youtu.be/abc"); err != nil {
		t.Fatalf("RecordReply() error = %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM replies WHERE run_id = ?`, "run-1").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("replies = %d, want 1", count)
	}
}

func TestLastRuns_OrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		r := domain.NewRunReport("run-"+string(rune('a'+i)), []string{"x"})
		r.StartedAt = base.Add(time.Duration(i) * time.Hour)
		r.FinishedAt = r.StartedAt.Add(time.Minute)
		if err := s.RecordRun(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.LastRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("LastRuns(2) = %d rows", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Errorf("order = [%s, %s], want most recent first", runs[0].ID, runs[1].ID)
	}
}
