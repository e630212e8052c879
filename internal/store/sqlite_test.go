package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/walklab/walklab/internal/walk"
)

func testRun(t *testing.T) (Run, []Sample) {
	t.Helper()
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	run := Run{
		ID:           NewRunID(100, 3, 42, createdAt),
		CreatedAt:    createdAt,
		Steps:        100,
		Trials:       3,
		Seed:         42,
		Source:       "pcg",
		Distribution: walk.Symmetric(),
		Mean:         8.5,
		StdDev:       4.2,
	}
	samples := []Sample{
		{Trial: 0, Displacement: 7.2, FinalX: 5, FinalY: -3},
		{Trial: 1, Displacement: 12.0, FinalX: -12, FinalY: 0},
		{Trial: 2, Displacement: 6.3, FinalX: 2, FinalY: 6},
	}
	return run, samples
}

func openTestStore(t *testing.T) *RunStore {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveRunRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run, samples := testRun(t)

	if err := s.SaveRun(ctx, run, samples); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got != run {
		t.Errorf("GetRun = %+v, want %+v", got, run)
	}

	gotSamples, err := s.Samples(ctx, run.ID)
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	if len(gotSamples) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(gotSamples), len(samples))
	}
	for i := range samples {
		if gotSamples[i] != samples[i] {
			t.Errorf("sample %d = %+v, want %+v", i, gotSamples[i], samples[i])
		}
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older, _ := testRun(t)
	newer := older
	newer.ID = "newer-run"
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	if err := s.SaveRun(ctx, older, nil); err != nil {
		t.Fatalf("SaveRun older: %v", err)
	}
	if err := s.SaveRun(ctx, newer, nil); err != nil {
		t.Fatalf("SaveRun newer: %v", err)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "newer-run" {
		t.Errorf("first run = %s, want newer-run", runs[0].ID)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.GetRun(context.Background(), "nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun = %v, want ErrRunNotFound", err)
	}
	if _, err := s.Samples(context.Background(), "nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Samples = %v, want ErrRunNotFound", err)
	}
}

func TestDeleteRunCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run, samples := testRun(t)

	if err := s.SaveRun(ctx, run, samples); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.DeleteRun(ctx, run.ID); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}

	if _, err := s.GetRun(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun after delete = %v, want ErrRunNotFound", err)
	}
	if err := s.DeleteRun(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("second DeleteRun = %v, want ErrRunNotFound", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	run, samples := testRun(t)

	s, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveRun(ctx, run, samples); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening the same database preserves stored runs.
	s2, err := Open(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun after reopen: %v", err)
	}
	if got.Trials != run.Trials {
		t.Errorf("reopened run = %+v, want %+v", got, run)
	}
}

func TestNewRunID(t *testing.T) {
	at := time.Now()
	a := NewRunID(10, 20, 30, at)
	b := NewRunID(10, 20, 30, at)
	c := NewRunID(10, 20, 31, at)

	if a != b {
		t.Error("identical parameters produced different ids")
	}
	if a == c {
		t.Error("different seeds produced the same id")
	}
	if len(a) != 12 {
		t.Errorf("id length = %d, want 12", len(a))
	}
}
