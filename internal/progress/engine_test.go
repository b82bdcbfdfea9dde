package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/videotrack/internal/store"
)

func testCatalog() store.CatalogStore {
	return store.NewInMemoryCatalogStore([]store.Video{
		{ID: 1, Title: "one hour", DurationMinutes: 60, CreatedAt: time.Now()},
		{ID: 2, Title: "zero length", DurationMinutes: 0, CreatedAt: time.Now()},
	})
}

func newEngine(policy Policy) (*Engine, *store.InMemoryProgressStore) {
	ps := store.NewInMemoryProgressStore()
	return &Engine{Catalog: testCatalog(), Progress: ps, Policy: policy}, ps
}

func TestRecordProgress_HalfThenComplete(t *testing.T) {
	e, _ := newEngine(Policy{})
	ctx := context.Background()

	res, err := e.RecordProgress(ctx, 1, 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Completed {
		t.Fatal("expected incomplete at 30/60")
	}
	if res.Percentage != 50.0 {
		t.Fatalf("expected 50.0%%, got %v", res.Percentage)
	}

	res, err = e.RecordProgress(ctx, 1, 1, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Completed {
		t.Fatal("expected completed at 60/60")
	}
	if res.Percentage != 100.0 {
		t.Fatalf("expected 100.0%%, got %v", res.Percentage)
	}
}

func TestRecordProgress_CompletionRule(t *testing.T) {
	e, _ := newEngine(Policy{})
	ctx := context.Background()

	// completed == (W >= D) for every sample
	for _, tc := range []struct {
		minutes   int
		completed bool
	}{
		{0, false}, {59, false}, {60, true}, {90, true},
	} {
		res, err := e.RecordProgress(ctx, 1, 1, tc.minutes)
		if err != nil {
			t.Fatalf("minutes=%d: %v", tc.minutes, err)
		}
		if res.Completed != tc.completed {
			t.Fatalf("minutes=%d: expected completed=%v", tc.minutes, tc.completed)
		}
	}
}

func TestRecordProgress_OvershootCapsPercentage(t *testing.T) {
	e, _ := newEngine(Policy{})
	res, err := e.RecordProgress(context.Background(), 1, 1, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Percentage != 100.0 {
		t.Fatalf("expected capped 100.0%%, got %v", res.Percentage)
	}
	if res.WatchedMinutes != 90 {
		t.Fatalf("expected stored minutes 90, got %d", res.WatchedMinutes)
	}
}

func TestRecordProgress_ZeroDurationVideo(t *testing.T) {
	e, _ := newEngine(Policy{})
	res, err := e.RecordProgress(context.Background(), 1, 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Percentage != 0 {
		t.Fatalf("expected 0%% for zero-duration video, got %v", res.Percentage)
	}
	if !res.Completed {
		t.Fatal("expected completed for zero-duration video (W >= D)")
	}
}

func TestRecordProgress_UnknownVideo(t *testing.T) {
	e, ps := newEngine(Policy{})
	_, err := e.RecordProgress(context.Background(), 1, 999, 10)
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
	all, _ := ps.GetAll(context.Background(), 1)
	if len(all) != 0 {
		t.Fatal("expected no record created for unknown video")
	}
}

func TestRecordProgress_NegativeMinutes(t *testing.T) {
	e, ps := newEngine(Policy{})
	_, err := e.RecordProgress(context.Background(), 1, 1, -5)
	if !errors.Is(err, ErrInvalidWatchedMinutes) {
		t.Fatalf("expected ErrInvalidWatchedMinutes, got %v", err)
	}
	all, _ := ps.GetAll(context.Background(), 1)
	if len(all) != 0 {
		t.Fatal("expected store untouched")
	}
}

func TestRecordProgress_Idempotent(t *testing.T) {
	e, ps := newEngine(Policy{})
	ctx := context.Background()

	first, err := e.RecordProgress(ctx, 1, 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec1, _, _ := ps.Get(ctx, 1, 1)

	second, err := e.RecordProgress(ctx, 1, 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec2, _, _ := ps.Get(ctx, 1, 1)

	if first != second {
		t.Fatalf("expected identical results: %+v vs %+v", first, second)
	}
	if rec1.ID != rec2.ID {
		t.Fatalf("expected stable record id, got %d then %d", rec1.ID, rec2.ID)
	}
	all, _ := ps.GetAll(ctx, 1)
	if len(all) != 1 {
		t.Fatalf("expected a single record, got %d", len(all))
	}
}

func TestRecordProgress_DefaultPolicyRegresses(t *testing.T) {
	e, _ := newEngine(Policy{})
	ctx := context.Background()

	if _, err := e.RecordProgress(ctx, 1, 1, 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := e.RecordProgress(ctx, 1, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Completed {
		t.Fatal("default policy: smaller sample should flip completed back")
	}
	if res.WatchedMinutes != 10 {
		t.Fatalf("default policy: expected overwrite to 10, got %d", res.WatchedMinutes)
	}
}

func TestRecordProgress_MonotonePolicyLatches(t *testing.T) {
	e, _ := newEngine(Monotone())
	ctx := context.Background()

	if _, err := e.RecordProgress(ctx, 1, 1, 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := e.RecordProgress(ctx, 1, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Completed {
		t.Fatal("monotone policy: completed must stay latched")
	}
	if res.WatchedMinutes != 60 {
		t.Fatalf("monotone policy: expected max(60, 10)=60, got %d", res.WatchedMinutes)
	}
	if res.Percentage != 100.0 {
		t.Fatalf("monotone policy: expected 100.0%%, got %v", res.Percentage)
	}
}

// failingProgressStore errors on every write.
type failingProgressStore struct {
	store.InMemoryProgressStore
}

func (f *failingProgressStore) Upsert(context.Context, int64, int64, int, bool) (store.ProgressRecord, error) {
	return store.ProgressRecord{}, errors.New("connection refused")
}

func TestRecordProgress_PersistenceFailure(t *testing.T) {
	e := &Engine{Catalog: testCatalog(), Progress: &failingProgressStore{}}
	_, err := e.RecordProgress(context.Background(), 1, 1, 30)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestPercentage_Rounding(t *testing.T) {
	for _, tc := range []struct {
		watched, duration int
		want              float64
	}{
		{1, 3, 33.3},
		{2, 3, 66.7},
		{30, 60, 50.0},
		{60, 60, 100.0},
		{90, 60, 100.0},
		{10, 0, 0},
	} {
		if got := Percentage(tc.watched, tc.duration); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %v, want %v", tc.watched, tc.duration, got, tc.want)
		}
	}
}
