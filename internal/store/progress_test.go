package store

import (
	"context"
	"testing"
)

func TestInMemoryProgressStore_UpsertCreatesThenOverwrites(t *testing.T) {
	s := NewInMemoryProgressStore()
	ctx := context.Background()

	rec, err := s.Upsert(ctx, 1, 10, 30, false)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected a surrogate id to be assigned")
	}
	if rec.WatchedMinutes != 30 || rec.Completed {
		t.Fatalf("unexpected record: %+v", rec)
	}
	first := rec

	rec, err = s.Upsert(ctx, 1, 10, 60, true)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if rec.ID != first.ID {
		t.Fatalf("expected id %d to be stable, got %d", first.ID, rec.ID)
	}
	if rec.WatchedMinutes != 60 || !rec.Completed {
		t.Fatalf("unexpected record after overwrite: %+v", rec)
	}
	if rec.LastWatchedAt.Before(first.LastWatchedAt) {
		t.Fatal("expected last watched timestamp to move forward")
	}

	all, _ := s.GetAll(ctx, 1)
	if len(all) != 1 {
		t.Fatalf("expected exactly one record per (user, video), got %d", len(all))
	}
}

func TestInMemoryProgressStore_GetAbsent(t *testing.T) {
	s := NewInMemoryProgressStore()
	_, ok, err := s.Get(context.Background(), 1, 99)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected absent record")
	}
}

func TestInMemoryProgressStore_KeysAreIndependent(t *testing.T) {
	s := NewInMemoryProgressStore()
	ctx := context.Background()

	_, _ = s.Upsert(ctx, 1, 10, 30, false)
	_, _ = s.Upsert(ctx, 1, 11, 60, true)
	_, _ = s.Upsert(ctx, 2, 10, 5, false)

	all, _ := s.GetAll(ctx, 1)
	if len(all) != 2 {
		t.Fatalf("expected 2 records for user 1, got %d", len(all))
	}
	if _, ok := all[10]; !ok {
		t.Fatal("expected record keyed by video 10")
	}

	all, _ = s.GetAll(ctx, 2)
	if len(all) != 1 || all[10].WatchedMinutes != 5 {
		t.Fatalf("unexpected records for user 2: %+v", all)
	}
}

func TestInMemoryProgressStore_Aggregates(t *testing.T) {
	s := NewInMemoryProgressStore()
	ctx := context.Background()

	total, err := s.TotalWatchedMinutes(ctx, 1)
	if err != nil || total != 0 {
		t.Fatalf("expected 0 minutes for empty user, got %d (%v)", total, err)
	}
	count, err := s.CompletedCount(ctx, 1)
	if err != nil || count != 0 {
		t.Fatalf("expected 0 completed for empty user, got %d (%v)", count, err)
	}

	_, _ = s.Upsert(ctx, 1, 10, 30, false)
	_, _ = s.Upsert(ctx, 1, 11, 60, true)
	_, _ = s.Upsert(ctx, 1, 12, 90, true)

	total, _ = s.TotalWatchedMinutes(ctx, 1)
	if total != 180 {
		t.Fatalf("expected 180 minutes, got %d", total)
	}
	count, _ = s.CompletedCount(ctx, 1)
	if count != 2 {
		t.Fatalf("expected 2 completed, got %d", count)
	}

	// Aggregates always agree with a fold over GetAll.
	all, _ := s.GetAll(ctx, 1)
	sum, completed := 0, 0
	for _, rec := range all {
		sum += rec.WatchedMinutes
		if rec.Completed {
			completed++
		}
	}
	if sum != total || completed != count {
		t.Fatalf("aggregate mismatch: sum=%d total=%d completed=%d count=%d", sum, total, completed, count)
	}
}
