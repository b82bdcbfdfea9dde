package store

import (
	"context"
	"testing"
)

func TestInMemoryCatalogStore_SampleSet(t *testing.T) {
	s := NewInMemoryCatalogStore(SampleVideos())
	ctx := context.Background()

	count, err := s.CountVideos(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 8 {
		t.Fatalf("expected 8 sample videos, got %d", count)
	}

	v, ok, err := s.GetVideo(ctx, 2)
	if err != nil || !ok {
		t.Fatalf("expected video 2, ok=%v err=%v", ok, err)
	}
	if v.DurationMinutes != 60 {
		t.Fatalf("expected 60 minute duration, got %d", v.DurationMinutes)
	}

	if _, ok, _ := s.GetVideo(ctx, 999); ok {
		t.Fatal("expected no video for unknown id")
	}
}

func TestInMemoryCatalogStore_ListNewestFirst(t *testing.T) {
	s := NewInMemoryCatalogStore(SampleVideos())
	videos, err := s.ListVideos(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(videos) != 8 {
		t.Fatalf("expected 8 videos, got %d", len(videos))
	}
	for i := 1; i < len(videos); i++ {
		if videos[i].CreatedAt.After(videos[i-1].CreatedAt) {
			t.Fatalf("expected newest-first ordering at index %d", i)
		}
	}
}
