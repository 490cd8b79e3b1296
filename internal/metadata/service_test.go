package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/metadata/anilist"
)

type fakeCatalog struct {
	trendingCalls int
	popularCalls  int
	searchCalls   int
	err           error
}

func (f *fakeCatalog) GetAnime(_ context.Context, id int) (*anilist.AnimeDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &anilist.AnimeDetail{ID: id}, nil
}

func (f *fakeCatalog) Search(_ context.Context, _ string) ([]anilist.AnimeSummary, error) {
	f.searchCalls++
	return []anilist.AnimeSummary{{ID: 1}}, f.err
}

func (f *fakeCatalog) Trending(_ context.Context) ([]anilist.AnimeSummary, error) {
	f.trendingCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []anilist.AnimeSummary{{ID: 10}, {ID: 11}}, nil
}

func (f *fakeCatalog) Popular(_ context.Context) ([]anilist.AnimeSummary, error) {
	f.popularCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []anilist.AnimeSummary{{ID: 20}}, nil
}

func TestTrendingCachesResults(t *testing.T) {
	catalog := &fakeCatalog{}
	s := NewService(catalog, time.Minute, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		results, err := s.Trending(ctx)
		if err != nil {
			t.Fatalf("Trending: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
	}

	if catalog.trendingCalls != 1 {
		t.Errorf("upstream called %d times, want 1", catalog.trendingCalls)
	}
}

func TestTrendingAndPopularCacheIndependently(t *testing.T) {
	catalog := &fakeCatalog{}
	s := NewService(catalog, time.Minute, zerolog.Nop())
	ctx := context.Background()

	if _, err := s.Trending(ctx); err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if _, err := s.Popular(ctx); err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if _, err := s.Popular(ctx); err != nil {
		t.Fatalf("Popular: %v", err)
	}

	if catalog.trendingCalls != 1 || catalog.popularCalls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", catalog.trendingCalls, catalog.popularCalls)
	}
}

func TestTrendingErrorNotCached(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("upstream down")}
	s := NewService(catalog, time.Minute, zerolog.Nop())
	ctx := context.Background()

	if _, err := s.Trending(ctx); err == nil {
		t.Fatal("expected error")
	}

	catalog.err = nil
	results, err := s.Trending(ctx)
	if err != nil {
		t.Fatalf("Trending after recovery: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
	if catalog.trendingCalls != 2 {
		t.Errorf("upstream called %d times, want 2", catalog.trendingCalls)
	}
}

func TestSearchIsUncached(t *testing.T) {
	catalog := &fakeCatalog{}
	s := NewService(catalog, time.Minute, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := s.Search(ctx, "dandadan"); err != nil {
			t.Fatalf("Search: %v", err)
		}
	}
	if catalog.searchCalls != 2 {
		t.Errorf("search calls = %d, want 2", catalog.searchCalls)
	}
}

func TestClearCache(t *testing.T) {
	catalog := &fakeCatalog{}
	s := NewService(catalog, time.Minute, zerolog.Nop())
	ctx := context.Background()

	if _, err := s.Trending(ctx); err != nil {
		t.Fatalf("Trending: %v", err)
	}
	s.ClearCache()
	if _, err := s.Trending(ctx); err != nil {
		t.Fatalf("Trending: %v", err)
	}

	if catalog.trendingCalls != 2 {
		t.Errorf("upstream called %d times after cache clear, want 2", catalog.trendingCalls)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(10 * time.Millisecond)
	cache.Set("key", []anilist.AnimeSummary{{ID: 1}})

	if _, ok := cache.GetSummaries("key"); !ok {
		t.Fatal("fresh entry should be a hit")
	}

	time.Sleep(25 * time.Millisecond)

	if _, ok := cache.GetSummaries("key"); ok {
		t.Error("expired entry should read as a miss")
	}
}

func TestCacheTypeMismatch(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Set("key", "not a summary slice")

	if _, ok := cache.GetSummaries("key"); ok {
		t.Error("wrong value type should read as a miss")
	}
}
