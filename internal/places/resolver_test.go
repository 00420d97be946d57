package places

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/logger"

	"github.com/alicebob/miniredis/v2"
)

type fakeGeocoder struct {
	mu     sync.Mutex
	calls  int
	places []geo.PlaceCandidate
	err    error
}

func (f *fakeGeocoder) Search(ctx context.Context, query string) ([]geo.PlaceCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.places, f.err
}

func (f *fakeGeocoder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestResolver(client geocoder, cache *SuggestionCache) *Resolver {
	return NewResolver(client, SeoulCatalog(2), cache, 100, 10, 2, logger.New("test"))
}

func TestResolve_RemoteResultsReturnedVerbatim(t *testing.T) {
	remote := []geo.PlaceCandidate{
		{PlaceName: "강남역 2호선", AddressName: "서울 강남구", Coord: geo.Coordinate{Lat: 37.49, Lng: 127.02}},
		{PlaceName: "강남역 신분당선", AddressName: "서울 강남구", Coord: geo.Coordinate{Lat: 37.49, Lng: 127.03}},
	}
	client := &fakeGeocoder{places: remote}
	resolver := newTestResolver(client, nil)

	got := resolver.Resolve(context.Background(), "강남역")
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].PlaceName != "강남역 2호선" || got[1].PlaceName != "강남역 신분당선" {
		t.Fatalf("remote order not preserved: %+v", got)
	}
}

func TestResolve_GeocoderFailureFallsBackToCatalog(t *testing.T) {
	client := &fakeGeocoder{err: errors.New("connection refused")}
	resolver := newTestResolver(client, nil)

	got := resolver.Resolve(context.Background(), "서울시청")
	if len(got) != 1 {
		t.Fatalf("expected 1 catalog match, got %d", len(got))
	}
	if got[0].PlaceName != "서울시청" {
		t.Fatalf("expected catalog entry 서울시청, got %s", got[0].PlaceName)
	}
}

func TestResolve_EmptyRemoteResultFallsBackToCatalog(t *testing.T) {
	client := &fakeGeocoder{}
	resolver := newTestResolver(client, nil)

	got := resolver.Resolve(context.Background(), "잠실역")
	if len(got) != 1 || got[0].PlaceName != "잠실역" {
		t.Fatalf("expected catalog fallback for empty remote result, got %+v", got)
	}
}

func TestResolve_ShortQuerySkipsNetwork(t *testing.T) {
	client := &fakeGeocoder{err: errors.New("should not be called")}
	resolver := newTestResolver(client, nil)

	if got := resolver.Resolve(context.Background(), "강"); len(got) != 0 {
		t.Fatalf("expected no candidates for a one-rune query, got %d", len(got))
	}
	if got := resolver.Resolve(context.Background(), "   "); len(got) != 0 {
		t.Fatalf("expected no candidates for whitespace, got %d", len(got))
	}
	if client.callCount() != 0 {
		t.Fatalf("expected no geocoder calls, got %d", client.callCount())
	}
}

func TestResolve_CacheServesRepeatQueries(t *testing.T) {
	srv := miniredis.RunT(t)
	cache := NewSuggestionCache(srv.Addr(), time.Minute, logger.New("test"))
	defer func() {
		_ = cache.Close()
	}()

	client := &fakeGeocoder{places: []geo.PlaceCandidate{
		{PlaceName: "홍대입구역", AddressName: "서울 마포구", Coord: geo.Coordinate{Lat: 37.55, Lng: 126.92}},
	}}
	resolver := newTestResolver(client, cache)

	first := resolver.Resolve(context.Background(), "홍대")
	second := resolver.Resolve(context.Background(), "홍대")

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 candidate on both calls, got %d and %d", len(first), len(second))
	}
	if client.callCount() != 1 {
		t.Fatalf("expected 1 geocoder call with a warm cache, got %d", client.callCount())
	}
	if second[0].PlaceName != first[0].PlaceName {
		t.Fatalf("cached candidate differs: %s vs %s", second[0].PlaceName, first[0].PlaceName)
	}
}

func TestResolve_CatalogFallbackIsNeverCached(t *testing.T) {
	srv := miniredis.RunT(t)
	cache := NewSuggestionCache(srv.Addr(), time.Minute, logger.New("test"))
	defer func() {
		_ = cache.Close()
	}()

	client := &fakeGeocoder{err: errors.New("connection refused")}
	resolver := newTestResolver(client, cache)

	_ = resolver.Resolve(context.Background(), "서울시청")
	if _, ok := cache.Get(context.Background(), "서울시청"); ok {
		t.Fatal("catalog fallback must not populate the cache")
	}
}
