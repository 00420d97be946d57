package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"safenav_gateway/platform/logger"
)

func TestGeocoderSearch_DropsUnparseableRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "강남역" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"places": [
			{"place_name": "강남역", "address_name": "서울 강남구", "x": "127.0276", "y": "37.4979"},
			{"place_name": "깨진 행", "address_name": "서울", "x": "not-a-number", "y": "37.5"},
			{"place_name": "역시 깨진 행", "address_name": "서울", "x": "127.0", "y": ""}
		]}`))
	}))
	defer server.Close()

	client := NewGeocoderClient(server.URL, time.Second, logger.New("test"))
	candidates, err := client.Search(context.Background(), "강남역")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected unparseable rows to be dropped, got %d candidates", len(candidates))
	}
	// x is longitude, y is latitude.
	if candidates[0].Coord.Lat != 37.4979 || candidates[0].Coord.Lng != 127.0276 {
		t.Fatalf("coordinate axes swapped: %+v", candidates[0].Coord)
	}
}

func TestGeocoderSearch_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewGeocoderClient(server.URL, time.Second, logger.New("test"))
	if _, err := client.Search(context.Background(), "강남역"); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}
