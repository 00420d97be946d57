package route

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/apperr"
	"safenav_gateway/platform/logger"
)

func TestSafeRoute_NormalizesLegacyDetourType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"route_type": "safe_detour",
			"distance": 4.2,
			"estimated_time": 18,
			"waypoints": [{"lat": 37.5, "lng": 127.0}, {"lat": 37.51, "lng": 127.05}],
			"message": "우회 경로입니다."
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.New("test"))
	result, err := client.SafeRoute(context.Background(), geo.Coordinate{Lat: 37.5}, geo.Coordinate{Lat: 37.51})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RouteType != RouteTypeDetour {
		t.Fatalf("expected legacy safe_detour to normalize to detour, got %q", result.RouteType)
	}
	if result.AvoidedZones == nil {
		t.Fatal("expected missing avoided_zones to decode as an empty slice")
	}
}

func TestSafeRoute_DirectTypePassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"route_type": "direct",
			"distance": 2.1,
			"estimated_time": 8,
			"waypoints": [{"lat": 37.5, "lng": 127.0}, {"lat": 37.51, "lng": 127.02}],
			"avoided_zones": [],
			"message": "직선 경로입니다."
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.New("test"))
	result, err := client.SafeRoute(context.Background(), geo.Coordinate{Lat: 37.5}, geo.Coordinate{Lat: 37.51})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RouteType != RouteTypeDirect {
		t.Fatalf("expected direct route type to pass through, got %q", result.RouteType)
	}
}

func TestSafeRoute_MissingWaypointsFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"route_type": "direct", "distance": 2.1, "message": "빈 경로"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.New("test"))
	_, err := client.SafeRoute(context.Background(), geo.Coordinate{Lat: 37.5}, geo.Coordinate{Lat: 37.51})
	if err == nil {
		t.Fatal("expected a response without waypoints to fail")
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected an unavailable error, got %v", err)
	}
}

func TestSafeRoute_ErrorDetailSurfacesVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "경로를 찾을 수 없습니다"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.New("test"))
	_, err := client.SafeRoute(context.Background(), geo.Coordinate{Lat: 37.5}, geo.Coordinate{Lat: 37.51})
	if err == nil {
		t.Fatal("expected an error")
	}

	var e *apperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected an apperr error, got %T", err)
	}
	if e.Details != "경로를 찾을 수 없습니다" {
		t.Fatalf("expected upstream detail to be carried verbatim, got %v", e.Details)
	}
}
