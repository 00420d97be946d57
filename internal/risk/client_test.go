package risk

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

func TestPredictRisk_IncompleteResponseFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude": 37.5, "longitude": 127.0, "risk_score": 0.7}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.New("test"))
	_, err := client.PredictRisk(context.Background(), geo.Coordinate{Lat: 37.5, Lng: 127.0})
	if err == nil {
		t.Fatal("expected a response without risk_level to fail")
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected an unavailable error, got %v", err)
	}
}

func TestPredictRisk_ErrorDetailSurfacesVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail": "모델 서버가 응답하지 않습니다"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.New("test"))
	_, err := client.PredictRisk(context.Background(), geo.Coordinate{Lat: 37.5, Lng: 127.0})
	if err == nil {
		t.Fatal("expected an error")
	}

	var e *apperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected an apperr error, got %T", err)
	}
	if e.Details != "모델 서버가 응답하지 않습니다" {
		t.Fatalf("expected upstream detail to be carried verbatim, got %v", e.Details)
	}
}

func TestPredictRisk_DecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude": 37.5, "longitude": 127.0, "risk_score": 0.45, "risk_level": "보통", "message": "보통 수준의 위험도입니다."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.New("test"))
	result, err := client.PredictRisk(context.Background(), geo.Coordinate{Lat: 37.5, Lng: 127.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RiskScore != 0.45 || result.RiskLevel != "보통" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Message != "보통 수준의 위험도입니다." {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestZones_DecodesServerOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"zones": [
			{"name": "역삼동", "lat": 37.5, "lng": 127.04, "risk": 0.83},
			{"name": "화곡동", "lat": 37.55, "lng": 126.85, "risk": 0.41}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.New("test"))
	zones, err := client.Zones(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}
	if zones[0].Name != "역삼동" || zones[1].Name != "화곡동" {
		t.Fatalf("server order not preserved: %+v", zones)
	}
	if zones[0].Risk != 0.83 {
		t.Fatalf("unexpected risk value: %v", zones[0].Risk)
	}
}
