// Package route orchestrates safe-route requests against the remote
// advisory service: it resolves the two endpoints locally, forwards the
// request upstream, and normalizes the returned route and avoided-zone
// list into renderable state.
package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/apperr"
	"safenav_gateway/platform/httpkit"
	"safenav_gateway/platform/logger"
)

// Route types. The advisory service historically reported detours as
// "safe_detour"; the gateway normalizes everything that is not direct
// to RouteTypeDetour.
const (
	RouteTypeDirect = "direct"
	RouteTypeDetour = "detour"
)

// Result is a normalized safe-route response.
type Result struct {
	RouteType        string           `json:"route_type"`
	DistanceKm       float64          `json:"distance"`
	EstimatedMinutes int              `json:"estimated_time"`
	Waypoints        []geo.Coordinate `json:"waypoints"`
	AvoidedZones     []geo.RiskZone   `json:"avoided_zones"`
	Message          string           `json:"message"`
}

// Client calls the advisory safe-route endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewClient creates an advisory route client.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

type safeRouteRequest struct {
	StartLatitude  float64 `json:"start_latitude"`
	StartLongitude float64 `json:"start_longitude"`
	EndLatitude    float64 `json:"end_latitude"`
	EndLongitude   float64 `json:"end_longitude"`
}

// SafeRoute requests a route between start and end that avoids
// high-risk zones. A response without waypoints is treated as an
// upstream failure.
func (c *Client) SafeRoute(ctx context.Context, start, end geo.Coordinate) (Result, error) {
	body, err := json.Marshal(safeRouteRequest{
		StartLatitude:  start.Lat,
		StartLongitude: start.Lng,
		EndLatitude:    end.Lat,
		EndLongitude:   end.Lng,
	})
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindInternal, "encode route request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/safe-route", bytes.NewReader(body))
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindInternal, "build route request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.UpstreamError("advisory", "safe-route", err)
		return Result{}, apperr.Wrap(apperr.KindUnavailable, "route service unavailable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		detail := httpkit.ReadDetail(resp)
		c.log.UpstreamError("advisory", "safe-route", fmt.Errorf("status %d", resp.StatusCode))
		return Result{}, httpkit.UpstreamError("route service error", detail)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.UpstreamError("advisory", "safe-route", err)
		return Result{}, apperr.Wrap(apperr.KindUnavailable, "route service returned malformed response", err)
	}
	if len(result.Waypoints) == 0 {
		return Result{}, apperr.Unavailable("route service returned incomplete response")
	}

	if result.RouteType != RouteTypeDirect {
		result.RouteType = RouteTypeDetour
	}
	if result.AvoidedZones == nil {
		result.AvoidedZones = []geo.RiskZone{}
	}

	return result, nil
}
