// Package risk probes the remote advisory service for sinkhole risk at
// a coordinate and serves the citywide risk-zone list.
package risk

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

// Result is the advisory service's risk assessment for a coordinate.
type Result struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RiskScore float64 `json:"risk_score"`
	RiskLevel string  `json:"risk_level"`
	Message   string  `json:"message"`
	Tier      Tier    `json:"tier"`
}

// Client calls the advisory risk endpoints.
type Client struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewClient creates an advisory risk client.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

type predictRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PredictRisk returns the risk assessment for the point. Responses
// missing the risk level are treated as upstream failures.
func (c *Client) PredictRisk(ctx context.Context, point geo.Coordinate) (Result, error) {
	body, err := json.Marshal(predictRequest{Latitude: point.Lat, Longitude: point.Lng})
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindInternal, "encode risk request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict-risk", bytes.NewReader(body))
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindInternal, "build risk request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.UpstreamError("advisory", "predict-risk", err)
		return Result{}, apperr.Wrap(apperr.KindUnavailable, "risk service unavailable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		detail := httpkit.ReadDetail(resp)
		c.log.UpstreamError("advisory", "predict-risk", fmt.Errorf("status %d", resp.StatusCode))
		return Result{}, httpkit.UpstreamError("risk service error", detail)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.UpstreamError("advisory", "predict-risk", err)
		return Result{}, apperr.Wrap(apperr.KindUnavailable, "risk service returned malformed response", err)
	}
	if result.RiskLevel == "" {
		return Result{}, apperr.Unavailable("risk service returned incomplete response")
	}

	return result, nil
}

type zonesResponse struct {
	Zones []geo.RiskZone `json:"zones"`
}

// Zones returns the citywide risk-zone list in server order.
func (c *Client) Zones(ctx context.Context) ([]geo.RiskZone, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/risk-zones", nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "build zones request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.UpstreamError("advisory", "risk-zones", err)
		return nil, apperr.Wrap(apperr.KindUnavailable, "risk zone service unavailable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		detail := httpkit.ReadDetail(resp)
		c.log.UpstreamError("advisory", "risk-zones", fmt.Errorf("status %d", resp.StatusCode))
		return nil, httpkit.UpstreamError("risk zone service error", detail)
	}

	var payload zonesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.UpstreamError("advisory", "risk-zones", err)
		return nil, apperr.Wrap(apperr.KindUnavailable, "risk zone service returned malformed response", err)
	}

	return payload.Zones, nil
}
