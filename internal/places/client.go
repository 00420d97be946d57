package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/logger"
)

// GeocoderClient calls the remote combined place-search service.
type GeocoderClient struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewGeocoderClient creates a client for the combined search endpoint.
func NewGeocoderClient(baseURL string, timeout time.Duration, log *logger.Logger) *GeocoderClient {
	return &GeocoderClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// searchResponse mirrors the combined search payload. Coordinates come
// back as strings: x is longitude, y is latitude.
type searchResponse struct {
	Places []struct {
		PlaceName   string `json:"place_name"`
		AddressName string `json:"address_name"`
		X           string `json:"x"`
		Y           string `json:"y"`
	} `json:"places"`
}

// Search returns the geocoder's ranked candidates for the query, in
// server order. Rows with unparseable coordinates are dropped.
func (c *GeocoderClient) Search(ctx context.Context, query string) ([]geo.PlaceCandidate, error) {
	params := url.Values{}
	params.Add("query", query)

	reqURL := fmt.Sprintf("%s/search-location-combined?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.UpstreamError("geocoder", "search", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamError("geocoder", "search", fmt.Errorf("status %d", resp.StatusCode))
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.UpstreamError("geocoder", "search", err)
		return nil, err
	}

	candidates := make([]geo.PlaceCandidate, 0, len(payload.Places))
	for _, raw := range payload.Places {
		lng, err := strconv.ParseFloat(raw.X, 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(raw.Y, 64)
		if err != nil {
			continue
		}

		candidates = append(candidates, geo.PlaceCandidate{
			PlaceName:   raw.PlaceName,
			AddressName: raw.AddressName,
			Coord:       geo.Coordinate{Lat: lat, Lng: lng},
		})
	}

	return candidates, nil
}
