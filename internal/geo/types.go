// Package geo defines the geographic primitives shared by the place
// resolution, risk, and route modules.
package geo

// Coordinate is a point in decimal degrees (WGS84). Values are never
// projected units.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate lies within the conventional
// latitude/longitude ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// PlaceCandidate is a geocoded place suggestion. Candidate order is the
// resolver's order (server relevance, or catalog filter order on
// fallback) and is never re-sorted.
type PlaceCandidate struct {
	PlaceName   string     `json:"place_name"`
	AddressName string     `json:"address_name"`
	Coord       Coordinate `json:"coordinate"`
}

// RiskZone is a named point with a sinkhole risk score in [0,1],
// supplied by the advisory service and read-only to the gateway. The
// field layout matches the upstream wire shape.
type RiskZone struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Risk float64 `json:"risk"`
}
