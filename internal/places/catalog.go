// Package places resolves free-text place queries into ranked candidate
// lists, using the remote geocoder first and a fixed local catalog of
// well-known Seoul places as the degradation path.
package places

import (
	"strings"
	"unicode/utf8"

	"safenav_gateway/internal/geo"
)

// Catalog is a fixed in-memory table of well-known places. It is
// immutable after construction and safe for concurrent reads.
type Catalog struct {
	entries  []geo.PlaceCandidate
	minQuery int
}

// NewCatalog creates a catalog over the given entries. Queries shorter
// than minQuery runes always yield an empty result, matching the remote
// resolver's minimum-query-length rule.
func NewCatalog(entries []geo.PlaceCandidate, minQuery int) *Catalog {
	copied := make([]geo.PlaceCandidate, len(entries))
	copy(copied, entries)
	return &Catalog{entries: copied, minQuery: minQuery}
}

// SeoulCatalog returns the built-in fallback table of well-known Seoul
// places used when the remote geocoder is unavailable.
func SeoulCatalog(minQuery int) *Catalog {
	return NewCatalog(seoulPlaces, minQuery)
}

// Lookup returns the catalog entries whose place name or address
// contains the query, case-insensitively, in table order.
func (c *Catalog) Lookup(query string) []geo.PlaceCandidate {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < c.minQuery {
		return nil
	}

	needle := strings.ToLower(query)
	matches := make([]geo.PlaceCandidate, 0, 4)
	for _, entry := range c.entries {
		if strings.Contains(strings.ToLower(entry.PlaceName), needle) ||
			strings.Contains(strings.ToLower(entry.AddressName), needle) {
			matches = append(matches, entry)
		}
	}
	return matches
}

var seoulPlaces = []geo.PlaceCandidate{
	{PlaceName: "강남역", AddressName: "서울 강남구 역삼동", Coord: geo.Coordinate{Lat: 37.4979, Lng: 127.0276}},
	{PlaceName: "강서구청", AddressName: "서울 강서구 화곡동", Coord: geo.Coordinate{Lat: 37.5509, Lng: 126.8495}},
	{PlaceName: "홍대입구역", AddressName: "서울 마포구 동교동", Coord: geo.Coordinate{Lat: 37.5574, Lng: 126.9240}},
	{PlaceName: "명동", AddressName: "서울 중구 명동", Coord: geo.Coordinate{Lat: 37.5636, Lng: 126.9826}},
	{PlaceName: "잠실역", AddressName: "서울 송파구 잠실동", Coord: geo.Coordinate{Lat: 37.5134, Lng: 127.1000}},
	{PlaceName: "종로3가", AddressName: "서울 종로구 종로3가", Coord: geo.Coordinate{Lat: 37.5703, Lng: 126.9925}},
	{PlaceName: "이태원", AddressName: "서울 용산구 이태원동", Coord: geo.Coordinate{Lat: 37.5347, Lng: 126.9947}},
	{PlaceName: "신촌", AddressName: "서울 서대문구 신촌동", Coord: geo.Coordinate{Lat: 37.5558, Lng: 126.9364}},
	{PlaceName: "여의도", AddressName: "서울 영등포구 여의도동", Coord: geo.Coordinate{Lat: 37.5219, Lng: 126.9245}},
	{PlaceName: "청량리", AddressName: "서울 동대문구 청량리동", Coord: geo.Coordinate{Lat: 37.5800, Lng: 127.0410}},
	{PlaceName: "서울시청", AddressName: "서울 중구 태평로1가", Coord: geo.Coordinate{Lat: 37.5665, Lng: 126.9780}},
	{PlaceName: "동대문", AddressName: "서울 중구 동대문로", Coord: geo.Coordinate{Lat: 37.5711, Lng: 127.0099}},
	{PlaceName: "을지로", AddressName: "서울 중구 을지로", Coord: geo.Coordinate{Lat: 37.5664, Lng: 126.9910}},
	{PlaceName: "건대입구", AddressName: "서울 광진구 화양동", Coord: geo.Coordinate{Lat: 37.5403, Lng: 127.0699}},
	{PlaceName: "선릉역", AddressName: "서울 강남구 대치동", Coord: geo.Coordinate{Lat: 37.5045, Lng: 127.0495}},
}
