package geo

import (
	"fmt"
	"regexp"
	"strconv"
)

// coordPattern is the accepted "lat,lng" direct entry: two unsigned
// decimal numbers separated by a comma and optional whitespace.
var coordPattern = regexp.MustCompile(`([0-9.]+),\s*([0-9.]+)`)

// ParseCoordinate recognizes a raw "lat,lng" text entry as an
// alternative to a resolved place. The first number is latitude, the
// second longitude. It reports false when the text does not contain the
// pattern or a captured number fails to parse. No range validation is
// performed; out-of-range values are passed through and left to the
// advisory service to reject.
func ParseCoordinate(text string) (Coordinate, bool) {
	m := coordPattern.FindStringSubmatch(text)
	if m == nil {
		return Coordinate{}, false
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Coordinate{}, false
	}

	return Coordinate{Lat: lat, Lng: lng}, true
}

// FormatCoordinate renders a coordinate as the "lat,lng" text form that
// ParseCoordinate accepts, with six decimal places.
func FormatCoordinate(c Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}
