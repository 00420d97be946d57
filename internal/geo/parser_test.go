package geo

import "testing"

func TestParseCoordinate_ValidPair(t *testing.T) {
	coord, ok := ParseCoordinate("37.5665,126.9780")
	if !ok {
		t.Fatalf("expected coordinate to parse")
	}
	if coord.Lat != 37.5665 {
		t.Fatalf("expected latitude 37.5665, got %v", coord.Lat)
	}
	if coord.Lng != 126.978 {
		t.Fatalf("expected longitude 126.978, got %v", coord.Lng)
	}
}

func TestParseCoordinate_WhitespaceAfterComma(t *testing.T) {
	coord, ok := ParseCoordinate("37.4979, 127.0276")
	if !ok {
		t.Fatalf("expected coordinate to parse")
	}
	if coord.Lat != 37.4979 || coord.Lng != 127.0276 {
		t.Fatalf("unexpected coordinate: %+v", coord)
	}
}

func TestParseCoordinate_PlaceName(t *testing.T) {
	if _, ok := ParseCoordinate("강남역"); ok {
		t.Fatalf("expected place name not to parse as coordinate")
	}
}

func TestParseCoordinate_MissingLongitude(t *testing.T) {
	if _, ok := ParseCoordinate("37.5, "); ok {
		t.Fatalf("expected trailing comma entry not to parse")
	}
}

func TestParseCoordinate_MalformedNumber(t *testing.T) {
	if _, ok := ParseCoordinate("37..5.,126..9"); ok {
		t.Fatalf("expected malformed numbers not to parse")
	}
}

func TestParseCoordinate_NoRangeValidation(t *testing.T) {
	coord, ok := ParseCoordinate("123.0,456.0")
	if !ok {
		t.Fatalf("expected out-of-range pair to parse")
	}
	if coord.Valid() {
		t.Fatalf("expected coordinate to report out of range")
	}
}

func TestCoordinateValid(t *testing.T) {
	if !(Coordinate{Lat: 37.5665, Lng: 126.978}).Valid() {
		t.Fatalf("expected Seoul coordinate to be valid")
	}
	if (Coordinate{Lat: -91, Lng: 0}).Valid() {
		t.Fatalf("expected latitude below -90 to be invalid")
	}
	if (Coordinate{Lat: 0, Lng: 181}).Valid() {
		t.Fatalf("expected longitude above 180 to be invalid")
	}
}
