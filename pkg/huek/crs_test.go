package huek

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestCRSProperties(t *testing.T) {
	tests := []struct {
		crs        CRS
		name       string
		geographic bool
		supported  bool
	}{
		{WGS84, "EPSG:4326", true, true},
		{ETRS89, "EPSG:4258", true, true},
		{ETRS89UTM32N, "EPSG:25832", false, true},
		{CRS{EPSG: 32633}, "EPSG:32633", false, true},
		{CRS{EPSG: 32733}, "EPSG:32733", false, true},
		{CRS{EPSG: 3035}, "EPSG:3035", false, false},
		{CRS{}, "unknown", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.crs.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.crs.IsGeographic(); got != tt.geographic {
				t.Errorf("IsGeographic() = %v, want %v", got, tt.geographic)
			}
			if got := tt.crs.Supported(); got != tt.supported {
				t.Errorf("Supported() = %v, want %v", got, tt.supported)
			}
		})
	}
}

func TestTransformIdentity(t *testing.T) {
	for _, pair := range [][2]CRS{{WGS84, WGS84}, {WGS84, ETRS89}, {ETRS89UTM32N, ETRS89UTM32N}} {
		tr, err := Transform(pair[0], pair[1])
		if err != nil {
			t.Fatalf("Transform(%s, %s) error = %v", pair[0], pair[1], err)
		}
		p := orb.Point{7.5, 51.2}
		if got, _ := tr(p); got != p {
			t.Errorf("Transform(%s, %s)(%v) = %v, want identity", pair[0], pair[1], p, got)
		}
	}
}

func TestTransformUnsupported(t *testing.T) {
	tests := []struct {
		name     string
		from, to CRS
	}{
		{"both unknown", CRS{}, CRS{}},
		{"unknown source", CRS{}, ETRS89UTM32N},
		{"unsupported target", WGS84, CRS{EPSG: 3035}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transform(tt.from, tt.to)
			var unsupported *UnsupportedCRSError
			if !errors.As(err, &unsupported) {
				t.Errorf("Transform() error = %v, want *UnsupportedCRSError", err)
			}
		})
	}
}

func TestTransformUTMRoundTrip(t *testing.T) {
	forward, err := Transform(WGS84, ETRS89UTM32N)
	if err != nil {
		t.Fatal(err)
	}
	inverse, err := Transform(ETRS89UTM32N, ETRS89)
	if err != nil {
		t.Fatal(err)
	}

	p := orb.Point{7.5, 51.2}
	utm, err := forward(p)
	if err != nil {
		t.Fatal(err)
	}
	if utm[0] < 395201 || utm[0] > 395202 || utm[1] < 5673135 || utm[1] > 5673136 {
		t.Errorf("forward(%v) = %v, want about (395201.3, 5673135.2)", p, utm)
	}

	back, err := inverse(utm)
	if err != nil {
		t.Fatal(err)
	}
	if d := (orb.Point{back[0] - p[0], back[1] - p[1]}); abs(d[0]) > 1e-5 || abs(d[1]) > 1e-5 {
		t.Errorf("inverse(forward(%v)) = %v", p, back)
	}
}

func TestTransformBetweenZones(t *testing.T) {
	tr, err := Transform(ETRS89UTM32N, CRS{EPSG: 25833})
	if err != nil {
		t.Fatal(err)
	}
	// The 32N central meridian (9°E) lies 6° west of the 33N one.
	got, err := tr(orb.Point{500000, 5673135})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] >= 500000 {
		t.Errorf("easting in zone 33 = %v, want west of the central meridian", got[0])
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
