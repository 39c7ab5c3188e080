package geo

import (
	"math"
	"testing"
)

type point struct{ lat, lon float64 }

var (
	london = point{51.5074, -0.1278}
	paris  = point{48.8566, 2.3522}
	sydney = point{-33.8688, 151.2093}
	lima   = point{-12.0464, -77.0428}
)

func TestDistanceKmLondonParis(t *testing.T) {
	got := DistanceKm(london.lat, london.lon, paris.lat, paris.lon)
	if math.Abs(got-344) > 5 {
		t.Fatalf("DistanceKm(London, Paris) = %.2f, want 344 ± 5", got)
	}
}

func TestDistanceKmIdentity(t *testing.T) {
	for _, p := range []point{london, paris, sydney, lima, {90, 0}, {-90, 180}} {
		if got := DistanceKm(p.lat, p.lon, p.lat, p.lon); got != 0 {
			t.Errorf("DistanceKm(%v, %v) = %v, want 0", p, p, got)
		}
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	points := []point{london, paris, sydney, lima, {0, 180}, {0, -180}}
	for _, p := range points {
		for _, q := range points {
			a := DistanceKm(p.lat, p.lon, q.lat, q.lon)
			b := DistanceKm(q.lat, q.lon, p.lat, p.lon)
			if math.Abs(a-b) > 1e-9 {
				t.Errorf("DistanceKm(%v, %v) = %v, reverse = %v", p, q, a, b)
			}
		}
	}
}

func TestDistanceKmAntipodes(t *testing.T) {
	got := DistanceKm(0, 0, 0, 180)
	want := math.Pi * EarthRadiusKm
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("DistanceKm antipodes = %v, want %v", got, want)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name     string
		from, to point
		want     int
	}{
		{"north", point{0, 0}, point{10, 0}, 0},
		{"east", point{0, 0}, point{0, 10}, 90},
		{"south", point{0, 0}, point{-10, 0}, 180},
		{"west", point{0, 0}, point{0, -10}, 270},
		{"same point", london, london, 0},
		{"paris to london", paris, london, 317},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bearing(tt.from.lat, tt.from.lon, tt.to.lat, tt.to.lon); got != tt.want {
				t.Errorf("Bearing = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompass(t *testing.T) {
	tests := map[int]string{
		0: "N", 22: "N", 23: "NE", 45: "NE", 90: "E", 135: "SE",
		180: "S", 225: "SW", 270: "W", 317: "NW", 338: "N", 360: "N", -90: "W",
	}
	for deg, want := range tests {
		if got := Compass(deg); got != want {
			t.Errorf("Compass(%d) = %q, want %q", deg, got, want)
		}
	}
}
