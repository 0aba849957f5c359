package geo

import (
	"math"
	"testing"
)

func TestDistanceKmSamePoint(t *testing.T) {
	p := Point{Latitude: 28.6139, Longitude: 77.2090}
	if got := DistanceKm(p, p); got != 0 {
		t.Fatalf("expected zero distance for same point, got %v", got)
	}
}

func TestDistanceKmKnownPair(t *testing.T) {
	// 新德里 -> 孟买，大圆距离约 1150 公里
	delhi := Point{Latitude: 28.6139, Longitude: 77.2090}
	mumbai := Point{Latitude: 19.0760, Longitude: 72.8777}
	got := DistanceKm(delhi, mumbai)
	if math.Abs(got-1153) > 10 {
		t.Fatalf("unexpected distance: %v", got)
	}
	if reverse := DistanceKm(mumbai, delhi); reverse != got {
		t.Fatalf("distance not symmetric: %v vs %v", got, reverse)
	}
}

func TestDistanceKmRounded(t *testing.T) {
	a := Point{Latitude: 28.6139, Longitude: 77.2090}
	b := Point{Latitude: 28.6239, Longitude: 77.2190}
	got := DistanceKm(a, b)
	if got != math.Round(got*100)/100 {
		t.Fatalf("distance not rounded to 2 decimals: %v", got)
	}
}

func TestEstimatedMinutes(t *testing.T) {
	cases := []struct {
		distance float64
		want     int
	}{
		{0, 5},
		{1, 7},
		{2.5, 10},
		{3.3, 11},
		{10, 25},
		{-1, 5},
	}
	for _, tc := range cases {
		if got := EstimatedMinutes(tc.distance); got != tc.want {
			t.Fatalf("EstimatedMinutes(%v) = %d, want %d", tc.distance, got, tc.want)
		}
	}
}
