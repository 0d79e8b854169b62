package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestAirmassEstimator_Estimate(t *testing.T) {
	est := NewAirmassEstimator()

	tests := []struct {
		name string
		dec  float64
		want float64
	}{
		{"dec near latitude", 20.0, 1.0000048},
		{"zenith", SiteLatitudeDeg, 1.0},
		{"northern target", 60.0, 1.308810},
		{"far north", 89.0, 2.813106},
		{"southern target", -60.0, 5.659531},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := est.Estimate(tc.dec)
			if err != nil {
				t.Fatalf("Estimate(%v) error: %v", tc.dec, err)
			}
			if math.Abs(got-tc.want) > 1e-5 {
				t.Errorf("Estimate(%v) = %v, want %v", tc.dec, got, tc.want)
			}
			if got < 1 {
				t.Errorf("Estimate(%v) = %v, below the airmass floor of 1", tc.dec, got)
			}
		})
	}
}

func TestAirmassEstimator_UnobservableDeclination(t *testing.T) {
	est := NewAirmassEstimator()

	for _, dec := range []float64{-75.0, -89.0, -70.1772} {
		_, err := est.Estimate(dec)
		if !errors.Is(err, ErrUnobservableDeclination) {
			t.Errorf("Estimate(%v) error = %v, want ErrUnobservableDeclination", dec, err)
		}
	}
}

func TestAirmassEstimator_EstimateAt_CircumpolarBounds(t *testing.T) {
	est := NewAirmassEstimator()

	// A target at dec +89 never sets at the JCMT: its altitude stays
	// between dec+lat-90 (anti-transit) and 90-|lat-dec| (transit), so
	// the airmass must stay between the transit estimate and the
	// anti-transit secant regardless of observation time or RA.
	transit, err := est.Estimate(89.0)
	if err != nil {
		t.Fatalf("Estimate(89) error: %v", err)
	}
	antiAlt := (89.0 + SiteLatitudeDeg - 90.0) * math.Pi / 180
	antiTransit := 1 / math.Sin(antiAlt)

	when := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
	for ra := 0.0; ra < 360; ra += 45 {
		got, err := est.EstimateAt(when, ra, 89.0)
		if err != nil {
			t.Fatalf("EstimateAt(ra=%v) error: %v", ra, err)
		}
		if got < transit-1e-9 || got > antiTransit+1e-9 {
			t.Errorf("EstimateAt(ra=%v) = %v, want in [%v, %v]", ra, got, transit, antiTransit)
		}
	}
}

func TestAirmassEstimator_EstimateAt_TransitMatchesEstimate(t *testing.T) {
	est := NewAirmassEstimator()

	// Scanning RA over a full turn at a fixed time sweeps the hour angle
	// through transit; the minimum airmass found must agree with the
	// culmination estimate.
	when := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	const dec = 35.0

	best := math.Inf(1)
	for ra := 0.0; ra < 360; ra += 0.25 {
		got, err := est.EstimateAt(when, ra, dec)
		if err != nil {
			continue
		}
		if got < best {
			best = got
		}
	}

	want, err := est.Estimate(dec)
	if err != nil {
		t.Fatalf("Estimate(%v) error: %v", dec, err)
	}
	if math.Abs(best-want) > 1e-4 {
		t.Errorf("min EstimateAt over RA = %v, want culmination estimate %v", best, want)
	}
}

func TestAirmassEstimator_EstimateAt_BelowHorizon(t *testing.T) {
	est := NewAirmassEstimator()

	when := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
	for ra := 0.0; ra < 360; ra += 45 {
		if _, err := est.EstimateAt(when, ra, -85.0); !errors.Is(err, ErrUnobservableDeclination) {
			t.Errorf("EstimateAt(ra=%v, dec=-85) error = %v, want ErrUnobservableDeclination", ra, err)
		}
	}
}

func TestAirmassEstimator_CustomSite(t *testing.T) {
	// An equatorial site sees dec 0 at zenith.
	est := &AirmassEstimator{LatitudeDeg: 0, LongitudeDeg: 0}

	got, err := est.Estimate(0)
	if err != nil {
		t.Fatalf("Estimate(0) error: %v", err)
	}
	if got != 1 {
		t.Errorf("Estimate(0) at equator = %v, want 1", got)
	}
}
