package core

import (
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// JCMT site coordinates (Maunakea), degrees.
const (
	SiteLatitudeDeg  = 19.8228
	SiteLongitudeDeg = -155.4772
)

// AirmassEstimator estimates the airmass of a target from its declination,
// assuming observation near culmination, or from an explicit observation
// time. It is a planning convenience; callers with a measured airmass can
// supply it directly.
type AirmassEstimator struct {
	LatitudeDeg  float64
	LongitudeDeg float64
}

// NewAirmassEstimator returns an estimator for the JCMT site.
func NewAirmassEstimator() *AirmassEstimator {
	return &AirmassEstimator{
		LatitudeDeg:  SiteLatitudeDeg,
		LongitudeDeg: SiteLongitudeDeg,
	}
}

// Estimate returns the airmass of a target at declination decDeg when it
// culminates: altitude = 90 - |latitude - declination|, airmass the secant
// approximation 1/sin(altitude).
func (e *AirmassEstimator) Estimate(decDeg float64) (float64, error) {
	altitude := 90 - math.Abs(e.LatitudeDeg-decDeg)
	return e.airmassFromSinAlt(decDeg, math.Sin(altitude*math.Pi/180))
}

// EstimateAt returns the airmass of a target at right ascension raDeg and
// declination decDeg at the given observation time, using Greenwich
// sidereal time to form the local hour angle.
func (e *AirmassEstimator) EstimateAt(t time.Time, raDeg, decDeg float64) (float64, error) {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)

	hourAngle := gmst + (e.LongitudeDeg-raDeg)*math.Pi/180

	lat := e.LatitudeDeg * math.Pi / 180
	dec := decDeg * math.Pi / 180
	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(hourAngle)
	return e.airmassFromSinAlt(decDeg, sinAlt)
}

func (e *AirmassEstimator) airmassFromSinAlt(decDeg, sinAlt float64) (float64, error) {
	if sinAlt <= 0 || math.IsNaN(sinAlt) {
		return 0, fmt.Errorf("%w: declination %v at latitude %v", ErrUnobservableDeclination, decDeg, e.LatitudeDeg)
	}

	airmass := 1 / sinAlt
	if math.IsInf(airmass, 0) || math.IsNaN(airmass) {
		return 0, fmt.Errorf("%w: declination %v gives non-finite airmass", ErrUnobservableDeclination, decDeg)
	}
	if airmass < 1 {
		// sin rounding can land a hair above 1; the airmass floor is 1.
		airmass = 1
	}
	return airmass, nil
}
