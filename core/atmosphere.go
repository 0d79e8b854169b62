package core

import (
	"fmt"
	"math"

	"github.com/eaobservatory/scuba2-itc/model"
)

// AtmosphericModel converts a 225 GHz zenith opacity measurement into a
// band-specific sky transmission for a given airmass.
type AtmosphericModel struct {
	repo *CalibrationRepository
}

func NewAtmosphericModel(repo *CalibrationRepository) *AtmosphericModel {
	return &AtmosphericModel{repo: repo}
}

// BandOpacity converts tau225 to the zenith opacity of the given band
// using the filter's opacity-conversion fit. A negative result means
// tau225 is below the fit's valid range and is rejected.
func (a *AtmosphericModel) BandOpacity(band model.FilterBand, tau225 float64) (float64, error) {
	cal, err := a.repo.Filter(band)
	if err != nil {
		return 0, err
	}
	if tau225 < 0 || math.IsNaN(tau225) {
		return 0, fmt.Errorf("%w: tau225 %v", ErrInvalidOpacity, tau225)
	}

	tau := cal.BandOpacity(tau225)
	if tau < 0 {
		return 0, fmt.Errorf("%w: tau225 %v gives negative %s opacity %v", ErrInvalidOpacity, tau225, band, tau)
	}
	return tau, nil
}

// Transmission returns the sky transmission in (0, 1] for the given band,
// tau225 and airmass, applying the airmass as a path-length multiplier in
// the Beer-Lambert extinction law exp(-tau_band * airmass).
func (a *AtmosphericModel) Transmission(band model.FilterBand, tau225, airmass float64) (float64, error) {
	if airmass < 1 || math.IsNaN(airmass) {
		return 0, fmt.Errorf("%w: %v (must be >= 1)", ErrInvalidAirmass, airmass)
	}

	tau, err := a.BandOpacity(band, tau225)
	if err != nil {
		return 0, err
	}

	trans := math.Exp(-tau * airmass)
	if trans <= 0 || math.IsNaN(trans) {
		return 0, fmt.Errorf("%w: %s opacity %v at airmass %v gives transmission %v", ErrInvalidOpacity, band, tau, airmass, trans)
	}
	return trans, nil
}
