package core

import (
	"fmt"
	"math"

	"github.com/eaobservatory/scuba2-itc/model"
)

// NoiseModel implements the radiometer relation between integration time
// and map RMS. For a mode with effective efficiency e (exposure fraction
// after turnaround losses) and effective NEFD N = referenceNEFD /
// transmission, inflated by sqrt(samplingFactor):
//
//	rms   = N * sqrt(f) / sqrt(e * t)
//	t     = (N * sqrt(f) / rms)^2 / e
//
// The two directions are exact mutual inverses.
type NoiseModel struct {
	repo *CalibrationRepository
}

func NewNoiseModel(repo *CalibrationRepository) *NoiseModel {
	return &NoiseModel{repo: repo}
}

// RMSForTime returns the map RMS in mJy/beam reached after timeS seconds
// of elapsed observing time.
func (n *NoiseModel) RMSForTime(band model.FilterBand, mode model.ObservingMode, timeS, transmission, samplingFactor float64) (float64, error) {
	if timeS <= 0 || math.IsNaN(timeS) {
		return 0, fmt.Errorf("%w: time %v (must be > 0)", ErrInvalidParameter, timeS)
	}
	scaled, err := n.scaledNEFD(band, mode, transmission, samplingFactor)
	if err != nil {
		return 0, err
	}

	return scaled / math.Sqrt(mode.EffectiveEfficiency(band)*timeS), nil
}

// TimeForRMS returns the elapsed observing time in seconds required to
// reach the target map RMS in mJy/beam.
func (n *NoiseModel) TimeForRMS(band model.FilterBand, mode model.ObservingMode, rms, transmission, samplingFactor float64) (float64, error) {
	if rms <= 0 || math.IsNaN(rms) {
		return 0, fmt.Errorf("%w: rms %v (must be > 0)", ErrInvalidParameter, rms)
	}
	scaled, err := n.scaledNEFD(band, mode, transmission, samplingFactor)
	if err != nil {
		return 0, err
	}

	sqrtTime := scaled / rms
	return sqrtTime * sqrtTime / mode.EffectiveEfficiency(band), nil
}

// scaledNEFD validates the shared parameters and returns the effective
// NEFD scaled by sqrt(samplingFactor).
func (n *NoiseModel) scaledNEFD(band model.FilterBand, mode model.ObservingMode, transmission, samplingFactor float64) (float64, error) {
	cal, err := n.repo.Filter(band)
	if err != nil {
		return 0, err
	}
	if transmission <= 0 || math.IsNaN(transmission) {
		return 0, fmt.Errorf("%w: transmission %v (must be > 0)", ErrInvalidParameter, transmission)
	}
	if samplingFactor <= 0 || math.IsNaN(samplingFactor) {
		return 0, fmt.Errorf("%w: sampling factor %v (must be > 0)", ErrInvalidParameter, samplingFactor)
	}
	if eff := mode.EffectiveEfficiency(band); eff <= 0 || math.IsNaN(eff) {
		return 0, fmt.Errorf("%w: mode %q has non-positive efficiency %v at %s", ErrInvalidParameter, mode.Name, eff, band)
	}

	return cal.ReferenceNEFD / transmission * math.Sqrt(samplingFactor), nil
}
