package model

// CalibrationConstants is the per-filter calibration record. One record
// exists per supported FilterBand; values are fixed when the calibration
// tables are loaded and never mutated afterwards.
type CalibrationConstants struct {
	Filter FilterBand

	// ReferenceNEFD is the noise-equivalent flux density at unit
	// transmission and default sampling, in mJy s^1/2.
	ReferenceNEFD float64

	// DefaultPixelArcsec is the default map pixel size for this band.
	DefaultPixelArcsec float64

	// OpacitySlope and OpacityOffset map the 225 GHz zenith opacity to
	// the band zenith opacity via the linear fit
	//
	//	tau_band = OpacitySlope * (tau_225 - OpacityOffset)
	OpacitySlope  float64
	OpacityOffset float64
}

// BandOpacity applies the opacity-conversion fit. The result can be
// negative when tau225 is below the fit's valid range; callers must
// treat that as invalid.
func (c CalibrationConstants) BandOpacity(tau225 float64) float64 {
	return c.OpacitySlope * (tau225 - c.OpacityOffset)
}

// SamplingFactor converts a requested pixel size into the sampling
// factor relative to this band's default pixel: the ratio of requested
// pixel area to default pixel area.
func (c CalibrationConstants) SamplingFactor(pixelArcsec float64) float64 {
	ratio := pixelArcsec / c.DefaultPixelArcsec
	return ratio * ratio
}
