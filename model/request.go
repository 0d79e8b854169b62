package model

// Request bundles the caller-supplied parameters of one integration-time
// or RMS calculation. Exactly one of TargetRMS / TargetTime is consulted,
// depending on which facade entry point receives the request: the other
// is the unknown being solved for.
type Request struct {
	// Mode is the observing mode name, e.g. "daisy" or "pong1800".
	Mode string

	Filter FilterBand

	// Tau225 is the 225 GHz zenith opacity.
	Tau225 float64

	// Airmass of the target, >= 1. Callers without a measured value can
	// obtain an estimate from the facade's airmass estimator.
	Airmass float64

	// SamplingFactors maps each filter to the ratio of requested pixel
	// area to the band's default pixel area. The entry for Filter must
	// be present.
	SamplingFactors map[FilterBand]float64

	// TargetRMS is the desired map noise in mJy/beam, used when solving
	// for time.
	TargetRMS float64

	// TargetTime is the elapsed observing time in seconds, used when
	// solving for RMS.
	TargetTime float64
}
