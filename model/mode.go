package model

// ObservingParam holds the per-filter timing parameters of an observing
// mode. Efficiency is the exposure fraction: the fraction of elapsed
// observing time spent usefully integrating on-source,
//
//	T_exposure = Efficiency * T_elapse
type ObservingParam struct {
	Efficiency float64
}

// ObservingMode describes one SCUBA-2 scan pattern: a daisy for compact
// sources or a pong raster of a given map size.
type ObservingMode struct {
	Name        string
	Description string

	// MapSizeArcsec is the nominal map diameter of the pattern.
	MapSizeArcsec float64

	// Overhead is the fraction of elapsed time lost to pattern
	// turnarounds outside the map area. Zero for daisy-class patterns.
	Overhead float64

	Param850 ObservingParam
	Param450 ObservingParam
}

// Param selects the timing parameters for the given filter. The zero
// ObservingParam is returned for filters outside the supported set;
// callers are expected to have validated the filter against the
// calibration tables first.
func (m ObservingMode) Param(band FilterBand) ObservingParam {
	switch band {
	case Filter850:
		return m.Param850
	case Filter450:
		return m.Param450
	}
	return ObservingParam{}
}

// EffectiveEfficiency is the exposure fraction after turnaround losses.
func (m ObservingMode) EffectiveEfficiency(band FilterBand) float64 {
	return m.Param(band).Efficiency * (1 - m.Overhead)
}
