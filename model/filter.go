package model

import "fmt"

// FilterBand identifies one of the two SCUBA-2 wavelength filters. The
// numeric value is the wavelength in micrometres, matching the identifiers
// used by the observation-planning tools (850 and 450).
type FilterBand int

const (
	Filter850 FilterBand = 850
	Filter450 FilterBand = 450
)

// Bands lists the supported filters in calibration-table order.
func Bands() []FilterBand {
	return []FilterBand{Filter850, Filter450}
}

// Micrometres returns the filter wavelength in micrometres.
func (f FilterBand) Micrometres() int { return int(f) }

func (f FilterBand) String() string {
	return fmt.Sprintf("%dum", int(f))
}
