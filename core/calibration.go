package core

import (
	"fmt"

	"github.com/eaobservatory/scuba2-itc/model"
)

// CalibrationRepository holds the built-in SCUBA-2 calibration tables:
// per-filter constants and per-mode timing parameters. All data is fixed
// at construction, so a repository can be shared by concurrent callers
// without synchronisation.
type CalibrationRepository struct {
	filters   map[model.FilterBand]model.CalibrationConstants
	modes     map[string]model.ObservingMode
	modeOrder []string
}

// NewCalibrationRepository loads the default calibration tables.
func NewCalibrationRepository() *CalibrationRepository {
	return NewCalibrationRepositoryWithTables(defaultFilterConstants, defaultModes)
}

// NewCalibrationRepositoryWithTables builds a repository from the given
// tables instead of the defaults, so revised calibrations can coexist with
// the built-in one. Mode listing order follows the order of modes.
func NewCalibrationRepositoryWithTables(filters []model.CalibrationConstants, modes []model.ObservingMode) *CalibrationRepository {
	repo := &CalibrationRepository{
		filters:   make(map[model.FilterBand]model.CalibrationConstants, len(filters)),
		modes:     make(map[string]model.ObservingMode, len(modes)),
		modeOrder: make([]string, 0, len(modes)),
	}
	for _, f := range filters {
		repo.filters[f.Filter] = f
	}
	for _, m := range modes {
		if _, exists := repo.modes[m.Name]; !exists {
			repo.modeOrder = append(repo.modeOrder, m.Name)
		}
		repo.modes[m.Name] = m
	}
	return repo
}

// Filter returns the calibration constants for a band.
func (r *CalibrationRepository) Filter(band model.FilterBand) (model.CalibrationConstants, error) {
	cal, ok := r.filters[band]
	if !ok {
		return model.CalibrationConstants{}, fmt.Errorf("%w: %d", ErrUnknownFilter, int(band))
	}
	return cal, nil
}

// Mode returns the observing mode record for a mode name.
func (r *CalibrationRepository) Mode(name string) (model.ObservingMode, error) {
	mode, ok := r.modes[name]
	if !ok {
		return model.ObservingMode{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	return mode, nil
}

// Modes returns all supported observing modes in calibration-table order.
func (r *CalibrationRepository) Modes() []model.ObservingMode {
	out := make([]model.ObservingMode, 0, len(r.modeOrder))
	for _, name := range r.modeOrder {
		out = append(out, r.modes[name])
	}
	return out
}

// Per-filter constants. The reference NEFDs are the band sensitivities at
// unit transmission; the opacity fits are the published linear relations
// tau_850 = 4.6 (tau_225 - 0.0043) and tau_450 = 26.0 (tau_225 - 0.012).
var defaultFilterConstants = []model.CalibrationConstants{
	{
		Filter:             model.Filter850,
		ReferenceNEFD:      94.5,
		DefaultPixelArcsec: 4.0,
		OpacitySlope:       4.6,
		OpacityOffset:      0.0043,
	},
	{
		Filter:             model.Filter450,
		ReferenceNEFD:      171.8,
		DefaultPixelArcsec: 2.0,
		OpacitySlope:       26.0,
		OpacityOffset:      0.012,
	},
}

// Per-mode timing parameters. Efficiencies are the measured exposure
// fractions before turnaround losses; the pong overheads grow with map
// size as the scan spends more time reversing outside the map.
var defaultModes = []model.ObservingMode{
	{
		Name:          "daisy",
		Description:   "Daisy: ~3 arcmin map",
		MapSizeArcsec: 180,
		Overhead:      0,
		Param850:      model.ObservingParam{Efficiency: 0.248312},
		Param450:      model.ObservingParam{Efficiency: 0.062124},
	},
	{
		Name:          "pong900",
		Description:   "Pong 900: 15 arcmin map",
		MapSizeArcsec: 900,
		Overhead:      0.02,
		Param850:      model.ObservingParam{Efficiency: 0.054969},
		Param450:      model.ObservingParam{Efficiency: 0.013694},
	},
	{
		Name:          "pong1800",
		Description:   "Pong 1800: 30 arcmin map",
		MapSizeArcsec: 1800,
		Overhead:      0.04,
		Param850:      model.ObservingParam{Efficiency: 0.014701},
		Param450:      model.ObservingParam{Efficiency: 0.003646},
	},
	{
		Name:          "pong3600",
		Description:   "Pong 3600: 1 degree map",
		MapSizeArcsec: 3600,
		Overhead:      0.08,
		Param850:      model.ObservingParam{Efficiency: 0.003457},
		Param450:      model.ObservingParam{Efficiency: 0.000598},
	},
	{
		Name:          "pong7200",
		Description:   "Pong 7200: 2 degree map",
		MapSizeArcsec: 7200,
		Overhead:      0.12,
		Param850:      model.ObservingParam{Efficiency: 0.000902},
		Param450:      model.ObservingParam{Efficiency: 0.000204},
	},
	{
		Name:          "poldaisy",
		Description:   "POL-2 Daisy: ~3 arcmin map",
		MapSizeArcsec: 180,
		Overhead:      0,
		Param850:      model.ObservingParam{Efficiency: 0.062},
		Param450:      model.ObservingParam{Efficiency: 0.0155},
	},
}
