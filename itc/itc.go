// Package itc provides the SCUBA-2 integration time calculator: an
// invertible mapping between elapsed observing time and map RMS under
// given atmospheric conditions, behind a validating facade.
package itc

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eaobservatory/scuba2-itc/core"
	"github.com/eaobservatory/scuba2-itc/internal/logging"
	"github.com/eaobservatory/scuba2-itc/internal/observability"
	"github.com/eaobservatory/scuba2-itc/model"
)

const tracerName = "github.com/eaobservatory/scuba2-itc/itc"

// SCUBA2ITC is the calculator facade. It validates requests, resolves
// calibration constants, and drives the atmospheric and noise models.
// All state is read-only after construction, so a single instance can be
// shared by concurrent callers.
type SCUBA2ITC struct {
	repo       *core.CalibrationRepository
	atmosphere *core.AtmosphericModel
	estimator  *core.AirmassEstimator
	noise      *core.NoiseModel
	log        logging.Logger
	collector  *observability.ITCCollector
}

// Option customises a SCUBA2ITC instance.
type Option func(*SCUBA2ITC)

// WithCalibrationRepository substitutes the built-in calibration tables,
// e.g. a revised NEFD table in tests.
func WithCalibrationRepository(repo *core.CalibrationRepository) Option {
	return func(s *SCUBA2ITC) { s.repo = repo }
}

// WithLogger attaches a structured logger; the default drops all logs.
func WithLogger(log logging.Logger) Option {
	return func(s *SCUBA2ITC) { s.log = log }
}

// WithCollector attaches a Prometheus collector for calculation metrics.
func WithCollector(c *observability.ITCCollector) Option {
	return func(s *SCUBA2ITC) { s.collector = c }
}

// WithSite overrides the observatory coordinates used by the airmass
// estimator. The default is the JCMT site.
func WithSite(latitudeDeg, longitudeDeg float64) Option {
	return func(s *SCUBA2ITC) {
		s.estimator = &core.AirmassEstimator{
			LatitudeDeg:  latitudeDeg,
			LongitudeDeg: longitudeDeg,
		}
	}
}

// New constructs a calculator with the built-in calibration tables.
func New(opts ...Option) *SCUBA2ITC {
	s := &SCUBA2ITC{
		repo:      core.NewCalibrationRepository(),
		estimator: core.NewAirmassEstimator(),
		log:       logging.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.atmosphere = core.NewAtmosphericModel(s.repo)
	s.noise = core.NewNoiseModel(s.repo)
	return s
}

// Diagnostics reports the intermediate quantities of a calculation.
// It is always populated on success; callers that only want the primary
// result can ignore it.
type Diagnostics struct {
	Airmass             float64
	BandOpacity         float64
	Transmission        float64
	EffectiveNEFD       float64
	SamplingFactor      float64
	Efficiency          float64
	Overhead            float64
	EffectiveEfficiency float64
}

// CalculateTotalTime returns the elapsed observing time in seconds
// required to reach req.TargetRMS.
func (s *SCUBA2ITC) CalculateTotalTime(ctx context.Context, req model.Request) (float64, Diagnostics, error) {
	ctx, span := s.startSpan(ctx, "SCUBA2ITC/CalculateTotalTime", req)
	defer span.End()

	mode, diag, err := s.prepare(req)
	if err == nil && (req.TargetRMS <= 0 || math.IsNaN(req.TargetRMS)) {
		err = fmt.Errorf("%w: target rms %v (must be > 0)", core.ErrInvalidParameter, req.TargetRMS)
	}

	var seconds float64
	if err == nil {
		seconds, err = s.noise.TimeForRMS(req.Filter, mode, req.TargetRMS, diag.Transmission, diag.SamplingFactor)
	}
	if err != nil {
		span.RecordError(err)
		s.collector.ObserveCalculation(req.Mode, req.Filter.String(), observability.DirectionTime, observability.OutcomeError)
		return 0, Diagnostics{}, err
	}

	s.collector.ObserveCalculation(req.Mode, req.Filter.String(), observability.DirectionTime, observability.OutcomeOK)
	s.collector.ObserveIntegrationTime(seconds)
	s.log.Debug(ctx, "calculated integration time",
		logging.String("mode", req.Mode),
		logging.String("filter", req.Filter.String()),
		logging.Float64("target_rms_mjy", req.TargetRMS),
		logging.Float64("transmission", diag.Transmission),
		logging.Float64("time_s", seconds),
	)
	return seconds, diag, nil
}

// CalculateRMSForTotalTime returns the map RMS in mJy/beam reached after
// req.TargetTime seconds of elapsed observing time.
func (s *SCUBA2ITC) CalculateRMSForTotalTime(ctx context.Context, req model.Request) (float64, Diagnostics, error) {
	ctx, span := s.startSpan(ctx, "SCUBA2ITC/CalculateRMSForTotalTime", req)
	defer span.End()

	mode, diag, err := s.prepare(req)
	if err == nil && (req.TargetTime <= 0 || math.IsNaN(req.TargetTime)) {
		err = fmt.Errorf("%w: target time %v (must be > 0)", core.ErrInvalidParameter, req.TargetTime)
	}

	var rms float64
	if err == nil {
		rms, err = s.noise.RMSForTime(req.Filter, mode, req.TargetTime, diag.Transmission, diag.SamplingFactor)
	}
	if err != nil {
		span.RecordError(err)
		s.collector.ObserveCalculation(req.Mode, req.Filter.String(), observability.DirectionRMS, observability.OutcomeError)
		return 0, Diagnostics{}, err
	}

	s.collector.ObserveCalculation(req.Mode, req.Filter.String(), observability.DirectionRMS, observability.OutcomeOK)
	s.collector.ObserveTargetRMS(rms)
	s.log.Debug(ctx, "calculated rms",
		logging.String("mode", req.Mode),
		logging.String("filter", req.Filter.String()),
		logging.Float64("time_s", req.TargetTime),
		logging.Float64("transmission", diag.Transmission),
		logging.Float64("rms_mjy", rms),
	)
	return rms, diag, nil
}

// EstimateAirmass estimates the airmass of a target at the given
// declination, assuming observation near culmination.
func (s *SCUBA2ITC) EstimateAirmass(declinationDeg float64) (float64, error) {
	return s.estimator.Estimate(declinationDeg)
}

// EstimateAirmassAt estimates the airmass of a target at the given
// observation time.
func (s *SCUBA2ITC) EstimateAirmassAt(t time.Time, raDeg, declinationDeg float64) (float64, error) {
	return s.estimator.EstimateAt(t, raDeg, declinationDeg)
}

// Modes lists the supported observing modes in calibration-table order.
func (s *SCUBA2ITC) Modes() []model.ObservingMode {
	return s.repo.Modes()
}

// prepare resolves the calibration record, sampling factor, and sky
// transmission for a request, in the documented validation order.
func (s *SCUBA2ITC) prepare(req model.Request) (model.ObservingMode, Diagnostics, error) {
	mode, err := s.repo.Mode(req.Mode)
	if err != nil {
		return model.ObservingMode{}, Diagnostics{}, err
	}
	cal, err := s.repo.Filter(req.Filter)
	if err != nil {
		return model.ObservingMode{}, Diagnostics{}, err
	}

	sampling, ok := req.SamplingFactors[req.Filter]
	if !ok {
		return model.ObservingMode{}, Diagnostics{}, fmt.Errorf("%w: no entry for %s", core.ErrMissingSamplingFactor, req.Filter)
	}
	if sampling <= 0 || math.IsNaN(sampling) {
		return model.ObservingMode{}, Diagnostics{}, fmt.Errorf("%w: sampling factor %v (must be > 0)", core.ErrInvalidParameter, sampling)
	}

	opacity, err := s.atmosphere.BandOpacity(req.Filter, req.Tau225)
	if err != nil {
		return model.ObservingMode{}, Diagnostics{}, err
	}
	trans, err := s.atmosphere.Transmission(req.Filter, req.Tau225, req.Airmass)
	if err != nil {
		return model.ObservingMode{}, Diagnostics{}, err
	}

	param := mode.Param(req.Filter)
	diag := Diagnostics{
		Airmass:             req.Airmass,
		BandOpacity:         opacity,
		Transmission:        trans,
		EffectiveNEFD:       cal.ReferenceNEFD / trans,
		SamplingFactor:      sampling,
		Efficiency:          param.Efficiency,
		Overhead:            mode.Overhead,
		EffectiveEfficiency: mode.EffectiveEfficiency(req.Filter),
	}
	return mode, diag, nil
}

func (s *SCUBA2ITC) startSpan(ctx context.Context, name string, req model.Request) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("itc.mode", req.Mode),
		attribute.String("itc.filter", req.Filter.String()),
	))
}
