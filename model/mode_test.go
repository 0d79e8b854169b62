package model

import (
	"math"
	"testing"
)

func TestObservingMode_Param(t *testing.T) {
	mode := ObservingMode{
		Name:     "pong900",
		Param850: ObservingParam{Efficiency: 0.054969},
		Param450: ObservingParam{Efficiency: 0.013694},
	}

	if got := mode.Param(Filter850).Efficiency; got != 0.054969 {
		t.Errorf("Param(850).Efficiency = %v, want 0.054969", got)
	}
	if got := mode.Param(Filter450).Efficiency; got != 0.013694 {
		t.Errorf("Param(450).Efficiency = %v, want 0.013694", got)
	}
	if got := mode.Param(FilterBand(350)); got != (ObservingParam{}) {
		t.Errorf("Param(350) = %+v, want zero value", got)
	}
}

func TestObservingMode_EffectiveEfficiency(t *testing.T) {
	mode := ObservingMode{
		Name:     "pong1800",
		Overhead: 0.04,
		Param850: ObservingParam{Efficiency: 0.014701},
	}

	want := 0.014701 * 0.96
	if got := mode.EffectiveEfficiency(Filter850); math.Abs(got-want) > 1e-15 {
		t.Errorf("EffectiveEfficiency(850) = %v, want %v", got, want)
	}

	// No overhead means the effective efficiency is the raw exposure
	// fraction.
	mode.Overhead = 0
	if got := mode.EffectiveEfficiency(Filter850); got != 0.014701 {
		t.Errorf("EffectiveEfficiency(850) without overhead = %v, want 0.014701", got)
	}
}

func TestFilterBand_String(t *testing.T) {
	if got := Filter850.String(); got != "850um" {
		t.Errorf("Filter850.String() = %q, want \"850um\"", got)
	}
	if got := Filter450.Micrometres(); got != 450 {
		t.Errorf("Filter450.Micrometres() = %d, want 450", got)
	}
}

func TestCalibrationConstants_SamplingFactor(t *testing.T) {
	cal := CalibrationConstants{Filter: Filter850, DefaultPixelArcsec: 4.0}

	// The documented example: requesting 6.5 arcsec pixels against the
	// 4 arcsec default gives (6.5/4)^2.
	if got, want := cal.SamplingFactor(6.5), 2.640625; got != want {
		t.Errorf("SamplingFactor(6.5) = %v, want %v", got, want)
	}
	if got := cal.SamplingFactor(4.0); got != 1.0 {
		t.Errorf("SamplingFactor(4.0) = %v, want 1", got)
	}
	if got := cal.SamplingFactor(2.0); got != 0.25 {
		t.Errorf("SamplingFactor(2.0) = %v, want 0.25", got)
	}
}

func TestCalibrationConstants_BandOpacity(t *testing.T) {
	cal := CalibrationConstants{Filter: Filter850, OpacitySlope: 4.6, OpacityOffset: 0.0043}

	if got, want := cal.BandOpacity(0.065), 4.6*(0.065-0.0043); got != want {
		t.Errorf("BandOpacity(0.065) = %v, want %v", got, want)
	}
	if got := cal.BandOpacity(0.0043); got != 0 {
		t.Errorf("BandOpacity at the fit offset = %v, want 0", got)
	}
	if got := cal.BandOpacity(0.001); got >= 0 {
		t.Errorf("BandOpacity below the fit offset = %v, want negative", got)
	}
}
