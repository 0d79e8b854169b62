package core

import (
	"errors"
	"math"
	"testing"

	"github.com/eaobservatory/scuba2-itc/model"
)

func mustMode(t *testing.T, repo *CalibrationRepository, name string) model.ObservingMode {
	t.Helper()
	mode, err := repo.Mode(name)
	if err != nil {
		t.Fatalf("Mode(%q) error: %v", name, err)
	}
	return mode
}

func TestNoiseModel_SpotValues(t *testing.T) {
	repo := NewCalibrationRepository()
	noise := NewNoiseModel(repo)
	daisy := mustMode(t, repo, "daisy")

	timeS, err := noise.TimeForRMS(model.Filter850, daisy, 2.0, 0.710, 1.0)
	if err != nil {
		t.Fatalf("TimeForRMS error: %v", err)
	}
	if math.Abs(timeS-17835.7) > 0.5 {
		t.Errorf("daisy 850um time for 2.0 mJy at trans 0.710 = %v, want ~17835.7", timeS)
	}

	timeS, err = noise.TimeForRMS(model.Filter450, daisy, 45.0, 0.184, 1.0)
	if err != nil {
		t.Fatalf("TimeForRMS error: %v", err)
	}
	if math.Abs(timeS-6929.9) > 0.5 {
		t.Errorf("daisy 450um time for 45.0 mJy at trans 0.184 = %v, want ~6929.9", timeS)
	}

	rms, err := noise.RMSForTime(model.Filter850, daisy, 810, 0.710, 1.0)
	if err != nil {
		t.Fatalf("RMSForTime error: %v", err)
	}
	if math.Abs(rms-9.385) > 0.005 {
		t.Errorf("daisy 850um rms after 810 s at trans 0.710 = %v, want ~9.385", rms)
	}

	rms, err = noise.RMSForTime(model.Filter450, daisy, 810, 0.184, 1.0)
	if err != nil {
		t.Fatalf("RMSForTime error: %v", err)
	}
	if math.Abs(rms-131.62) > 0.05 {
		t.Errorf("daisy 450um rms after 810 s at trans 0.184 = %v, want ~131.62", rms)
	}
}

func TestNoiseModel_InverseConsistency(t *testing.T) {
	repo := NewCalibrationRepository()
	noise := NewNoiseModel(repo)

	for _, mode := range repo.Modes() {
		for _, band := range []model.FilterBand{model.Filter850, model.Filter450} {
			for _, rms := range []float64{0.5, 2.0, 10.0} {
				timeS, err := noise.TimeForRMS(band, mode, rms, 0.6, 1.3)
				if err != nil {
					t.Fatalf("%s/%s TimeForRMS error: %v", mode.Name, band, err)
				}
				back, err := noise.RMSForTime(band, mode, timeS, 0.6, 1.3)
				if err != nil {
					t.Fatalf("%s/%s RMSForTime error: %v", mode.Name, band, err)
				}
				if math.Abs(back-rms) > rms*1e-12 {
					t.Errorf("%s/%s round trip rms %v -> %v s -> %v", mode.Name, band, rms, timeS, back)
				}
			}
		}
	}
}

func TestNoiseModel_Monotonicity(t *testing.T) {
	repo := NewCalibrationRepository()
	noise := NewNoiseModel(repo)
	pong := mustMode(t, repo, "pong900")

	// Required time strictly increases as the target RMS decreases.
	prevTime := 0.0
	for _, rms := range []float64{10.0, 5.0, 2.0, 1.0, 0.5} {
		timeS, err := noise.TimeForRMS(model.Filter850, pong, rms, 0.7, 1.0)
		if err != nil {
			t.Fatalf("TimeForRMS(rms=%v) error: %v", rms, err)
		}
		if timeS <= prevTime {
			t.Errorf("TimeForRMS(rms=%v) = %v, want > %v", rms, timeS, prevTime)
		}
		prevTime = timeS
	}

	// Achieved RMS strictly decreases as time increases.
	prevRMS := math.Inf(1)
	for _, timeS := range []float64{600.0, 1800.0, 7200.0, 28800.0} {
		rms, err := noise.RMSForTime(model.Filter850, pong, timeS, 0.7, 1.0)
		if err != nil {
			t.Fatalf("RMSForTime(time=%v) error: %v", timeS, err)
		}
		if rms >= prevRMS {
			t.Errorf("RMSForTime(time=%v) = %v, want < %v", timeS, rms, prevRMS)
		}
		prevRMS = rms
	}
}

func TestNoiseModel_SamplingScaling(t *testing.T) {
	repo := NewCalibrationRepository()
	noise := NewNoiseModel(repo)
	daisy := mustMode(t, repo, "daisy")

	base, err := noise.TimeForRMS(model.Filter850, daisy, 2.0, 0.7, 1.0)
	if err != nil {
		t.Fatalf("TimeForRMS error: %v", err)
	}

	// Holding RMS fixed, required time scales exactly with the sampling
	// factor ratio.
	for _, factor := range []float64{0.25, 0.5, 2.0, 2.640625, 4.0} {
		scaled, err := noise.TimeForRMS(model.Filter850, daisy, 2.0, 0.7, factor)
		if err != nil {
			t.Fatalf("TimeForRMS(factor=%v) error: %v", factor, err)
		}
		if ratio := scaled / base; math.Abs(ratio-factor) > factor*1e-12 {
			t.Errorf("time ratio at sampling factor %v = %v, want %v", factor, ratio, factor)
		}
	}
}

func TestNoiseModel_InvalidParameters(t *testing.T) {
	repo := NewCalibrationRepository()
	noise := NewNoiseModel(repo)
	daisy := mustMode(t, repo, "daisy")

	tests := []struct {
		name string
		call func() (float64, error)
	}{
		{"zero rms", func() (float64, error) {
			return noise.TimeForRMS(model.Filter850, daisy, 0, 0.7, 1)
		}},
		{"negative rms", func() (float64, error) {
			return noise.TimeForRMS(model.Filter850, daisy, -1, 0.7, 1)
		}},
		{"zero time", func() (float64, error) {
			return noise.RMSForTime(model.Filter850, daisy, 0, 0.7, 1)
		}},
		{"negative time", func() (float64, error) {
			return noise.RMSForTime(model.Filter850, daisy, -300, 0.7, 1)
		}},
		{"zero sampling", func() (float64, error) {
			return noise.TimeForRMS(model.Filter850, daisy, 2, 0.7, 0)
		}},
		{"zero transmission", func() (float64, error) {
			return noise.TimeForRMS(model.Filter850, daisy, 2, 0, 1)
		}},
		{"negative transmission", func() (float64, error) {
			return noise.RMSForTime(model.Filter850, daisy, 600, -0.5, 1)
		}},
		{"zero efficiency", func() (float64, error) {
			dead := model.ObservingMode{Name: "dead"}
			return noise.TimeForRMS(model.Filter850, dead, 2, 0.7, 1)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.call(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestNoiseModel_UnknownFilterPropagates(t *testing.T) {
	repo := NewCalibrationRepository()
	noise := NewNoiseModel(repo)
	daisy := mustMode(t, repo, "daisy")

	if _, err := noise.TimeForRMS(model.FilterBand(350), daisy, 2, 0.7, 1); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("TimeForRMS(350um) error = %v, want ErrUnknownFilter", err)
	}
}
