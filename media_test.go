package ptouch

import (
	"errors"
	"testing"
)

// Window closure (spec §8): for every (model, media) pair the registry
// defines, left_pad + printable_pins + right_pad must equal total_pins.
func TestWindowClosure(t *testing.T) {
	for modelID, profile := range profiles {
		for key, w := range profile.pinWindows {
			sum := w.LeftPins + w.PrintPins + w.RightPins
			if sum != profile.TotalPins {
				t.Errorf("%s/%v: window sums to %d, want %d (total pins)",
					modelID, key, sum, profile.TotalPins)
			}
		}
	}
}

func TestWindowForUnsupportedMedia(t *testing.T) {
	profile, err := ProfileFor(ModelP910BT)
	if err != nil {
		t.Fatal(err)
	}
	_, err = profile.WindowFor(HeatShrink2_1(5.8))
	var umErr *UnsupportedMediaError
	if !errors.As(err, &umErr) {
		t.Fatalf("expected *UnsupportedMediaError, got %T: %v", err, err)
	}
}

func TestLaminatedReportedWidthQuirk(t *testing.T) {
	m := Laminated(3.5)
	if m.ReportedWidthMM != 4 {
		t.Errorf("3.5mm tape should report as 4mm, got %d", m.ReportedWidthMM)
	}
	m = Laminated(12)
	if m.ReportedWidthMM != 12 {
		t.Errorf("12mm tape should report as 12mm, got %d", m.ReportedWidthMM)
	}
}

func TestHeatShrinkRounding(t *testing.T) {
	cases := []struct {
		nominal float64
		want    int
	}{
		{5.8, 6}, {8.8, 9}, {11.7, 12}, {17.7, 18}, {23.6, 24},
	}
	for _, c := range cases {
		got := HeatShrink2_1(c.nominal).ReportedWidthMM
		if got != c.want {
			t.Errorf("HeatShrink2_1(%v).ReportedWidthMM = %d, want %d", c.nominal, got, c.want)
		}
	}
}

func TestDeprecatedLaminatedTapeAlias(t *testing.T) {
	m := LaminatedTape(24)
	if m.Kind != MediaLaminatedTape || m.ReportedWidthMM != 24 {
		t.Errorf("LaminatedTape(24) = %+v, want laminated 24mm", m)
	}
}
