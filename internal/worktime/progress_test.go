package worktime

import "testing"

func TestTrackProgress_States(t *testing.T) {
	cases := []struct {
		name  string
		value int
		want  State
	}{
		{"zero", 0, StateUnderSoft},
		{"below soft", 359, StateUnderSoft},
		{"exactly soft", 360, StateUnderSoft},
		{"between", 400, StateOverSoft},
		{"exactly hard", 480, StateOverSoft},
		{"above hard", 481, StateOverHard},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := TrackProgress(tc.value, 360, 480)
			if p.State != tc.want {
				t.Fatalf("TrackProgress(%d, 360, 480).State = %q, want %q", tc.value, p.State, tc.want)
			}
		})
	}
}

func TestTrackProgress_Boundaries(t *testing.T) {
	// value == soft stays under_soft with zero remaining.
	p := TrackProgress(360, 360, 480)
	if p.State != StateUnderSoft {
		t.Fatalf("expected under_soft at the soft boundary, got %q", p.State)
	}
	if p.SoftRemaining != 0 {
		t.Fatalf("expected zero soft remaining, got %d", p.SoftRemaining)
	}

	// value == hard is over_soft with zero hard remaining, never over_hard.
	p = TrackProgress(480, 360, 480)
	if p.State != StateOverSoft {
		t.Fatalf("expected over_soft at the hard boundary, got %q", p.State)
	}
	if p.HardRemaining != 0 {
		t.Fatalf("expected zero hard remaining, got %d", p.HardRemaining)
	}
	if p.OverSoftBy != 120 {
		t.Fatalf("expected 120 over soft, got %d", p.OverSoftBy)
	}
}

func TestTrackProgress_Deltas(t *testing.T) {
	p := TrackProgress(500, 360, 480)
	if p.OverSoftBy != 140 || p.OverHardBy != 20 {
		t.Fatalf("unexpected overages: over_soft=%d over_hard=%d", p.OverSoftBy, p.OverHardBy)
	}
	if p.SoftRemaining != 0 || p.HardRemaining != 0 {
		t.Fatalf("expected zero remaining, got soft=%d hard=%d", p.SoftRemaining, p.HardRemaining)
	}

	p = TrackProgress(100, 360, 480)
	if p.SoftRemaining != 260 || p.HardRemaining != 380 {
		t.Fatalf("unexpected remaining: soft=%d hard=%d", p.SoftRemaining, p.HardRemaining)
	}
}

func TestTrackProgress_Percentages(t *testing.T) {
	p := TrackProgress(240, 360, 480)
	if p.Pct != 50 {
		t.Fatalf("expected 50 pct, got %d", p.Pct)
	}
	if p.SoftPct != 75 {
		t.Fatalf("expected soft marker at 75 pct, got %d", p.SoftPct)
	}

	// Values past the hard target clamp at 100.
	p = TrackProgress(1000, 360, 480)
	if p.Pct != 100 {
		t.Fatalf("expected pct clamped to 100, got %d", p.Pct)
	}

	// A zero hard target produces zero percentages, not a division fault.
	p = TrackProgress(100, 0, 0)
	if p.Pct != 0 || p.SoftPct != 0 {
		t.Fatalf("expected zero percentages with zero hard target, got %d/%d", p.Pct, p.SoftPct)
	}
}
