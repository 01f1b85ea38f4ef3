package worktime

import "math"

// State classifies a value against its soft and hard targets.
type State string

const (
	// StateUnderSoft indicates the value has not yet reached the soft target.
	StateUnderSoft State = "under_soft"
	// StateOverSoft indicates the value is between the soft and hard targets.
	StateOverSoft State = "over_soft"
	// StateOverHard indicates the value exceeds the hard target.
	StateOverHard State = "over_hard"
)

// Progress captures target progress for a single minute value.
type Progress struct {
	Value int
	Soft  int
	Hard  int

	// Pct is the value as a percentage of the hard target, clamped to 0..100.
	Pct int
	// SoftPct marks where the soft target sits relative to the hard target.
	SoftPct int

	State         State
	OverSoftBy    int
	OverHardBy    int
	SoftRemaining int
	HardRemaining int
}

// TrackProgress classifies value against soft and hard minute targets.
//
// Boundaries are exclusive upwards: value == soft is still under_soft with
// zero remaining, and value == hard is over_soft with zero hard remaining.
func TrackProgress(value, soft, hard int) Progress {
	p := Progress{Value: value, Soft: soft, Hard: hard}

	if hard > 0 {
		p.Pct = clampPct(math.Round(float64(value) / float64(hard) * 100))
		p.SoftPct = clampPct(math.Round(float64(soft) / float64(hard) * 100))
	}

	switch {
	case value > hard:
		p.State = StateOverHard
	case value > soft:
		p.State = StateOverSoft
	default:
		p.State = StateUnderSoft
	}

	p.OverSoftBy = clampZero(value - soft)
	p.OverHardBy = clampZero(value - hard)
	p.SoftRemaining = clampZero(soft - value)
	p.HardRemaining = clampZero(hard - value)

	return p
}

func clampPct(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
