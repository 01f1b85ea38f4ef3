package worktime

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-03-13"); err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if _, err := ParseDate("13/03/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
	if _, err := ParseDate("2024-02-30"); err == nil {
		t.Fatal("expected error for impossible date")
	}
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("ParseClock failed: %v", err)
	}
	if minutes != 9*60+30 {
		t.Fatalf("expected 570 minutes, got %d", minutes)
	}

	if _, err := ParseClock("25:00"); err == nil {
		t.Fatal("expected error for hour out of range")
	}
	if _, err := ParseClock("9h30"); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{390, "6h 30m"},
		{480, "8h"},
		{45, "45m"},
		{0, "0m"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.minutes); got != tc.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestWeekBounds(t *testing.T) {
	// Wednesday 2024-03-13 belongs to the week Mon 03-11 .. Fri 03-15.
	wednesday := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.Local)
	monday, friday := WeekBounds(wednesday)

	if got := FormatDate(monday); got != "2024-03-11" {
		t.Fatalf("expected Monday 2024-03-11, got %s", got)
	}
	if got := FormatDate(friday); got != "2024-03-15" {
		t.Fatalf("expected Friday 2024-03-15, got %s", got)
	}

	// A Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2024, time.March, 17, 8, 0, 0, 0, time.Local)
	monday, _ = WeekBounds(sunday)
	if got := FormatDate(monday); got != "2024-03-11" {
		t.Fatalf("expected Monday 2024-03-11 for Sunday ref, got %s", got)
	}

	// A Monday is its own week start.
	mondayRef := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.Local)
	monday, _ = WeekBounds(mondayRef)
	if got := FormatDate(monday); got != "2024-03-11" {
		t.Fatalf("expected Monday to map to itself, got %s", got)
	}
}

func TestComputeNet(t *testing.T) {
	at := func(hhmm string) time.Time {
		parsed, err := time.Parse(ClockLayout, hhmm)
		if err != nil {
			t.Fatalf("bad test clock %q: %v", hhmm, err)
		}
		return time.Date(2024, time.March, 13, parsed.Hour(), parsed.Minute(), 0, 0, time.Local)
	}

	t.Run("not started", func(t *testing.T) {
		if got := ComputeNet("", 0, nil, at("12:00")); got != 0 {
			t.Fatalf("expected 0 for missing start, got %d", got)
		}
	})

	t.Run("running day subtracts breaks", func(t *testing.T) {
		if got := ComputeNet("09:00", 30, nil, at("12:00")); got != 150 {
			t.Fatalf("expected 150 net minutes, got %d", got)
		}
	})

	t.Run("monotonic in elapsed time", func(t *testing.T) {
		prev := -1
		for _, clock := range []string{"09:00", "10:00", "11:30", "17:45"} {
			net := ComputeNet("09:00", 15, nil, at(clock))
			if net < prev {
				t.Fatalf("net decreased from %d to %d at %s", prev, net, clock)
			}
			prev = net
		}
	})

	t.Run("non-increasing in break minutes", func(t *testing.T) {
		prev := int(^uint(0) >> 1)
		for _, breaks := range []int{0, 30, 60, 600} {
			net := ComputeNet("09:00", breaks, nil, at("12:00"))
			if net > prev {
				t.Fatalf("net increased from %d to %d with %d break minutes", prev, net, breaks)
			}
			if net < 0 {
				t.Fatalf("net went negative: %d", net)
			}
			prev = net
		}
	})

	t.Run("open break pauses the clock", func(t *testing.T) {
		breakStart := "10:00"
		got := ComputeNet("09:00", 0, &breakStart, at("12:00"))
		if got != 60 {
			t.Fatalf("expected clock paused at break start (60 minutes), got %d", got)
		}
	})

	t.Run("start after now clamps to zero", func(t *testing.T) {
		if got := ComputeNet("14:00", 0, nil, at("09:00")); got != 0 {
			t.Fatalf("expected 0 for start in the future, got %d", got)
		}
	})
}

func TestNetForInterval(t *testing.T) {
	net, err := NetForInterval("09:00", "17:30", 45)
	if err != nil {
		t.Fatalf("NetForInterval failed: %v", err)
	}
	if net != 465 {
		t.Fatalf("expected 465 net minutes, got %d", net)
	}

	if _, err := NetForInterval("17:00", "09:00", 0); !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}

	// Breaks exceeding the interval clamp at zero rather than going negative.
	net, err = NetForInterval("09:00", "10:00", 120)
	if err != nil {
		t.Fatalf("NetForInterval failed: %v", err)
	}
	if net != 0 {
		t.Fatalf("expected 0 net minutes, got %d", net)
	}
}

func TestPacePerDay(t *testing.T) {
	if _, ok := PacePerDay(480, 0); ok {
		t.Fatal("expected no pace when no weekdays remain")
	}

	pace, ok := PacePerDay(0, 3)
	if !ok || pace != 0 {
		t.Fatalf("expected zero pace for zero remaining, got %d ok=%v", pace, ok)
	}

	pace, ok = PacePerDay(100, 3)
	if !ok || pace != 34 {
		t.Fatalf("expected ceil(100/3) = 34, got %d ok=%v", pace, ok)
	}

	pace, ok = PacePerDay(90, 3)
	if !ok || pace != 30 {
		t.Fatalf("expected 30, got %d ok=%v", pace, ok)
	}
}
