package timeutil

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		Duration time.Duration
		Want     string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{2*time.Minute + 3*time.Second, "2m 03s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h 02m 03s"},
		{25 * time.Hour, "25h 00m 00s"},
		{-time.Minute, "0s"},
		{1500 * time.Millisecond, "1s"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.Duration); got != tc.Want {
			t.Errorf(
				"FormatDuration(%v): expected %q, got %q",
				tc.Duration,
				tc.Want,
				got,
			)
		}
	}
}

func TestRoundToStart(t *testing.T) {
	in := time.Date(2024, time.March, 5, 14, 30, 45, 123, time.UTC)
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	if got := RoundToStart(in); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRoundToEnd(t *testing.T) {
	in := time.Date(2024, time.March, 5, 14, 30, 45, 123, time.UTC)
	want := time.Date(2024, time.March, 5, 23, 59, 59, 0, time.UTC)

	if got := RoundToEnd(in); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
