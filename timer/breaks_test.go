package timer

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var baseTime = time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

func ts(offset time.Duration) time.Time {
	return baseTime.Add(offset)
}

func TestBreakTrackerOpenClose(t *testing.T) {
	var bt BreakTracker

	if bt.HasOpenBreak() {
		t.Fatal("zero-value tracker should have no open break")
	}

	err := bt.CloseBreak(ts(10 * time.Minute))
	if !errors.Is(err, errNoOpenBreak) {
		t.Fatalf("expected errNoOpenBreak, got: %v", err)
	}

	if err := bt.OpenBreak(ts(10 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	if !bt.HasOpenBreak() {
		t.Fatal("expected an open break")
	}

	err = bt.OpenBreak(ts(12 * time.Minute))
	if !errors.Is(err, errBreakAlreadyOpen) {
		t.Fatalf("expected errBreakAlreadyOpen, got: %v", err)
	}

	err = bt.CloseBreak(ts(5 * time.Minute))
	if !errors.Is(err, errTimestampBeforeBreak) {
		t.Fatalf("expected errTimestampBeforeBreak, got: %v", err)
	}

	if !bt.HasOpenBreak() {
		t.Fatal("a failed close should leave the break open")
	}

	if err := bt.CloseBreak(ts(25 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	want := []BreakInterval{
		{PausedAt: ts(10 * time.Minute), ResumedAt: ts(25 * time.Minute)},
	}

	if diff := cmp.Diff(want, bt.Intervals()); diff != "" {
		t.Errorf("intervals mismatch (-want +got):\n%s", diff)
	}
}

func TestBreakTrackerTotalDuration(t *testing.T) {
	var bt BreakTracker

	spans := []struct{ open, close time.Duration }{
		{10 * time.Minute, 25 * time.Minute},
		{40 * time.Minute, 42 * time.Minute},
	}

	for _, s := range spans {
		if err := bt.OpenBreak(ts(s.open)); err != nil {
			t.Fatal(err)
		}

		if err := bt.CloseBreak(ts(s.close)); err != nil {
			t.Fatal(err)
		}
	}

	if got := bt.TotalBreakDuration(ts(time.Hour)); got != 17*time.Minute {
		t.Errorf("expected 17m of closed breaks, got %s", got)
	}

	if err := bt.OpenBreak(ts(50 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	// The open break counts up to asOf without being closed.
	if got := bt.TotalBreakDuration(ts(time.Hour)); got != 27*time.Minute {
		t.Errorf("expected 27m including the open break, got %s", got)
	}

	if !bt.HasOpenBreak() {
		t.Fatal("querying the total should not close the open break")
	}

	// An asOf before the open break started adds nothing for it.
	if got := bt.TotalBreakDuration(ts(45 * time.Minute)); got != 17*time.Minute {
		t.Errorf("expected 17m before the open break, got %s", got)
	}
}

func TestBreaksRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		setup func(bt *BreakTracker)
	}{
		{
			name:  "no breaks",
			setup: func(*BreakTracker) {},
		},
		{
			name: "one closed break",
			setup: func(bt *BreakTracker) {
				_ = bt.OpenBreak(ts(10 * time.Minute))
				_ = bt.CloseBreak(ts(20 * time.Minute))
			},
		},
		{
			name: "several closed breaks",
			setup: func(bt *BreakTracker) {
				_ = bt.OpenBreak(ts(10 * time.Minute))
				_ = bt.CloseBreak(ts(20 * time.Minute))
				_ = bt.OpenBreak(ts(30 * time.Minute))
				_ = bt.CloseBreak(ts(31 * time.Minute))
				_ = bt.OpenBreak(ts(45 * time.Minute))
				_ = bt.CloseBreak(ts(58 * time.Minute))
			},
		},
		{
			name: "closed breaks and an open one",
			setup: func(bt *BreakTracker) {
				_ = bt.OpenBreak(ts(10 * time.Minute))
				_ = bt.CloseBreak(ts(20 * time.Minute))
				_ = bt.OpenBreak(ts(40 * time.Minute))
			},
		},
		{
			name: "open break only",
			setup: func(bt *BreakTracker) {
				_ = bt.OpenBreak(ts(3 * time.Minute))
			},
		},
		{
			name: "sub-second precision survives",
			setup: func(bt *BreakTracker) {
				_ = bt.OpenBreak(ts(10*time.Minute + 123456789*time.Nanosecond))
				_ = bt.CloseBreak(ts(20*time.Minute + 987654321*time.Nanosecond))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var bt BreakTracker

			tc.setup(&bt)

			decoded, err := DecodeBreaks(bt.Encode())
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(bt.Intervals(), decoded.Intervals()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			if bt.HasOpenBreak() != decoded.HasOpenBreak() {
				t.Error("open break state lost in round trip")
			}
		})
	}
}

func TestDecodeBreaksInvalid(t *testing.T) {
	valid := func() []byte {
		var bt BreakTracker

		_ = bt.OpenBreak(ts(10 * time.Minute))
		_ = bt.CloseBreak(ts(20 * time.Minute))

		return bt.Encode()
	}()

	doubleOpen := []byte{breaksVersion}
	doubleOpen = binary.AppendUvarint(doubleOpen, 2)
	doubleOpen = binary.AppendVarint(doubleOpen, ts(10*time.Minute).UnixNano())
	doubleOpen = binary.AppendVarint(doubleOpen, 0)
	doubleOpen = binary.AppendVarint(doubleOpen, ts(20*time.Minute).UnixNano())
	doubleOpen = binary.AppendVarint(doubleOpen, 0)

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "empty blob",
			data: nil,
			want: errBreaksEmpty,
		},
		{
			name: "unknown version",
			data: []byte{99},
			want: errBreaksVersion,
		},
		{
			name: "count without intervals",
			data: valid[:2],
			want: errBreaksCorrupt,
		},
		{
			name: "truncated interval",
			data: valid[:len(valid)-1],
			want: errBreaksCorrupt,
		},
		{
			name: "trailing bytes",
			data: append(append([]byte{}, valid...), 0x00),
			want: errBreaksCorrupt,
		},
		{
			name: "second open break",
			data: doubleOpen,
			want: errBreaksCorrupt,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBreaks(tc.data)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got: %v", tc.want, err)
			}
		})
	}
}
