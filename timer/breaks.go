package timer

import (
	"encoding/binary"
	"time"
)

// breaksVersion is the current version of the binary break history
// encoding. It occupies the first byte of every encoded blob so that
// future readers can recognize older records.
const breaksVersion = 1

// BreakInterval is one contiguous paused span within a timer's lifetime.
// A zero ResumedAt marks the interval as still open.
type BreakInterval struct {
	PausedAt  time.Time
	ResumedAt time.Time
}

// Open reports whether the interval has not been closed yet.
func (b BreakInterval) Open() bool {
	return b.ResumedAt.IsZero()
}

// Duration returns the length of a closed interval. Open intervals have no
// duration until they are closed.
func (b BreakInterval) Duration() time.Duration {
	if b.Open() {
		return 0
	}

	return b.ResumedAt.Sub(b.PausedAt)
}

// BreakTracker records the pause history for a single timer. Closed
// intervals are kept apart from the open break so that no more than one
// break can ever be open at a time. The zero value is an empty tracker
// ready for use.
type BreakTracker struct {
	closed []BreakInterval
	open   *time.Time
}

// OpenBreak starts a new break at the given time.
func (bt *BreakTracker) OpenBreak(at time.Time) error {
	if bt.open != nil {
		return errBreakAlreadyOpen
	}

	t := at
	bt.open = &t

	return nil
}

// CloseBreak ends the open break at the given time. The tracker is left
// untouched if no break is open or if at precedes the start of the break.
func (bt *BreakTracker) CloseBreak(at time.Time) error {
	if bt.open == nil {
		return errNoOpenBreak
	}

	if at.Before(*bt.open) {
		return errTimestampBeforeBreak.Fmt(
			at.Format(time.RFC3339),
			bt.open.Format(time.RFC3339),
		)
	}

	bt.closed = append(bt.closed, BreakInterval{
		PausedAt:  *bt.open,
		ResumedAt: at,
	})
	bt.open = nil

	return nil
}

// HasOpenBreak reports whether a break is currently open.
func (bt *BreakTracker) HasOpenBreak() bool {
	return bt.open != nil
}

// TotalBreakDuration sums the durations of all closed intervals. An open
// break contributes the span from its start to asOf without being mutated.
func (bt *BreakTracker) TotalBreakDuration(asOf time.Time) time.Duration {
	var total time.Duration

	for _, b := range bt.closed {
		total += b.Duration()
	}

	if bt.open != nil && asOf.After(*bt.open) {
		total += asOf.Sub(*bt.open)
	}

	return total
}

// Intervals returns the full break history in chronological order with the
// open break, if any, in final position.
func (bt *BreakTracker) Intervals() []BreakInterval {
	intervals := make([]BreakInterval, 0, len(bt.closed)+1)
	intervals = append(intervals, bt.closed...)

	if bt.open != nil {
		intervals = append(intervals, BreakInterval{PausedAt: *bt.open})
	}

	return intervals
}

// Encode serializes the break history into its compact binary form: a
// version byte, the interval count, then one varint timestamp pair per
// interval. An open interval encodes its resume timestamp as zero. The
// output is deterministic for a given tracker state.
func (bt *BreakTracker) Encode() []byte {
	intervals := bt.Intervals()

	buf := make([]byte, 0, 1+binary.MaxVarintLen64*(1+2*len(intervals)))
	buf = append(buf, breaksVersion)
	buf = binary.AppendUvarint(buf, uint64(len(intervals)))

	for _, b := range intervals {
		buf = binary.AppendVarint(buf, b.PausedAt.UnixNano())

		var resumed int64
		if !b.Open() {
			resumed = b.ResumedAt.UnixNano()
		}

		buf = binary.AppendVarint(buf, resumed)
	}

	return buf
}

// DecodeBreaks reconstructs a BreakTracker from its binary form. It is the
// exact inverse of Encode.
func DecodeBreaks(data []byte) (*BreakTracker, error) {
	if len(data) == 0 {
		return nil, errBreaksEmpty
	}

	if data[0] != breaksVersion {
		return nil, errBreaksVersion.Fmt(data[0])
	}

	rest := data[1:]

	count, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, errBreaksCorrupt
	}

	rest = rest[n:]

	bt := &BreakTracker{}

	for i := uint64(0); i < count; i++ {
		paused, n := binary.Varint(rest)
		if n <= 0 {
			return nil, errBreaksCorrupt
		}

		rest = rest[n:]

		resumed, n := binary.Varint(rest)
		if n <= 0 {
			return nil, errBreaksCorrupt
		}

		rest = rest[n:]

		if resumed == 0 {
			if bt.open != nil {
				return nil, errBreaksCorrupt
			}

			t := time.Unix(0, paused).UTC()
			bt.open = &t

			continue
		}

		bt.closed = append(bt.closed, BreakInterval{
			PausedAt:  time.Unix(0, paused).UTC(),
			ResumedAt: time.Unix(0, resumed).UTC(),
		})
	}

	if len(rest) != 0 {
		return nil, errBreaksCorrupt
	}

	return bt, nil
}
