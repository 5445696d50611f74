package appointment

import (
	"errors"
	"time"
)

var (
	ErrNonPositiveDuration = errors.New("duration must be positive")
	ErrStartTimeInPast     = errors.New("start time cannot be in the past")
)

// TimeSlot is a half-open interval [start, start+duration) on a provider's
// calendar. Back-to-back slots share a boundary and do not overlap.
type TimeSlot struct {
	start    time.Time
	duration time.Duration
}

func NewTimeSlot(start time.Time, durationMinutes int) (TimeSlot, error) {
	if durationMinutes <= 0 {
		return TimeSlot{}, ErrNonPositiveDuration
	}
	return TimeSlot{
		start:    start,
		duration: time.Duration(durationMinutes) * time.Minute,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.start.Add(ts.duration)
}

func (ts TimeSlot) DurationMinutes() int {
	return int(ts.duration / time.Minute)
}

// Overlaps uses the half-open test: [a,b) and [c,d) overlap iff a < d && c < b.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.End()) && other.start.Before(ts.End())
}

func (ts TimeSlot) IsEntirelyInPast(now time.Time) bool {
	return !ts.End().After(now)
}

// ValidateBookable rejects slots that start in the past. Staff may record
// historical visits, so the check is waived for them.
func (ts TimeSlot) ValidateBookable(now time.Time, allowPast bool) error {
	if allowPast {
		return nil
	}
	if ts.start.Before(now) {
		return ErrStartTimeInPast
	}
	return nil
}
