//go:build unit

package appointment_test

import (
	"math/rand"
	"testing"
	"time"

	"vetclinic/internal/domain/appointment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, start time.Time, minutes int) appointment.TimeSlot {
	t.Helper()
	slot, err := appointment.NewTimeSlot(start, minutes)
	require.NoError(t, err)
	return slot
}

func TestNewTimeSlot(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("valid slot", func(t *testing.T) {
		slot, err := appointment.NewTimeSlot(start, 30)
		require.NoError(t, err)
		assert.Equal(t, start, slot.Start())
		assert.Equal(t, start.Add(30*time.Minute), slot.End())
		assert.Equal(t, 30, slot.DurationMinutes())
	})

	t.Run("zero duration rejected", func(t *testing.T) {
		_, err := appointment.NewTimeSlot(start, 0)
		assert.ErrorIs(t, err, appointment.ErrNonPositiveDuration)
	})

	t.Run("negative duration rejected", func(t *testing.T) {
		_, err := appointment.NewTimeSlot(start, -15)
		assert.ErrorIs(t, err, appointment.ErrNonPositiveDuration)
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		a, b    appointment.TimeSlot
		overlap bool
	}{
		{
			name:    "identical slots overlap",
			a:       mustSlot(t, base, 30),
			b:       mustSlot(t, base, 30),
			overlap: true,
		},
		{
			name:    "back-to-back slots share a boundary and do not overlap",
			a:       mustSlot(t, base, 30),
			b:       mustSlot(t, base.Add(30*time.Minute), 30),
			overlap: false,
		},
		{
			name:    "partial overlap at the tail",
			a:       mustSlot(t, base, 30),
			b:       mustSlot(t, base.Add(15*time.Minute), 30),
			overlap: true,
		},
		{
			name:    "one slot contained in the other",
			a:       mustSlot(t, base, 60),
			b:       mustSlot(t, base.Add(15*time.Minute), 15),
			overlap: true,
		},
		{
			name:    "disjoint slots",
			a:       mustSlot(t, base, 30),
			b:       mustSlot(t, base.Add(2*time.Hour), 30),
			overlap: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.overlap, tc.b.Overlaps(tc.a))
		})
	}
}

func TestTimeSlotOverlapsProperty(t *testing.T) {
	base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(20250602))

	for i := 0; i < 500; i++ {
		a := mustSlot(t, base.Add(time.Duration(rng.Intn(12*60))*time.Minute), 1+rng.Intn(180))
		b := mustSlot(t, base.Add(time.Duration(rng.Intn(12*60))*time.Minute), 1+rng.Intn(180))

		// Half-open intervals share an instant iff the later start precedes
		// the earlier end.
		latestStart := a.Start()
		if b.Start().After(latestStart) {
			latestStart = b.Start()
		}
		earliestEnd := a.End()
		if b.End().Before(earliestEnd) {
			earliestEnd = b.End()
		}
		want := latestStart.Before(earliestEnd)

		assert.Equal(t, want, a.Overlaps(b),
			"a=[%v,%v) b=[%v,%v)", a.Start(), a.End(), b.Start(), b.End())
		assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
	}
}

func TestTimeSlotValidateBookable(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	t.Run("future slot is bookable", func(t *testing.T) {
		slot := mustSlot(t, now.Add(time.Hour), 30)
		assert.NoError(t, slot.ValidateBookable(now, false))
	})

	t.Run("past slot rejected for customers", func(t *testing.T) {
		slot := mustSlot(t, now.Add(-time.Hour), 30)
		assert.ErrorIs(t, slot.ValidateBookable(now, false), appointment.ErrStartTimeInPast)
	})

	t.Run("past slot allowed for staff", func(t *testing.T) {
		slot := mustSlot(t, now.Add(-time.Hour), 30)
		assert.NoError(t, slot.ValidateBookable(now, true))
	})
}

func TestTimeSlotIsEntirelyInPast(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	assert.True(t, mustSlot(t, now.Add(-time.Hour), 30).IsEntirelyInPast(now))
	assert.False(t, mustSlot(t, now.Add(-15*time.Minute), 30).IsEntirelyInPast(now))
	assert.False(t, mustSlot(t, now.Add(time.Hour), 30).IsEntirelyInPast(now))
}
