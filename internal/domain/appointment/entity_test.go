//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"vetclinic/internal/domain/appointment"
	"vetclinic/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppointment(t *testing.T, status appointment.Status) *appointment.Appointment {
	t.Helper()
	slot := mustSlot(t, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), 30)
	return appointment.ReconstructAppointment(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		appointment.ServiceMedical, slot,
		"annual checkup", "", status,
		time.Now(), time.Now(),
	)
}

func TestNewAppointment(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	slot := mustSlot(t, now.Add(time.Hour), 30)
	petID, providerID := uuid.New(), uuid.New()

	t.Run("customer bookings start pending", func(t *testing.T) {
		actor := user.NewActor(uuid.New(), user.RoleCustomer)
		appt, err := appointment.NewAppointment(actor, petID, providerID, appointment.ServiceMedical, slot, "checkup", now)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusPending, appt.Status())
		assert.Equal(t, actor.ID, appt.CreatorID())
	})

	t.Run("staff bookings start approved", func(t *testing.T) {
		actor := user.NewActor(uuid.New(), user.RoleStaff)
		appt, err := appointment.NewAppointment(actor, petID, providerID, appointment.ServiceGrooming, slot, "", now)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusApproved, appt.Status())
	})

	t.Run("customer cannot book in the past", func(t *testing.T) {
		actor := user.NewActor(uuid.New(), user.RoleCustomer)
		pastSlot := mustSlot(t, now.Add(-time.Hour), 30)
		_, err := appointment.NewAppointment(actor, petID, providerID, appointment.ServiceMedical, pastSlot, "", now)
		assert.ErrorIs(t, err, appointment.ErrStartTimeInPast)
	})

	t.Run("staff may record past visits", func(t *testing.T) {
		actor := user.NewActor(uuid.New(), user.RoleAdmin)
		pastSlot := mustSlot(t, now.Add(-time.Hour), 30)
		appt, err := appointment.NewAppointment(actor, petID, providerID, appointment.ServiceMedical, pastSlot, "", now)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusApproved, appt.Status())
	})

	t.Run("invalid service type rejected", func(t *testing.T) {
		actor := user.NewActor(uuid.New(), user.RoleCustomer)
		_, err := appointment.NewAppointment(actor, petID, providerID, appointment.ServiceType("DENTAL"), slot, "", now)
		assert.ErrorIs(t, err, appointment.ErrInvalidServiceType)
	})
}

func TestAppointmentTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    appointment.Status
		mutate  func(*appointment.Appointment) error
		want    appointment.Status
		wantErr error
	}{
		{
			name:   "approve pending",
			from:   appointment.StatusPending,
			mutate: func(a *appointment.Appointment) error { return a.Approve() },
			want:   appointment.StatusApproved,
		},
		{
			name:    "approve approved fails",
			from:    appointment.StatusApproved,
			mutate:  func(a *appointment.Appointment) error { return a.Approve() },
			wantErr: appointment.ErrInvalidTransition,
		},
		{
			name:   "reject pending with reason",
			from:   appointment.StatusPending,
			mutate: func(a *appointment.Appointment) error { return a.Reject("no availability") },
			want:   appointment.StatusRejected,
		},
		{
			name:    "reject without reason fails",
			from:    appointment.StatusPending,
			mutate:  func(a *appointment.Appointment) error { return a.Reject("  ") },
			wantErr: appointment.ErrEmptyRejectReason,
		},
		{
			name:   "complete approved",
			from:   appointment.StatusApproved,
			mutate: func(a *appointment.Appointment) error { return a.Complete() },
			want:   appointment.StatusCompleted,
		},
		{
			name:    "complete pending fails",
			from:    appointment.StatusPending,
			mutate:  func(a *appointment.Appointment) error { return a.Complete() },
			wantErr: appointment.ErrInvalidTransition,
		},
		{
			name:   "cancel pending",
			from:   appointment.StatusPending,
			mutate: func(a *appointment.Appointment) error { return a.Cancel() },
			want:   appointment.StatusCancelled,
		},
		{
			name:   "cancel approved",
			from:   appointment.StatusApproved,
			mutate: func(a *appointment.Appointment) error { return a.Cancel() },
			want:   appointment.StatusCancelled,
		},
		{
			name:    "cancel completed fails",
			from:    appointment.StatusCompleted,
			mutate:  func(a *appointment.Appointment) error { return a.Cancel() },
			wantErr: appointment.ErrInvalidTransition,
		},
		{
			name:   "no-show approved",
			from:   appointment.StatusApproved,
			mutate: func(a *appointment.Appointment) error { return a.MarkNoShow() },
			want:   appointment.StatusNoShow,
		},
		{
			name:    "no-show pending fails",
			from:    appointment.StatusPending,
			mutate:  func(a *appointment.Appointment) error { return a.MarkNoShow() },
			wantErr: appointment.ErrInvalidTransition,
		},
		{
			name:    "cancel cancelled fails",
			from:    appointment.StatusCancelled,
			mutate:  func(a *appointment.Appointment) error { return a.Cancel() },
			wantErr: appointment.ErrInvalidTransition,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appt := newTestAppointment(t, tc.from)
			err := tc.mutate(appt)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.from, appt.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, appt.Status())
		})
	}
}

func TestAppointmentReject_StoresReasonInNotes(t *testing.T) {
	appt := newTestAppointment(t, appointment.StatusPending)
	require.NoError(t, appt.Reject("provider unavailable"))
	assert.Equal(t, "provider unavailable", appt.Notes())
}

func TestAppointmentReschedule(t *testing.T) {
	newSlot := mustSlot(t, time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC), 45)

	t.Run("approved appointment can be rescheduled", func(t *testing.T) {
		appt := newTestAppointment(t, appointment.StatusApproved)
		require.NoError(t, appt.Reschedule(newSlot))
		assert.Equal(t, newSlot, appt.Slot())
		assert.Equal(t, appointment.StatusApproved, appt.Status())
	})

	t.Run("pending appointment cannot be rescheduled", func(t *testing.T) {
		appt := newTestAppointment(t, appointment.StatusPending)
		original := appt.Slot()
		assert.ErrorIs(t, appt.Reschedule(newSlot), appointment.ErrInvalidTransition)
		assert.Equal(t, original, appt.Slot())
	})

	t.Run("terminal appointment cannot be rescheduled", func(t *testing.T) {
		appt := newTestAppointment(t, appointment.StatusCompleted)
		assert.ErrorIs(t, appt.Reschedule(newSlot), appointment.ErrInvalidTransition)
	})
}

func TestStatusIsActive(t *testing.T) {
	assert.True(t, appointment.StatusPending.IsActive())
	assert.True(t, appointment.StatusApproved.IsActive())
	assert.False(t, appointment.StatusRejected.IsActive())
	assert.False(t, appointment.StatusCompleted.IsActive())
	assert.False(t, appointment.StatusCancelled.IsActive())
	assert.False(t, appointment.StatusNoShow.IsActive())
}
