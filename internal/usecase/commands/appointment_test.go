//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"vetclinic/internal/domain/appointment"
	"vetclinic/internal/domain/user"
	reqdto "vetclinic/internal/handler/dto/request"
	"vetclinic/internal/pkg/clock"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func newAppointmentService(uow *fakeUow) commands.AppointmentCommands {
	return commands.NewAppointmentCommands(uow, clock.NewMockClock(testNow))
}

func bookRequest(providerID uuid.UUID, start time.Time, minutes int) reqdto.BookAppointmentRequest {
	return reqdto.BookAppointmentRequest{
		PetID:           uuid.New(),
		ProviderID:      providerID,
		ServiceType:     string(appointment.ServiceMedical),
		StartTime:       start,
		DurationMinutes: minutes,
	}
}

func seedBooked(t *testing.T, uow *fakeUow, actor user.Actor, providerID uuid.UUID, start time.Time, minutes int) uuid.UUID {
	t.Helper()
	id, err := newAppointmentService(uow).Book(context.Background(), actor, bookRequest(providerID, start, minutes))
	require.NoError(t, err)
	return id
}

func TestBookAppointment(t *testing.T) {
	ctx := context.Background()
	customer := user.NewActor(uuid.New(), user.RoleCustomer)
	staff := user.NewActor(uuid.New(), user.RoleStaff)
	providerID := uuid.New()
	start := testNow.Add(24 * time.Hour)

	t.Run("customer booking is stored pending", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)

		id, err := svc.Book(ctx, customer, bookRequest(providerID, start, 30))
		require.NoError(t, err)

		appt := uow.state.appointments[id]
		require.NotNil(t, appt)
		assert.Equal(t, appointment.StatusPending, appt.Status())
		assert.Equal(t, customer.ID, appt.CreatorID())
	})

	t.Run("staff booking is stored approved", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)

		id, err := svc.Book(ctx, staff, bookRequest(providerID, start, 30))
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusApproved, uow.state.appointments[id].Status())
	})

	t.Run("overlapping window is rejected", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		seedBooked(t, uow, customer, providerID, start, 30)

		_, err := svc.Book(ctx, customer, bookRequest(providerID, start.Add(15*time.Minute), 30))
		assert.ErrorIs(t, err, errs.ErrSlotConflict)
		assert.Len(t, uow.state.appointments, 1)
	})

	t.Run("back-to-back window is accepted", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		seedBooked(t, uow, customer, providerID, start, 30)

		_, err := svc.Book(ctx, customer, bookRequest(providerID, start.Add(30*time.Minute), 30))
		assert.NoError(t, err)
	})

	t.Run("cancelled appointments do not block the window", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		id := seedBooked(t, uow, customer, providerID, start, 30)
		require.NoError(t, svc.Cancel(ctx, customer, id))

		_, err := svc.Book(ctx, customer, bookRequest(providerID, start, 30))
		assert.NoError(t, err)
	})

	t.Run("same window on another provider is accepted", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		seedBooked(t, uow, customer, providerID, start, 30)

		_, err := svc.Book(ctx, customer, bookRequest(uuid.New(), start, 30))
		assert.NoError(t, err)
	})

	t.Run("invalid service type is invalid input", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)

		req := bookRequest(providerID, start, 30)
		req.ServiceType = "DENTAL"
		_, err := svc.Book(ctx, customer, req)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
		assert.Zero(t, uow.withinCalls)
	})

	t.Run("customer cannot book in the past", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)

		_, err := svc.Book(ctx, customer, bookRequest(providerID, testNow.Add(-time.Hour), 30))
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestAppointmentLifecycleCommands(t *testing.T) {
	ctx := context.Background()
	customer := user.NewActor(uuid.New(), user.RoleCustomer)
	staff := user.NewActor(uuid.New(), user.RoleStaff)
	providerID := uuid.New()
	start := testNow.Add(24 * time.Hour)

	t.Run("staff approves a pending appointment", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		id := seedBooked(t, uow, customer, providerID, start, 30)

		require.NoError(t, svc.Approve(ctx, staff, id))
		assert.Equal(t, appointment.StatusApproved, uow.state.appointments[id].Status())
	})

	t.Run("customers cannot run staff transitions", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		id := seedBooked(t, uow, customer, providerID, start, 30)

		assert.ErrorIs(t, svc.Approve(ctx, customer, id), errs.ErrForbidden)
		assert.ErrorIs(t, svc.Reject(ctx, customer, id, "nope"), errs.ErrForbidden)
		assert.ErrorIs(t, svc.Complete(ctx, customer, id), errs.ErrForbidden)
		assert.ErrorIs(t, svc.MarkNoShow(ctx, customer, id), errs.ErrForbidden)
	})

	t.Run("double approve is an invalid transition", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		id := seedBooked(t, uow, customer, providerID, start, 30)
		require.NoError(t, svc.Approve(ctx, staff, id))

		assert.ErrorIs(t, svc.Approve(ctx, staff, id), errs.ErrInvalidTransition)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		id := seedBooked(t, uow, customer, providerID, start, 30)

		assert.ErrorIs(t, svc.Reject(ctx, staff, id, "  "), errs.ErrInvalidInput)

		require.NoError(t, svc.Reject(ctx, staff, id, "no availability"))
		appt := uow.state.appointments[id]
		assert.Equal(t, appointment.StatusRejected, appt.Status())
		assert.Equal(t, "no availability", appt.Notes())
	})

	t.Run("owner cancels own appointment, strangers cannot", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		id := seedBooked(t, uow, customer, providerID, start, 30)

		stranger := user.NewActor(uuid.New(), user.RoleCustomer)
		assert.ErrorIs(t, svc.Cancel(ctx, stranger, id), errs.ErrNotOwner)

		require.NoError(t, svc.Cancel(ctx, customer, id))
		assert.Equal(t, appointment.StatusCancelled, uow.state.appointments[id].Status())
	})

	t.Run("no-show only from approved", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		id := seedBooked(t, uow, customer, providerID, start, 30)

		assert.ErrorIs(t, svc.MarkNoShow(ctx, staff, id), errs.ErrInvalidTransition)
		require.NoError(t, svc.Approve(ctx, staff, id))
		require.NoError(t, svc.MarkNoShow(ctx, staff, id))
	})

	t.Run("unknown appointment maps to not found", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		assert.ErrorIs(t, svc.Approve(ctx, staff, uuid.New()), errs.ErrAppointmentNotFound)
	})
}

func TestRescheduleAppointment(t *testing.T) {
	ctx := context.Background()
	customer := user.NewActor(uuid.New(), user.RoleCustomer)
	staff := user.NewActor(uuid.New(), user.RoleStaff)
	providerID := uuid.New()
	start := testNow.Add(24 * time.Hour)

	setup := func(t *testing.T) (*fakeUow, commands.AppointmentCommands, uuid.UUID) {
		t.Helper()
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		id := seedBooked(t, uow, customer, providerID, start, 30)
		require.NoError(t, svc.Approve(ctx, staff, id))
		return uow, svc, id
	}

	t.Run("moves the slot when the new window is free", func(t *testing.T) {
		uow, svc, id := setup(t)
		newStart := start.Add(2 * time.Hour)

		req := reqdto.RescheduleAppointmentRequest{StartTime: newStart, DurationMinutes: 45}
		require.NoError(t, svc.Reschedule(ctx, customer, id, req))

		appt := uow.state.appointments[id]
		assert.Equal(t, newStart, appt.Slot().Start())
		assert.Equal(t, 45, appt.Slot().DurationMinutes())
	})

	t.Run("own row is excluded from the overlap test", func(t *testing.T) {
		_, svc, id := setup(t)

		// Shift by 15 minutes; the only overlap is with the appointment itself.
		req := reqdto.RescheduleAppointmentRequest{StartTime: start.Add(15 * time.Minute), DurationMinutes: 30}
		assert.NoError(t, svc.Reschedule(ctx, customer, id, req))
	})

	t.Run("conflicting window leaves the slot unchanged", func(t *testing.T) {
		uow, svc, id := setup(t)
		otherStart := start.Add(3 * time.Hour)
		seedBooked(t, uow, customer, providerID, otherStart, 30)

		req := reqdto.RescheduleAppointmentRequest{StartTime: otherStart, DurationMinutes: 30}
		assert.ErrorIs(t, svc.Reschedule(ctx, customer, id, req), errs.ErrSlotConflict)
		assert.Equal(t, start, uow.state.appointments[id].Slot().Start())
	})

	t.Run("pending appointment cannot be rescheduled", func(t *testing.T) {
		uow := newFakeUow()
		svc := newAppointmentService(uow)
		id := seedBooked(t, uow, customer, providerID, start, 30)

		req := reqdto.RescheduleAppointmentRequest{StartTime: start.Add(2 * time.Hour), DurationMinutes: 30}
		assert.ErrorIs(t, svc.Reschedule(ctx, customer, id, req), errs.ErrInvalidTransition)
	})

	t.Run("only the owner or staff may reschedule", func(t *testing.T) {
		_, svc, id := setup(t)
		stranger := user.NewActor(uuid.New(), user.RoleCustomer)

		req := reqdto.RescheduleAppointmentRequest{StartTime: start.Add(2 * time.Hour), DurationMinutes: 30}
		assert.ErrorIs(t, svc.Reschedule(ctx, stranger, id, req), errs.ErrNotOwner)
	})
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	customer := user.NewActor(uuid.New(), user.RoleCustomer)
	admin := user.NewActor(uuid.New(), user.RoleAdmin)
	providerID := uuid.New()

	uow := newFakeUow()
	svc := newAppointmentService(uow)
	id := seedBooked(t, uow, customer, providerID, testNow.Add(24*time.Hour), 30)

	assert.ErrorIs(t, svc.Delete(ctx, customer, id), errs.ErrForbidden)
	staff := user.NewActor(uuid.New(), user.RoleStaff)
	assert.ErrorIs(t, svc.Delete(ctx, staff, id), errs.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, admin, id))
	assert.Empty(t, uow.state.appointments)
	assert.ErrorIs(t, svc.Delete(ctx, admin, id), errs.ErrAppointmentNotFound)
}
