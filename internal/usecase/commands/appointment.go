package commands

import (
	"context"
	"errors"

	"vetclinic/internal/domain/appointment"
	"vetclinic/internal/domain/user"
	reqdto "vetclinic/internal/handler/dto/request"
	"vetclinic/internal/pkg/clock"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentCommands interface {
	Book(ctx context.Context, actor user.Actor, req reqdto.BookAppointmentRequest) (uuid.UUID, error)
	Approve(ctx context.Context, actor user.Actor, id uuid.UUID) error
	Reject(ctx context.Context, actor user.Actor, id uuid.UUID, reason string) error
	Complete(ctx context.Context, actor user.Actor, id uuid.UUID) error
	Cancel(ctx context.Context, actor user.Actor, id uuid.UUID) error
	MarkNoShow(ctx context.Context, actor user.Actor, id uuid.UUID) error
	Reschedule(ctx context.Context, actor user.Actor, id uuid.UUID, req reqdto.RescheduleAppointmentRequest) error
	Delete(ctx context.Context, actor user.Actor, id uuid.UUID) error
}

type appointmentCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAppointmentCommands(uow shared.UnitOfWork, clock clock.Clock) AppointmentCommands {
	return &appointmentCommandsImpl{uow: uow, clock: clock}
}

// Book re-checks the provider's calendar inside the transaction, after taking
// a provider-scoped lock, so two concurrent requests for the same window
// cannot both pass the overlap test.
func (c *appointmentCommandsImpl) Book(ctx context.Context, actor user.Actor, req reqdto.BookAppointmentRequest) (uuid.UUID, error) {
	appt, err := req.ToDomain(actor, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidInput)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Appointments().LockProviderCalendar(ctx, tx.DB(), appt.ProviderID()); err != nil {
			return err
		}

		slot := appt.Slot()
		overlaps, err := tx.Appointments().HasActiveOverlap(ctx, tx.DB(), appt.ProviderID(), slot.Start(), slot.End(), uuid.Nil)
		if err != nil {
			return err
		}
		if overlaps {
			return errs.ErrSlotConflict
		}

		id, err = tx.Appointments().Create(ctx, tx.DB(), appt)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *appointmentCommandsImpl) Approve(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return errs.ErrForbidden
	}
	return c.transition(ctx, id, func(a *appointment.Appointment) error {
		return a.Approve()
	})
}

func (c *appointmentCommandsImpl) Reject(ctx context.Context, actor user.Actor, id uuid.UUID, reason string) error {
	if !actor.IsStaff() {
		return errs.ErrForbidden
	}
	return c.transition(ctx, id, func(a *appointment.Appointment) error {
		if err := a.Reject(reason); err != nil {
			if errors.Is(err, appointment.ErrEmptyRejectReason) {
				return errs.Mark(err, errs.ErrInvalidInput)
			}
			return err
		}
		return nil
	})
}

func (c *appointmentCommandsImpl) Complete(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return errs.ErrForbidden
	}
	return c.transition(ctx, id, func(a *appointment.Appointment) error {
		return a.Complete()
	})
}

// Cancel is allowed for the creator of the appointment and for staff.
func (c *appointmentCommandsImpl) Cancel(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().FindForUpdate(ctx, tx.DB(), id)
		if err != nil {
			return mapAppointmentRepoErr(err)
		}
		if !actor.IsStaff() && !actor.Owns(appt.CreatorID()) {
			return errs.ErrNotOwner
		}
		if err := appt.Cancel(); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		return tx.Appointments().Update(ctx, tx.DB(), appt)
	})
}

func (c *appointmentCommandsImpl) MarkNoShow(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return errs.ErrForbidden
	}
	return c.transition(ctx, id, func(a *appointment.Appointment) error {
		return a.MarkNoShow()
	})
}

// Reschedule validates the new window under the same provider lock as Book,
// excluding the appointment's own row from the overlap test. Nothing is
// persisted when the new window conflicts.
func (c *appointmentCommandsImpl) Reschedule(ctx context.Context, actor user.Actor, id uuid.UUID, req reqdto.RescheduleAppointmentRequest) error {
	slot, err := appointment.NewTimeSlot(req.StartTime, req.DurationMinutes)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidInput)
	}
	if err := slot.ValidateBookable(c.clock.Now(), actor.IsStaff()); err != nil {
		return errs.Mark(err, errs.ErrInvalidInput)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().FindForUpdate(ctx, tx.DB(), id)
		if err != nil {
			return mapAppointmentRepoErr(err)
		}
		if !actor.IsStaff() && !actor.Owns(appt.CreatorID()) {
			return errs.ErrNotOwner
		}

		if err := tx.Appointments().LockProviderCalendar(ctx, tx.DB(), appt.ProviderID()); err != nil {
			return err
		}
		overlaps, err := tx.Appointments().HasActiveOverlap(ctx, tx.DB(), appt.ProviderID(), slot.Start(), slot.End(), appt.ID())
		if err != nil {
			return err
		}
		if overlaps {
			return errs.ErrSlotConflict
		}

		if err := appt.Reschedule(slot); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		return tx.Appointments().Update(ctx, tx.DB(), appt)
	})
}

// Delete removes the appointment row entirely. Admin only.
func (c *appointmentCommandsImpl) Delete(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return mapAppointmentRepoErr(tx.Appointments().Delete(ctx, tx.DB(), id))
	})
}

func (c *appointmentCommandsImpl) transition(ctx context.Context, id uuid.UUID, mutate func(*appointment.Appointment) error) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().FindForUpdate(ctx, tx.DB(), id)
		if err != nil {
			return mapAppointmentRepoErr(err)
		}
		if err := mutate(appt); err != nil {
			if errors.Is(err, appointment.ErrInvalidTransition) {
				return errs.Mark(err, errs.ErrInvalidTransition)
			}
			return err
		}
		return tx.Appointments().Update(ctx, tx.DB(), appt)
	})
}
