package commands

import (
	"vetclinic/internal/infra"
	"vetclinic/internal/pkg/errs"
)

// Repository errors cross into the usecase layer as sentinel-marked errors so
// handlers can branch with errors.Is.

func mapAppointmentRepoErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrAppointmentNotFound)
	}
	return errs.Mark(err, errs.ErrPersistenceFailure)
}

func mapOrderRepoErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrOrderNotFound)
	}
	return errs.Mark(err, errs.ErrPersistenceFailure)
}

func mapCartRepoErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrCartNotFound)
	}
	return errs.Mark(err, errs.ErrPersistenceFailure)
}
