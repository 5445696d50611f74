package commands

import (
	"context"
	"log/slog"

	"vetclinic/internal/domain/inventory"
	"vetclinic/internal/domain/order"
	"vetclinic/internal/domain/user"
	reqdto "vetclinic/internal/handler/dto/request"
	"vetclinic/internal/infra"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderCommands interface {
	// Checkout converts the customer's cart into an order, reserving stock for
	// every line. All-or-nothing: one unreservable line aborts the whole
	// checkout.
	Checkout(ctx context.Context, actor user.Actor, req reqdto.CheckoutRequest) (uuid.UUID, error)
	// CancelOrder cancels the order and restocks every line. The restock runs
	// at most once because the status transition gates it.
	CancelOrder(ctx context.Context, actor user.Actor, orderID uuid.UUID) error
	AdvanceOrder(ctx context.Context, actor user.Actor, orderID uuid.UUID, status string) error
	MarkOrderPaid(ctx context.Context, actor user.Actor, orderID uuid.UUID) error
}

type orderCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewOrderCommands(uow shared.UnitOfWork) OrderCommands {
	return &orderCommandsImpl{uow: uow}
}

func (c *orderCommandsImpl) Checkout(ctx context.Context, actor user.Actor, req reqdto.CheckoutRequest) (uuid.UUID, error) {
	paymentMethod, err := order.NewPaymentMethod(req.PaymentMethod)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidInput)
	}

	// Pre-transaction emptiness check: an empty cart never opens a transaction.
	snap, err := c.uow.CommandReads().CartForCustomer(ctx, actor.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if len(snap.Items) == 0 {
		return uuid.Nil, errs.ErrEmptyCart
	}

	var orderID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Re-read under lock; the cart may have changed since the check above.
		locked, err := tx.Carts().ItemsForUpdate(ctx, tx.DB(), snap.ID)
		if err != nil {
			return mapCartRepoErr(err)
		}
		if locked.CustomerID != actor.ID {
			return errs.ErrNotOwner
		}
		if len(locked.Items) == 0 {
			return errs.ErrEmptyCart
		}

		for _, item := range locked.Items {
			if err := tx.Inventory().Reserve(ctx, tx.DB(), item.ProductID(), item.Quantity()); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					slog.Info("checkout aborted on insufficient stock",
						"customer_id", actor.ID,
						"product_id", item.ProductID(),
						"requested", item.Quantity())
					return errs.Mark(
						errs.Wrap(err, "product "+item.ProductID().String()),
						errs.ErrInsufficientStock)
				}
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(
						errs.Wrap(err, "product "+item.ProductID().String()),
						errs.ErrProductNotFound)
				}
				return errs.Mark(err, errs.ErrPersistenceFailure)
			}
		}

		ord, err := order.NewOrderFromCart(actor.ID, locked.Items, paymentMethod, req.ShippingAddress)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidInput)
		}

		orderID, err = tx.Orders().Create(ctx, tx.DB(), ord)
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}

		return mapCartRepoErr(tx.Carts().Clear(ctx, tx.DB(), locked.ID))
	})
	if err != nil {
		return uuid.Nil, err
	}
	return orderID, nil
}

func (c *orderCommandsImpl) CancelOrder(ctx context.Context, actor user.Actor, orderID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ord, err := tx.Orders().FindForUpdate(ctx, tx.DB(), orderID)
		if err != nil {
			return mapOrderRepoErr(err)
		}
		if !actor.IsStaff() && !ord.IsOwnedBy(actor.ID) {
			return errs.ErrNotOwner
		}

		// Transition first: a second cancel fails here and never reaches the
		// restock below.
		if err := ord.Cancel(); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), ord.ID(), ord.Status(), ord.PaymentStatus()); err != nil {
			return mapOrderRepoErr(err)
		}

		for _, item := range ord.Items() {
			if snap, readErr := tx.Reads().InventoryByProduct(ctx, item.ProductID()); readErr == nil {
				rec, recErr := inventory.NewRecord(snap.ProductID,
					snap.RegisteredQuantity, snap.RealQuantity,
					snap.MinStockLevel, snap.MaxStockLevel)
				if recErr == nil && rec.ExceedsMaxAfter(item.Quantity()) {
					slog.Warn("restock will exceed max stock level",
						"order_id", ord.ID(),
						"product_id", item.ProductID(),
						"quantity", item.Quantity(),
						"max_stock_level", rec.MaxStockLevel())
				}
			}

			if _, err := tx.Inventory().Restock(ctx, tx.DB(), item.ProductID(), item.Quantity()); err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					// Product was removed after the order shipped its snapshot;
					// nothing left to restock.
					slog.Warn("restock skipped for missing inventory record",
						"order_id", ord.ID(),
						"product_id", item.ProductID())
					continue
				}
				return errs.Mark(err, errs.ErrPersistenceFailure)
			}
		}
		return nil
	})
}

func (c *orderCommandsImpl) AdvanceOrder(ctx context.Context, actor user.Actor, orderID uuid.UUID, status string) error {
	if !actor.IsStaff() {
		return errs.ErrForbidden
	}
	next, err := order.NewStatus(status)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidInput)
	}
	if next == order.StatusCancelled {
		// Cancellation carries compensation and has its own path.
		return c.CancelOrder(ctx, actor, orderID)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ord, err := tx.Orders().FindForUpdate(ctx, tx.DB(), orderID)
		if err != nil {
			return mapOrderRepoErr(err)
		}
		if err := ord.AdvanceTo(next); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		return mapOrderRepoErr(tx.Orders().UpdateStatus(ctx, tx.DB(), ord.ID(), ord.Status(), ord.PaymentStatus()))
	})
}

func (c *orderCommandsImpl) MarkOrderPaid(ctx context.Context, actor user.Actor, orderID uuid.UUID) error {
	if !actor.IsStaff() {
		return errs.ErrForbidden
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ord, err := tx.Orders().FindForUpdate(ctx, tx.DB(), orderID)
		if err != nil {
			return mapOrderRepoErr(err)
		}
		ord.MarkPaid()
		return mapOrderRepoErr(tx.Orders().UpdateStatus(ctx, tx.DB(), ord.ID(), ord.Status(), ord.PaymentStatus()))
	})
}
