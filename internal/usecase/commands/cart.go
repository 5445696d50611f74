package commands

import (
	"context"

	"vetclinic/internal/domain/cart"
	"vetclinic/internal/domain/user"
	reqdto "vetclinic/internal/handler/dto/request"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartCommands interface {
	// AddItem captures the product's current price into the cart line. Adding
	// the same product again merges quantities and keeps the captured price.
	AddItem(ctx context.Context, actor user.Actor, req reqdto.AddCartItemRequest) (uuid.UUID, error)
	UpdateItemQuantity(ctx context.Context, actor user.Actor, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, actor user.Actor, itemID uuid.UUID) error
	ClearCart(ctx context.Context, actor user.Actor) error
}

type cartCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewCartCommands(uow shared.UnitOfWork) CartCommands {
	return &cartCommandsImpl{uow: uow}
}

func (c *cartCommandsImpl) AddItem(ctx context.Context, actor user.Actor, req reqdto.AddCartItemRequest) (uuid.UUID, error) {
	if req.Quantity <= 0 {
		return uuid.Nil, errs.ErrInvalidInput
	}

	product, err := c.uow.CommandReads().ProductByID(ctx, req.ProductID)
	if err != nil {
		return uuid.Nil, err
	}
	if !product.Active {
		return uuid.Nil, errs.ErrProductNotFound
	}

	var itemID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cartID, err := tx.Carts().GetOrCreate(ctx, tx.DB(), actor.ID)
		if err != nil {
			return mapCartRepoErr(err)
		}
		snap, err := tx.Carts().ItemsForUpdate(ctx, tx.DB(), cartID)
		if err != nil {
			return mapCartRepoErr(err)
		}

		aggregate := cart.ReconstructCart(snap.ID, snap.CustomerID, snap.Items)
		item, err := aggregate.AddItem(product.ID, req.Quantity, product.PriceCents)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidInput)
		}
		itemID = item.ID()

		return mapCartRepoErr(tx.Carts().UpsertItem(
			ctx, tx.DB(), cartID, item.ID(), item.ProductID(), item.Quantity(), item.PriceCents(),
		))
	})
	if err != nil {
		return uuid.Nil, err
	}
	return itemID, nil
}

func (c *cartCommandsImpl) UpdateItemQuantity(ctx context.Context, actor user.Actor, itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.ErrInvalidInput
	}
	return c.mutateOwnCart(ctx, actor, func(tx shared.Tx, aggregate *cart.Cart) error {
		if _, err := aggregate.ChangeQuantity(itemID, quantity); err != nil {
			return errs.Mark(err, errs.ErrCartNotFound)
		}
		return mapCartRepoErr(tx.Carts().UpdateItemQuantity(ctx, tx.DB(), itemID, quantity))
	})
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, actor user.Actor, itemID uuid.UUID) error {
	return c.mutateOwnCart(ctx, actor, func(tx shared.Tx, aggregate *cart.Cart) error {
		if err := aggregate.RemoveItem(itemID); err != nil {
			return errs.Mark(err, errs.ErrCartNotFound)
		}
		return mapCartRepoErr(tx.Carts().DeleteItem(ctx, tx.DB(), itemID))
	})
}

func (c *cartCommandsImpl) ClearCart(ctx context.Context, actor user.Actor) error {
	return c.mutateOwnCart(ctx, actor, func(tx shared.Tx, aggregate *cart.Cart) error {
		return mapCartRepoErr(tx.Carts().Clear(ctx, tx.DB(), aggregate.ID()))
	})
}

func (c *cartCommandsImpl) mutateOwnCart(ctx context.Context, actor user.Actor, mutate func(tx shared.Tx, aggregate *cart.Cart) error) error {
	snap, err := c.uow.CommandReads().CartForCustomer(ctx, actor.ID)
	if err != nil {
		return err
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Carts().ItemsForUpdate(ctx, tx.DB(), snap.ID)
		if err != nil {
			return mapCartRepoErr(err)
		}
		if locked.CustomerID != actor.ID {
			return errs.ErrNotOwner
		}
		return mutate(tx, cart.ReconstructCart(locked.ID, locked.CustomerID, locked.Items))
	})
}
