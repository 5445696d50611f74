//go:build unit

package commands_test

import (
	"context"
	"time"

	"vetclinic/internal/domain/appointment"
	"vetclinic/internal/domain/cart"
	"vetclinic/internal/domain/order"
	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeState is the in-memory store behind fakeUow. Within snapshots it before
// running the transaction body and restores the snapshot on error, which gives
// the tests real rollback semantics without a database.
type fakeState struct {
	appointments   map[uuid.UUID]*appointment.Appointment
	inventory      map[uuid.UUID]*shared.InventorySnapshot
	products       map[uuid.UUID]shared.ProductSnapshot
	carts          map[uuid.UUID]*shared.CartSnapshot
	cartByCustomer map[uuid.UUID]uuid.UUID
	orders         map[uuid.UUID]*order.Order
	lastLogins     map[uuid.UUID]bool
}

func newFakeState() *fakeState {
	return &fakeState{
		appointments:   make(map[uuid.UUID]*appointment.Appointment),
		inventory:      make(map[uuid.UUID]*shared.InventorySnapshot),
		products:       make(map[uuid.UUID]shared.ProductSnapshot),
		carts:          make(map[uuid.UUID]*shared.CartSnapshot),
		cartByCustomer: make(map[uuid.UUID]uuid.UUID),
		orders:         make(map[uuid.UUID]*order.Order),
		lastLogins:     make(map[uuid.UUID]bool),
	}
}

func (s *fakeState) clone() *fakeState {
	out := newFakeState()
	for id, a := range s.appointments {
		cp := *a
		out.appointments[id] = &cp
	}
	for id, inv := range s.inventory {
		cp := *inv
		out.inventory[id] = &cp
	}
	for id, p := range s.products {
		out.products[id] = p
	}
	for id, c := range s.carts {
		cp := shared.CartSnapshot{ID: c.ID, CustomerID: c.CustomerID, Items: append([]cart.Item(nil), c.Items...)}
		out.carts[id] = &cp
	}
	for customerID, cartID := range s.cartByCustomer {
		out.cartByCustomer[customerID] = cartID
	}
	for id, o := range s.orders {
		cp := *o
		out.orders[id] = &cp
	}
	for id, v := range s.lastLogins {
		out.lastLogins[id] = v
	}
	return out
}

func (s *fakeState) restore(from *fakeState) {
	*s = *from
}

type fakeUow struct {
	state *fakeState
	// withinCalls counts opened write transactions so tests can assert that a
	// rejected request never opened one.
	withinCalls int
}

func newFakeUow() *fakeUow {
	return &fakeUow{state: newFakeState()}
}

func (u *fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.withinCalls++
	snapshot := u.state.clone()
	if err := fn(ctx, &fakeTx{state: u.state}); err != nil {
		u.state.restore(snapshot)
		return err
	}
	return nil
}

func (u *fakeUow) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUow) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

// Seeding helpers.

func (u *fakeUow) seedProduct(name string, priceCents int64, stock int) uuid.UUID {
	id := uuid.New()
	u.state.products[id] = shared.ProductSnapshot{ID: id, Name: name, PriceCents: priceCents, Active: true}
	u.state.inventory[id] = &shared.InventorySnapshot{
		ProductID:          id,
		RegisteredQuantity: stock,
		RealQuantity:       stock,
		MinStockLevel:      1,
		MaxStockLevel:      100,
	}
	return id
}

func (u *fakeUow) deactivateProduct(id uuid.UUID) {
	p := u.state.products[id]
	p.Active = false
	u.state.products[id] = p
}

func (u *fakeUow) setPrice(id uuid.UUID, priceCents int64) {
	p := u.state.products[id]
	p.PriceCents = priceCents
	u.state.products[id] = p
}

func (u *fakeUow) seedCart(customerID uuid.UUID, items ...cart.Item) uuid.UUID {
	cartID := uuid.New()
	u.state.carts[cartID] = &shared.CartSnapshot{ID: cartID, CustomerID: customerID, Items: items}
	u.state.cartByCustomer[customerID] = cartID
	return cartID
}

func (u *fakeUow) seedAppointment(appt *appointment.Appointment) {
	u.state.appointments[appt.ID()] = appt
}

func (u *fakeUow) stock(productID uuid.UUID) int {
	return u.state.inventory[productID].RegisteredQuantity
}

func (u *fakeUow) cartItems(customerID uuid.UUID) []cart.Item {
	cartID, ok := u.state.cartByCustomer[customerID]
	if !ok {
		return nil
	}
	return u.state.carts[cartID].Items
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Appointments() shared.AppointmentRepository { return &fakeAppointmentRepo{t.state} }
func (t *fakeTx) Inventory() shared.InventoryRepository      { return &fakeInventoryRepo{t.state} }
func (t *fakeTx) Carts() shared.CartRepository               { return &fakeCartRepo{t.state} }
func (t *fakeTx) Orders() shared.OrderRepository             { return &fakeOrderRepo{t.state} }
func (t *fakeTx) Users() shared.UserRepository               { return &fakeUserRepo{t.state} }
func (t *fakeTx) Reads() shared.CommandReads                 { return &fakeReads{t.state} }
func (t *fakeTx) DB() db.DBTX                                { return nil }

type fakeAppointmentRepo struct {
	state *fakeState
}

func (r *fakeAppointmentRepo) Create(_ context.Context, _ db.DBTX, appt *appointment.Appointment) (uuid.UUID, error) {
	cp := *appt
	r.state.appointments[appt.ID()] = &cp
	return appt.ID(), nil
}

func (r *fakeAppointmentRepo) LockProviderCalendar(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	return nil
}

func (r *fakeAppointmentRepo) HasActiveOverlap(_ context.Context, _ db.DBTX, providerID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	for _, appt := range r.state.appointments {
		if appt.ProviderID() != providerID || appt.ID() == excludeID || !appt.IsActive() {
			continue
		}
		if appt.Slot().Start().Before(end) && start.Before(appt.Slot().End()) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppointmentRepo) FindForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*appointment.Appointment, error) {
	appt, ok := r.state.appointments[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, _ db.DBTX, appt *appointment.Appointment) error {
	if _, ok := r.state.appointments[appt.ID()]; !ok {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	cp := *appt
	r.state.appointments[appt.ID()] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.state.appointments[id]; !ok {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	delete(r.state.appointments, id)
	return nil
}

type fakeInventoryRepo struct {
	state *fakeState
}

func (r *fakeInventoryRepo) Reserve(_ context.Context, _ db.DBTX, productID uuid.UUID, qty int) error {
	inv, ok := r.state.inventory[productID]
	if !ok {
		return infra.WrapRepoErr("inventory record not found", nil, infra.KindNotFound)
	}
	if inv.RegisteredQuantity < qty {
		return infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
	}
	inv.RegisteredQuantity -= qty
	return nil
}

func (r *fakeInventoryRepo) Restock(_ context.Context, _ db.DBTX, productID uuid.UUID, qty int) (int, error) {
	inv, ok := r.state.inventory[productID]
	if !ok {
		return 0, infra.WrapRepoErr("inventory record not found", nil, infra.KindNotFound)
	}
	inv.RegisteredQuantity += qty
	return inv.RegisteredQuantity, nil
}

type fakeCartRepo struct {
	state *fakeState
}

func (r *fakeCartRepo) GetOrCreate(_ context.Context, _ db.DBTX, customerID uuid.UUID) (uuid.UUID, error) {
	if cartID, ok := r.state.cartByCustomer[customerID]; ok {
		return cartID, nil
	}
	cartID := uuid.New()
	r.state.carts[cartID] = &shared.CartSnapshot{ID: cartID, CustomerID: customerID}
	r.state.cartByCustomer[customerID] = cartID
	return cartID, nil
}

func (r *fakeCartRepo) ItemsForUpdate(_ context.Context, _ db.DBTX, cartID uuid.UUID) (*shared.CartSnapshot, error) {
	snap, ok := r.state.carts[cartID]
	if !ok {
		return nil, infra.WrapRepoErr("cart not found", nil, infra.KindNotFound)
	}
	cp := shared.CartSnapshot{ID: snap.ID, CustomerID: snap.CustomerID, Items: append([]cart.Item(nil), snap.Items...)}
	return &cp, nil
}

func (r *fakeCartRepo) UpsertItem(_ context.Context, _ db.DBTX, cartID uuid.UUID, itemID, productID uuid.UUID, quantity int, priceCents int64) error {
	snap, ok := r.state.carts[cartID]
	if !ok {
		return infra.WrapRepoErr("cart not found", nil, infra.KindNotFound)
	}
	line := cart.ReconstructItem(itemID, productID, quantity, priceCents)
	for idx, existing := range snap.Items {
		if existing.ProductID() == productID {
			snap.Items[idx] = line
			return nil
		}
	}
	snap.Items = append(snap.Items, line)
	return nil
}

func (r *fakeCartRepo) UpdateItemQuantity(_ context.Context, _ db.DBTX, itemID uuid.UUID, quantity int) error {
	for _, snap := range r.state.carts {
		for idx, existing := range snap.Items {
			if existing.ID() == itemID {
				snap.Items[idx] = cart.ReconstructItem(existing.ID(), existing.ProductID(), quantity, existing.PriceCents())
				return nil
			}
		}
	}
	return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
}

func (r *fakeCartRepo) DeleteItem(_ context.Context, _ db.DBTX, itemID uuid.UUID) error {
	for _, snap := range r.state.carts {
		for idx, existing := range snap.Items {
			if existing.ID() == itemID {
				snap.Items = append(snap.Items[:idx], snap.Items[idx+1:]...)
				return nil
			}
		}
	}
	return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
}

func (r *fakeCartRepo) Clear(_ context.Context, _ db.DBTX, cartID uuid.UUID) error {
	snap, ok := r.state.carts[cartID]
	if !ok {
		return infra.WrapRepoErr("cart not found", nil, infra.KindNotFound)
	}
	snap.Items = nil
	return nil
}

type fakeOrderRepo struct {
	state *fakeState
}

func (r *fakeOrderRepo) Create(_ context.Context, _ db.DBTX, ord *order.Order) (uuid.UUID, error) {
	cp := *ord
	r.state.orders[ord.ID()] = &cp
	return ord.ID(), nil
}

func (r *fakeOrderRepo) FindForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*order.Order, error) {
	ord, ok := r.state.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	cp := *ord
	return &cp, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status order.Status, paymentStatus order.PaymentStatus) error {
	ord, ok := r.state.orders[id]
	if !ok {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	r.state.orders[id] = order.ReconstructOrder(
		ord.ID(), ord.CustomerID(), ord.TotalCents(), status,
		ord.PaymentMethod(), paymentStatus, ord.ShippingAddress(),
		ord.Items(), ord.CreatedAt(), ord.UpdatedAt(),
	)
	return nil
}

type fakeUserRepo struct {
	state *fakeState
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, userID uuid.UUID) error {
	r.state.lastLogins[userID] = true
	return nil
}

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := r.state.products[id]
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	return &p, nil
}

func (r *fakeReads) CartForCustomer(_ context.Context, customerID uuid.UUID) (*shared.CartSnapshot, error) {
	cartID, ok := r.state.cartByCustomer[customerID]
	if !ok {
		return nil, errs.ErrCartNotFound
	}
	return r.CartByID(context.Background(), cartID)
}

func (r *fakeReads) CartByID(_ context.Context, cartID uuid.UUID) (*shared.CartSnapshot, error) {
	snap, ok := r.state.carts[cartID]
	if !ok {
		return nil, errs.ErrCartNotFound
	}
	cp := shared.CartSnapshot{ID: snap.ID, CustomerID: snap.CustomerID, Items: append([]cart.Item(nil), snap.Items...)}
	return &cp, nil
}

func (r *fakeReads) InventoryByProduct(_ context.Context, productID uuid.UUID) (*shared.InventorySnapshot, error) {
	inv, ok := r.state.inventory[productID]
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	cp := *inv
	return &cp, nil
}
