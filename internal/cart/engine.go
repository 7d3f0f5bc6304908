package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/nikolayk812/tarzi-cart/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrInvalidItem      = errors.New("invalid cart item")
	ErrCurrencyMismatch = errors.New("item currency does not match cart currency")
)

type Options struct {
	Shipping domain.ShippingPolicy
	TaxRate  decimal.Decimal
	Currency currency.Unit
	Logger   *slog.Logger
}

// Engine serializes cart mutations per owner. The store is the source of truth: every
// call reads the owner's cart from it under the owner lock, and every mutation writes it back.
type Engine struct {
	store    port.CartStore
	shipping domain.ShippingPolicy
	taxRate  decimal.Decimal
	unit     currency.Unit
	log      *slog.Logger

	mu    sync.Mutex
	locks map[string]*ownerLock
}

type ownerLock struct {
	mu   sync.Mutex
	refs int
}

func NewEngine(store port.CartStore, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Engine{
		store:    store,
		shipping: opts.Shipping,
		taxRate:  opts.TaxRate,
		unit:     opts.Currency,
		log:      log.With("component", "cart"),
		locks:    make(map[string]*ownerLock),
	}
}

func (e *Engine) Currency() currency.Unit {
	return e.unit
}

// Snapshot returns a copy of the owner's cart and its derived totals.
func (e *Engine) Snapshot(ctx context.Context, ownerID string) (domain.Cart, domain.Totals, error) {
	if ownerID == "" {
		return domain.Cart{}, domain.Totals{}, fmt.Errorf("ownerID is empty")
	}

	unlock := e.lock(ownerID)
	defer unlock()

	state, err := e.state(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, domain.Totals{}, err
	}

	return state, e.Totals(state.Items), nil
}

func (e *Engine) Add(ctx context.Context, ownerID string, item domain.CartItem, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	if err := e.validateItem(item); err != nil {
		return domain.Cart{}, err
	}

	return e.dispatch(ctx, ownerID, AddItem{Item: item, Quantity: quantity})
}

// Remove deletes the item with key. A missing item is not an error.
func (e *Engine) Remove(ctx context.Context, ownerID string, key domain.ItemKey) (domain.Cart, error) {
	return e.dispatch(ctx, ownerID, RemoveItem{Key: key})
}

func (e *Engine) UpdateQuantity(ctx context.Context, ownerID string, key domain.ItemKey, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	return e.dispatch(ctx, ownerID, UpdateQuantity{Key: key, Quantity: quantity})
}

// Consume takes the ordered quantities of items out of the cart and keeps everything
// that was added after they were snapshotted.
func (e *Engine) Consume(ctx context.Context, ownerID string, items []domain.CartItem) (domain.Cart, error) {
	return e.dispatch(ctx, ownerID, ConsumeItems{Items: items})
}

// Clear empties the cart and removes its persisted copy.
func (e *Engine) Clear(ctx context.Context, ownerID string) error {
	_, err := e.dispatch(ctx, ownerID, Clear{})
	return err
}

// Totals derives subtotal, shipping, tax and total for items with the engine's policy.
func (e *Engine) Totals(items []domain.CartItem) domain.Totals {
	return domain.ComputeTotals(items, e.shipping, e.taxRate, e.unit)
}

func (e *Engine) dispatch(ctx context.Context, ownerID string, action Action) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	unlock := e.lock(ownerID)
	defer unlock()

	state, err := e.state(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, err
	}

	next := Reduce(state, action)

	if next.IsEmpty() {
		if err := e.store.Delete(ctx, ownerID); err != nil {
			return domain.Cart{}, fmt.Errorf("store.Delete: %w", err)
		}
	} else if err := e.store.Save(ctx, next); err != nil {
		return domain.Cart{}, fmt.Errorf("store.Save: %w", err)
	}

	e.log.DebugContext(ctx, "cart updated",
		"owner_id", ownerID,
		"action", fmt.Sprintf("%T", action),
		"items", len(next.Items))

	return next, nil
}

// state reads the owner's cart from the store. A corrupt copy reads as an empty cart.
// The caller must hold the owner lock.
func (e *Engine) state(ctx context.Context, ownerID string) (domain.Cart, error) {
	loaded, err := e.store.Load(ctx, ownerID)
	switch {
	case errors.Is(err, port.ErrCorruptCart):
		e.log.WarnContext(ctx, "persisted cart is corrupt, starting empty",
			"owner_id", ownerID, "error", err)
		loaded = domain.Cart{}
	case err != nil:
		return domain.Cart{}, fmt.Errorf("store.Load: %w", err)
	}
	loaded.OwnerID = ownerID

	return loaded, nil
}

// lock acquires the owner's mutex. The entry is dropped once no caller holds or waits on it.
func (e *Engine) lock(ownerID string) func() {
	e.mu.Lock()
	l, ok := e.locks[ownerID]
	if !ok {
		l = &ownerLock{}
		e.locks[ownerID] = l
	}
	l.refs++
	e.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		e.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(e.locks, ownerID)
		}
		e.mu.Unlock()
	}
}

func (e *Engine) validateItem(item domain.CartItem) error {
	if item.ProductID == "" {
		return fmt.Errorf("%w: productID is empty", ErrInvalidItem)
	}

	if item.Price.Amount.IsNegative() {
		return fmt.Errorf("%w: price[%s] is negative", ErrInvalidItem, item.Price.Amount)
	}

	if item.Price.Currency != e.unit {
		return fmt.Errorf("%w: %s != %s", ErrCurrencyMismatch, item.Price.Currency, e.unit)
	}

	if !item.Price.Amount.Equal(item.Price.Round().Amount) {
		return fmt.Errorf("%w: price[%s] is finer than the minor unit of %s", ErrInvalidItem, item.Price.Amount, e.unit)
	}

	return nil
}
