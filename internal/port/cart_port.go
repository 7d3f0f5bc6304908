package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/tarzi-cart/internal/domain"
)

// ErrCorruptCart marks persisted cart data that could not be decoded.
var ErrCorruptCart = errors.New("persisted cart is corrupt")

type CartStore interface {
	// Load returns an empty cart when nothing is persisted for ownerID.
	Load(ctx context.Context, ownerID string) (domain.Cart, error)
	// Save overwrites the persisted copy with cart.Items.
	Save(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, ownerID string) error
}
