// Package checkout turns a cart into an order and takes the ordered lines out of the cart once the order is accepted.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/nikolayk812/tarzi-cart/internal/port"
)

var ErrEmptyCart = errors.New("cart is empty")

// Cart is the part of the cart engine checkout depends on.
type Cart interface {
	Snapshot(ctx context.Context, ownerID string) (domain.Cart, domain.Totals, error)
	Consume(ctx context.Context, ownerID string, items []domain.CartItem) (domain.Cart, error)
}

type Input struct {
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
	MeasurementID   string
}

type Service struct {
	cart   Cart
	orders port.OrderClient
	log    *slog.Logger
}

func NewService(cart Cart, orders port.OrderClient, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		cart:   cart,
		orders: orders,
		log:    log.With("component", "checkout"),
	}
}

// PlaceOrder submits a snapshot of the owner's cart. The cart is left untouched when the
// order is rejected. Once it is accepted only the submitted quantities are taken out, so
// lines added while the order was in flight stay in the cart.
func (s *Service) PlaceOrder(ctx context.Context, ownerID, token string, in Input) (domain.OrderConfirmation, error) {
	if err := in.ShippingAddress.Validate(); err != nil {
		return domain.OrderConfirmation{}, err
	}

	if _, err := domain.ParsePaymentMethod(string(in.PaymentMethod)); err != nil {
		return domain.OrderConfirmation{}, err
	}

	snapshot, totals, err := s.cart.Snapshot(ctx, ownerID)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("cart.Snapshot: %w", err)
	}

	if snapshot.IsEmpty() {
		return domain.OrderConfirmation{}, ErrEmptyCart
	}

	req := domain.OrderRequest{
		OwnerID:         ownerID,
		Items:           snapshot.Items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		MeasurementID:   strings.TrimSpace(in.MeasurementID),
		Totals:          totals,
	}

	confirmation, err := s.orders.CreateOrder(ctx, token, req)
	if err != nil {
		s.log.WarnContext(ctx, "order submission failed", "owner_id", ownerID, "error", err)
		return domain.OrderConfirmation{}, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	s.log.InfoContext(ctx, "order placed",
		"owner_id", ownerID,
		"order_id", confirmation.OrderID,
		"total", totals.Total.String())

	// The order already exists, so a failed consume is logged rather than returned.
	if _, err := s.cart.Consume(ctx, ownerID, snapshot.Items); err != nil {
		s.log.ErrorContext(ctx, "failed to take ordered items out of cart",
			"owner_id", ownerID,
			"order_id", confirmation.OrderID,
			"error", err)
	}

	return confirmation, nil
}
