package port

import (
	"context"

	"github.com/nikolayk812/tarzi-cart/internal/domain"
)

type OrderClient interface {
	CreateOrder(ctx context.Context, token string, req domain.OrderRequest) (domain.OrderConfirmation, error)
}
