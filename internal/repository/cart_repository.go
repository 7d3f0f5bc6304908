package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/tarzi-cart/internal/db"
	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/nikolayk812/tarzi-cart/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartStore {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

// NewCartWithTx binds the store to an open transaction owned by the caller.
func NewCartWithTx(tx pgx.Tx) port.CartStore {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil,
	}
}

func (r *cartRepository) Load(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	items, err := mapGetCartRowsToDomain(rows)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: mapGetCartRowsToDomain: %w", port.ErrCorruptCart, err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

// Save replaces every row of the owner's cart in one transaction.
// An advisory lock on the owner serializes concurrent saves.
func (r *cartRepository) Save(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if err := q.LockCart(ctx, cart.OwnerID); err != nil {
			return struct{}{}, fmt.Errorf("q.LockCart: %w", err)
		}

		if _, err := q.DeleteCart(ctx, cart.OwnerID); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteCart: %w", err)
		}

		for i, item := range cart.Items {
			params, err := mapDomainToInsertItemParams(cart.OwnerID, i, item)
			if err != nil {
				return struct{}{}, fmt.Errorf("mapDomainToInsertItemParams: %w", err)
			}

			if err := q.InsertItem(ctx, params); err != nil {
				return struct{}{}, fmt.Errorf("q.InsertItem: %w", err)
			}
		}

		return struct{}{}, nil
	})

	return err
}

func (r *cartRepository) Delete(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if _, err := r.q.DeleteCart(ctx, ownerID); err != nil {
		return fmt.Errorf("q.DeleteCart: %w", err)
	}

	return nil
}

func mapDomainToInsertItemParams(ownerID string, position int, item domain.CartItem) (db.InsertItemParams, error) {
	if item.Quantity > math.MaxInt32 || position > math.MaxInt32 {
		return db.InsertItemParams{}, fmt.Errorf("quantity[%d] or position[%d] overflows int32", item.Quantity, position)
	}

	return db.InsertItemParams{
		OwnerID:            ownerID,
		ProductID:          item.ProductID,
		FabricChoice:       item.FabricChoice,
		ColorChoice:        item.ColorChoice,
		Position:           int32(position),
		Name:               item.Name,
		ImageUrl:           item.ImageURL,
		PriceAmount:        item.Price.Amount,
		PriceCurrency:      item.Price.Currency.String(),
		Quantity:           int32(item.Quantity),
		AdditionalRequests: item.AdditionalRequests,
	}, nil
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.CartItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartItem{
		ProductID:          row.ProductID,
		Name:               row.Name,
		Price:              domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		ImageURL:           row.ImageUrl,
		FabricChoice:       row.FabricChoice,
		ColorChoice:        row.ColorChoice,
		Quantity:           int(row.Quantity),
		AdditionalRequests: row.AdditionalRequests,
	}, nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapGetCartRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
