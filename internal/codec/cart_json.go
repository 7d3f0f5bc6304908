// Package codec converts cart line items to and from the persisted JSON array.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrMalformed = errors.New("malformed cart data")

type itemJSON struct {
	ProductID          string      `json:"productId"`
	Name               string      `json:"name"`
	Price              json.Number `json:"price"`
	ImageURL           string      `json:"imageUrl"`
	FabricChoice       string      `json:"fabricChoice"`
	ColorChoice        string      `json:"colorChoice"`
	Quantity           int         `json:"quantity"`
	AdditionalRequests string      `json:"additionalRequests,omitempty"`
}

// MarshalItems encodes items as a JSON array. A nil slice encodes as [].
func MarshalItems(items []domain.CartItem) ([]byte, error) {
	out := make([]itemJSON, 0, len(items))

	for _, item := range items {
		out = append(out, itemJSON{
			ProductID:          item.ProductID,
			Name:               item.Name,
			Price:              json.Number(item.Price.Amount.String()),
			ImageURL:           item.ImageURL,
			FabricChoice:       item.FabricChoice,
			ColorChoice:        item.ColorChoice,
			Quantity:           item.Quantity,
			AdditionalRequests: item.AdditionalRequests,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

// UnmarshalItems decodes a JSON array produced by MarshalItems. Prices are read in unit.
// Every element is validated; any violation is reported as ErrMalformed.
func UnmarshalItems(data []byte, unit currency.Unit) ([]domain.CartItem, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []itemJSON
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	items := make([]domain.CartItem, 0, len(raw))
	seen := make(map[domain.ItemKey]struct{}, len(raw))

	for i, r := range raw {
		item, err := mapItemJSONToDomain(r, unit)
		if err != nil {
			return nil, fmt.Errorf("%w: item[%d]: %w", ErrMalformed, i, err)
		}

		if _, ok := seen[item.Key()]; ok {
			return nil, fmt.Errorf("%w: item[%d]: duplicate key %+v", ErrMalformed, i, item.Key())
		}
		seen[item.Key()] = struct{}{}

		items = append(items, item)
	}

	return items, nil
}

func mapItemJSONToDomain(r itemJSON, unit currency.Unit) (domain.CartItem, error) {
	if r.ProductID == "" {
		return domain.CartItem{}, errors.New("productId is empty")
	}

	if r.Quantity < 1 {
		return domain.CartItem{}, fmt.Errorf("quantity[%d] is not positive", r.Quantity)
	}

	amount, err := decimal.NewFromString(r.Price.String())
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("price[%s] is not valid: %w", r.Price, err)
	}
	if amount.IsNegative() {
		return domain.CartItem{}, fmt.Errorf("price[%s] is negative", r.Price)
	}

	return domain.CartItem{
		ProductID:          r.ProductID,
		Name:               r.Name,
		Price:              domain.NewMoney(amount, unit),
		ImageURL:           r.ImageURL,
		FabricChoice:       r.FabricChoice,
		ColorChoice:        r.ColorChoice,
		Quantity:           r.Quantity,
		AdditionalRequests: r.AdditionalRequests,
	}, nil
}
