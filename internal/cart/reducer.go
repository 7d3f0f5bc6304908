// Package cart holds the cart reducer and the engine that owns cart state.
package cart

import (
	"github.com/nikolayk812/tarzi-cart/internal/domain"
)

// Action is one of AddItem, RemoveItem, UpdateQuantity, ConsumeItems or Clear.
type Action interface {
	action()
}

// AddItem merges Item into the cart with Quantity units.
// Item.Quantity is ignored.
type AddItem struct {
	Item     domain.CartItem
	Quantity int
}

type RemoveItem struct {
	Key domain.ItemKey
}

type UpdateQuantity struct {
	Key      domain.ItemKey
	Quantity int
}

// ConsumeItems subtracts the quantity of each of Items from the matching line.
// Lines that drop below 1 are removed.
type ConsumeItems struct {
	Items []domain.CartItem
}

type Clear struct{}

func (AddItem) action()        {}
func (RemoveItem) action()     {}
func (UpdateQuantity) action() {}
func (ConsumeItems) action()   {}
func (Clear) action()          {}

// Reduce returns the cart that results from applying action to state.
// state is never modified. Actions carrying a quantity below 1 leave the cart unchanged.
func Reduce(state domain.Cart, action Action) domain.Cart {
	next := state.Clone()

	switch a := action.(type) {
	case AddItem:
		if a.Quantity < 1 {
			return next
		}

		if idx, ok := next.Find(a.Item.Key()); ok {
			next.Items[idx].Quantity += a.Quantity
			return next
		}

		item := a.Item
		item.Quantity = a.Quantity
		next.Items = append(next.Items, item)

	case RemoveItem:
		if idx, ok := next.Find(a.Key); ok {
			next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
		}

	case UpdateQuantity:
		if a.Quantity < 1 {
			return next
		}

		if idx, ok := next.Find(a.Key); ok {
			next.Items[idx].Quantity = a.Quantity
		}

	case ConsumeItems:
		for _, consumed := range a.Items {
			idx, ok := next.Find(consumed.Key())
			if !ok {
				continue
			}

			if left := next.Items[idx].Quantity - consumed.Quantity; left >= 1 {
				next.Items[idx].Quantity = left
			} else {
				next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
			}
		}

	case Clear:
		next.Items = nil
	}

	return next
}
