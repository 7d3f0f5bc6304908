package domain

import (
	"slices"
)

// ItemKey is the composite identity of a line item.
type ItemKey struct {
	ProductID    string
	FabricChoice string
	ColorChoice  string
}

type CartItem struct {
	ProductID string
	Name      string
	Price     Money
	ImageURL  string

	FabricChoice string
	ColorChoice  string

	Quantity           int
	AdditionalRequests string
}

func (i CartItem) Key() ItemKey {
	return ItemKey{
		ProductID:    i.ProductID,
		FabricChoice: i.FabricChoice,
		ColorChoice:  i.ColorChoice,
	}
}

func (i CartItem) LineTotal() Money {
	return i.Price.Mul(decimalFromInt(i.Quantity))
}

type Cart struct {
	OwnerID string
	Items   []CartItem
}

// Find returns the index of the item with the given key.
func (c Cart) Find(key ItemKey) (int, bool) {
	idx := slices.IndexFunc(c.Items, func(item CartItem) bool {
		return item.Key() == key
	})
	return idx, idx >= 0
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Clone() Cart {
	return Cart{
		OwnerID: c.OwnerID,
		Items:   slices.Clone(c.Items),
	}
}

// Quantity returns the number of units across all line items.
func (c Cart) Quantity() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
