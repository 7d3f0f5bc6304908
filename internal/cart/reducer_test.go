package cart_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/tarzi-cart/internal/cart"
	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

var egp = currency.MustParseISO("EGP")

func TestReduce_AddSameKeyMergesQuantity(t *testing.T) {
	state := domain.Cart{OwnerID: "u1"}
	item := lineItem("p1", "100", "cotton", "blue")

	var want int
	for range 10 {
		q := gofakeit.Number(1, 5)
		want += q
		state = cart.Reduce(state, cart.AddItem{Item: item, Quantity: q})
	}

	require.Len(t, state.Items, 1)
	assert.Equal(t, want, state.Items[0].Quantity)
}

func TestReduce_ScenarioMergedLineTotal(t *testing.T) {
	item := lineItem("p1", "100", "cotton", "blue")

	state := cart.Reduce(domain.Cart{}, cart.AddItem{Item: item, Quantity: 2})
	state = cart.Reduce(state, cart.AddItem{Item: item, Quantity: 1})

	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(300).Equal(state.Items[0].LineTotal().Amount))
}

func TestReduce_DistinctFabricOrColorAppends(t *testing.T) {
	state := domain.Cart{}
	state = cart.Reduce(state, cart.AddItem{Item: lineItem("p1", "100", "cotton", "blue"), Quantity: 1})
	state = cart.Reduce(state, cart.AddItem{Item: lineItem("p1", "100", "cotton", "red"), Quantity: 1})
	state = cart.Reduce(state, cart.AddItem{Item: lineItem("p1", "100", "linen", "blue"), Quantity: 1})

	require.Len(t, state.Items, 3)
	assert.Equal(t, "blue", state.Items[0].ColorChoice)
	assert.Equal(t, "red", state.Items[1].ColorChoice)
	assert.Equal(t, "linen", state.Items[2].FabricChoice)
}

func TestReduce_AddKeepsDisplayFieldsOfFirstAdd(t *testing.T) {
	first := lineItem("p1", "100", "cotton", "blue")
	first.AdditionalRequests = "slim fit"
	second := first
	second.Name = "renamed"
	second.AdditionalRequests = "loose fit"

	state := cart.Reduce(domain.Cart{}, cart.AddItem{Item: first, Quantity: 1})
	state = cart.Reduce(state, cart.AddItem{Item: second, Quantity: 1})

	require.Len(t, state.Items, 1)
	assert.Equal(t, first.Name, state.Items[0].Name)
	assert.Equal(t, "slim fit", state.Items[0].AdditionalRequests)
}

func TestReduce_Remove(t *testing.T) {
	blue := lineItem("p1", "100", "cotton", "blue")
	red := lineItem("p1", "100", "cotton", "red")

	state := cart.Reduce(domain.Cart{}, cart.AddItem{Item: blue, Quantity: 1})
	state = cart.Reduce(state, cart.AddItem{Item: red, Quantity: 1})

	t.Run("missing key is a no-op", func(t *testing.T) {
		next := cart.Reduce(state, cart.RemoveItem{Key: domain.ItemKey{ProductID: "p2"}})
		assert.Equal(t, state, next)
	})

	t.Run("matching key removes only that item", func(t *testing.T) {
		next := cart.Reduce(state, cart.RemoveItem{Key: blue.Key()})
		require.Len(t, next.Items, 1)
		assert.Equal(t, red.Key(), next.Items[0].Key())
		require.Len(t, state.Items, 2, "input state must not change")
	})
}

func TestReduce_UpdateQuantity(t *testing.T) {
	item := lineItem("p1", "100", "cotton", "blue")
	state := cart.Reduce(domain.Cart{}, cart.AddItem{Item: item, Quantity: 2})

	next := cart.Reduce(state, cart.UpdateQuantity{Key: item.Key(), Quantity: 7})
	assert.Equal(t, 7, next.Items[0].Quantity)
	assert.Equal(t, 2, state.Items[0].Quantity)

	for _, q := range []int{0, -1} {
		unchanged := cart.Reduce(state, cart.UpdateQuantity{Key: item.Key(), Quantity: q})
		assert.Equal(t, state, unchanged)
	}

	missing := cart.Reduce(state, cart.UpdateQuantity{Key: domain.ItemKey{ProductID: "nope"}, Quantity: 3})
	assert.Equal(t, state, missing)
}

func TestReduce_InvalidAddIsNoOp(t *testing.T) {
	state := cart.Reduce(domain.Cart{}, cart.AddItem{Item: lineItem("p1", "1", "", ""), Quantity: 0})
	assert.Empty(t, state.Items)
}

func TestReduce_Clear(t *testing.T) {
	state := cart.Reduce(domain.Cart{OwnerID: "u1"}, cart.AddItem{Item: lineItem("p1", "1", "", ""), Quantity: 1})

	next := cart.Reduce(state, cart.Clear{})
	assert.Empty(t, next.Items)
	assert.Equal(t, "u1", next.OwnerID)
	assert.Len(t, state.Items, 1)
}

func TestReduce_ConsumeItems(t *testing.T) {
	blue := lineItem("p1", "100", "cotton", "blue")
	red := lineItem("p1", "100", "cotton", "red")

	state := cart.Reduce(domain.Cart{OwnerID: "u1"}, cart.AddItem{Item: blue, Quantity: 3})
	state = cart.Reduce(state, cart.AddItem{Item: red, Quantity: 1})

	consumedBlue := blue
	consumedBlue.Quantity = 2
	consumedRed := red
	consumedRed.Quantity = 1
	gone := lineItem("p9", "1", "", "")
	gone.Quantity = 4

	next := cart.Reduce(state, cart.ConsumeItems{Items: []domain.CartItem{consumedBlue, consumedRed, gone}})
	require.Len(t, next.Items, 1)
	assert.Equal(t, blue.Key(), next.Items[0].Key())
	assert.Equal(t, 1, next.Items[0].Quantity)
	assert.Len(t, state.Items, 2)
}

func lineItem(productID, price, fabric, color string) domain.CartItem {
	return domain.CartItem{
		ProductID:    productID,
		Name:         "Tailored " + productID,
		Price:        domain.NewMoney(decimal.RequireFromString(price), egp),
		ImageURL:     "https://cdn.tarzi.test/" + productID + ".jpg",
		FabricChoice: fabric,
		ColorChoice:  color,
	}
}
