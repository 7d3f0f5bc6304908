package codec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/tarzi-cart/internal/codec"
	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

var egp = currency.MustParseISO("EGP")

func TestMarshalItems(t *testing.T) {
	items := []domain.CartItem{
		{
			ProductID:          "p1",
			Name:               "Classic Thobe",
			Price:              domain.NewMoney(decimal.RequireFromString("100.50"), egp),
			ImageURL:           "https://cdn.tarzi.test/p1.jpg",
			FabricChoice:       "cotton",
			ColorChoice:        "blue",
			Quantity:           2,
			AdditionalRequests: "shorter sleeves",
		},
	}

	data, err := codec.MarshalItems(items)
	require.NoError(t, err)

	assert.JSONEq(t, `[{
		"productId": "p1",
		"name": "Classic Thobe",
		"price": 100.5,
		"imageUrl": "https://cdn.tarzi.test/p1.jpg",
		"fabricChoice": "cotton",
		"colorChoice": "blue",
		"quantity": 2,
		"additionalRequests": "shorter sleeves"
	}]`, string(data))

	decoded, err := codec.UnmarshalItems(data, egp)
	require.NoError(t, err)

	diff := cmp.Diff(items, decoded,
		cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) }),
		cmp.Comparer(func(x, y currency.Unit) bool { return x == y }),
	)
	assert.Empty(t, diff)
}

func TestMarshalItems_Empty(t *testing.T) {
	data, err := codec.MarshalItems(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestUnmarshalItems(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantLen   int
		wantError bool
	}{
		{name: "empty input", data: "", wantLen: 0},
		{name: "null", data: "null", wantLen: 0},
		{name: "empty array", data: "[]", wantLen: 0},
		{name: "price as string", data: `[{"productId":"p1","price":"75.25","quantity":1}]`, wantLen: 1},
		{name: "unknown fields are ignored", data: `[{"productId":"p1","price":1,"quantity":1,"_id":"x"}]`, wantLen: 1},
		{name: "not json", data: "{oops", wantError: true},
		{name: "object instead of array", data: `{"productId":"p1"}`, wantError: true},
		{name: "missing product id", data: `[{"price":1,"quantity":1}]`, wantError: true},
		{name: "zero quantity", data: `[{"productId":"p1","price":1,"quantity":0}]`, wantError: true},
		{name: "missing price", data: `[{"productId":"p1","quantity":1}]`, wantError: true},
		{name: "negative price", data: `[{"productId":"p1","price":-5,"quantity":1}]`, wantError: true},
		{
			name: "duplicate composite key",
			data: `[{"productId":"p1","price":1,"quantity":1,"fabricChoice":"cotton","colorChoice":"blue"},
				{"productId":"p1","price":1,"quantity":2,"fabricChoice":"cotton","colorChoice":"blue"}]`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := codec.UnmarshalItems([]byte(tt.data), egp)
			if tt.wantError {
				require.ErrorIs(t, err, codec.ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.wantLen)
		})
	}
}
