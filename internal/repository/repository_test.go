package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_cart_items.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func startRedis(ctx context.Context) (*tcredis.RedisContainer, string, error) {
	redisContainer, err := tcredis.Run(ctx, "redis:7.4-alpine")
	if err != nil {
		return nil, "", fmt.Errorf("redis.Run: %w", err)
	}

	connStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("rc.ConnectionString: %w", err)
	}

	return redisContainer, connStr, nil
}

var egp = currency.MustParseISO("EGP")

func randomCartItem() domain.CartItem {
	return domain.CartItem{
		ProductID:          gofakeit.UUID(),
		Name:               gofakeit.ProductName(),
		Price:              randomMoney(),
		ImageURL:           gofakeit.URL(),
		FabricChoice:       gofakeit.RandomString([]string{"cotton", "linen", "wool", "silk"}),
		ColorChoice:        gofakeit.Color(),
		Quantity:           gofakeit.Number(1, 5),
		AdditionalRequests: "hem " + gofakeit.Word(),
	}
}

func randomCart(n int) domain.Cart {
	cart := domain.Cart{OwnerID: gofakeit.UUID()}
	for range n {
		cart.Items = append(cart.Items, randomCartItem())
	}
	return cart
}

// randomMoney keeps to the minor units of EGP, the finest price the engine accepts.
func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 2000)).Round(2),
		Currency: egp,
	}
}

func assertCart(t *testing.T, expected, actual domain.Cart) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	diff := cmp.Diff(expected, actual, currencyComparer, decimalComparer)
	assert.Empty(t, diff)
}
