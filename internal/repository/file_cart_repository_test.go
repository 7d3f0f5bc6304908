package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/nikolayk812/tarzi-cart/internal/port"
	"github.com/nikolayk812/tarzi-cart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCart_SaveLoadDelete(t *testing.T) {
	ctx := t.Context()

	repo, err := repository.NewFileCart(t.TempDir(), egp)
	require.NoError(t, err)

	cart := randomCart(3)
	require.NoError(t, repo.Save(ctx, cart))

	loaded, err := repo.Load(ctx, cart.OwnerID)
	require.NoError(t, err)
	assertCart(t, cart, loaded)

	require.NoError(t, repo.Delete(ctx, cart.OwnerID))

	loaded, err = repo.Load(ctx, cart.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, cart.OwnerID, loaded.OwnerID)
	assert.Empty(t, loaded.Items)

	// deleting a missing cart is not an error
	require.NoError(t, repo.Delete(ctx, cart.OwnerID))
}

func TestFileCart_OwnersAreIsolated(t *testing.T) {
	ctx := t.Context()

	repo, err := repository.NewFileCart(t.TempDir(), egp)
	require.NoError(t, err)

	a, b := randomCart(1), randomCart(2)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	loadedA, err := repo.Load(ctx, a.OwnerID)
	require.NoError(t, err)
	assertCart(t, a, loadedA)

	loadedB, err := repo.Load(ctx, b.OwnerID)
	require.NoError(t, err)
	assertCart(t, b, loadedB)
}

func TestFileCart_LoadCorruptFile(t *testing.T) {
	ctx := t.Context()
	dir := t.TempDir()

	repo, err := repository.NewFileCart(dir, egp)
	require.NoError(t, err)

	cart := randomCart(1)
	require.NoError(t, repo.Save(ctx, cart))

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.NoError(t, os.WriteFile(files[0], []byte(`[{"productId":"p1","quantity":"lots"}]`), 0o644))

	_, err = repo.Load(ctx, cart.OwnerID)
	require.ErrorIs(t, err, port.ErrCorruptCart)
}

func TestFileCart_EmptyOwner(t *testing.T) {
	ctx := t.Context()

	repo, err := repository.NewFileCart(t.TempDir(), egp)
	require.NoError(t, err)

	_, err = repo.Load(ctx, "")
	require.EqualError(t, err, "ownerID is empty")

	err = repo.Save(ctx, domain.Cart{Items: []domain.CartItem{randomCartItem()}})
	require.EqualError(t, err, "ownerID is empty")

	_, err = repository.NewFileCart("", egp)
	require.Error(t, err)
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
