package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nikolayk812/tarzi-cart/internal/codec"
	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/nikolayk812/tarzi-cart/internal/port"
	"golang.org/x/text/currency"
)

type fileCartRepository struct {
	dir  string
	unit currency.Unit
}

// NewFileCart keeps one JSON file per cart in dir, creating dir if needed.
func NewFileCart(dir string, unit currency.Unit) (port.CartStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &fileCartRepository{
		dir:  dir,
		unit: unit,
	}, nil
}

func (r *fileCartRepository) Load(_ context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	data, err := os.ReadFile(r.path(ownerID))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Cart{OwnerID: ownerID}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	items, err := codec.UnmarshalItems(data, r.unit)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %w", port.ErrCorruptCart, err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

// Save writes to a temporary file and renames it over the previous copy.
func (r *fileCartRepository) Save(_ context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	data, err := codec.MarshalItems(cart.Items)
	if err != nil {
		return fmt.Errorf("codec.MarshalItems: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path(cart.OwnerID)); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}

func (r *fileCartRepository) Delete(_ context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := os.Remove(r.path(ownerID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove: %w", err)
	}

	return nil
}

func (r *fileCartRepository) path(ownerID string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(StorageKey(ownerID)))
	return filepath.Join(r.dir, name+".json")
}
