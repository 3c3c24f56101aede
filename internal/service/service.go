// Package service provides the cart manager: the owned cart, its mutations and its persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/cartkeeper/internal/cart"
	carterrors "github.com/abgdnv/cartkeeper/internal/errors"
	"github.com/abgdnv/cartkeeper/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService defines the operations of the cart manager.
// Implementations are driven from a single goroutine and are not safe for concurrent use.
type CartService interface {
	// AddItem validates input and adds one unit of the product.
	// Returns an error wrapping ErrValidation if the input is malformed; the cart is unchanged.
	AddItem(ctx context.Context, input cart.ProductInput) error

	// IncrementQuantity adds one unit to the line at index.
	// Reports false without touching the cart if index is out of range.
	IncrementQuantity(ctx context.Context, index int) bool

	// DecrementQuantity removes one unit from the line at index while the quantity stays at least 1.
	DecrementQuantity(ctx context.Context, index int) bool

	// RemoveItem deletes the line at index.
	RemoveItem(ctx context.Context, index int) bool

	// ComputeTotal returns the sum of price * quantity over the current lines.
	ComputeTotal() decimal.Decimal

	// Checkout reports the total due and clears the cart.
	// Returns ErrEmptyCart if there is nothing to check out.
	Checkout(ctx context.Context) (*Receipt, error)

	// Persist writes the cart to storage.
	// Returns an error wrapping ErrPersistence if the write fails.
	Persist(ctx context.Context) error

	// Restore replaces the cart with the persisted one, or an empty cart if
	// nothing usable is stored. It never fails.
	Restore(ctx context.Context)

	// Snapshot returns a read-only copy of the cart for rendering.
	Snapshot() cart.Snapshot
}

// Receipt describes a completed checkout.
type Receipt struct {
	OrderID      uuid.UUID
	Lines        []cart.Line
	Total        decimal.Decimal
	Count        int
	CheckedOutAt time.Time
}

// Service implements CartService on top of a key-value store.
type Service struct {
	cart   *cart.Cart
	store  store.KVStore
	key    string
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a cart manager holding an empty cart. Call Restore to load the persisted cart.
func NewService(kv store.KVStore, key string, logger *slog.Logger) *Service {
	return &Service{
		cart:   cart.New(),
		store:  kv,
		key:    key,
		logger: logger.With("component", "cart"),
		now:    time.Now,
	}
}

// AddItem validates the input and adds one unit of the product.
func (s *Service) AddItem(ctx context.Context, input cart.ProductInput) error {
	product, err := input.Parse()
	if err != nil {
		s.logger.WarnContext(ctx, "Error adding to cart", "name", input.Name, "price", input.Price, "error", err)
		return fmt.Errorf("failed to add item: %w", err)
	}

	s.cart.Add(product)
	s.logger.DebugContext(ctx, "Item added", "name", product.Name, "price", product.Price, "total", s.cart.Total().String())
	s.persistQuietly(ctx)
	return nil
}

// IncrementQuantity adds one unit to the line at index.
func (s *Service) IncrementQuantity(ctx context.Context, index int) bool {
	if !s.cart.Increment(index) {
		s.logger.DebugContext(ctx, "Increment ignored", "index", index, "lines", s.cart.Len())
		return false
	}
	s.persistQuietly(ctx)
	return true
}

// DecrementQuantity removes one unit from the line at index, never going below 1.
func (s *Service) DecrementQuantity(ctx context.Context, index int) bool {
	if !s.cart.Decrement(index) {
		s.logger.DebugContext(ctx, "Decrement ignored", "index", index, "lines", s.cart.Len())
		return false
	}
	s.persistQuietly(ctx)
	return true
}

// RemoveItem deletes the line at index.
func (s *Service) RemoveItem(ctx context.Context, index int) bool {
	if !s.cart.Remove(index) {
		s.logger.DebugContext(ctx, "Remove ignored", "index", index, "lines", s.cart.Len())
		return false
	}
	s.persistQuietly(ctx)
	return true
}

// ComputeTotal returns the cart total.
func (s *Service) ComputeTotal() decimal.Decimal {
	return s.cart.Total()
}

// Checkout clears a non-empty cart and returns what was bought.
func (s *Service) Checkout(ctx context.Context) (*Receipt, error) {
	if s.cart.IsEmpty() {
		s.logger.InfoContext(ctx, "Checkout attempted with an empty cart")
		return nil, carterrors.ErrEmptyCart
	}

	snapshot := s.cart.Snapshot()
	receipt := &Receipt{
		OrderID:      uuid.New(),
		Lines:        snapshot.Lines,
		Total:        snapshot.Total,
		Count:        snapshot.Count,
		CheckedOutAt: s.now(),
	}

	s.cart.Clear()
	s.persistQuietly(ctx)

	s.logger.InfoContext(ctx, "Checkout completed",
		"order_id", receipt.OrderID.String(),
		"total", receipt.Total.StringFixed(2),
		"units", receipt.Count)
	return receipt, nil
}

// Persist encodes the cart and writes it under the configured key.
func (s *Service) Persist(ctx context.Context) error {
	data, err := cart.Encode(s.cart)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", carterrors.ErrPersistence, err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: %w", carterrors.ErrPersistence, err)
	}
	return nil
}

// Restore loads the persisted cart. Missing or unusable data leaves an empty cart.
func (s *Service) Restore(ctx context.Context) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.cart = cart.New()
		if errors.Is(err, carterrors.ErrKeyNotFound) {
			s.logger.DebugContext(ctx, "No saved cart found", "key", s.key)
			return
		}
		s.logger.ErrorContext(ctx, "Error loading cart", "key", s.key, "error", fmt.Errorf("%w: %w", carterrors.ErrPersistence, err))
		return
	}

	restored, err := cart.Decode(data)
	if err != nil {
		s.cart = cart.New()
		s.logger.ErrorContext(ctx, "Error loading cart", "key", s.key, "error", err)
		return
	}
	s.cart = restored
	s.logger.DebugContext(ctx, "Cart restored", "key", s.key, "lines", restored.Len())
}

// Snapshot returns a read-only copy of the cart.
func (s *Service) Snapshot() cart.Snapshot {
	return s.cart.Snapshot()
}

// persistQuietly persists the cart and logs a failure instead of returning it.
func (s *Service) persistQuietly(ctx context.Context) {
	if err := s.Persist(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Error saving cart", "key", s.key, "error", err)
	}
}
