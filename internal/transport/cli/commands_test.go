package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/abgdnv/cartkeeper/internal/app"
	"github.com/abgdnv/cartkeeper/internal/cart"
	"github.com/abgdnv/cartkeeper/internal/config"
	carterrors "github.com/abgdnv/cartkeeper/internal/errors"
	"github.com/abgdnv/cartkeeper/internal/store"
	pkgconfig "github.com/abgdnv/cartkeeper/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedStore survives Close so that consecutive commands see the same storage,
// like the file on disk does between two runs.
type sharedStore struct {
	store.KVStore
}

func (sharedStore) Close() error { return nil }

type harness struct {
	kv          *store.InMemory
	opened      []app.Options
	interactive int
}

func newHarness() *harness {
	return &harness{kv: store.NewInMemoryStore()}
}

func (h *harness) open(_ context.Context, opts app.Options) (*app.Dependencies, error) {
	h.opened = append(h.opened, opts)
	cfg := &config.Config{
		Storage:  pkgconfig.StorageConfig{Driver: pkgconfig.StorageDriverMemory, Key: "cart"},
		Currency: config.CurrencyConfig{Symbol: "$"},
		Catalog: config.CatalogConfig{Products: []config.ProductConfig{
			{Name: "Widget", Price: "9.99"},
			{Name: "Gadget", Price: "4.50"},
			{Name: "Broken", Price: "abc"},
		}},
	}
	return app.SetupDependencies(sharedStore{h.kv}, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))), nil
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(h.open, func(_ context.Context, _ *app.Dependencies) error {
		h.interactive++
		return nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) stored(t *testing.T) *cart.Cart {
	t.Helper()
	data, err := h.kv.Get(context.Background(), "cart")
	require.NoError(t, err)
	c, err := cart.Decode(data)
	require.NoError(t, err)
	return c
}

func TestRoot_StartsInteractive(t *testing.T) {
	h := newHarness()

	_, err := h.run(t, "--ephemeral", "--config", "shop.yaml")

	require.NoError(t, err)
	assert.Equal(t, 1, h.interactive)
	require.Len(t, h.opened, 1)
	assert.Equal(t, app.Options{ConfigFile: "shop.yaml", Ephemeral: true}, h.opened[0])
}

func TestProducts(t *testing.T) {
	h := newHarness()

	out, err := h.run(t, "products")

	require.NoError(t, err)
	assert.Contains(t, out, "1. Widget")
	assert.Contains(t, out, "2. Gadget")
	assert.Contains(t, out, "9.99")
	assert.Zero(t, h.interactive)
}

func TestAdd(t *testing.T) {
	testCases := []struct {
		name      string
		args      [][]string
		expectErr error
		expectOut string
		wantLines int
		wantTotal string
	}{
		{
			name:      "by name and price twice",
			args:      [][]string{{"add", "Widget", "9.99"}, {"add", "Widget", "9.99"}},
			expectOut: "Total: $19.98",
			wantLines: 1,
			wantTotal: "19.98",
		},
		{
			name:      "by product position",
			args:      [][]string{{"add", "--product", "2"}},
			expectOut: "1. Gadget",
			wantLines: 1,
			wantTotal: "4.50",
		},
		{
			name:      "invalid price",
			args:      [][]string{{"add", "Widget", "abc"}},
			expectErr: carterrors.ErrValidation,
			expectOut: "Could not add the product to the cart",
		},
		{
			name:      "misconfigured catalog product",
			args:      [][]string{{"add", "-p", "3"}},
			expectErr: carterrors.ErrValidation,
			expectOut: "Could not add the product to the cart",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newHarness()

			// when
			var out string
			var err error
			for _, args := range tc.args {
				out, err = h.run(t, args...)
			}

			// then
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				assert.Contains(t, out, tc.expectOut)
				_, getErr := h.kv.Get(context.Background(), "cart")
				assert.ErrorIs(t, getErr, carterrors.ErrKeyNotFound)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tc.expectOut)
			stored := h.stored(t)
			assert.Equal(t, tc.wantLines, stored.Len())
			assert.Equal(t, tc.wantTotal, stored.Total().StringFixed(2))
		})
	}
}

func TestAdd_ArgumentErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "missing price", args: []string{"add", "Widget"}},
		{name: "flag and arguments", args: []string{"add", "-p", "1", "Widget", "9.99"}},
		{name: "product out of range", args: []string{"add", "-p", "9"}},
		{name: "product zero", args: []string{"add", "-p", "0"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			_, err := h.run(t, tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestIndexCommands(t *testing.T) {
	testCases := []struct {
		name      string
		args      []string
		wantNames []string
		wantQty   []int
		nothing   bool
	}{
		{name: "inc", args: []string{"inc", "1"}, wantNames: []string{"Widget", "Gadget"}, wantQty: []int{2, 1}},
		{name: "dec stops at one", args: []string{"dec", "2"}, wantNames: []string{"Widget", "Gadget"}, wantQty: []int{1, 1}, nothing: true},
		{name: "rm first", args: []string{"rm", "1"}, wantNames: []string{"Gadget"}, wantQty: []int{1}},
		{name: "out of range", args: []string{"rm", "5"}, wantNames: []string{"Widget", "Gadget"}, wantQty: []int{1, 1}, nothing: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newHarness()
			_, err := h.run(t, "add", "Widget", "9.99")
			require.NoError(t, err)
			_, err = h.run(t, "add", "Gadget", "4.50")
			require.NoError(t, err)

			// when
			out, err := h.run(t, tc.args...)

			// then
			require.NoError(t, err)
			if tc.nothing {
				assert.Contains(t, out, "Nothing changed")
			}
			items := h.stored(t).Items()
			require.Len(t, items, len(tc.wantNames))
			for i, item := range items {
				assert.Equal(t, tc.wantNames[i], item.Name)
				assert.Equal(t, tc.wantQty[i], item.Quantity)
			}
		})
	}
}

func TestIndexCommands_InvalidPosition(t *testing.T) {
	for _, arg := range []string{"first", "0", "-1", "1.5"} {
		t.Run(arg, func(t *testing.T) {
			h := newHarness()

			_, err := h.run(t, "inc", arg)

			assert.Error(t, err)
			assert.Empty(t, h.opened, "nothing is opened for a bad position")
		})
	}
}

func TestCheckout(t *testing.T) {
	// given
	h := newHarness()
	_, err := h.run(t, "add", "Widget", "9.99")
	require.NoError(t, err)
	_, err = h.run(t, "inc", "1")
	require.NoError(t, err)

	// when
	out, err := h.run(t, "checkout")

	// then
	require.NoError(t, err)
	assert.Contains(t, out, "Thank you for your purchase! Total: $19.98")
	assert.Contains(t, out, "Order ")
	assert.True(t, h.stored(t).IsEmpty())

	// a second checkout finds the cart empty
	out, err = h.run(t, "checkout")
	assert.True(t, errors.Is(err, carterrors.ErrEmptyCart))
	assert.Contains(t, out, "Your cart is empty!")
}

func TestShow_RecoversFromMalformedStorage(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.kv.Set(context.Background(), "cart", []byte("{not json")))

	out, err := h.run(t, "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty")
}
