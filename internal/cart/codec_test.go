package cart

import (
	"testing"

	carterrors "github.com/abgdnv/cartkeeper/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	data, err := Encode(New())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	c := New()
	c.Add(Product{Name: "Widget", Price: 9.99})
	c.Add(Product{Name: "Widget", Price: 9.99})
	data, err = Encode(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Widget","price":9.99,"quantity":2}]`, string(data))
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name      string
		data      string
		expected  []LineItem
		expectErr bool
	}{
		{name: "empty array", data: `[]`, expected: []LineItem{}},
		{name: "whitespace around", data: " \n[{\"name\":\"A\",\"price\":1,\"quantity\":1}]\n", expected: []LineItem{{Name: "A", Price: 1, Quantity: 1}}},
		{name: "legacy qty", data: `[{"name":"A","price":1.5,"qty":4}]`, expected: []LineItem{{Name: "A", Price: 1.5, Quantity: 4}}},
		{name: "quantity wins over qty", data: `[{"name":"A","price":1,"quantity":2,"qty":9}]`, expected: []LineItem{{Name: "A", Price: 1, Quantity: 2}}},
		{name: "empty input", data: ``, expectErr: true},
		{name: "invalid json", data: `[{`, expectErr: true},
		{name: "object", data: `{"name":"A"}`, expectErr: true},
		{name: "null", data: `null`, expectErr: true},
		{name: "missing name", data: `[{"price":1,"quantity":1}]`, expectErr: true},
		{name: "empty name", data: `[{"name":"","price":1,"quantity":1}]`, expectErr: true},
		{name: "missing price", data: `[{"name":"A","quantity":1}]`, expectErr: true},
		{name: "price as text", data: `[{"name":"A","price":"1","quantity":1}]`, expectErr: true},
		{name: "negative price", data: `[{"name":"A","price":-1,"quantity":1}]`, expectErr: true},
		{name: "missing quantity", data: `[{"name":"A","price":1}]`, expectErr: true},
		{name: "zero quantity", data: `[{"name":"A","price":1,"quantity":0}]`, expectErr: true},
		{name: "fractional quantity", data: `[{"name":"A","price":1,"quantity":1.5}]`, expectErr: true},
		{name: "duplicate names", data: `[{"name":"A","price":1,"quantity":1},{"name":"A","price":1,"quantity":1}]`, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Decode([]byte(tc.data))
			if tc.expectErr {
				assert.ErrorIs(t, err, carterrors.ErrMalformedCart)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c.Items())
		})
	}
}

func TestEncodeDecode_PreservesOrder(t *testing.T) {
	c := New()
	c.Add(Product{Name: "Gizmo", Price: 24})
	c.Add(Product{Name: "Widget", Price: 9.99})
	c.Increment(1)

	data, err := Encode(c)
	require.NoError(t, err)
	restored, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, c.Items(), restored.Items())
	assert.True(t, c.Total().Equal(restored.Total()))
}
