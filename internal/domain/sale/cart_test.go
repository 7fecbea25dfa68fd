package sale

import (
	"testing"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, name, price string) *catalog.Product {
	return &catalog.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func TestCart_AddItem(t *testing.T) {
	t.Run("distinct products produce one line each", func(t *testing.T) {
		cart := NewCart(ZeroQuantityKeep)
		products := []*catalog.Product{
			product(1, "Sela", "200.00"),
			product(2, "Cabresto", "45.335"),
			product(3, "Espora", "0.105"),
		}
		quantities := []int{2, 3, 1}

		want := decimal.Zero
		for i, p := range products {
			_, err := cart.AddItem(p, quantities[i])
			require.NoError(t, err)
			want = want.Add(p.Price.Mul(decimal.NewFromInt(int64(quantities[i]))).Round(2))
		}

		assert.Equal(t, 3, cart.Len())
		assert.True(t, cart.Subtotal().Equal(want), "subtotal %s want %s", cart.Subtotal(), want)
		assert.True(t, cart.Total().Equal(cart.Subtotal()))
		assert.Equal(t, 6, cart.TotalQuantity())
	})

	t.Run("same product merges and recomputes from merged quantity", func(t *testing.T) {
		cart := NewCart(ZeroQuantityKeep)
		p := product(7, "Rédea", "0.125")

		first, err := cart.AddItem(p, 1)
		require.NoError(t, err)
		second, err := cart.AddItem(p, 1)
		require.NoError(t, err)

		require.Equal(t, 1, cart.Len())
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 2, second.Quantity)
		// 2 × 0.125 = 0.25, while 0.13 + 0.13 would be 0.26
		assert.Equal(t, "0.25", second.Total.StringFixed(2))
		assert.Equal(t, "0.25", cart.Subtotal().StringFixed(2))
	})

	t.Run("keeps the price captured at add time", func(t *testing.T) {
		cart := NewCart(ZeroQuantityKeep)
		p := product(1, "Sela", "200.00")
		_, err := cart.AddItem(p, 1)
		require.NoError(t, err)

		p.Price = decimal.NewFromInt(250)
		item, err := cart.AddItem(p, 1)
		require.NoError(t, err)

		assert.Equal(t, "200.00", item.UnitPrice.StringFixed(2))
		assert.Equal(t, "400.00", item.Total.StringFixed(2))
	})

	t.Run("requires a product", func(t *testing.T) {
		cart := NewCart(ZeroQuantityKeep)
		_, err := cart.AddItem(nil, 1)
		assert.ErrorIs(t, err, ErrNoProductSelected)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart := NewCart(ZeroQuantityKeep)
		for _, q := range []int{0, -1} {
			_, err := cart.AddItem(product(1, "Sela", "1"), q)
			assert.ErrorIs(t, err, ErrInvalidQuantity)
			assert.True(t, IsValidationError(err))
		}
		assert.True(t, cart.IsEmpty())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		cart := NewCart(ZeroQuantityKeep)
		_, _ = cart.AddItem(product(3, "C", "1"), 1)
		_, _ = cart.AddItem(product(1, "A", "1"), 1)
		_, _ = cart.AddItem(product(3, "C", "1"), 1)

		items := cart.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(3), items[0].ProductID)
		assert.Equal(t, int64(1), items[1].ProductID)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart(ZeroQuantityKeep)
	item, err := cart.AddItem(product(1, "Sela", "200"), 2)
	require.NoError(t, err)
	before := cart.Items()

	cart.RemoveItem(uuid.New())
	assert.Equal(t, before, cart.Items())

	cart.RemoveItem(item.ID)
	assert.True(t, cart.IsEmpty())

	cart.RemoveItem(item.ID)
	assert.True(t, cart.IsEmpty())
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Run("numeric input recomputes total", func(t *testing.T) {
		cart := NewCart(ZeroQuantityKeep)
		item, _ := cart.AddItem(product(1, "Sela", "200"), 1)

		cart.UpdateQuantity(item.ID, " 3 ")
		got, ok := cart.Item(item.ID)
		require.True(t, ok)
		assert.Equal(t, 3, got.Quantity)
		assert.Equal(t, "600.00", got.Total.StringFixed(2))
	})

	t.Run("leading digits are kept", func(t *testing.T) {
		cart := NewCart(ZeroQuantityKeep)
		item, _ := cart.AddItem(product(1, "Sela", "200"), 2)

		cart.UpdateQuantity(item.ID, "1.5")
		got, _ := cart.Item(item.ID)
		assert.Equal(t, 1, got.Quantity)
		assert.Equal(t, "200.00", got.Total.StringFixed(2))

		cart.UpdateQuantity(item.ID, "3abc")
		got, _ = cart.Item(item.ID)
		assert.Equal(t, 3, got.Quantity)
	})

	for _, raw := range []string{"abc", "", "-4", ".5"} {
		t.Run("lenient input "+raw+" becomes zero", func(t *testing.T) {
			cart := NewCart(ZeroQuantityKeep)
			item, _ := cart.AddItem(product(1, "Sela", "200"), 2)

			cart.UpdateQuantity(item.ID, raw)
			got, ok := cart.Item(item.ID)
			require.True(t, ok)
			assert.Equal(t, 0, got.Quantity)
			assert.Equal(t, "0.00", got.Total.StringFixed(2))
			assert.Empty(t, cart.CheckoutLines())
		})
	}

	t.Run("prune policy removes zeroed lines", func(t *testing.T) {
		cart := NewCart(ZeroQuantityPrune)
		item, _ := cart.AddItem(product(1, "Sela", "200"), 2)
		_, _ = cart.AddItem(product(2, "Manta", "50"), 1)

		cart.UpdateQuantity(item.ID, "0")
		assert.Equal(t, 1, cart.Len())
		_, ok := cart.Item(item.ID)
		assert.False(t, ok)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		cart := NewCart(ZeroQuantityKeep)
		_, _ = cart.AddItem(product(1, "Sela", "200"), 2)
		before := cart.Items()

		cart.UpdateQuantity(uuid.New(), "5")
		assert.Equal(t, before, cart.Items())
	})
}

func TestCart_CheckoutLinesAndClear(t *testing.T) {
	cart := NewCart(ZeroQuantityKeep)
	a, _ := cart.AddItem(product(1, "Sela", "200"), 2)
	_, _ = cart.AddItem(product(2, "Manta", "50"), 1)
	cart.SetQuantity(a.ID, 0)

	lines := cart.CheckoutLines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ProductID)
	assert.Equal(t, 2, cart.Len())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Subtotal().IsZero())
}

func TestNewCart_DefaultsPolicy(t *testing.T) {
	assert.Equal(t, ZeroQuantityKeep, NewCart("").Policy())
	assert.Equal(t, ZeroQuantityPrune, NewCart(ZeroQuantityPrune).Policy())
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]int{
		"2":                    2,
		" 10 ":                 10,
		"+4":                   4,
		"0":                    0,
		"1.5":                  1,
		"2.0":                  2,
		"3abc":                 3,
		"007":                  7,
		"-3":                   0,
		"-0":                   0,
		"x":                    0,
		"abc3":                 0,
		"":                     0,
		"   ":                  0,
		"+":                    0,
		"99999999999999999999": 0,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseQuantity(raw), "input %q", raw)
	}
}
