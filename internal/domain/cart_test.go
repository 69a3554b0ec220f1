package domain

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(sku string, price string, qty int) CartLine {
	return CartLine{SKU: sku, DisplayName: sku, UnitPrice: decimal.RequireFromString(price), Quantity: qty}
}

func TestCartAdd_MergesSameSKU(t *testing.T) {
	var c Cart
	c.Add(line("A", "9.99", 2))
	c.Add(line("B", "1.00", 1))
	c.Add(line("A", "9.99", 3))

	require.Len(t, c, 2)
	assert.Equal(t, "A", c[0].SKU)
	assert.Equal(t, 5, c[0].Quantity)
	assert.Equal(t, "B", c[1].SKU)
}

func TestCartAdd_NonPositiveQuantityCountsAsOne(t *testing.T) {
	var c Cart
	c.Add(line("A", "1", 0))
	assert.Equal(t, 1, c[0].Quantity)
}

func TestCartTotal(t *testing.T) {
	var c Cart
	c.Add(line("A", "9.99", 2))
	assert.True(t, decimal.RequireFromString("19.98").Equal(c.Total()))

	c.Add(line("FREE", "0", 1))
	assert.Len(t, c, 2)
	assert.True(t, decimal.RequireFromString("19.98").Equal(c.Total()))
}

func TestCartSetQuantity_ZeroRemovesLine(t *testing.T) {
	var c Cart
	c.Add(line("A", "1", 1))
	c.Add(line("B", "2", 1))

	assert.True(t, c.SetQuantity("A", 0))
	require.Len(t, c, 1)
	assert.Equal(t, "B", c[0].SKU)

	assert.False(t, c.Remove("missing"))
	assert.True(t, c.SetQuantity("B", 4))
	assert.Equal(t, 4, c[0].Quantity)
}

func TestCartSnapshot_IsDetached(t *testing.T) {
	var c Cart
	c.Add(line("A", "1", 1))
	snap := c.Snapshot()
	c.Add(line("A", "1", 1))
	c.Clear()

	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
	assert.True(t, c.Empty())
}

func TestCartProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("adding one sku repeatedly keeps a single line with summed quantity", prop.ForAll(
		func(qtys []int) bool {
			var c Cart
			sum := 0
			for _, q := range qtys {
				c.Add(line("SKU", "1.50", q))
				sum += q
			}
			if len(qtys) == 0 {
				return c.Empty()
			}
			return len(c) == 1 && c[0].Quantity == sum
		},
		gen.SliceOf(gen.IntRange(1, 50)),
	))

	properties.Property("total is the sum of price times quantity", prop.ForAll(
		func(cents []int, qty int) bool {
			var c Cart
			want := decimal.Zero
			for i, p := range cents {
				price := decimal.New(int64(p), -2)
				c.Add(CartLine{SKU: "sku-" + strconv.Itoa(i), UnitPrice: price, Quantity: qty})
				want = want.Add(price.Mul(decimal.NewFromInt(int64(qty))))
			}
			return c.Total().Equal(want)
		},
		gen.SliceOf(gen.IntRange(0, 100000)),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}
