package service

import (
	"testing"

	cartModel "storefront-backend/internal/domains/cart/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(variantID, price string, qty int) cartModel.CartItem {
	return cartModel.CartItem{
		ProductID:    "p-" + variantID,
		ProductTitle: "Produto " + variantID,
		VariantID:    variantID,
		UnitPrice:    cartModel.Money{Amount: decimal.RequireFromString(price), CurrencyCode: "BRL"},
		Quantity:     qty,
	}
}

func TestRedistribute_TenPercentOff(t *testing.T) {
	items := []cartModel.CartItem{line("a", "100", 1), line("b", "200", 1)}

	out := Redistribute(items, decimal.RequireFromString("270"))

	require.Len(t, out, 2)
	assert.Equal(t, int64(9000), out[0].UnitPrice)
	assert.Equal(t, int64(18000), out[1].UnitPrice)
	assert.Equal(t, int64(27000), SumItems(out))
}

func TestRedistribute_SplitsUnevenLine(t *testing.T) {
	// 33.33 × 3 = 99.99, 10% off = 89.99
	items := []cartModel.CartItem{line("a", "33.33", 3)}

	out := Redistribute(items, decimal.RequireFromString("89.99"))

	require.Len(t, out, 2)
	assert.Equal(t, int64(2999), out[0].UnitPrice)
	assert.Equal(t, 1, out[0].Quantity)
	assert.Equal(t, int64(3000), out[1].UnitPrice)
	assert.Equal(t, 2, out[1].Quantity)
	assert.Equal(t, int64(8999), SumItems(out))
}

func TestRedistribute_ExactAcrossManyLines(t *testing.T) {
	items := []cartModel.CartItem{
		line("a", "19.90", 3),
		line("b", "49.99", 1),
		line("c", "7.35", 7),
		line("d", "129.00", 2),
	}

	var subtotal decimal.Decimal
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	discount := subtotal.Mul(decimal.NewFromInt(10)).Div(decimal.NewFromInt(100)).Round(2)
	target := subtotal.Sub(discount)

	out := Redistribute(items, target)
	assert.Equal(t, ToCents(target), SumItems(out))

	for _, it := range out {
		assert.GreaterOrEqual(t, it.UnitPrice, int64(0))
	}
}

func TestRedistribute_FixedTotal(t *testing.T) {
	items := []cartModel.CartItem{line("a", "150", 1), line("b", "90", 2)}

	out := Redistribute(items, decimal.RequireFromString("1"))
	assert.Equal(t, int64(100), SumItems(out))
}

func TestRedistribute_NoDiscountKeepsPrices(t *testing.T) {
	items := []cartModel.CartItem{line("a", "59.90", 2), line("b", "10", 1)}

	out := Redistribute(items, decimal.RequireFromString("129.80"))

	require.Len(t, out, 2)
	assert.Equal(t, int64(5990), out[0].UnitPrice)
	assert.Equal(t, 2, out[0].Quantity)
	assert.Equal(t, int64(1000), out[1].UnitPrice)
}

func TestRedistribute_Empty(t *testing.T) {
	assert.Empty(t, Redistribute(nil, decimal.Zero))
}
