package service

import (
	"sort"

	cartModel "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/payment/model"

	"github.com/shopspring/decimal"
)

// ToCents converts a BRL amount to centavos, rounding half away from zero
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

type lineShare struct {
	index     int
	share     int64
	remainder int64
}

// Redistribute scales line prices so the gateway items add up to itemsTotal
// exactly.
//
// Step 1: each line gets floor(lineTotal × target / rawTotal) centavos
// Step 2: leftover centavos go to the lines with the largest remainders
// Step 3: a share that does not divide by the quantity is split into two
// gateway items, priced unit and unit+1
func Redistribute(items []cartModel.CartItem, itemsTotal decimal.Decimal) []model.GatewayItem {
	if len(items) == 0 {
		return []model.GatewayItem{}
	}

	target := ToCents(itemsTotal)
	if target < 0 {
		target = 0
	}

	lineTotals := make([]int64, len(items))
	var raw int64
	for i, item := range items {
		lineTotals[i] = ToCents(item.UnitPrice.Amount) * int64(item.Quantity)
		raw += lineTotals[i]
	}

	// Step 1
	shares := make([]lineShare, len(items))
	var allocated int64
	for i := range items {
		shares[i].index = i
		if raw == 0 {
			continue
		}
		scaled := lineTotals[i] * target
		shares[i].share = scaled / raw
		shares[i].remainder = scaled % raw
		allocated += shares[i].share
	}

	// Step 2
	if raw == 0 {
		// nothing to scale from, spread evenly by position
		allocated = 0
		for i := range shares {
			shares[i].share = target / int64(len(shares))
			allocated += shares[i].share
		}
	}
	leftover := target - allocated
	if leftover > 0 {
		order := make([]lineShare, len(shares))
		copy(order, shares)
		sort.SliceStable(order, func(a, b int) bool {
			return order[a].remainder > order[b].remainder
		})
		for k := 0; leftover > 0; k = (k + 1) % len(order) {
			shares[order[k].index].share++
			leftover--
		}
	}

	// Step 3
	out := make([]model.GatewayItem, 0, len(items))
	for i, item := range items {
		qty := int64(item.Quantity)
		if qty <= 0 {
			continue
		}
		unit := shares[i].share / qty
		rem := shares[i].share % qty

		title := item.ProductTitle
		if item.VariantTitle != "" {
			title += " - " + item.VariantTitle
		}

		if qty-rem > 0 {
			out = append(out, model.GatewayItem{
				ExternalRef: item.VariantID,
				Title:       title,
				UnitPrice:   unit,
				Quantity:    int(qty - rem),
				Tangible:    true,
			})
		}
		if rem > 0 {
			out = append(out, model.GatewayItem{
				ExternalRef: item.VariantID,
				Title:       title,
				UnitPrice:   unit + 1,
				Quantity:    int(rem),
				Tangible:    true,
			})
		}
	}
	return out
}

// SumItems is the total the gateway will see for items
func SumItems(items []model.GatewayItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}
