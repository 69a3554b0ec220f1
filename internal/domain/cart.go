package domain

import (
	"github.com/shopspring/decimal"
)

type CartLine struct {
	SKU         string          `json:"sku"`
	DisplayName string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"price"`
	Quantity    int             `json:"qty"`
}

// Subtotal is UnitPrice * Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in insertion order, one line per SKU.
type Cart []CartLine

// Add merges the line into the cart. A line for an existing SKU increments
// its quantity; non-positive quantities count as 1.
func (c *Cart) Add(line CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range *c {
		if (*c)[i].SKU == line.SKU {
			(*c)[i].Quantity += line.Quantity
			return
		}
	}
	*c = append(*c, line)
}

// SetQuantity updates the quantity of sku. A quantity below 1 removes the line.
// It reports whether the sku was present.
func (c *Cart) SetQuantity(sku string, quantity int) bool {
	for i := range *c {
		if (*c)[i].SKU != sku {
			continue
		}
		if quantity < 1 {
			*c = append((*c)[:i], (*c)[i+1:]...)
			return true
		}
		(*c)[i].Quantity = quantity
		return true
	}
	return false
}

func (c *Cart) Remove(sku string) bool {
	return c.SetQuantity(sku, 0)
}

func (c *Cart) Clear() {
	*c = nil
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c Cart) Empty() bool {
	return len(c) == 0
}

// Snapshot returns a copy that later cart mutations cannot reach.
func (c Cart) Snapshot() []CartLine {
	out := make([]CartLine, len(c))
	copy(out, c)
	return out
}
