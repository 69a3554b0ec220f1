package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	DefaultCategory = "Uncategorized"
	// StockUntracked marks items whose stock is not managed.
	StockUntracked = -1
)

type CatalogItem struct {
	SKU         string
	Category    string
	DisplayName string
	UnitPrice   decimal.Decimal
	StockLevel  int
	IsAvailable bool
}

// OutOfStock reports a tracked stock level that has run out.
func (i CatalogItem) OutOfStock() bool {
	return i.StockLevel != StockUntracked && i.StockLevel <= 0
}

// CartLine converts the item into a single-unit cart line.
func (i CatalogItem) CartLine() CartLine {
	return CartLine{
		SKU:         i.SKU,
		DisplayName: i.DisplayName,
		UnitPrice:   i.UnitPrice,
		Quantity:    1,
	}
}

// Categories returns the sorted distinct categories of items.
func Categories(items []CatalogItem) []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, it := range items {
		c := it.Category
		if c == "" {
			c = DefaultCategory
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// InCategory returns the available items of category, keeping catalog order.
func InCategory(items []CatalogItem, category string) []CatalogItem {
	var out []CatalogItem
	for _, it := range items {
		if it.Category == category && it.IsAvailable {
			out = append(out, it)
		}
	}
	return out
}
