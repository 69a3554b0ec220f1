package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/shopspring/decimal"
)

// ParsePrice never fails: anything unparseable is zero.
func ParsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseInline reads one product per line: "sku|name|price", "name|price" or
// "name". Blank lines are skipped.
func ParseInline(raw string) []domain.CatalogItem {
	var items []domain.CatalogItem
	for _, ln := range strings.Split(raw, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		parts := strings.Split(ln, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		var sku, name, price string
		switch len(parts) {
		case 3:
			sku, name, price = parts[0], parts[1], parts[2]
		case 2:
			name, price = parts[0], parts[1]
			sku = name
		default:
			name = parts[0]
			sku = name
		}

		items = append(items, domain.CatalogItem{
			SKU:         sku,
			Category:    domain.DefaultCategory,
			DisplayName: name,
			UnitPrice:   ParsePrice(price),
			StockLevel:  domain.StockUntracked,
			IsAvailable: true,
		})
	}
	return items
}

var truthy = map[string]bool{"1": true, "true": true, "yes": true, "available": true}

// ParseFeed reads a comma separated feed with a header row. Unavailable rows
// are kept with IsAvailable false; rows without a name are dropped.
func ParseFeed(r io.Reader) ([]domain.CatalogItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read feed header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var items []domain.CatalogItem
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read feed row: %w", err)
		}

		field := func(names ...string) (string, bool) {
			for _, n := range names {
				i, ok := index[n]
				if !ok || i >= len(rec) {
					continue
				}
				if v := strings.TrimSpace(rec[i]); v != "" {
					return v, true
				}
			}
			return "", false
		}

		name, _ := field("item_name", "name")
		if name == "" {
			continue
		}
		sku, _ := field("sku", "id")
		if sku == "" {
			sku = name
		}
		category, _ := field("category")
		if category == "" {
			category = domain.DefaultCategory
		}
		price, _ := field("price", "price_usd")

		available := true
		if v, ok := field("is_available"); ok {
			available = truthy[strings.ToLower(v)]
		}

		stock := domain.StockUntracked
		if v, ok := field("stock"); ok {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				stock = n
			}
		}

		items = append(items, domain.CatalogItem{
			SKU:         sku,
			Category:    category,
			DisplayName: name,
			UnitPrice:   ParsePrice(price),
			StockLevel:  stock,
			IsAvailable: available,
		})
	}
	return items, nil
}

func availableOnly(items []domain.CatalogItem) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for _, it := range items {
		if it.IsAvailable {
			out = append(out, it)
		}
	}
	return out
}
