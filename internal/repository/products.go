package repository

import (
	"context"
	"fmt"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/shopspring/decimal"
)

// ReplaceProducts swaps the whole product table for items in one transaction.
func (r *Repository) ReplaceProducts(ctx context.Context, items []domain.CatalogItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (sku, category, name, price, stock, is_available)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(sku) DO UPDATE SET
			category = excluded.category,
			name = excluded.name,
			price = excluded.price,
			stock = excluded.stock,
			is_available = excluded.is_available`)
	if err != nil {
		return fmt.Errorf("prepare insert product: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		avail := 0
		if it.IsAvailable {
			avail = 1
		}
		if _, err := stmt.ExecContext(ctx, it.SKU, it.Category, it.DisplayName,
			it.UnitPrice.InexactFloat64(), it.StockLevel, avail); err != nil {
			return fmt.Errorf("insert product %s: %w", it.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit products: %w", err)
	}
	return nil
}

// ListProducts returns every stored product, available or not, in insertion order.
func (r *Repository) ListProducts(ctx context.Context) ([]domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sku, COALESCE(category, ''), COALESCE(name, ''), COALESCE(price, 0),
		       COALESCE(stock, -1), COALESCE(is_available, 1)
		FROM products
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var (
			it    domain.CatalogItem
			price float64
			avail int
		)
		if err := rows.Scan(&it.SKU, &it.Category, &it.DisplayName, &price, &it.StockLevel, &avail); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		it.UnitPrice = decimal.NewFromFloat(price)
		it.IsAvailable = avail != 0
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return items, nil
}
