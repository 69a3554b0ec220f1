package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateOrder persists an order with status "new" and returns its id.
func (r *Repository) CreateOrder(ctx context.Context, o domain.NewOrder) (int64, error) {
	lines := o.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return 0, fmt.Errorf("marshal items: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (chat_id, contact_phone, contact_name, address_text,
		                    location_lat, location_lon, items_json, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.SessionID, o.ContactPhone, o.ContactName, o.AddressText,
		nullFloat(o.Latitude), nullFloat(o.Longitude), string(itemsJSON),
		o.Total.InexactFloat64(), string(domain.OrderStatusNew), r.timestamp())
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order id: %w", err)
	}
	return id, nil
}

func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var (
		o         domain.Order
		lat, lon  sql.NullFloat64
		itemsJSON sql.NullString
		total     float64
		status    string
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(chat_id, ''), COALESCE(contact_phone, ''), COALESCE(contact_name, ''),
		       COALESCE(address_text, ''), location_lat, location_lon, items_json,
		       COALESCE(total, 0), COALESCE(status, ''), COALESCE(created_at, '')
		FROM orders WHERE id = ?`, id).Scan(
		&o.ID, &o.SessionID, &o.ContactPhone, &o.ContactName, &o.AddressText,
		&lat, &lon, &itemsJSON, &total, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	if itemsJSON.Valid && itemsJSON.String != "" {
		if err := json.Unmarshal([]byte(itemsJSON.String), &o.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	if lat.Valid {
		o.Latitude = &lat.Float64
	}
	if lon.Valid {
		o.Longitude = &lon.Float64
	}
	o.TotalAmount = decimal.NewFromFloat(total)
	o.Status = domain.OrderStatus(status)
	o.CreatedAt = parseTime(createdAt)
	return &o, nil
}

// ReportSummary counts orders and sums revenue over the trailing window of period.
func (r *Repository) ReportSummary(ctx context.Context, period domain.ReportPeriod) (domain.Summary, error) {
	cutoff := formatTime(r.now().Add(-period.Window()))

	var (
		count   int64
		revenue float64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(total), 0) FROM orders WHERE created_at > ?", cutoff).
		Scan(&count, &revenue)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("query report: %w", err)
	}
	return domain.Summary{
		OrderCount: count,
		Revenue:    decimal.NewFromFloat(revenue).Round(2),
	}, nil
}

// CreateLead records a sales lead with status "new" and returns its id.
func (r *Repository) CreateLead(ctx context.Context, l domain.NewLead) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO leads (chat_id, contact_phone, contact_name, source, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.SessionID, l.ContactPhone, l.ContactName, l.Source,
		string(domain.OrderStatusNew), r.timestamp())
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("lead id: %w", err)
	}
	return id, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
