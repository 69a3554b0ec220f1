package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew OrderStatus = "new"
)

type Order struct {
	ID           int64
	SessionID    string
	ContactPhone string
	ContactName  string
	AddressText  string
	Latitude     *float64
	Longitude    *float64
	Lines        []CartLine
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	CreatedAt    time.Time
}

// NewOrder carries the fields captured at checkout. Total is computed by the
// caller from the same Lines snapshot.
type NewOrder struct {
	SessionID    string
	ContactPhone string
	ContactName  string
	AddressText  string
	Latitude     *float64
	Longitude    *float64
	Lines        []CartLine
	Total        decimal.Decimal
}

type NewLead struct {
	SessionID    string
	ContactPhone string
	ContactName  string
	Source       string
}

type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodMonthly ReportPeriod = "monthly"
)

// ParsePeriod maps anything other than "monthly" to daily.
func ParsePeriod(s string) ReportPeriod {
	if ReportPeriod(s) == PeriodMonthly {
		return PeriodMonthly
	}
	return PeriodDaily
}

// Window is the trailing duration a report covers.
func (p ReportPeriod) Window() time.Duration {
	if p == PeriodMonthly {
		return 30 * 24 * time.Hour
	}
	return 24 * time.Hour
}

type Summary struct {
	OrderCount int64
	Revenue    decimal.Decimal
}

// Stats is the audience overview shown by /stats.
type Stats struct {
	UsersTotal    int64
	MessagesTotal int64
	Messages24h   int64
	OrdersTotal   int64
	Languages     map[string]int64
}
