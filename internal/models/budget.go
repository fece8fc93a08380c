package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alert types
const (
	AlertTypeBudgetLevel  = "budget_level"
	AlertTypeRecurringDue = "recurring_due"
)

// BudgetLevelCount is the number of spend-level thresholds per user
const BudgetLevelCount = 5

// Budget caps monthly spend for one category
type Budget struct {
	ID       string          `json:"id" db:"id"`
	UID      string          `json:"uid" db:"uid"`
	Category string          `json:"category" db:"category"`
	Limit    decimal.Decimal `json:"limit" db:"spend_limit"`
	Period   string          `json:"period" db:"period"` // always "monthly"
}

// BudgetConfig holds the five ascending total-spend thresholds
type BudgetConfig struct {
	UID       string            `json:"uid" db:"uid"`
	Levels    []decimal.Decimal `json:"levels" db:"levels"`
	UpdatedAt time.Time         `json:"lastUpdated" db:"updated_at"`
}

// BudgetStatus is the per-category month-to-date view
type BudgetStatus struct {
	Category   string          `json:"category"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Alert is a generated notification. IDs are deterministic per
// (type, level, month, year) so concurrent clients cannot duplicate one.
type Alert struct {
	ID        string    `json:"id" db:"id"`
	UID       string    `json:"uid" db:"uid"`
	Type      string    `json:"type" db:"alert_type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Level     int       `json:"level,omitempty" db:"level"`
	Month     int       `json:"month" db:"month"`
	Year      int       `json:"year" db:"year"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	Cleared   bool      `json:"cleared" db:"cleared"`
	CreatedAt time.Time `json:"date" db:"created_at"`
}
