package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurring frequencies
const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// RecurringTransaction is a scheduled bill/income. NextDueDate is
// advanced by the scheduler only; items stay scheduled until deleted.
type RecurringTransaction struct {
	ID              string          `json:"id" db:"id"`
	UID             string          `json:"uid" db:"uid"`
	Name            string          `json:"name" db:"name"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Type            string          `json:"type" db:"tx_type"`
	Frequency       string          `json:"frequency" db:"frequency"`
	NextDueDate     time.Time       `json:"nextDueDate" db:"next_due_date"`
	AutoPay         bool            `json:"autoPay" db:"auto_pay"`
	AccountID       string          `json:"accountId" db:"account_id"`
	Category        string          `json:"category" db:"category"`
	LastProcessedAt *time.Time      `json:"lastProcessedAt,omitempty" db:"last_processed_at"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}
