package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card types
const (
	CardTypeCredit = "credit"
	CardTypeDebit  = "debit"
)

// CreditCard represents a credit/debit card tracked alongside accounts.
// CurrentBalance is the amount owed; AvailableCredit must always equal
// CreditLimit - CurrentBalance after any mutating operation.
type CreditCard struct {
	ID              string          `json:"id" db:"id"`
	UID             string          `json:"uid" db:"uid"`
	Name            string          `json:"name" db:"name"`
	Bank            string          `json:"bank" db:"bank"`
	CardType        string          `json:"type" db:"card_type"`
	CreditLimit     decimal.Decimal `json:"creditLimit" db:"credit_limit"`
	CurrentBalance  decimal.Decimal `json:"currentBalance" db:"current_balance"`
	AvailableCredit decimal.Decimal `json:"availableCredit" db:"available_credit"`
	LastFour        string          `json:"lastFour" db:"last_four"`
	ExpiryDate      string          `json:"expiryDate" db:"expiry_date"`
	IsActive        bool            `json:"isActive" db:"is_active"`
	Version         int             `json:"-" db:"version"` // for optimistic locking
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}
