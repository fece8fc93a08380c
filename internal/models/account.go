package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account kinds for balance-sheet classification
const (
	AccountKindAsset     = "asset"
	AccountKindLiability = "liability"
	AccountKindEquity    = "equity"
)

// CashAccountID is the sentinel source for cash/external payments.
// A transaction whose accountId is empty or equal to this value does not
// touch any tracked balance on the source side.
const CashAccountID = "cash"

// Account represents a tracked account (bank, investment, loan, ...)
type Account struct {
	ID        string          `json:"id" db:"id"`
	UID       string          `json:"uid" db:"uid"`
	Name      string          `json:"name" db:"name"`
	Kind      string          `json:"kind" db:"kind"`
	Category  string          `json:"category" db:"category"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	Version   int             `json:"-" db:"version"` // for optimistic locking
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// BalanceSnapshot is one point-in-time balance record for an account.
// The current balance of an account is the snapshot with the latest
// recorded_at; equal timestamps are broken by the highest seq.
type BalanceSnapshot struct {
	Seq        int64           `json:"seq" db:"seq"`
	ID         string          `json:"id" db:"id"`
	UID        string          `json:"uid" db:"uid"`
	AccountID  string          `json:"accountId" db:"account_id"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	RecordedAt time.Time       `json:"recordedAt" db:"recorded_at"`
}

// AccountCategories is the conventional category list per kind
var AccountCategories = map[string][]string{
	AccountKindAsset: {
		"Cash and Cash Equivalents",
		"Investments",
		"Real Estate",
		"Personal Property",
		"Money Owed (Friends)",
		"Other Assets",
	},
	AccountKindLiability: {
		"Credit Cards",
		"Loans",
		"Mortgages",
		"Other Liabilities",
	},
	AccountKindEquity: {
		"Net Worth",
	},
}
