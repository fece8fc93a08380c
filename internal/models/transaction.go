package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TxTypeIncome   = "income"
	TxTypeExpense  = "expense"
	TxTypeTransfer = "transfer"
)

// Transaction is a single ledger entry. Amount is always positive; the
// sign of the balance effect is implied by Type and direction.
// ToAccountID is set if and only if Type is transfer.
type Transaction struct {
	ID            string          `json:"id" db:"id"`
	UID           string          `json:"uid" db:"uid"`
	AccountID     string          `json:"accountId" db:"account_id"`
	ToAccountID   string          `json:"toAccountId,omitempty" db:"to_account_id"`
	Type          string          `json:"type" db:"tx_type"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Category      string          `json:"category" db:"category"`
	Reason        string          `json:"reason" db:"reason"`
	Source        string          `json:"source,omitempty" db:"source"`
	PaymentMethod string          `json:"paymentMethod" db:"payment_method"`
	Date          time.Time       `json:"date" db:"tx_date"`
	Month         string          `json:"month" db:"month"` // e.g. "January"
	Year          string          `json:"year" db:"year"`   // e.g. "2026"
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// MonthlySummary aggregates one calendar month of transactions.
// ByCategory covers expenses only; its values sum to TotalExpenses.
type MonthlySummary struct {
	Month            string                     `json:"month"`
	Year             string                     `json:"year"`
	TotalIncome      decimal.Decimal            `json:"totalIncome"`
	TotalExpenses    decimal.Decimal            `json:"totalExpenses"`
	NetSavings       decimal.Decimal            `json:"netSavings"`
	ByCategory       map[string]decimal.Decimal `json:"byCategory"`
	TransactionCount int                        `json:"transactionCount"`
}

// PaymentMethods accepted on transaction submission
var PaymentMethods = []string{
	"Credit Card",
	"Debit Card",
	"Bank",
	"Zelle",
	"Cash",
	"Other",
}

// ExpenseCategories accepted for expense transactions
var ExpenseCategories = []string{
	"Food",
	"Groceries",
	"Transport",
	"Shopping",
	"Entertainment",
	"Bills",
	"Rent",
	"Healthcare",
	"Education",
	"Personal Care",
	"Utilities",
	"Travel",
	"Gifts & Donations",
	"Home & Garden",
	"Insurance",
	"Subscriptions",
	"Dining Out",
	"Fitness & Sports",
	"Pet Care",
	"Clothing",
	"Electronics",
	"Lending / Reimbursable",
	"Others",
}

// IncomeCategories accepted for income transactions
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Pocket Money",
	"Gift",
	"Investment Returns",
	"Reimbursement",
	"Other Income",
}
