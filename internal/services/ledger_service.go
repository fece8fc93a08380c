package services

import (
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// ReconcileMode selects the algebraic direction of a reconciliation.
// Revert is the exact inverse of Apply for the same transaction.
type ReconcileMode int

const (
	ModeApply ReconcileMode = iota
	ModeRevert
)

const maxReconcileRetries = 3

// BalanceDelta is one signed adjustment produced by the rule table.
// For an account, Delta is added to the account balance; for a card it
// is added to the amount owed.
type BalanceDelta struct {
	ParticipantID string
	IsCard        bool
	Delta         decimal.Decimal
}

// LedgerService keeps account balances and card utilization consistent
// with the set of recorded transactions. Every balance write in the
// system goes through it.
type LedgerService struct {
	db *sql.DB
}

func NewLedgerService(db *sql.DB) *LedgerService {
	return &LedgerService{db: db}
}

// participantSet resolves a participant id to card or account. It is
// built once per operation from the owner's card ids; any id that is
// not a card is treated as a plain account.
type participantSet struct {
	cards map[string]bool
}

func (ps *participantSet) isCard(id string) bool {
	return ps.cards[id]
}

func isExternalSource(id string) bool {
	return id == "" || id == models.CashAccountID
}

// ComputeDeltas is the pure reconciliation rule table. It validates the
// transaction and returns every balance adjustment before anything is
// applied, so a failing transaction never mutates partial state.
func ComputeDeltas(txn *models.Transaction, mode ReconcileMode, isCard func(id string) bool) ([]BalanceDelta, error) {
	if txn.Amount.Cmp(decimal.Zero) <= 0 {
		return nil, validationErrorf("amount must be positive")
	}

	switch txn.Type {
	case models.TxTypeIncome, models.TxTypeExpense:
		if txn.ToAccountID != "" {
			return nil, validationErrorf("toAccountId is only valid for transfers")
		}
	case models.TxTypeTransfer:
		if txn.ToAccountID == "" {
			return nil, validationErrorf("toAccountId is required for transfers")
		}
	default:
		return nil, validationErrorf("unknown transaction type %q", txn.Type)
	}

	m := decimal.NewFromInt(1)
	if mode == ModeRevert {
		m = decimal.NewFromInt(-1)
	}
	amount := txn.Amount.Mul(m)

	deltas := []BalanceDelta{}

	if !isExternalSource(txn.AccountID) {
		sourceIsCard := isCard(txn.AccountID)
		var delta decimal.Decimal
		switch txn.Type {
		case models.TxTypeIncome:
			if sourceIsCard {
				delta = amount.Neg() // refund to card reduces debt
			} else {
				delta = amount
			}
		default: // expense and transfer-out behave alike on the source side
			if sourceIsCard {
				delta = amount // card debt increases
			} else {
				delta = amount.Neg()
			}
		}
		deltas = append(deltas, BalanceDelta{
			ParticipantID: txn.AccountID,
			IsCard:        sourceIsCard,
			Delta:         delta,
		})
	}

	if txn.Type == models.TxTypeTransfer {
		destIsCard := isCard(txn.ToAccountID)
		var delta decimal.Decimal
		if destIsCard {
			delta = amount.Neg() // paying a card reduces debt
		} else {
			delta = amount
		}
		deltas = append(deltas, BalanceDelta{
			ParticipantID: txn.ToAccountID,
			IsCard:        destIsCard,
			Delta:         delta,
		})
	}

	return deltas, nil
}

// Reconcile computes and applies all balance adjustments for a
// transaction inside the caller's database transaction. Participants
// are locked in ascending id order to prevent deadlocks, and every
// update is version-checked so a concurrent writer surfaces as
// ErrConflict rather than a lost update.
func (ls *LedgerService) Reconcile(tx *sql.Tx, uid string, txn *models.Transaction, mode ReconcileMode) ([]BalanceDelta, error) {
	ps, err := ls.loadParticipants(tx, uid)
	if err != nil {
		return nil, err
	}

	deltas, err := ComputeDeltas(txn, mode, ps.isCard)
	if err != nil {
		return nil, err
	}

	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].ParticipantID < deltas[j].ParticipantID
	})

	for _, d := range deltas {
		if d.IsCard {
			err = ls.adjustCard(tx, uid, d.ParticipantID, d.Delta)
		} else {
			err = ls.adjustAccount(tx, uid, d.ParticipantID, d.Delta)
		}
		if err != nil {
			return nil, err
		}
	}

	return deltas, nil
}

// WithRetry runs op, retrying a bounded number of times when it fails
// with ErrConflict (a concurrent writer changed a balance between read
// and write). Other errors are returned immediately.
func WithRetry(op func() error) error {
	var err error
	for attempt := 0; attempt < maxReconcileRetries; attempt++ {
		err = op()
		if err == nil || !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return err
}

func (ls *LedgerService) loadParticipants(tx *sql.Tx, uid string) (*participantSet, error) {
	rows, err := tx.Query(`SELECT id FROM cards WHERE uid = $1`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ps := &participantSet{cards: make(map[string]bool)}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ps.cards[id] = true
	}
	return ps, rows.Err()
}

func (ls *LedgerService) adjustAccount(tx *sql.Tx, uid, accountID string, delta decimal.Decimal) error {
	var balance decimal.Decimal
	var version int
	err := tx.QueryRow(`
		SELECT balance, version FROM accounts
		WHERE id = $1 AND uid = $2
		FOR UPDATE`, accountID, uid).Scan(&balance, &version)
	if err == sql.ErrNoRows {
		return notFoundErrorf("account %s", accountID)
	}
	if err != nil {
		return err
	}

	newBalance := balance.Add(delta)

	result, err := tx.Exec(`
		UPDATE accounts
		SET balance = $1, version = version + 1
		WHERE id = $2 AND uid = $3 AND version = $4`,
		newBalance, accountID, uid, version)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return conflictErrorf("account %s modified concurrently", accountID)
	}

	// Fresh snapshot per adjustment; the history stays append-only.
	_, err = tx.Exec(`
		INSERT INTO balances (id, uid, account_id, amount, recorded_at)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), uid, accountID, newBalance, time.Now())
	return err
}

func (ls *LedgerService) adjustCard(tx *sql.Tx, uid, cardID string, delta decimal.Decimal) error {
	var limit, owed decimal.Decimal
	var version int
	err := tx.QueryRow(`
		SELECT credit_limit, current_balance, version FROM cards
		WHERE id = $1 AND uid = $2
		FOR UPDATE`, cardID, uid).Scan(&limit, &owed, &version)
	if err == sql.ErrNoRows {
		return notFoundErrorf("card %s", cardID)
	}
	if err != nil {
		return err
	}

	newOwed := owed.Add(delta)
	newAvailable := limit.Sub(newOwed)

	result, err := tx.Exec(`
		UPDATE cards
		SET current_balance = $1, available_credit = $2, version = version + 1
		WHERE id = $3 AND uid = $4 AND version = $5`,
		newOwed, newAvailable, cardID, uid, version)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return conflictErrorf("card %s modified concurrently", cardID)
	}
	return nil
}
