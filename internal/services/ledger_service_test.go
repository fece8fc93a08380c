package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func noCards(string) bool { return false }

func d(v string) decimal.Decimal {
	dec, _ := decimal.NewFromString(v)
	return dec
}

func TestComputeDeltas_RuleTable(t *testing.T) {
	cards := func(id string) bool { return id == "card-9" }

	tests := []struct {
		name   string
		txn    models.Transaction
		isCard func(string) bool
		want   []BalanceDelta
	}{
		{
			name:   "expense from account",
			txn:    models.Transaction{Type: models.TxTypeExpense, AccountID: "acct-1", Amount: d("40")},
			isCard: noCards,
			want:   []BalanceDelta{{ParticipantID: "acct-1", Delta: d("-40")}},
		},
		{
			name:   "expense on card increases debt",
			txn:    models.Transaction{Type: models.TxTypeExpense, AccountID: "card-9", Amount: d("40")},
			isCard: cards,
			want:   []BalanceDelta{{ParticipantID: "card-9", IsCard: true, Delta: d("40")}},
		},
		{
			name:   "income to account",
			txn:    models.Transaction{Type: models.TxTypeIncome, AccountID: "acct-1", Amount: d("250")},
			isCard: noCards,
			want:   []BalanceDelta{{ParticipantID: "acct-1", Delta: d("250")}},
		},
		{
			name:   "refund to card reduces debt",
			txn:    models.Transaction{Type: models.TxTypeIncome, AccountID: "card-9", Amount: d("25")},
			isCard: cards,
			want:   []BalanceDelta{{ParticipantID: "card-9", IsCard: true, Delta: d("-25")}},
		},
		{
			name:   "transfer between accounts",
			txn:    models.Transaction{Type: models.TxTypeTransfer, AccountID: "acct-1", ToAccountID: "acct-2", Amount: d("100")},
			isCard: noCards,
			want: []BalanceDelta{
				{ParticipantID: "acct-1", Delta: d("-100")},
				{ParticipantID: "acct-2", Delta: d("100")},
			},
		},
		{
			name:   "card payment reduces debt on destination",
			txn:    models.Transaction{Type: models.TxTypeTransfer, AccountID: "acct-1", ToAccountID: "card-9", Amount: d("100")},
			isCard: cards,
			want: []BalanceDelta{
				{ParticipantID: "acct-1", Delta: d("-100")},
				{ParticipantID: "card-9", IsCard: true, Delta: d("-100")},
			},
		},
		{
			name:   "cash expense touches nothing",
			txn:    models.Transaction{Type: models.TxTypeExpense, AccountID: models.CashAccountID, Amount: d("15")},
			isCard: noCards,
			want:   []BalanceDelta{},
		},
		{
			name:   "empty source income touches nothing",
			txn:    models.Transaction{Type: models.TxTypeIncome, AccountID: "", Amount: d("15")},
			isCard: noCards,
			want:   []BalanceDelta{},
		},
		{
			name:   "cash deposit into account adjusts only destination",
			txn:    models.Transaction{Type: models.TxTypeTransfer, AccountID: models.CashAccountID, ToAccountID: "acct-2", Amount: d("60")},
			isCard: noCards,
			want:   []BalanceDelta{{ParticipantID: "acct-2", Delta: d("60")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeDeltas(&tt.txn, ModeApply, tt.isCard)
			assert.NoError(t, err)
			assert.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].ParticipantID, got[i].ParticipantID)
				assert.Equal(t, tt.want[i].IsCard, got[i].IsCard)
				assert.True(t, tt.want[i].Delta.Equal(got[i].Delta),
					"delta %s != %s", tt.want[i].Delta, got[i].Delta)
			}
		})
	}
}

func TestComputeDeltas_RevertIsExactInverse(t *testing.T) {
	cards := func(id string) bool { return id == "card-9" }
	txns := []models.Transaction{
		{Type: models.TxTypeExpense, AccountID: "acct-1", Amount: d("19.99")},
		{Type: models.TxTypeIncome, AccountID: "card-9", Amount: d("7.50")},
		{Type: models.TxTypeTransfer, AccountID: "acct-1", ToAccountID: "card-9", Amount: d("300")},
	}

	for _, txn := range txns {
		applied, err := ComputeDeltas(&txn, ModeApply, cards)
		assert.NoError(t, err)
		reverted, err := ComputeDeltas(&txn, ModeRevert, cards)
		assert.NoError(t, err)

		assert.Equal(t, len(applied), len(reverted))
		for i := range applied {
			assert.Equal(t, applied[i].ParticipantID, reverted[i].ParticipantID)
			sum := applied[i].Delta.Add(reverted[i].Delta)
			assert.True(t, sum.IsZero(), "apply+revert should cancel, got %s", sum)
		}
	}
}

func TestComputeDeltas_Validation(t *testing.T) {
	tests := []struct {
		name string
		txn  models.Transaction
	}{
		{"zero amount", models.Transaction{Type: models.TxTypeExpense, AccountID: "acct-1", Amount: decimal.Zero}},
		{"negative amount", models.Transaction{Type: models.TxTypeExpense, AccountID: "acct-1", Amount: d("-5")}},
		{"transfer without destination", models.Transaction{Type: models.TxTypeTransfer, AccountID: "acct-1", Amount: d("5")}},
		{"expense with destination", models.Transaction{Type: models.TxTypeExpense, AccountID: "acct-1", ToAccountID: "acct-2", Amount: d("5")}},
		{"unknown type", models.Transaction{Type: "loan", AccountID: "acct-1", Amount: d("5")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeDeltas(&tt.txn, ModeApply, noCards)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLedgerService_Reconcile_Expense(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewLedgerService(db)
	uid := "user1"

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT id FROM cards WHERE uid = \\$1").
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery("SELECT balance, version FROM accounts").
		WithArgs("acct-1", uid).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "version"}).AddRow("100", 3))

	mock.ExpectExec("UPDATE accounts").
		WithArgs(d("60"), "acct-1", uid, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("INSERT INTO balances").
		WithArgs(sqlmock.AnyArg(), uid, "acct-1", d("60"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	txn := &models.Transaction{Type: models.TxTypeExpense, AccountID: "acct-1", Amount: d("40")}
	deltas, err := service.Reconcile(tx, uid, txn, ModeApply)
	assert.NoError(t, err)
	assert.Len(t, deltas, 1)
	assert.True(t, deltas[0].Delta.Equal(d("-40")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Reconcile_CardPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewLedgerService(db)
	uid := "user1"

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT id FROM cards WHERE uid = \\$1").
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("card-9"))

	// Participants are adjusted in id order: account first, then card.
	mock.ExpectQuery("SELECT balance, version FROM accounts").
		WithArgs("acct-1", uid).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "version"}).AddRow("500", 1))

	mock.ExpectExec("UPDATE accounts").
		WithArgs(d("200"), "acct-1", uid, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("INSERT INTO balances").
		WithArgs(sqlmock.AnyArg(), uid, "acct-1", d("200"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery("SELECT credit_limit, current_balance, version FROM cards").
		WithArgs("card-9", uid).
		WillReturnRows(sqlmock.NewRows([]string{"credit_limit", "current_balance", "version"}).
			AddRow("1000", "450", 2))

	// Paying down 300 leaves 150 owed and 850 available.
	mock.ExpectExec("UPDATE cards").
		WithArgs(d("150"), d("850"), "card-9", uid, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	txn := &models.Transaction{
		Type:        models.TxTypeTransfer,
		AccountID:   "acct-1",
		ToAccountID: "card-9",
		Amount:      d("300"),
	}
	deltas, err := service.Reconcile(tx, uid, txn, ModeApply)
	assert.NoError(t, err)
	assert.Len(t, deltas, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Reconcile_VersionConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewLedgerService(db)
	uid := "user1"

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT id FROM cards WHERE uid = \\$1").
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery("SELECT balance, version FROM accounts").
		WithArgs("acct-1", uid).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "version"}).AddRow("100", 3))

	// Another writer bumped the version between read and write.
	mock.ExpectExec("UPDATE accounts").
		WithArgs(d("60"), "acct-1", uid, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	txn := &models.Transaction{Type: models.TxTypeExpense, AccountID: "acct-1", Amount: d("40")}
	_, err = service.Reconcile(tx, uid, txn, ModeApply)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Reconcile_MissingAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewLedgerService(db)
	uid := "user1"

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT id FROM cards WHERE uid = \\$1").
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery("SELECT balance, version FROM accounts").
		WithArgs("ghost", uid).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "version"}))

	txn := &models.Transaction{Type: models.TxTypeExpense, AccountID: "ghost", Amount: d("40")}
	_, err = service.Reconcile(tx, uid, txn, ModeApply)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithRetry(t *testing.T) {
	t.Run("retries conflicts then succeeds", func(t *testing.T) {
		calls := 0
		err := WithRetry(func() error {
			calls++
			if calls < 3 {
				return conflictErrorf("busy")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(func() error {
			calls++
			return conflictErrorf("busy")
		})
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, maxReconcileRetries, calls)
	})

	t.Run("other errors fail fast", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := WithRetry(func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}
