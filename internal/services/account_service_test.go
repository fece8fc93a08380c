package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAccountService_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)
	opening := d("1500")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(sqlmock.AnyArg(), "user1", "Checking", "asset", "Bank Accounts",
			d("1500"), 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// The opening balance doubles as the first history snapshot.
	mock.ExpectExec("INSERT INTO balances").
		WithArgs(sqlmock.AnyArg(), "user1", sqlmock.AnyArg(), d("1500"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	account, err := service.Create(context.Background(), "user1", &AccountRequest{
		Name:           "Checking",
		Kind:           "asset",
		Category:       "Bank Accounts",
		OpeningBalance: &opening,
	})
	assert.NoError(t, err)
	assert.True(t, account.Balance.Equal(d("1500")))
	assert.Equal(t, 1, account.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountService_Create_RejectsBadKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)

	_, err = service.Create(context.Background(), "user1", &AccountRequest{
		Name:     "Checking",
		Kind:     "savings",
		Category: "Bank Accounts",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountService_Delete_BlockedWhileReferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transactions").
		WithArgs("user1", "acct-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	err = service.Delete(context.Background(), "user1", "acct-1")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountService_Delete_Unreferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transactions").
		WithArgs("user1", "acct-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM balances").
		WithArgs("acct-1", "user1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM accounts").
		WithArgs("acct-1", "user1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = service.Delete(context.Background(), "user1", "acct-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountService_RecordBalance_NewestWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)
	recordedAt := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM accounts").
		WithArgs("acct-1", "user1").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))
	mock.ExpectQuery("SELECT MAX\\(recorded_at\\) FROM balances").
		WithArgs("acct-1", "user1").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).
			AddRow(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	mock.ExpectExec("INSERT INTO balances").
		WithArgs(sqlmock.AnyArg(), "user1", "acct-1", d("900"), recordedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Newer than the latest snapshot, so it also becomes authoritative.
	mock.ExpectExec("UPDATE accounts").
		WithArgs(d("900"), "acct-1", "user1", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = service.RecordBalance(context.Background(), "user1", &BalanceRecordRequest{
		AccountID: "acct-1",
		Amount:    d("900"),
		Date:      &recordedAt,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountService_RecordBalance_BackdatedOnlyExtendsHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)
	backdated := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM accounts").
		WithArgs("acct-1", "user1").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))
	mock.ExpectQuery("SELECT MAX\\(recorded_at\\) FROM balances").
		WithArgs("acct-1", "user1").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).
			AddRow(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	mock.ExpectExec("INSERT INTO balances").
		WithArgs(sqlmock.AnyArg(), "user1", "acct-1", d("700"), backdated).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// No authoritative update for a backdated snapshot.
	mock.ExpectCommit()

	err = service.RecordBalance(context.Background(), "user1", &BalanceRecordRequest{
		AccountID: "acct-1",
		Amount:    d("700"),
		Date:      &backdated,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountService_NetWorth(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)

	mock.ExpectQuery("SELECT kind, COALESCE\\(SUM\\(balance\\), 0\\) FROM accounts").
		WithArgs("user1").
		WillReturnRows(sqlmock.NewRows([]string{"kind", "sum"}).
			AddRow("asset", "10000").
			AddRow("liability", "2500"))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(current_balance\\), 0\\) FROM cards").
		WithArgs("user1").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("450"))

	report, err := service.NetWorth(context.Background(), "user1")
	assert.NoError(t, err)
	assert.True(t, report.Assets.Equal(d("10000")))
	assert.True(t, report.Liabilities.Equal(d("2500")))
	assert.True(t, report.CardDebt.Equal(d("450")))
	assert.True(t, report.NetWorth.Equal(d("7050")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
