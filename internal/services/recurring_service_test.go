package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pocketledger/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name      string
		due       time.Time
		frequency string
		want      time.Time
	}{
		{"weekly adds seven days", day(2025, time.March, 10), models.FrequencyWeekly, day(2025, time.March, 17)},
		{"weekly crosses month boundary", day(2025, time.March, 28), models.FrequencyWeekly, day(2025, time.April, 4)},
		{"monthly keeps day of month", day(2025, time.March, 15), models.FrequencyMonthly, day(2025, time.April, 15)},
		{"monthly clamps Jan 31 to Feb 28", day(2025, time.January, 31), models.FrequencyMonthly, day(2025, time.February, 28)},
		{"monthly clamps Jan 31 to Feb 29 in leap years", day(2024, time.January, 31), models.FrequencyMonthly, day(2024, time.February, 29)},
		{"monthly clamps Mar 31 to Apr 30", day(2025, time.March, 31), models.FrequencyMonthly, day(2025, time.April, 30)},
		{"yearly keeps the date", day(2025, time.June, 1), models.FrequencyYearly, day(2026, time.June, 1)},
		{"yearly clamps Feb 29 to Feb 28", day(2024, time.February, 29), models.FrequencyYearly, day(2025, time.February, 28)},
		{"unknown frequency is a no-op", day(2025, time.June, 1), "fortnightly", day(2025, time.June, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.due, tt.frequency)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestNextDueDate_ClampDoesNotStick(t *testing.T) {
	// A clamped date resumes from the clamped day, not the original one.
	feb := NextDueDate(day(2025, time.January, 31), models.FrequencyMonthly)
	mar := NextDueDate(feb, models.FrequencyMonthly)
	assert.True(t, mar.Equal(day(2025, time.March, 28)), "got %s", mar)
}

func TestDueOnOrBefore(t *testing.T) {
	noon := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, dueOnOrBefore(day(2025, time.March, 10), noon), "same day counts as due")
	assert.True(t, dueOnOrBefore(time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC), noon),
		"time of day is ignored")
	assert.True(t, dueOnOrBefore(day(2025, time.February, 1), noon), "past dates are due")
	assert.False(t, dueOnOrBefore(day(2025, time.March, 11), noon), "tomorrow is not due")
}

func recurringRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "uid", "name", "amount", "tx_type", "frequency", "next_due_date",
		"auto_pay", "account_id", "category", "last_processed_at", "created_at",
	})
}

func TestRecurringService_Create_RejectsUnpostableItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	uid := "user1"
	service := NewRecurringService(db, NewTransactionService(db, nil, nil))

	base := func() *RecurringRequest {
		return &RecurringRequest{
			Name:        "Card Payoff",
			Amount:      d("200"),
			Type:        models.TxTypeExpense,
			Frequency:   models.FrequencyMonthly,
			NextDueDate: day(2025, time.April, 1),
			AccountID:   "acct-1",
			Category:    "Bills",
		}
	}

	t.Run("transfers cannot be scheduled", func(t *testing.T) {
		req := base()
		req.Type = models.TxTypeTransfer
		_, err := service.Create(context.Background(), uid, req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("category must match the item type", func(t *testing.T) {
		req := base()
		req.Type = models.TxTypeIncome
		req.Category = "Groceries"
		_, err := service.Create(context.Background(), uid, req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("edits validate the merged item", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM recurring_items").
			WithArgs("rec-1", uid).
			WillReturnRows(recurringRows().
				AddRow("rec-1", uid, "Salary", "3000", models.TxTypeIncome, models.FrequencyMonthly,
					day(2025, time.April, 1), true, "acct-1", "Salary", nil, day(2025, time.March, 1)))

		bad := "Groceries"
		_, err := service.Update(context.Background(), uid, "rec-1", &RecurringUpdate{Category: &bad})
		assert.ErrorIs(t, err, ErrValidation)
	})

	// Nothing was written.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecurringService_ProcessDueItems_AutoPay(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	uid := "user1"
	due := day(2025, time.March, 1)
	asOf := day(2025, time.March, 10)

	service := NewRecurringService(db, NewTransactionService(db, nil, nil))

	mock.ExpectQuery("SELECT (.+) FROM recurring_items").
		WithArgs(uid).
		WillReturnRows(recurringRows().
			AddRow("rec-1", uid, "Rent", "1200", models.TxTypeExpense, models.FrequencyMonthly,
				due, true, "acct-1", "Bills", nil, due))

	// Posting goes through the regular record path, dated at the
	// original due date.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(sqlmock.AnyArg(), uid, "acct-1", "", models.TxTypeExpense, d("1200"),
			"Bills", "Auto-Pay: Rent", "", "Other", due, "March", "2025", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT id FROM cards WHERE uid = \\$1").
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT balance, version FROM accounts").
		WithArgs("acct-1", uid).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "version"}).AddRow("2000", 1))
	mock.ExpectExec("UPDATE accounts").
		WithArgs(d("800"), "acct-1", uid, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO balances").
		WithArgs(sqlmock.AnyArg(), uid, "acct-1", d("800"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Exactly one period forward per pass.
	mock.ExpectExec("UPDATE recurring_items").
		WithArgs(day(2025, time.April, 1), sqlmock.AnyArg(), "rec-1", uid).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := service.ProcessDueItems(context.Background(), uid, asOf)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Posted)
	assert.Equal(t, 0, result.Alerted)
	assert.Empty(t, result.Failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecurringService_ProcessDueItems_Reminder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	uid := "user1"
	due := day(2025, time.March, 5)

	service := NewRecurringService(db, NewTransactionService(db, nil, nil))

	mock.ExpectQuery("SELECT (.+) FROM recurring_items").
		WithArgs(uid).
		WillReturnRows(recurringRows().
			AddRow("rec-2", uid, "Electricity", "90", models.TxTypeExpense, models.FrequencyMonthly,
				due, false, "acct-1", "Bills", nil, due))

	// No posting; just an idempotent reminder keyed on item and date.
	mock.ExpectExec("INSERT INTO alerts").
		WithArgs("recurring-due-rec-2-2025-03-05", uid, models.AlertTypeRecurringDue,
			sqlmock.AnyArg(), sqlmock.AnyArg(), 2, 2025, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result, err := service.ProcessDueItems(context.Background(), uid, day(2025, time.March, 10))
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Posted)
	assert.Equal(t, 1, result.Alerted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecurringService_ProcessDueItems_SkipsNotDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	uid := "user1"
	service := NewRecurringService(db, NewTransactionService(db, nil, nil))

	mock.ExpectQuery("SELECT (.+) FROM recurring_items").
		WithArgs(uid).
		WillReturnRows(recurringRows().
			AddRow("rec-3", uid, "Insurance", "300", models.TxTypeExpense, models.FrequencyYearly,
				day(2025, time.December, 1), true, "acct-1", "Bills", nil, day(2025, time.January, 1)))

	result, err := service.ProcessDueItems(context.Background(), uid, day(2025, time.March, 10))
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Posted)
	assert.Equal(t, 0, result.Alerted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecurringService_ProcessDueItems_FailureLeavesDueDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	uid := "user1"
	due := day(2025, time.March, 1)

	service := NewRecurringService(db, NewTransactionService(db, nil, nil))

	mock.ExpectQuery("SELECT (.+) FROM recurring_items").
		WithArgs(uid).
		WillReturnRows(recurringRows().
			AddRow("rec-4", uid, "Gym", "50", models.TxTypeExpense, models.FrequencyMonthly,
				due, true, "ghost", "Bills", nil, due).
			AddRow("rec-5", uid, "Netflix", "15", models.TxTypeExpense, models.FrequencyMonthly,
				due, false, "acct-1", "Entertainment", nil, due))

	// First item's account is gone; the post rolls back and no advance
	// happens.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT id FROM cards WHERE uid = \\$1").
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT balance, version FROM accounts").
		WithArgs("ghost", uid).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "version"}))
	mock.ExpectRollback()

	// The pass still handles the second item.
	mock.ExpectExec("INSERT INTO alerts").
		WithArgs("recurring-due-rec-5-2025-03-01", uid, models.AlertTypeRecurringDue,
			sqlmock.AnyArg(), sqlmock.AnyArg(), 2, 2025, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result, err := service.ProcessDueItems(context.Background(), uid, day(2025, time.March, 10))
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Posted)
	assert.Equal(t, 1, result.Alerted)
	assert.Equal(t, []string{"rec-4"}, result.Failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
