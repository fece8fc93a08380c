package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func cardRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "uid", "name", "bank", "card_type", "credit_limit", "current_balance",
		"available_credit", "last_four", "expiry_date", "is_active", "version", "created_at",
	})
}

func TestCardService_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewCardService(db)
	balance := d("450")

	mock.ExpectExec("INSERT INTO cards").
		WithArgs(sqlmock.AnyArg(), "user1", "Travel Card", "Chase", "credit",
			d("5000"), d("450"), d("4550"), "1234", "12/2027", true, 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	card, err := service.Create(context.Background(), "user1", &CardRequest{
		Name:           "Travel Card",
		Bank:           "Chase",
		CardType:       "credit",
		CreditLimit:    d("5000"),
		CurrentBalance: &balance,
		LastFour:       "1234",
		ExpiryDate:     "12/2027",
	})
	assert.NoError(t, err)
	assert.True(t, card.AvailableCredit.Equal(d("4550")))
	assert.True(t, card.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardService_Create_Validation(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewCardService(db)

	tests := []struct {
		name string
		req  CardRequest
	}{
		{"bad card type", CardRequest{Name: "C", Bank: "B", CardType: "prepaid", LastFour: "1234", ExpiryDate: "12/2027"}},
		{"non-numeric last four", CardRequest{Name: "C", Bank: "B", CardType: "credit", LastFour: "12ab", ExpiryDate: "12/2027"}},
		{"negative limit", CardRequest{Name: "C", Bank: "B", CardType: "credit", CreditLimit: d("-1"), LastFour: "1234", ExpiryDate: "12/2027"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), "user1", &tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardService_Update_RecomputesAvailableCredit(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewCardService(db)
	created := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM cards").
		WithArgs("card-1", "user1").
		WillReturnRows(cardRows().
			AddRow("card-1", "user1", "Travel Card", "Chase", "credit",
				"5000", "450", "4550", "1234", "12/2027", true, 3, created))

	// Raising the limit to 8000 leaves 7550 available at 450 owed.
	newLimit := d("8000")
	mock.ExpectExec("UPDATE cards").
		WithArgs("Travel Card", "Chase", d("8000"), d("450"), d("7550"),
			"1234", "12/2027", true, "card-1", "user1", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	card, err := service.Update(context.Background(), "user1", "card-1", &CardUpdate{CreditLimit: &newLimit})
	assert.NoError(t, err)
	assert.True(t, card.AvailableCredit.Equal(d("7550")))
	assert.Equal(t, 4, card.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardService_Update_RetriesOnConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewCardService(db)
	created := time.Now()
	newLimit := d("8000")

	// First attempt loses the version race, the second re-reads and wins.
	mock.ExpectQuery("SELECT (.+) FROM cards").
		WithArgs("card-1", "user1").
		WillReturnRows(cardRows().
			AddRow("card-1", "user1", "Travel Card", "Chase", "credit",
				"5000", "450", "4550", "1234", "12/2027", true, 3, created))
	mock.ExpectExec("UPDATE cards").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT (.+) FROM cards").
		WithArgs("card-1", "user1").
		WillReturnRows(cardRows().
			AddRow("card-1", "user1", "Travel Card", "Chase", "credit",
				"5000", "700", "4300", "1234", "12/2027", true, 4, created))
	mock.ExpectExec("UPDATE cards").
		WithArgs("Travel Card", "Chase", d("8000"), d("700"), d("7300"),
			"1234", "12/2027", true, "card-1", "user1", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	card, err := service.Update(context.Background(), "user1", "card-1", &CardUpdate{CreditLimit: &newLimit})
	assert.NoError(t, err)
	assert.True(t, card.CurrentBalance.Equal(d("700")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardService_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewCardService(db)

	t.Run("referenced card is deactivated", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transactions").
			WithArgs("user1", "card-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectExec("UPDATE cards SET is_active = false").
			WithArgs("card-1", "user1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		deactivated, err := service.Delete(context.Background(), "user1", "card-1")
		assert.NoError(t, err)
		assert.True(t, deactivated)
	})

	t.Run("unreferenced card is removed", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transactions").
			WithArgs("user1", "card-2").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("DELETE FROM cards").
			WithArgs("card-2", "user1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		deactivated, err := service.Delete(context.Background(), "user1", "card-2")
		assert.NoError(t, err)
		assert.False(t, deactivated)
	})

	t.Run("missing card", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transactions").
			WithArgs("user1", "ghost").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("DELETE FROM cards").
			WithArgs("ghost", "user1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := service.Delete(context.Background(), "user1", "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
