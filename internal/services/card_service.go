package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// CardService manages credit/debit cards. Balance adjustments from
// transactions never come through here; they go through the ledger.
// Manual edits to limit or balance recompute available credit so the
// utilization invariant holds after every write.
type CardService struct {
	db        *sql.DB
	validator *ValidationHelper
}

// CardRequest is the create payload
type CardRequest struct {
	Name           string           `json:"name" validate:"required,max=100"`
	Bank           string           `json:"bank" validate:"required,max=100"`
	CardType       string           `json:"type" validate:"required,oneof=credit debit"`
	CreditLimit    decimal.Decimal  `json:"creditLimit"`
	CurrentBalance *decimal.Decimal `json:"currentBalance,omitempty"`
	LastFour       string           `json:"lastFour" validate:"required,len=4,numeric"`
	ExpiryDate     string           `json:"expiryDate" validate:"required,max=7"`
}

// CardUpdate is the partial edit payload
type CardUpdate struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Bank           *string          `json:"bank,omitempty" validate:"omitempty,max=100"`
	CreditLimit    *decimal.Decimal `json:"creditLimit,omitempty"`
	CurrentBalance *decimal.Decimal `json:"currentBalance,omitempty"`
	LastFour       *string          `json:"lastFour,omitempty" validate:"omitempty,len=4,numeric"`
	ExpiryDate     *string          `json:"expiryDate,omitempty" validate:"omitempty,max=7"`
	IsActive       *bool            `json:"isActive,omitempty"`
}

func NewCardService(db *sql.DB) *CardService {
	return &CardService{
		db:        db,
		validator: NewValidationHelper(),
	}
}

// Create stores a card; available credit is derived, never supplied.
func (cs *CardService) Create(ctx context.Context, uid string, req *CardRequest) (*models.CreditCard, error) {
	if err := cs.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.CreditLimit.Cmp(decimal.Zero) < 0 {
		return nil, validationErrorf("creditLimit must not be negative")
	}

	balance := decimal.Zero
	if req.CurrentBalance != nil {
		balance = *req.CurrentBalance
	}

	card := &models.CreditCard{
		ID:              uuid.New().String(),
		UID:             uid,
		Name:            req.Name,
		Bank:            req.Bank,
		CardType:        req.CardType,
		CreditLimit:     req.CreditLimit,
		CurrentBalance:  balance,
		AvailableCredit: req.CreditLimit.Sub(balance),
		LastFour:        req.LastFour,
		ExpiryDate:      req.ExpiryDate,
		IsActive:        true,
		Version:         1,
		CreatedAt:       time.Now(),
	}

	_, err := cs.db.Exec(`
		INSERT INTO cards (id, uid, name, bank, card_type, credit_limit, current_balance, available_credit, last_four, expiry_date, is_active, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		card.ID, card.UID, card.Name, card.Bank, card.CardType,
		card.CreditLimit, card.CurrentBalance, card.AvailableCredit,
		card.LastFour, card.ExpiryDate, card.IsActive, card.Version, card.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return card, nil
}

// Update edits a card under the same optimistic lock the ledger uses,
// so a manual edit cannot race a reconciliation.
func (cs *CardService) Update(ctx context.Context, uid, id string, update *CardUpdate) (*models.CreditCard, error) {
	if err := cs.validator.ValidateStruct(update); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var card *models.CreditCard
	err := WithRetry(func() error {
		var err error
		card, err = cs.fetch(uid, id)
		if err != nil {
			return err
		}

		if update.Name != nil {
			card.Name = *update.Name
		}
		if update.Bank != nil {
			card.Bank = *update.Bank
		}
		if update.CreditLimit != nil {
			card.CreditLimit = *update.CreditLimit
		}
		if update.CurrentBalance != nil {
			card.CurrentBalance = *update.CurrentBalance
		}
		if update.LastFour != nil {
			card.LastFour = *update.LastFour
		}
		if update.ExpiryDate != nil {
			card.ExpiryDate = *update.ExpiryDate
		}
		if update.IsActive != nil {
			card.IsActive = *update.IsActive
		}
		card.AvailableCredit = card.CreditLimit.Sub(card.CurrentBalance)

		result, err := cs.db.Exec(`
			UPDATE cards
			SET name = $1, bank = $2, credit_limit = $3, current_balance = $4, available_credit = $5, last_four = $6, expiry_date = $7, is_active = $8, version = version + 1
			WHERE id = $9 AND uid = $10 AND version = $11`,
			card.Name, card.Bank, card.CreditLimit, card.CurrentBalance,
			card.AvailableCredit, card.LastFour, card.ExpiryDate, card.IsActive,
			id, uid, card.Version)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return conflictErrorf("card %s modified concurrently", id)
		}
		card.Version++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Delete removes a card unless transactions reference it; a referenced
// card is deactivated instead so history keeps resolving.
func (cs *CardService) Delete(ctx context.Context, uid, id string) (deactivated bool, err error) {
	var refs int
	err = cs.db.QueryRow(`
		SELECT COUNT(*) FROM transactions
		WHERE uid = $1 AND (account_id = $2 OR to_account_id = $2)`, uid, id).Scan(&refs)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if refs > 0 {
		result, err := cs.db.Exec(`
			UPDATE cards SET is_active = false, version = version + 1
			WHERE id = $1 AND uid = $2`, id, uid)
		if err != nil {
			return false, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return false, err
		}
		if affected == 0 {
			return false, notFoundErrorf("card %s", id)
		}
		return true, nil
	}

	result, err := cs.db.Exec(`DELETE FROM cards WHERE id = $1 AND uid = $2`, id, uid)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, notFoundErrorf("card %s", id)
	}
	return false, nil
}

// List returns all of a user's cards, oldest first.
func (cs *CardService) List(ctx context.Context, uid string) ([]models.CreditCard, error) {
	rows, err := cs.db.Query(`
		SELECT id, uid, name, bank, card_type, credit_limit, current_balance, available_credit, last_four, expiry_date, is_active, version, created_at
		FROM cards
		WHERE uid = $1
		ORDER BY created_at ASC`, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	cards := []models.CreditCard{}
	for rows.Next() {
		var c models.CreditCard
		if err := rows.Scan(&c.ID, &c.UID, &c.Name, &c.Bank, &c.CardType,
			&c.CreditLimit, &c.CurrentBalance, &c.AvailableCredit,
			&c.LastFour, &c.ExpiryDate, &c.IsActive, &c.Version, &c.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (cs *CardService) fetch(uid, id string) (*models.CreditCard, error) {
	var c models.CreditCard
	err := cs.db.QueryRow(`
		SELECT id, uid, name, bank, card_type, credit_limit, current_balance, available_credit, last_four, expiry_date, is_active, version, created_at
		FROM cards
		WHERE id = $1 AND uid = $2`, id, uid).Scan(
		&c.ID, &c.UID, &c.Name, &c.Bank, &c.CardType,
		&c.CreditLimit, &c.CurrentBalance, &c.AvailableCredit,
		&c.LastFour, &c.ExpiryDate, &c.IsActive, &c.Version, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundErrorf("card %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// --- HTTP handlers ---

// CreateCard handles POST /cards
// @Summary Create a card
// @Description Register a credit or debit card; available credit starts at limit minus balance
// @Tags cards
// @Accept json
// @Produce json
// @Param card body CardRequest true "Card data"
// @Success 201 {object} models.CreditCard
// @Failure 400 {object} map[string]string
// @Router /cards [post]
func (cs *CardService) CreateCard(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req CardRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	card, err := cs.Create(r.Context(), uid, &req)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, card)
}

// UpdateCard handles PUT /cards/{cardId}
// @Summary Update a card
// @Tags cards
// @Accept json
// @Produce json
// @Param cardId path string true "Card ID"
// @Param update body CardUpdate true "Fields to change"
// @Success 200 {object} models.CreditCard
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cards/{cardId} [put]
func (cs *CardService) UpdateCard(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var update CardUpdate
	if err := DecodeJSONBody(w, r, &update); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	card, err := cs.Update(r.Context(), uid, chi.URLParam(r, "cardId"), &update)
	if err != nil {
		log.Printf("[CARD] Update failed: %v", err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, card)
}

// DeleteCard handles DELETE /cards/{cardId}
// @Summary Delete a card
// @Description Delete a card, or deactivate it when transactions still reference it
// @Tags cards
// @Produce json
// @Param cardId path string true "Card ID"
// @Success 200 {object} object{success=bool,deactivated=bool}
// @Failure 404 {object} map[string]string
// @Router /cards/{cardId} [delete]
func (cs *CardService) DeleteCard(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	deactivated, err := cs.Delete(r.Context(), uid, chi.URLParam(r, "cardId"))
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"deactivated": deactivated,
	})
}

// ListCards handles GET /cards
// @Summary List cards
// @Tags cards
// @Produce json
// @Success 200 {object} object{cards=[]models.CreditCard,count=int}
// @Failure 500 {object} map[string]string
// @Router /cards [get]
func (cs *CardService) ListCards(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	cards, err := cs.List(r.Context(), uid)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"cards": cards,
		"count": len(cards),
	})
}

// GetCard handles GET /cards/{cardId}
// @Summary Get card by ID
// @Tags cards
// @Produce json
// @Param cardId path string true "Card ID"
// @Success 200 {object} models.CreditCard
// @Failure 404 {object} map[string]string
// @Router /cards/{cardId} [get]
func (cs *CardService) GetCard(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	card, err := cs.fetch(uid, chi.URLParam(r, "cardId"))
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, card)
}
