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

// AccountService manages tracked accounts and their balance snapshot
// history. The authoritative balance field on the account row always
// mirrors the latest snapshot; both are written together.
type AccountService struct {
	db        *sql.DB
	validator *ValidationHelper
}

// AccountRequest is the create payload
type AccountRequest struct {
	Name           string           `json:"name" validate:"required,max=100"`
	Kind           string           `json:"kind" validate:"required,oneof=asset liability equity"`
	Category       string           `json:"category" validate:"required,max=60"`
	OpeningBalance *decimal.Decimal `json:"openingBalance,omitempty"`
}

// AccountUpdate is the partial edit payload
type AccountUpdate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Kind     *string `json:"kind,omitempty" validate:"omitempty,oneof=asset liability equity"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=60"`
}

// BalanceRecordRequest records one manual balance snapshot
type BalanceRecordRequest struct {
	AccountID string          `json:"accountId" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Date      *time.Time      `json:"date,omitempty"`
}

// NetWorthReport is the balance-sheet roll-up
type NetWorthReport struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	CardDebt    decimal.Decimal `json:"cardDebt"`
	NetWorth    decimal.Decimal `json:"netWorth"`
}

func NewAccountService(db *sql.DB) *AccountService {
	return &AccountService{
		db:        db,
		validator: NewValidationHelper(),
	}
}

// Create stores an account, optionally with an opening balance snapshot.
func (as *AccountService) Create(ctx context.Context, uid string, req *AccountRequest) (*models.Account, error) {
	if err := as.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	opening := decimal.Zero
	if req.OpeningBalance != nil {
		opening = *req.OpeningBalance
	}

	account := &models.Account{
		ID:        uuid.New().String(),
		UID:       uid,
		Name:      req.Name,
		Kind:      req.Kind,
		Category:  req.Category,
		Balance:   opening,
		Version:   1,
		CreatedAt: time.Now(),
	}

	tx, err := as.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO accounts (id, uid, name, kind, category, balance, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID, account.UID, account.Name, account.Kind, account.Category,
		account.Balance, account.Version, account.CreatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO balances (id, uid, account_id, amount, recorded_at)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), uid, account.ID, opening, account.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return account, nil
}

// Update edits name/kind/category. Kind changes are permitted but do
// not rewrite history.
func (as *AccountService) Update(ctx context.Context, uid, id string, update *AccountUpdate) (*models.Account, error) {
	if err := as.validator.ValidateStruct(update); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	account, err := as.fetchAccount(uid, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Kind != nil {
		account.Kind = *update.Kind
	}
	if update.Category != nil {
		account.Category = *update.Category
	}

	_, err = as.db.Exec(`
		UPDATE accounts SET name = $1, kind = $2, category = $3
		WHERE id = $4 AND uid = $5`,
		account.Name, account.Kind, account.Category, id, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return account, nil
}

// Delete removes an account and its snapshot history. Deletion is
// blocked while any transaction references the account, so the ledger
// never points at a missing participant.
func (as *AccountService) Delete(ctx context.Context, uid, id string) error {
	var refs int
	err := as.db.QueryRow(`
		SELECT COUNT(*) FROM transactions
		WHERE uid = $1 AND (account_id = $2 OR to_account_id = $2)`, uid, id).Scan(&refs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if refs > 0 {
		return conflictErrorf("account %s is referenced by %d transactions", id, refs)
	}

	tx, err := as.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM balances WHERE account_id = $1 AND uid = $2`, id, uid); err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM accounts WHERE id = $1 AND uid = $2`, id, uid)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFoundErrorf("account %s", id)
	}

	return tx.Commit()
}

// List returns all accounts with their current balances.
func (as *AccountService) List(ctx context.Context, uid string) ([]models.Account, error) {
	rows, err := as.db.Query(`
		SELECT id, uid, name, kind, category, balance, version, created_at
		FROM accounts
		WHERE uid = $1
		ORDER BY created_at ASC`, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UID, &a.Name, &a.Kind, &a.Category, &a.Balance, &a.Version, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// History returns an account's snapshot history, newest first. Equal
// timestamps are ordered by insertion sequence, newest insertion first.
func (as *AccountService) History(ctx context.Context, uid, accountID string) ([]models.BalanceSnapshot, error) {
	rows, err := as.db.Query(`
		SELECT seq, id, uid, account_id, amount, recorded_at
		FROM balances
		WHERE uid = $1 AND account_id = $2
		ORDER BY recorded_at DESC, seq DESC`, uid, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	snapshots := []models.BalanceSnapshot{}
	for rows.Next() {
		var s models.BalanceSnapshot
		if err := rows.Scan(&s.Seq, &s.ID, &s.UID, &s.AccountID, &s.Amount, &s.RecordedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// RecordBalance stores a manual balance snapshot. A snapshot dated at
// or after the account's newest one also becomes the authoritative
// balance (version-checked); a backdated snapshot only extends history.
func (as *AccountService) RecordBalance(ctx context.Context, uid string, req *BalanceRecordRequest) error {
	if err := as.validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	recordedAt := time.Now()
	if req.Date != nil {
		recordedAt = *req.Date
	}

	return WithRetry(func() error {
		tx, err := as.db.Begin()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		defer tx.Rollback()

		var version int
		err = tx.QueryRow(`
			SELECT version FROM accounts WHERE id = $1 AND uid = $2 FOR UPDATE`,
			req.AccountID, uid).Scan(&version)
		if errors.Is(err, sql.ErrNoRows) {
			return notFoundErrorf("account %s", req.AccountID)
		}
		if err != nil {
			return err
		}

		var latest sql.NullTime
		err = tx.QueryRow(`
			SELECT MAX(recorded_at) FROM balances WHERE account_id = $1 AND uid = $2`,
			req.AccountID, uid).Scan(&latest)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO balances (id, uid, account_id, amount, recorded_at)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), uid, req.AccountID, req.Amount, recordedAt)
		if err != nil {
			return err
		}

		if !latest.Valid || !recordedAt.Before(latest.Time) {
			result, err := tx.Exec(`
				UPDATE accounts SET balance = $1, version = version + 1
				WHERE id = $2 AND uid = $3 AND version = $4`,
				req.Amount, req.AccountID, uid, version)
			if err != nil {
				return err
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return conflictErrorf("account %s modified concurrently", req.AccountID)
			}
		}

		return tx.Commit()
	})
}

// NetWorth rolls accounts and card debt into one balance-sheet figure.
func (as *AccountService) NetWorth(ctx context.Context, uid string) (*NetWorthReport, error) {
	report := &NetWorthReport{
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
		CardDebt:    decimal.Zero,
	}

	rows, err := as.db.Query(`
		SELECT kind, COALESCE(SUM(balance), 0) FROM accounts
		WHERE uid = $1 GROUP BY kind`, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var total decimal.Decimal
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, err
		}
		switch kind {
		case models.AccountKindAsset:
			report.Assets = total
		case models.AccountKindLiability:
			report.Liabilities = total
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = as.db.QueryRow(`
		SELECT COALESCE(SUM(current_balance), 0) FROM cards WHERE uid = $1`, uid).Scan(&report.CardDebt)
	if err != nil {
		return nil, err
	}

	report.NetWorth = report.Assets.Sub(report.Liabilities).Sub(report.CardDebt)
	return report, nil
}

func (as *AccountService) fetchAccount(uid, id string) (*models.Account, error) {
	var a models.Account
	err := as.db.QueryRow(`
		SELECT id, uid, name, kind, category, balance, version, created_at
		FROM accounts
		WHERE id = $1 AND uid = $2`, id, uid).Scan(
		&a.ID, &a.UID, &a.Name, &a.Kind, &a.Category, &a.Balance, &a.Version, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundErrorf("account %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// --- HTTP handlers ---

// CreateAccount handles POST /accounts
// @Summary Create an account
// @Description Create a tracked account with an opening balance snapshot
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body AccountRequest true "Account data"
// @Success 201 {object} models.Account
// @Failure 400 {object} map[string]string
// @Router /accounts [post]
func (as *AccountService) CreateAccount(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req AccountRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	account, err := as.Create(r.Context(), uid, &req)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, account)
}

// UpdateAccount handles PUT /accounts/{accountId}
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID"
// @Param update body AccountUpdate true "Fields to change"
// @Success 200 {object} models.Account
// @Failure 404 {object} map[string]string
// @Router /accounts/{accountId} [put]
func (as *AccountService) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var update AccountUpdate
	if err := DecodeJSONBody(w, r, &update); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	account, err := as.Update(r.Context(), uid, chi.URLParam(r, "accountId"), &update)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, account)
}

// DeleteAccount handles DELETE /accounts/{accountId}
// @Summary Delete an account
// @Description Delete an account and its snapshot history; refused while transactions still reference it
// @Tags accounts
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /accounts/{accountId} [delete]
func (as *AccountService) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	if err := as.Delete(r.Context(), uid, chi.URLParam(r, "accountId")); err != nil {
		log.Printf("[ACCOUNT] Delete failed: %v", err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ListAccounts handles GET /accounts
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} object{accounts=[]models.Account,count=int}
// @Failure 500 {object} map[string]string
// @Router /accounts [get]
func (as *AccountService) ListAccounts(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	accounts, err := as.List(r.Context(), uid)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"accounts": accounts,
		"count":    len(accounts),
	})
}

// GetBalanceHistory handles GET /accounts/{accountId}/balances
// @Summary Get balance history
// @Description List every balance snapshot recorded for an account, newest first
// @Tags accounts
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} object{balances=[]models.BalanceSnapshot,count=int}
// @Failure 500 {object} map[string]string
// @Router /accounts/{accountId}/balances [get]
func (as *AccountService) GetBalanceHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	history, err := as.History(r.Context(), uid, chi.URLParam(r, "accountId"))
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"balances": history,
		"count":    len(history),
	})
}

// RecordBalances handles POST /balances - one or many manual snapshots.
// @Summary Record balance snapshots
// @Description Record manual balance readings; a backdated reading extends history without moving the current balance
// @Tags accounts
// @Accept json
// @Produce json
// @Param balances body object{balances=[]BalanceRecordRequest} true "Snapshot data"
// @Success 200 {object} object{success=bool,recorded=int}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /balances [post]
func (as *AccountService) RecordBalances(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req struct {
		Balances []BalanceRecordRequest `json:"balances" validate:"required,min=1,max=100,dive"`
	}
	if err := DecodeJSONBody(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := as.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	for i := range req.Balances {
		if err := as.RecordBalance(r.Context(), uid, &req.Balances[i]); err != nil {
			log.Printf("[ACCOUNT] Balance record failed for %s: %v", req.Balances[i].AccountID, err)
			SendServiceError(w, err)
			return
		}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"recorded": len(req.Balances),
	})
}

// GetNetWorth handles GET /reports/net-worth
// @Summary Get a net worth report
// @Description Assets minus liabilities minus outstanding card balances
// @Tags reports
// @Produce json
// @Success 200 {object} NetWorthReport
// @Failure 500 {object} map[string]string
// @Router /reports/net-worth [get]
func (as *AccountService) GetNetWorth(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	report, err := as.NetWorth(r.Context(), uid)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}
