package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/events"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

const summaryCacheTTL = 5 * time.Minute

// TransactionService is the single entry point for ledger mutations.
// Every record/amend/remove runs reconciliation in the same database
// transaction as the row change, so balances never drift from the
// transaction set.
type TransactionService struct {
	db        *sql.DB
	redis     *redis.Client
	ledger    *LedgerService
	publisher events.Publisher
	validator *ValidationHelper
}

// TransactionRequest is the create payload
type TransactionRequest struct {
	AccountID     string          `json:"accountId" validate:"required"`
	ToAccountID   string          `json:"toAccountId,omitempty"`
	Type          string          `json:"type" validate:"required,oneof=income expense transfer"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category" validate:"required,max=60"`
	Reason        string          `json:"reason" validate:"max=200"`
	Source        string          `json:"source,omitempty" validate:"max=100"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,max=30"`
	Date          time.Time       `json:"date" validate:"required"`
}

// TransactionUpdate is the partial amend payload; nil fields keep the
// stored value.
type TransactionUpdate struct {
	AccountID     *string          `json:"accountId,omitempty"`
	ToAccountID   *string          `json:"toAccountId,omitempty"`
	Type          *string          `json:"type,omitempty" validate:"omitempty,oneof=income expense transfer"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=60"`
	Reason        *string          `json:"reason,omitempty" validate:"omitempty,max=200"`
	Source        *string          `json:"source,omitempty" validate:"omitempty,max=100"`
	PaymentMethod *string          `json:"paymentMethod,omitempty" validate:"omitempty,max=30"`
	Date          *time.Time       `json:"date,omitempty"`
}

func NewTransactionService(db *sql.DB, redisClient *redis.Client, publisher events.Publisher) *TransactionService {
	return &TransactionService{
		db:        db,
		redis:     redisClient,
		ledger:    NewLedgerService(db),
		publisher: publisher,
		validator: NewValidationHelper(),
	}
}

// Record validates and stores a transaction, then applies its balance
// deltas. The insert and the reconciliation share one database
// transaction; a conflict retries the whole cycle a bounded number of
// times.
func (ts *TransactionService) Record(ctx context.Context, uid string, req *TransactionRequest) (*models.Transaction, error) {
	if err := ts.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Amount.Cmp(decimal.Zero) <= 0 {
		return nil, validationErrorf("amount must be positive")
	}
	if err := validateCategory(req.Type, req.Category); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:            uuid.New().String(),
		UID:           uid,
		AccountID:     req.AccountID,
		ToAccountID:   req.ToAccountID,
		Type:          req.Type,
		Amount:        req.Amount,
		Category:      req.Category,
		Reason:        req.Reason,
		Source:        req.Source,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
		Month:         req.Date.Month().String(),
		Year:          strconv.Itoa(req.Date.Year()),
		CreatedAt:     time.Now(),
	}

	var deltas []BalanceDelta
	err := WithRetry(func() error {
		tx, err := ts.db.Begin()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		defer tx.Rollback()

		if err := ts.insertTransaction(tx, txn); err != nil {
			return err
		}

		deltas, err = ts.ledger.Reconcile(tx, uid, txn, ModeApply)
		if err != nil {
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}

	ts.invalidateSummary(ctx, uid, txn.Month, txn.Year)
	ts.publishChanges(ctx, txn, deltas)
	return txn, nil
}

// Amend reverts the stored transaction's balance effect, applies the
// merged one and persists the merged record, all in one database
// transaction. The result is identical to deleting the old record and
// recording the new one.
func (ts *TransactionService) Amend(ctx context.Context, uid, id string, update *TransactionUpdate) (*models.Transaction, error) {
	if err := ts.validator.ValidateStruct(update); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if update.Amount != nil && update.Amount.Cmp(decimal.Zero) <= 0 {
		return nil, validationErrorf("amount must be positive")
	}

	old, err := ts.fetchTransaction(uid, id)
	if err != nil {
		return nil, err
	}

	merged := mergeTransaction(old, update)
	if err := validateCategory(merged.Type, merged.Category); err != nil {
		return nil, err
	}

	var deltas []BalanceDelta
	err = WithRetry(func() error {
		tx, err := ts.db.Begin()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		defer tx.Rollback()

		reverted, err := ts.ledger.Reconcile(tx, uid, old, ModeRevert)
		if err != nil {
			return err
		}

		applied, err := ts.ledger.Reconcile(tx, uid, merged, ModeApply)
		if err != nil {
			return err
		}
		deltas = append(reverted, applied...)

		if err := ts.updateTransaction(tx, merged); err != nil {
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}

	ts.invalidateSummary(ctx, uid, old.Month, old.Year)
	ts.invalidateSummary(ctx, uid, merged.Month, merged.Year)
	ts.publishChanges(ctx, merged, deltas)
	return merged, nil
}

// Remove reverts the transaction's balance effect and deletes it.
func (ts *TransactionService) Remove(ctx context.Context, uid, id string) error {
	old, err := ts.fetchTransaction(uid, id)
	if err != nil {
		return err
	}

	var deltas []BalanceDelta
	err = WithRetry(func() error {
		tx, err := ts.db.Begin()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		defer tx.Rollback()

		deltas, err = ts.ledger.Reconcile(tx, uid, old, ModeRevert)
		if err != nil {
			return err
		}

		result, err := tx.Exec(`DELETE FROM transactions WHERE id = $1 AND uid = $2`, id, uid)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFoundErrorf("transaction %s", id)
		}

		return tx.Commit()
	})
	if err != nil {
		return err
	}

	ts.invalidateSummary(ctx, uid, old.Month, old.Year)
	ts.publishChanges(ctx, old, deltas)
	return nil
}

// MonthlySummary aggregates one calendar month. Results are cached in
// Redis and invalidated by every ledger mutation touching the month.
func (ts *TransactionService) MonthlySummary(ctx context.Context, uid, month, year string) (*models.MonthlySummary, error) {
	cacheKey := summaryCacheKey(uid, month, year)
	if ts.redis != nil {
		if cached, err := ts.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary models.MonthlySummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	rows, err := ts.db.Query(`
		SELECT tx_type, amount, category FROM transactions
		WHERE uid = $1 AND month = $2 AND year = $3`, uid, month, year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var entries []summaryEntry
	for rows.Next() {
		var e summaryEntry
		if err := rows.Scan(&e.Type, &e.Amount, &e.Category); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary := summarize(month, year, entries)

	if ts.redis != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := ts.redis.Set(ctx, cacheKey, data, summaryCacheTTL).Err(); err != nil {
				log.Printf("[LEDGER] Failed to cache summary %s: %v", cacheKey, err)
			}
		}
	}

	return summary, nil
}

// ListForParticipant returns every transaction where the given id is
// source or destination, newest first; equal dates are broken by
// created_at descending so the most recently created record wins, with
// id as a stable final tie-break.
func (ts *TransactionService) ListForParticipant(ctx context.Context, uid, participantID string) ([]models.Transaction, error) {
	return ts.queryTransactions(`
		SELECT id, uid, account_id, to_account_id, tx_type, amount, category, reason, source, payment_method, tx_date, month, year, created_at
		FROM transactions
		WHERE uid = $1 AND (account_id = $2 OR to_account_id = $2)
		ORDER BY tx_date DESC, created_at DESC, id DESC`, uid, participantID)
}

// ListForMonth returns all transactions for a month+year, newest first.
func (ts *TransactionService) ListForMonth(ctx context.Context, uid, month, year string) ([]models.Transaction, error) {
	return ts.queryTransactions(`
		SELECT id, uid, account_id, to_account_id, tx_type, amount, category, reason, source, payment_method, tx_date, month, year, created_at
		FROM transactions
		WHERE uid = $1 AND month = $2 AND year = $3
		ORDER BY tx_date DESC, created_at DESC, id DESC`, uid, month, year)
}

// Recent returns the latest transactions for a user.
func (ts *TransactionService) Recent(ctx context.Context, uid string, limit int) ([]models.Transaction, error) {
	return ts.queryTransactions(`
		SELECT id, uid, account_id, to_account_id, tx_type, amount, category, reason, source, payment_method, tx_date, month, year, created_at
		FROM transactions
		WHERE uid = $1
		ORDER BY tx_date DESC, created_at DESC, id DESC
		LIMIT $2`, uid, limit)
}

// --- HTTP handlers ---

// CreateTransaction handles POST /transactions
// @Summary Record a transaction
// @Description Record an income, expense or transfer and reconcile participant balances
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body TransactionRequest true "Transaction data"
// @Success 201 {object} object{success=bool,transaction=models.Transaction}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /transactions [post]
func (ts *TransactionService) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req TransactionRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	txn, err := ts.Record(r.Context(), uid, &req)
	if err != nil {
		log.Printf("[LEDGER] Record failed for uid %s: %v", uid, err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"transaction": txn,
	})
}

// UpdateTransaction handles PUT /transactions/{txId}
// @Summary Edit a transaction
// @Description Apply a partial edit; balances end up as if the old record was deleted and the merged one recorded
// @Tags transactions
// @Accept json
// @Produce json
// @Param txId path string true "Transaction ID"
// @Param update body TransactionUpdate true "Fields to change"
// @Success 200 {object} object{success=bool,transaction=models.Transaction}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{txId} [put]
func (ts *TransactionService) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	txID := chi.URLParam(r, "txId")

	var update TransactionUpdate
	if err := DecodeJSONBody(w, r, &update); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	txn, err := ts.Amend(r.Context(), uid, txID, &update)
	if err != nil {
		log.Printf("[LEDGER] Amend failed for tx %s: %v", txID, err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"transaction": txn,
	})
}

// DeleteTransaction handles DELETE /transactions/{txId}
// @Summary Delete a transaction
// @Description Delete a transaction and revert its balance effect
// @Tags transactions
// @Produce json
// @Param txId path string true "Transaction ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /transactions/{txId} [delete]
func (ts *TransactionService) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	txID := chi.URLParam(r, "txId")

	if err := ts.Remove(r.Context(), uid, txID); err != nil {
		log.Printf("[LEDGER] Remove failed for tx %s: %v", txID, err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// GetTransaction handles GET /transactions/{txId}
// @Summary Get transaction by ID
// @Tags transactions
// @Produce json
// @Param txId path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} map[string]string
// @Router /transactions/{txId} [get]
func (ts *TransactionService) GetTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	txID := chi.URLParam(r, "txId")

	txn, err := ts.fetchTransaction(uid, txID)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, txn)
}

// ListTransactions handles GET /transactions with optional filters:
// participantId, or month+year.
// @Summary List transactions
// @Description List transactions, optionally filtered by participant or by month and year
// @Tags transactions
// @Produce json
// @Param participantId query string false "Filter by account or card ID"
// @Param month query string false "Month name, e.g. March"
// @Param year query string false "Four digit year"
// @Success 200 {object} object{transactions=[]models.Transaction,count=int}
// @Failure 500 {object} map[string]string
// @Router /transactions [get]
func (ts *TransactionService) ListTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var transactions []models.Transaction
	var err error

	if pid := r.URL.Query().Get("participantId"); pid != "" {
		transactions, err = ts.ListForParticipant(r.Context(), uid, pid)
	} else if month := r.URL.Query().Get("month"); month != "" {
		transactions, err = ts.ListForMonth(r.Context(), uid, month, r.URL.Query().Get("year"))
	} else {
		transactions, err = ts.Recent(r.Context(), uid, 50)
	}
	if err != nil {
		log.Printf("[LEDGER] List failed for uid %s: %v", uid, err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// GetRecentTransactions handles GET /transactions/recent
// @Summary Get recent transactions
// @Tags transactions
// @Produce json
// @Param limit query int false "Maximum number of records" default(10)
// @Success 200 {object} object{transactions=[]models.Transaction,count=int}
// @Failure 500 {object} map[string]string
// @Router /transactions/recent [get]
func (ts *TransactionService) GetRecentTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l >= 1 && l <= 100 {
			limit = l
		}
	}

	transactions, err := ts.Recent(r.Context(), uid, limit)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, transactions)
}

// GetMonthlySummary handles GET /transactions/summary?month=&year=
// @Summary Get a monthly summary
// @Description Aggregate income, expenses and per-category totals for one calendar month
// @Tags transactions
// @Produce json
// @Param month query string true "Month name, e.g. March"
// @Param year query string true "Four digit year"
// @Success 200 {object} models.MonthlySummary
// @Failure 400 {object} map[string]string
// @Router /transactions/summary [get]
func (ts *TransactionService) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	month := r.URL.Query().Get("month")
	year := r.URL.Query().Get("year")
	if month == "" || year == "" {
		SendErrorResponse(w, "month and year are required", http.StatusBadRequest, nil)
		return
	}

	summary, err := ts.MonthlySummary(r.Context(), uid, month, year)
	if err != nil {
		log.Printf("[LEDGER] Summary failed for uid %s %s %s: %v", uid, month, year, err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

// --- internals ---

type summaryEntry struct {
	Type     string
	Amount   decimal.Decimal
	Category string
}

// summarize folds a month of transactions. Only expenses contribute to
// the per-category breakdown; transfers count toward neither total.
func summarize(month, year string, entries []summaryEntry) *models.MonthlySummary {
	summary := &models.MonthlySummary{
		Month:            month,
		Year:             year,
		TotalIncome:      decimal.Zero,
		TotalExpenses:    decimal.Zero,
		ByCategory:       make(map[string]decimal.Decimal),
		TransactionCount: len(entries),
	}

	for _, e := range entries {
		switch e.Type {
		case models.TxTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(e.Amount)
		case models.TxTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
			summary.ByCategory[e.Category] = summary.ByCategory[e.Category].Add(e.Amount)
		}
	}

	summary.NetSavings = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

func validateCategory(txType, category string) error {
	var allowed []string
	switch txType {
	case models.TxTypeExpense:
		allowed = models.ExpenseCategories
	case models.TxTypeIncome:
		allowed = models.IncomeCategories
	default:
		return nil // transfers carry a free-form label
	}
	for _, c := range allowed {
		if c == category {
			return nil
		}
	}
	return validationErrorf("unknown %s category %q", txType, category)
}

func mergeTransaction(old *models.Transaction, update *TransactionUpdate) *models.Transaction {
	merged := *old
	if update.AccountID != nil {
		merged.AccountID = *update.AccountID
	}
	if update.ToAccountID != nil {
		merged.ToAccountID = *update.ToAccountID
	}
	if update.Type != nil {
		merged.Type = *update.Type
	}
	if update.Amount != nil {
		merged.Amount = *update.Amount
	}
	if update.Category != nil {
		merged.Category = *update.Category
	}
	if update.Reason != nil {
		merged.Reason = *update.Reason
	}
	if update.Source != nil {
		merged.Source = *update.Source
	}
	if update.PaymentMethod != nil {
		merged.PaymentMethod = *update.PaymentMethod
	}
	if update.Date != nil {
		merged.Date = *update.Date
		merged.Month = update.Date.Month().String()
		merged.Year = strconv.Itoa(update.Date.Year())
	}
	return &merged
}

func summaryCacheKey(uid, month, year string) string {
	return fmt.Sprintf("summary:%s:%s:%s", uid, month, year)
}

func (ts *TransactionService) invalidateSummary(ctx context.Context, uid, month, year string) {
	if ts.redis == nil {
		return
	}
	if err := ts.redis.Del(ctx, summaryCacheKey(uid, month, year)).Err(); err != nil {
		log.Printf("[LEDGER] Failed to invalidate summary cache: %v", err)
	}
}

func (ts *TransactionService) publishChanges(ctx context.Context, txn *models.Transaction, deltas []BalanceDelta) {
	if ts.publisher == nil {
		return
	}

	now := time.Now()
	err := ts.publisher.Publish(ctx, events.TopicTransactionRecorded, events.TransactionRecorded{
		TransactionID: txn.ID,
		UID:           txn.UID,
		AccountID:     txn.AccountID,
		ToAccountID:   txn.ToAccountID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		OccurredAt:    now,
	})
	if err != nil {
		log.Printf("[LEDGER] Failed to publish transaction event: %v", err)
	}

	for _, d := range deltas {
		err := ts.publisher.Publish(ctx, events.TopicBalanceChanged, events.BalanceChanged{
			UID:           txn.UID,
			ParticipantID: d.ParticipantID,
			IsCard:        d.IsCard,
			Delta:         d.Delta,
			OccurredAt:    now,
		})
		if err != nil {
			log.Printf("[LEDGER] Failed to publish balance event: %v", err)
		}
	}
}

func (ts *TransactionService) insertTransaction(tx *sql.Tx, txn *models.Transaction) error {
	_, err := tx.Exec(`
		INSERT INTO transactions (id, uid, account_id, to_account_id, tx_type, amount, category, reason, source, payment_method, tx_date, month, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		txn.ID, txn.UID, txn.AccountID, txn.ToAccountID, txn.Type, txn.Amount,
		txn.Category, txn.Reason, txn.Source, txn.PaymentMethod,
		txn.Date, txn.Month, txn.Year, txn.CreatedAt)
	return err
}

func (ts *TransactionService) updateTransaction(tx *sql.Tx, txn *models.Transaction) error {
	result, err := tx.Exec(`
		UPDATE transactions
		SET account_id = $1, to_account_id = $2, tx_type = $3, amount = $4, category = $5, reason = $6, source = $7, payment_method = $8, tx_date = $9, month = $10, year = $11
		WHERE id = $12 AND uid = $13`,
		txn.AccountID, txn.ToAccountID, txn.Type, txn.Amount, txn.Category,
		txn.Reason, txn.Source, txn.PaymentMethod, txn.Date, txn.Month, txn.Year,
		txn.ID, txn.UID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFoundErrorf("transaction %s", txn.ID)
	}
	return nil
}

func (ts *TransactionService) fetchTransaction(uid, id string) (*models.Transaction, error) {
	var txn models.Transaction
	err := ts.db.QueryRow(`
		SELECT id, uid, account_id, to_account_id, tx_type, amount, category, reason, source, payment_method, tx_date, month, year, created_at
		FROM transactions
		WHERE id = $1 AND uid = $2`, id, uid).Scan(
		&txn.ID, &txn.UID, &txn.AccountID, &txn.ToAccountID, &txn.Type, &txn.Amount,
		&txn.Category, &txn.Reason, &txn.Source, &txn.PaymentMethod,
		&txn.Date, &txn.Month, &txn.Year, &txn.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundErrorf("transaction %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (ts *TransactionService) queryTransactions(query string, args ...any) ([]models.Transaction, error) {
	rows, err := ts.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(
			&txn.ID, &txn.UID, &txn.AccountID, &txn.ToAccountID, &txn.Type, &txn.Amount,
			&txn.Category, &txn.Reason, &txn.Source, &txn.PaymentMethod,
			&txn.Date, &txn.Month, &txn.Year, &txn.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}
