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

// RecurringService manages scheduled bills/income and turns due items
// into concrete transactions. A pass is triggered externally (cron or
// client call); nothing reprocesses itself reactively.
type RecurringService struct {
	db           *sql.DB
	transactions *TransactionService
	validator    *ValidationHelper
}

// RecurringRequest is the create payload. Transfers are not
// schedulable: a posted item has no destination participant, so only
// income and expense items can ever process.
type RecurringRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Frequency   string          `json:"frequency" validate:"required,oneof=weekly monthly yearly"`
	NextDueDate time.Time       `json:"nextDueDate" validate:"required"`
	AutoPay     *bool           `json:"autoPay,omitempty"`
	AccountID   string          `json:"accountId"`
	Category    string          `json:"category" validate:"required,max=60"`
}

// RecurringUpdate is the partial edit payload
type RecurringUpdate struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty" validate:"omitempty,oneof=income expense"`
	Frequency   *string          `json:"frequency,omitempty" validate:"omitempty,oneof=weekly monthly yearly"`
	NextDueDate *time.Time       `json:"nextDueDate,omitempty"`
	AutoPay     *bool            `json:"autoPay,omitempty"`
	AccountID   *string          `json:"accountId,omitempty"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=60"`
}

// ProcessResult reports one scheduler pass
type ProcessResult struct {
	Posted  int      `json:"posted"`
	Alerted int      `json:"alerted"`
	Failed  []string `json:"failed,omitempty"`
}

func NewRecurringService(db *sql.DB, transactions *TransactionService) *RecurringService {
	return &RecurringService{
		db:           db,
		transactions: transactions,
		validator:    NewValidationHelper(),
	}
}

// NextDueDate advances a due date by one period. Month and year steps
// keep the day-of-month, clamping to the target month's last day
// (Jan 31 -> Feb 28, Feb 29 -> Feb 28 in non-leap years).
func NextDueDate(due time.Time, frequency string) time.Time {
	switch frequency {
	case models.FrequencyWeekly:
		return due.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return addMonthsClamped(due, 1)
	case models.FrequencyYearly:
		return addMonthsClamped(due, 12)
	}
	return due
}

func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// dueOnOrBefore compares at calendar-day granularity, ignoring time of day.
func dueOnOrBefore(due, asOf time.Time) bool {
	dy, dm, dd := due.Date()
	ay, am, ad := asOf.Date()
	d := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	a := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	return !d.After(a)
}

// ProcessDueItems runs one scheduler pass as of the given instant. Each
// due item with auto-pay posts a transaction dated at the original due
// date and advances exactly one period; an overdue item catches up over
// successive passes. Due items without auto-pay raise a reminder alert.
// A failed post leaves the item's due date untouched and the pass moves
// on to the remaining items.
func (rs *RecurringService) ProcessDueItems(ctx context.Context, uid string, asOf time.Time) (*ProcessResult, error) {
	items, err := rs.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{}
	for i := range items {
		item := &items[i]
		if !dueOnOrBefore(item.NextDueDate, asOf) {
			continue
		}

		if !item.AutoPay {
			if err := rs.raiseDueAlert(ctx, item); err != nil {
				log.Printf("[RECURRING] Failed to raise due alert for %s: %v", item.ID, err)
			} else {
				result.Alerted++
			}
			continue
		}

		if err := rs.postItem(ctx, item); err != nil {
			log.Printf("[RECURRING] Failed to post %q (%s): %v", item.Name, item.ID, err)
			result.Failed = append(result.Failed, item.ID)
			continue
		}

		next := NextDueDate(item.NextDueDate, item.Frequency)
		if err := rs.advanceItem(ctx, uid, item.ID, next); err != nil {
			log.Printf("[RECURRING] Failed to advance %s: %v", item.ID, err)
			result.Failed = append(result.Failed, item.ID)
			continue
		}
		result.Posted++
	}

	return result, nil
}

func (rs *RecurringService) postItem(ctx context.Context, item *models.RecurringTransaction) error {
	accountID := item.AccountID
	if accountID == "" {
		accountID = models.CashAccountID
	}

	req := &TransactionRequest{
		AccountID:     accountID,
		Type:          item.Type,
		Amount:        item.Amount,
		Category:      item.Category,
		Reason:        "Auto-Pay: " + item.Name,
		PaymentMethod: "Other",
		Date:          item.NextDueDate, // dated at the original due date
	}
	if item.Type == models.TxTypeIncome {
		req.Source = item.Name
	}

	_, err := rs.transactions.Record(ctx, item.UID, req)
	return err
}

func (rs *RecurringService) advanceItem(ctx context.Context, uid, id string, next time.Time) error {
	result, err := rs.db.Exec(`
		UPDATE recurring_items
		SET next_due_date = $1, last_processed_at = $2
		WHERE id = $3 AND uid = $4`,
		next, time.Now(), id, uid)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFoundErrorf("recurring item %s", id)
	}
	return nil
}

func (rs *RecurringService) raiseDueAlert(ctx context.Context, item *models.RecurringTransaction) error {
	due := item.NextDueDate
	alertID := fmt.Sprintf("recurring-due-%s-%s", item.ID, due.Format("2006-01-02"))
	_, err := rs.db.Exec(`
		INSERT INTO alerts (id, uid, alert_type, title, message, level, month, year, is_read, cleared, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, false, false, $8)
		ON CONFLICT (id) DO NOTHING`,
		alertID, item.UID, models.AlertTypeRecurringDue,
		fmt.Sprintf("Bill Due: %s", item.Name),
		fmt.Sprintf("%s (%s) is due on %s.", item.Name, item.Amount.StringFixed(2), due.Format("Jan 2, 2006")),
		int(due.Month())-1, due.Year(), time.Now())
	return err
}

// Create stores a new recurring item.
func (rs *RecurringService) Create(ctx context.Context, uid string, req *RecurringRequest) (*models.RecurringTransaction, error) {
	if err := rs.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Amount.Cmp(decimal.Zero) <= 0 {
		return nil, validationErrorf("amount must be positive")
	}
	// Reject up front what posting would reject every pass.
	if err := validateCategory(req.Type, req.Category); err != nil {
		return nil, err
	}

	autoPay := true
	if req.AutoPay != nil {
		autoPay = *req.AutoPay
	}

	item := &models.RecurringTransaction{
		ID:          uuid.New().String(),
		UID:         uid,
		Name:        req.Name,
		Amount:      req.Amount,
		Type:        req.Type,
		Frequency:   req.Frequency,
		NextDueDate: req.NextDueDate,
		AutoPay:     autoPay,
		AccountID:   req.AccountID,
		Category:    req.Category,
		CreatedAt:   time.Now(),
	}

	_, err := rs.db.Exec(`
		INSERT INTO recurring_items (id, uid, name, amount, tx_type, frequency, next_due_date, auto_pay, account_id, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		item.ID, item.UID, item.Name, item.Amount, item.Type, item.Frequency,
		item.NextDueDate, item.AutoPay, item.AccountID, item.Category, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return item, nil
}

// Update edits a recurring item; the scheduler never runs through here.
func (rs *RecurringService) Update(ctx context.Context, uid, id string, update *RecurringUpdate) (*models.RecurringTransaction, error) {
	if err := rs.validator.ValidateStruct(update); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if update.Amount != nil && update.Amount.Cmp(decimal.Zero) <= 0 {
		return nil, validationErrorf("amount must be positive")
	}

	item, err := rs.fetchItem(uid, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Amount != nil {
		item.Amount = *update.Amount
	}
	if update.Type != nil {
		item.Type = *update.Type
	}
	if update.Frequency != nil {
		item.Frequency = *update.Frequency
	}
	if update.NextDueDate != nil {
		item.NextDueDate = *update.NextDueDate
	}
	if update.AutoPay != nil {
		item.AutoPay = *update.AutoPay
	}
	if update.AccountID != nil {
		item.AccountID = *update.AccountID
	}
	if update.Category != nil {
		item.Category = *update.Category
	}

	if err := validateCategory(item.Type, item.Category); err != nil {
		return nil, err
	}

	_, err = rs.db.Exec(`
		UPDATE recurring_items
		SET name = $1, amount = $2, tx_type = $3, frequency = $4, next_due_date = $5, auto_pay = $6, account_id = $7, category = $8
		WHERE id = $9 AND uid = $10`,
		item.Name, item.Amount, item.Type, item.Frequency, item.NextDueDate,
		item.AutoPay, item.AccountID, item.Category, id, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return item, nil
}

// Delete removes a recurring item; already-posted transactions stay.
func (rs *RecurringService) Delete(ctx context.Context, uid, id string) error {
	result, err := rs.db.Exec(`DELETE FROM recurring_items WHERE id = $1 AND uid = $2`, id, uid)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFoundErrorf("recurring item %s", id)
	}
	return nil
}

// List returns all of a user's recurring items, soonest due first.
func (rs *RecurringService) List(ctx context.Context, uid string) ([]models.RecurringTransaction, error) {
	rows, err := rs.db.Query(`
		SELECT id, uid, name, amount, tx_type, frequency, next_due_date, auto_pay, account_id, category, last_processed_at, created_at
		FROM recurring_items
		WHERE uid = $1
		ORDER BY next_due_date ASC`, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	items := []models.RecurringTransaction{}
	for rows.Next() {
		var item models.RecurringTransaction
		if err := rows.Scan(
			&item.ID, &item.UID, &item.Name, &item.Amount, &item.Type, &item.Frequency,
			&item.NextDueDate, &item.AutoPay, &item.AccountID, &item.Category,
			&item.LastProcessedAt, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (rs *RecurringService) fetchItem(uid, id string) (*models.RecurringTransaction, error) {
	var item models.RecurringTransaction
	err := rs.db.QueryRow(`
		SELECT id, uid, name, amount, tx_type, frequency, next_due_date, auto_pay, account_id, category, last_processed_at, created_at
		FROM recurring_items
		WHERE id = $1 AND uid = $2`, id, uid).Scan(
		&item.ID, &item.UID, &item.Name, &item.Amount, &item.Type, &item.Frequency,
		&item.NextDueDate, &item.AutoPay, &item.AccountID, &item.Category,
		&item.LastProcessedAt, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundErrorf("recurring item %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --- HTTP handlers ---

// CreateRecurringItem handles POST /recurring
// @Summary Create a recurring item
// @Description Schedule a recurring income or expense for auto-posting or reminders
// @Tags recurring
// @Accept json
// @Produce json
// @Param item body RecurringRequest true "Recurring item data"
// @Success 201 {object} models.RecurringTransaction
// @Failure 400 {object} map[string]string
// @Router /recurring [post]
func (rs *RecurringService) CreateRecurringItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req RecurringRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	item, err := rs.Create(r.Context(), uid, &req)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, item)
}

// UpdateRecurringItem handles PUT /recurring/{itemId}
// @Summary Update a recurring item
// @Tags recurring
// @Accept json
// @Produce json
// @Param itemId path string true "Recurring item ID"
// @Param update body RecurringUpdate true "Fields to change"
// @Success 200 {object} models.RecurringTransaction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /recurring/{itemId} [put]
func (rs *RecurringService) UpdateRecurringItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var update RecurringUpdate
	if err := DecodeJSONBody(w, r, &update); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	item, err := rs.Update(r.Context(), uid, chi.URLParam(r, "itemId"), &update)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, item)
}

// DeleteRecurringItem handles DELETE /recurring/{itemId}
// @Summary Delete a recurring item
// @Tags recurring
// @Produce json
// @Param itemId path string true "Recurring item ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /recurring/{itemId} [delete]
func (rs *RecurringService) DeleteRecurringItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	if err := rs.Delete(r.Context(), uid, chi.URLParam(r, "itemId")); err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ListRecurringItems handles GET /recurring
// @Summary List recurring items
// @Tags recurring
// @Produce json
// @Success 200 {object} object{items=[]models.RecurringTransaction,count=int}
// @Failure 500 {object} map[string]string
// @Router /recurring [get]
func (rs *RecurringService) ListRecurringItems(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	items, err := rs.List(r.Context(), uid)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

// ProcessRecurringItems handles POST /recurring/process - one explicit
// scheduler pass for the authenticated user.
// @Summary Process due recurring items
// @Description Post auto-pay items that are due, raise reminders for the rest and advance due dates
// @Tags recurring
// @Produce json
// @Success 200 {object} ProcessResult
// @Failure 500 {object} map[string]string
// @Router /recurring/process [post]
func (rs *RecurringService) ProcessRecurringItems(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	result, err := rs.ProcessDueItems(r.Context(), uid, time.Now())
	if err != nil {
		log.Printf("[RECURRING] Pass failed for uid %s: %v", uid, err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
