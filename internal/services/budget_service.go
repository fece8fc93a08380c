package services

import (
	"context"
	"database/sql"
	"encoding/json"
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

// BudgetService manages per-category budgets, the five-level total
// spend thresholds, and the alerts generated when a month's spend
// crosses a threshold. It consumes the ledger's monthly aggregation and
// never touches balances.
type BudgetService struct {
	db           *sql.DB
	transactions *TransactionService
	validator    *ValidationHelper
}

// BudgetRequest upserts a category budget
type BudgetRequest struct {
	Category string          `json:"category" validate:"required,max=60"`
	Limit    decimal.Decimal `json:"limit"`
}

// BudgetConfigRequest replaces the spend-level thresholds
type BudgetConfigRequest struct {
	Levels []decimal.Decimal `json:"levels" validate:"required,len=5"`
}

func NewBudgetService(db *sql.DB, transactions *TransactionService) *BudgetService {
	return &BudgetService{
		db:           db,
		transactions: transactions,
		validator:    NewValidationHelper(),
	}
}

// UpsertBudget creates or replaces the monthly cap for a category.
func (bs *BudgetService) UpsertBudget(ctx context.Context, uid string, req *BudgetRequest) (*models.Budget, error) {
	if err := bs.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Limit.Cmp(decimal.Zero) < 0 {
		return nil, validationErrorf("limit must not be negative")
	}

	budget := &models.Budget{
		UID:      uid,
		Category: req.Category,
		Limit:    req.Limit,
		Period:   "monthly",
	}

	err := bs.db.QueryRow(`
		SELECT id FROM budgets WHERE uid = $1 AND category = $2`, uid, req.Category).Scan(&budget.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		budget.ID = uuid.New().String()
		_, err = bs.db.Exec(`
			INSERT INTO budgets (id, uid, category, spend_limit, period)
			VALUES ($1, $2, $3, $4, $5)`,
			budget.ID, uid, budget.Category, budget.Limit, budget.Period)
	case err == nil:
		_, err = bs.db.Exec(`
			UPDATE budgets SET spend_limit = $1 WHERE id = $2 AND uid = $3`,
			budget.Limit, budget.ID, uid)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return budget, nil
}

// DeleteBudget removes a category budget.
func (bs *BudgetService) DeleteBudget(ctx context.Context, uid, id string) error {
	result, err := bs.db.Exec(`DELETE FROM budgets WHERE id = $1 AND uid = $2`, id, uid)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFoundErrorf("budget %s", id)
	}
	return nil
}

// Statuses returns each budgeted category's month-to-date standing.
func (bs *BudgetService) Statuses(ctx context.Context, uid string, asOf time.Time) ([]models.BudgetStatus, error) {
	rows, err := bs.db.Query(`
		SELECT id, uid, category, spend_limit, period FROM budgets
		WHERE uid = $1 ORDER BY category ASC`, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UID, &b.Category, &b.Limit, &b.Period); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary, err := bs.transactions.MonthlySummary(ctx, uid, asOf.Month().String(), fmt.Sprintf("%d", asOf.Year()))
	if err != nil {
		return nil, err
	}

	statuses := make([]models.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		statuses = append(statuses, budgetStatus(b, summary))
	}
	return statuses, nil
}

func budgetStatus(b models.Budget, summary *models.MonthlySummary) models.BudgetStatus {
	spent := summary.ByCategory[b.Category]
	status := models.BudgetStatus{
		Category:   b.Category,
		Limit:      b.Limit,
		Spent:      spent,
		Remaining:  b.Limit.Sub(spent),
		Percentage: decimal.Zero,
	}
	if b.Limit.Cmp(decimal.Zero) > 0 {
		status.Percentage = spent.Div(b.Limit).Mul(decimal.NewFromInt(100))
	}
	return status
}

// GetConfig returns the user's spend-level thresholds; absent rows mean
// all levels unset (zero).
func (bs *BudgetService) GetConfig(ctx context.Context, uid string) (*models.BudgetConfig, error) {
	config := &models.BudgetConfig{UID: uid}

	var levelsJSON []byte
	err := bs.db.QueryRow(`
		SELECT levels, updated_at FROM budget_configs WHERE uid = $1`, uid).Scan(&levelsJSON, &config.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		config.Levels = make([]decimal.Decimal, models.BudgetLevelCount)
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := json.Unmarshal(levelsJSON, &config.Levels); err != nil {
		return nil, err
	}
	return config, nil
}

// UpdateConfig replaces the five thresholds. Non-zero levels must be
// strictly ascending; a zero level is disabled.
func (bs *BudgetService) UpdateConfig(ctx context.Context, uid string, req *BudgetConfigRequest) (*models.BudgetConfig, error) {
	if err := bs.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	prev := decimal.Zero
	for i, level := range req.Levels {
		if level.Cmp(decimal.Zero) < 0 {
			return nil, validationErrorf("level %d must not be negative", i+1)
		}
		if level.Cmp(decimal.Zero) > 0 {
			if level.Cmp(prev) <= 0 {
				return nil, validationErrorf("level %d must exceed level %d", i+1, i)
			}
			prev = level
		}
	}

	config := &models.BudgetConfig{
		UID:       uid,
		Levels:    req.Levels,
		UpdatedAt: time.Now(),
	}

	levelsJSON, err := json.Marshal(config.Levels)
	if err != nil {
		return nil, err
	}

	_, err = bs.db.Exec(`
		INSERT INTO budget_configs (uid, levels, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO UPDATE SET levels = $2, updated_at = $3`,
		uid, levelsJSON, config.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return config, nil
}

// CheckAlerts generates a budget_level alert for every threshold the
// current month's total spend has crossed. Alert ids are deterministic
// per (level, month, year, user), so concurrent checks from multiple
// clients cannot produce duplicates.
func (bs *BudgetService) CheckAlerts(ctx context.Context, uid string, asOf time.Time) (int, error) {
	config, err := bs.GetConfig(ctx, uid)
	if err != nil {
		return 0, err
	}

	summary, err := bs.transactions.MonthlySummary(ctx, uid, asOf.Month().String(), fmt.Sprintf("%d", asOf.Year()))
	if err != nil {
		return 0, err
	}
	totalSpent := summary.TotalExpenses

	month := int(asOf.Month()) - 1
	year := asOf.Year()

	raised := 0
	for i, limit := range config.Levels {
		level := i + 1
		if limit.Cmp(decimal.Zero) <= 0 {
			continue // disabled level
		}
		if totalSpent.Cmp(limit) < 0 {
			continue
		}

		alertID := fmt.Sprintf("budget-level-%d-%d-%d-%s", level, month, year, uid)
		result, err := bs.db.Exec(`
			INSERT INTO alerts (id, uid, alert_type, title, message, level, month, year, is_read, cleared, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, false, $9)
			ON CONFLICT (id) DO NOTHING`,
			alertID, uid, models.AlertTypeBudgetLevel,
			fmt.Sprintf("Budget Limit Reached: Level %d", level),
			fmt.Sprintf("Your total spending (%s) has crossed the level %d limit of %s.",
				totalSpent.StringFixed(2), level, limit.StringFixed(2)),
			level, month, year, time.Now())
		if err != nil {
			return raised, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return raised, err
		}
		raised += int(affected)
	}
	return raised, nil
}

// ListAlerts returns the current month's non-cleared alerts, newest first.
func (bs *BudgetService) ListAlerts(ctx context.Context, uid string, asOf time.Time) ([]models.Alert, error) {
	rows, err := bs.db.Query(`
		SELECT id, uid, alert_type, title, message, level, month, year, is_read, cleared, created_at
		FROM alerts
		WHERE uid = $1 AND month = $2 AND year = $3 AND cleared = false
		ORDER BY created_at DESC`, uid, int(asOf.Month())-1, asOf.Year())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.UID, &a.Type, &a.Title, &a.Message,
			&a.Level, &a.Month, &a.Year, &a.IsRead, &a.Cleared, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// ClearAlert soft-deletes an alert so the next check does not re-raise it.
func (bs *BudgetService) ClearAlert(ctx context.Context, uid, id string) error {
	return bs.setAlertFlag(uid, id, "cleared")
}

// MarkAlertRead flags an alert as seen.
func (bs *BudgetService) MarkAlertRead(ctx context.Context, uid, id string) error {
	return bs.setAlertFlag(uid, id, "is_read")
}

func (bs *BudgetService) setAlertFlag(uid, id, column string) error {
	// column is one of two hardcoded call sites, never user input
	query := fmt.Sprintf(`UPDATE alerts SET %s = true WHERE id = $1 AND uid = $2`, column)
	result, err := bs.db.Exec(query, id, uid)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFoundErrorf("alert %s", id)
	}
	return nil
}

// --- HTTP handlers ---

// UpsertBudgetHandler handles PUT /budgets
// @Summary Set a category budget
// @Description Create or replace the monthly spending limit for a category
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body BudgetRequest true "Budget data"
// @Success 200 {object} models.Budget
// @Failure 400 {object} map[string]string
// @Router /budgets [put]
func (bs *BudgetService) UpsertBudgetHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req BudgetRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	budget, err := bs.UpsertBudget(r.Context(), uid, &req)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, budget)
}

// DeleteBudgetHandler handles DELETE /budgets/{budgetId}
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Param budgetId path string true "Budget ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /budgets/{budgetId} [delete]
func (bs *BudgetService) DeleteBudgetHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	if err := bs.DeleteBudget(r.Context(), uid, chi.URLParam(r, "budgetId")); err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// GetBudgetStatuses handles GET /budgets
// @Summary Get budget statuses
// @Description Per-category limit, spend and percentage for the current month
// @Tags budgets
// @Produce json
// @Success 200 {object} object{budgets=[]models.BudgetStatus,count=int}
// @Failure 500 {object} map[string]string
// @Router /budgets [get]
func (bs *BudgetService) GetBudgetStatuses(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	statuses, err := bs.Statuses(r.Context(), uid, time.Now())
	if err != nil {
		log.Printf("[BUDGET] Statuses failed for uid %s: %v", uid, err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"budgets": statuses,
		"count":   len(statuses),
	})
}

// GetBudgetConfig handles GET /budgets/config
// @Summary Get alert level configuration
// @Tags budgets
// @Produce json
// @Success 200 {object} models.BudgetConfig
// @Failure 500 {object} map[string]string
// @Router /budgets/config [get]
func (bs *BudgetService) GetBudgetConfig(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	config, err := bs.GetConfig(r.Context(), uid)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, config)
}

// UpdateBudgetConfig handles PUT /budgets/config
// @Summary Update alert level configuration
// @Description Set the five spending thresholds that trigger level alerts; zero levels disable alerting
// @Tags budgets
// @Accept json
// @Produce json
// @Param config body BudgetConfigRequest true "Alert levels"
// @Success 200 {object} models.BudgetConfig
// @Failure 400 {object} map[string]string
// @Router /budgets/config [put]
func (bs *BudgetService) UpdateBudgetConfig(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req BudgetConfigRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	config, err := bs.UpdateConfig(r.Context(), uid, &req)
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, config)
}

// CheckAlertsHandler handles POST /alerts/check
// @Summary Check budget alerts
// @Description Evaluate the current month's spend against configured levels and raise any newly crossed alerts
// @Tags alerts
// @Produce json
// @Success 200 {object} object{raised=int}
// @Failure 500 {object} map[string]string
// @Router /alerts/check [post]
func (bs *BudgetService) CheckAlertsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	raised, err := bs.CheckAlerts(r.Context(), uid, time.Now())
	if err != nil {
		log.Printf("[BUDGET] Alert check failed for uid %s: %v", uid, err)
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"raised": raised})
}

// ListAlertsHandler handles GET /alerts
// @Summary List alerts
// @Description Uncleared alerts for the current month, newest first
// @Tags alerts
// @Produce json
// @Success 200 {object} object{alerts=[]models.Alert,count=int}
// @Failure 500 {object} map[string]string
// @Router /alerts [get]
func (bs *BudgetService) ListAlertsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	alerts, err := bs.ListAlerts(r.Context(), uid, time.Now())
	if err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// ClearAlertHandler handles PUT /alerts/{alertId}/clear
// @Summary Clear an alert
// @Tags alerts
// @Produce json
// @Param alertId path string true "Alert ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /alerts/{alertId}/clear [put]
func (bs *BudgetService) ClearAlertHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	if err := bs.ClearAlert(r.Context(), uid, chi.URLParam(r, "alertId")); err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// MarkAlertReadHandler handles PUT /alerts/{alertId}/read
// @Summary Mark an alert as read
// @Tags alerts
// @Produce json
// @Param alertId path string true "Alert ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /alerts/{alertId}/read [put]
func (bs *BudgetService) MarkAlertReadHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value("userID").(string)
	if !ok || uid == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	if err := bs.MarkAlertRead(r.Context(), uid, chi.URLParam(r, "alertId")); err != nil {
		SendServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
