package services

import (
	"net/http"

	"github.com/pocketledger/backend/internal/models"
)

// GetReferenceData handles GET /metadata - the closed vocabularies
// clients build pickers from. Category submissions are validated
// against the same lists.
// @Summary Get reference data
// @Description Closed vocabularies for categories, payment methods, card types and frequencies
// @Tags metadata
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /metadata [get]
func GetReferenceData(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"expenseCategories": models.ExpenseCategories,
		"incomeCategories":  models.IncomeCategories,
		"paymentMethods":    models.PaymentMethods,
		"accountCategories": models.AccountCategories,
		"cardTypes":         []string{models.CardTypeCredit, models.CardTypeDebit},
		"frequencies": []string{
			models.FrequencyWeekly,
			models.FrequencyMonthly,
			models.FrequencyYearly,
		},
	})
}
