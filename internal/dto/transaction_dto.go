package dto

import (
	"time"

	"github.com/wcarvalho/sms-expense-tracker/internal/models"
)

// TransactionRow is the dashboard representation of a transaction.
type TransactionRow struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Balance     *string `json:"balance,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// LedgerResponse is the payload for the main dashboard listing.
type LedgerResponse struct {
	Transactions []TransactionRow `json:"transactions"`
	Allowance    string           `json:"allowance"`
	Count        int              `json:"count"`
}

// AddAllowanceRequest represents a manual allowance credit.
type AddAllowanceRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// UpdateTransactionRequest carries the editable transaction fields. Nil
// pointers mean the field is untouched.
type UpdateTransactionRequest struct {
	Note *string `json:"note,omitempty"`
	Date *string `json:"date,omitempty" validate:"omitempty,iso_date"`
}

// MutationResponse is returned by mutations that may shift the allowance.
type MutationResponse struct {
	Transaction *TransactionRow `json:"transaction,omitempty"`
	Allowance   string          `json:"allowance,omitempty"`
}

// WeeklyPoint is one bucket in a weekly running-total series.
type WeeklyPoint struct {
	WeekStart string `json:"week_start"`
	Total     string `json:"total"`
}

// WeeklySeries is the per-category chart series.
type WeeklySeries struct {
	Category string        `json:"category"`
	Points   []WeeklyPoint `json:"points"`
}

// NewTransactionRow converts a model into its dashboard representation.
func NewTransactionRow(t *models.Transaction) TransactionRow {
	row := TransactionRow{
		ID:          t.ID.String(),
		Description: t.Description,
		Amount:      t.Amount.String(),
		Date:        t.Date.UTC().Format(time.RFC3339),
		Category:    t.EffectiveCategory(),
		Note:        t.Note,
	}
	if t.Balance != nil {
		balance := t.Balance.String()
		row.Balance = &balance
	}
	return row
}

// NewTransactionRows converts a slice of models.
func NewTransactionRows(transactions []models.Transaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(transactions))
	for i := range transactions {
		rows = append(rows, NewTransactionRow(&transactions[i]))
	}
	return rows
}
