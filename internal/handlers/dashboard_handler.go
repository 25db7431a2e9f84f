package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wcarvalho/sms-expense-tracker/internal/dto"
	"github.com/wcarvalho/sms-expense-tracker/internal/errors"
	"github.com/wcarvalho/sms-expense-tracker/internal/repositories"
	"github.com/wcarvalho/sms-expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// DashboardHandler serves the transaction listing and mutation endpoints
type DashboardHandler struct {
	ledger    services.LedgerServiceInterface
	ingestion services.IngestionServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	ledger services.LedgerServiceInterface,
	ingestion services.IngestionServiceInterface,
) *DashboardHandler {
	return &DashboardHandler{
		ledger:    ledger,
		ingestion: ingestion,
	}
}

// List returns the repaired, balance-stamped transaction set newest first.
// Query parameters: category (repeatable), search (case-insensitive
// regular expression), show_all (bypasses filters).
func (h *DashboardHandler) List(c echo.Context) error {
	opts := services.LoadOptions{
		Categories: c.QueryParams()["category"],
		Search:     c.QueryParam("search"),
		ShowAll:    c.QueryParam("show_all") == "true",
	}

	result, err := h.ledger.Load(opts)
	if err != nil {
		if err == services.ErrBadSearchPattern {
			return SendError(c, errors.ValidationBadPattern,
				errors.WithDetails("search must be a valid regular expression"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.LedgerResponse{
		Transactions: dto.NewTransactionRows(result.Transactions),
		Allowance:    result.Allowance.String(),
		Count:        len(result.Transactions),
	})
}

// AddAllowance records a manual allowance credit
func (h *DashboardHandler) AddAllowance(c echo.Context) error {
	var req dto.AddAllowanceRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.AllowanceInvalidAmount,
			errors.WithDetails("amount must be a decimal number"))
	}
	if amount.IsZero() {
		return SendError(c, errors.AllowanceInvalidAmount,
			errors.WithDetails("amount must be non-zero"))
	}

	transaction, total, err := h.ingestion.AddAllowance(amount)
	if err != nil {
		return SendSystemError(c, err)
	}

	row := dto.NewTransactionRow(transaction)
	return c.JSON(http.StatusCreated, dto.MutationResponse{
		Transaction: &row,
		Allowance:   total.String(),
	})
}

// CycleCategory advances a transaction to the next category in the cycle
func (h *DashboardHandler) CycleCategory(c echo.Context) error {
	id, err := getTransactionID(c)
	if err != nil {
		return SendError(c, errors.TransactionInvalidID)
	}

	transaction, total, err := h.ledger.CycleCategory(id)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	row := dto.NewTransactionRow(transaction)
	return c.JSON(http.StatusOK, dto.MutationResponse{
		Transaction: &row,
		Allowance:   total.String(),
	})
}

// Update edits a transaction's note or date
func (h *DashboardHandler) Update(c echo.Context) error {
	id, err := getTransactionID(c)
	if err != nil {
		return SendError(c, errors.TransactionInvalidID)
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Note == nil && req.Date == nil {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails("at least one of note or date is required"))
	}

	var updated *dto.TransactionRow
	allowance := ""

	if req.Note != nil {
		t, total, err := h.ledger.UpdateNote(id, *req.Note)
		if err != nil {
			if err == repositories.ErrTransactionNotFound {
				return SendError(c, errors.TransactionNotFound)
			}
			return SendSystemError(c, err)
		}
		row := dto.NewTransactionRow(t)
		updated = &row
		allowance = total.String()
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate,
				errors.WithDetails("date must be formatted as YYYY-MM-DD"))
		}

		t, total, err := h.ledger.UpdateDate(id, date)
		if err != nil {
			if err == repositories.ErrTransactionNotFound {
				return SendError(c, errors.TransactionNotFound)
			}
			return SendSystemError(c, err)
		}
		row := dto.NewTransactionRow(t)
		updated = &row
		allowance = total.String()
	}

	slog.Info("Updated transaction", "transaction_id", id)

	return c.JSON(http.StatusOK, dto.MutationResponse{
		Transaction: updated,
		Allowance:   allowance,
	})
}

// Delete removes a transaction
func (h *DashboardHandler) Delete(c echo.Context) error {
	id, err := getTransactionID(c)
	if err != nil {
		return SendError(c, errors.TransactionInvalidID)
	}

	total, err := h.ledger.Delete(id)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MutationResponse{
		Allowance: total.String(),
	})
}

// WeeklyChart returns per-category weekly running totals
func (h *DashboardHandler) WeeklyChart(c echo.Context) error {
	series, err := h.ledger.WeeklySeries()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, series)
}
