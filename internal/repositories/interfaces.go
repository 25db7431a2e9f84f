package repositories

import (
	"github.com/wcarvalho/sms-expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	// GetAllByDateAsc returns every transaction ordered by ascending date.
	// Rows sharing a date keep the store's return order; the dashboard
	// relies on that as its tie-break.
	GetAllByDateAsc() ([]models.Transaction, error)
	GetByCategoryByDateAsc(category string) ([]models.Transaction, error)
	Update(transaction *models.Transaction) error
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	SumAmountByCategory(category string) (decimal.Decimal, error)
}

// AllowanceRepositoryInterface defines the contract for the single cached
// allowance aggregate row
type AllowanceRepositoryInterface interface {
	// Get returns the current aggregate; a missing row reads as zero,
	// matching the original document store behavior.
	Get() (*models.AllowanceAggregate, error)
	Set(amount decimal.Decimal) error
}
