package repositories

import (
	"errors"
	"fmt"

	"github.com/wcarvalho/sms-expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{ID: id}
	if err := r.db.First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// GetAllByDateAsc retrieves all transactions ordered by ascending date.
// created_at is the stable tie-break for identical dates.
func (r *transactionRepository) GetAllByDateAsc() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Order("date ASC, created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// GetByCategoryByDateAsc retrieves transactions in one category ordered by ascending date
func (r *transactionRepository) GetByCategoryByDateAsc(category string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("category = ?", category).
		Order("date ASC, created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by category: %w", err)
	}
	return transactions, nil
}

// Update saves the full transaction record
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	if err := r.db.Save(transaction).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// UpdateFields updates selected columns of a transaction
func (r *transactionRepository) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.Model(&models.Transaction{ID: id}).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction fields: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction
func (r *transactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Transaction{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// SumAmountByCategory sums the signed amounts of every transaction in a category
func (r *transactionRepository) SumAmountByCategory(category string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("category = ?", category).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum amounts by category: %w", err)
	}
	return result.Total, nil
}
