package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/wcarvalho/sms-expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// allowanceRepository implements AllowanceRepositoryInterface over the
// single-row allowance table (layout carried over from the original
// allowance/current document).
type allowanceRepository struct {
	db *gorm.DB
}

// NewAllowanceRepository creates a new allowance repository
func NewAllowanceRepository(db *gorm.DB) AllowanceRepositoryInterface {
	return &allowanceRepository{
		db: db,
	}
}

// Get returns the current aggregate. A missing row is not an error: it
// reads as a zero aggregate, the way the original treated an absent
// document.
func (r *allowanceRepository) Get() (*models.AllowanceAggregate, error) {
	aggregate := &models.AllowanceAggregate{}
	err := r.db.Where("id = ?", models.AllowanceAggregateID).First(aggregate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.AllowanceAggregate{
				ID:     models.AllowanceAggregateID,
				Amount: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("failed to get allowance aggregate: %w", err)
	}
	return aggregate, nil
}

// Set overwrites the aggregate, creating the row if it does not exist yet
func (r *allowanceRepository) Set(amount decimal.Decimal) error {
	aggregate := &models.AllowanceAggregate{
		ID:        models.AllowanceAggregateID,
		Amount:    amount,
		UpdatedAt: time.Now(),
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(aggregate).Error
	if err != nil {
		return fmt.Errorf("failed to set allowance aggregate: %w", err)
	}
	return nil
}
