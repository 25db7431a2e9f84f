package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrMissingDescription = errors.New("transaction description is required")
	ErrInvalidCategory    = errors.New("invalid transaction category")
	ErrZeroDate           = errors.New("transaction date is required")
)

// Transaction is a single expense or credit record parsed from a bank
// notification or entered directly through the dashboard.
//
// Amount is signed: negative for expenses, positive for income and
// allowance credits. Balance is a cached running total and is only
// meaningful for accumulating categories; the dashboard recomputes it on
// every full load and it must never be trusted as a source of truth.
type Transaction struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time        `gorm:"not null;index" json:"date"`
	Category    string           `gorm:"type:varchar(20);index" json:"category,omitempty"`
	Balance     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"balance,omitempty"`
	Note        string           `gorm:"type:text" json:"note,omitempty"`

	// LegacyCounts carries the pre-category schema's boolean. Records that
	// still have it and no category are repaired on dashboard load:
	// counts=true maps to allowance, anything else to unorganized.
	LegacyCounts *bool `gorm:"column:counts" json:"counts,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.Date.IsZero() {
		t.Date = now
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.Description == "" {
		return ErrMissingDescription
	}

	if t.Date.IsZero() {
		return ErrZeroDate
	}

	if t.Category != "" && !IsValidCategory(t.Category) {
		return ErrInvalidCategory
	}

	return nil
}

// EffectiveCategory returns the category the dashboard should treat this
// record as having, mapping legacy and missing values to a member of the
// fixed set without mutating the record.
func (t *Transaction) EffectiveCategory() string {
	if IsValidCategory(t.Category) {
		return t.Category
	}
	if t.LegacyCounts != nil && *t.LegacyCounts {
		return CategoryAllowance
	}
	return CategoryUnorganized
}

// NeedsCategoryRepair reports whether the stored category field must be
// rewritten during migration-on-read.
func (t *Transaction) NeedsCategoryRepair() bool {
	return !IsValidCategory(t.Category)
}

// Accumulates reports whether this transaction contributes to a running
// balance and the allowance aggregate.
func (t *Transaction) Accumulates() bool {
	return IsAccumulatingCategory(t.EffectiveCategory())
}

// SetBalance replaces the cached running balance
func (t *Transaction) SetBalance(b decimal.Decimal) {
	t.Balance = &b
}

// BalanceEquals reports whether the stored balance matches the given value
func (t *Transaction) BalanceEquals(b decimal.Decimal) bool {
	return t.Balance != nil && t.Balance.Equal(b)
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
