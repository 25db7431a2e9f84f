package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllowanceAggregateID is the key of the single aggregate row, mirroring
// the original document layout allowance/current.
const AllowanceAggregateID = "current"

// AllowanceAggregate is the cached current allowance total. It is derived
// data: the dashboard rebuilds it from the transaction set on every load,
// so a stale value only survives until the next full recompute.
type AllowanceAggregate struct {
	ID        string          `gorm:"type:varchar(20);primary_key" json:"id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

// TableName returns the table name for AllowanceAggregate
func (a *AllowanceAggregate) TableName() string {
	return "allowance"
}
