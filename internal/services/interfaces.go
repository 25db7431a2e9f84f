package services

import (
	"time"

	"github.com/wcarvalho/sms-expense-tracker/internal/dto"
	"github.com/wcarvalho/sms-expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationParserInterface extracts transaction fields from raw bank
// notification text
type NotificationParserInterface interface {
	// ParseSMS extracts amount, description and date from an SMS alert body
	ParseSMS(body string) (*ParsedNotification, error)

	// ParseEmailSubject extracts amount and description from a forwarded
	// email subject; email alerts carry no usable date
	ParseEmailSubject(subject string) (*ParsedNotification, error)
}

// IngestionServiceInterface turns parsed notifications and manual entries
// into persisted transactions
type IngestionServiceInterface interface {
	// IngestSMS records an SMS expense: amount negated, category unorganized
	IngestSMS(body string) (*models.Transaction, error)

	// IngestEmail records an email expense: amount negated, category
	// allowance, and the aggregate adjusted read-modify-write
	IngestEmail(subject string) (*models.Transaction, error)

	// AddAllowance records a manual allowance credit, keeping the sign as
	// entered, and returns the transaction plus the new aggregate total
	AddAllowance(amount decimal.Decimal) (*models.Transaction, decimal.Decimal, error)
}

// LoadOptions controls filtering for a dashboard load
type LoadOptions struct {
	// Categories restricts results to a category set; empty means all
	Categories []string
	// Search is a case-insensitive pattern matched against description and note
	Search string
	// ShowAll bypasses category and search filtering entirely
	ShowAll bool
}

// LoadResult is the fully recomputed dashboard state
type LoadResult struct {
	Transactions []models.Transaction
	Allowance    decimal.Decimal
}

// LedgerServiceInterface is the dashboard aggregator: every load is a full
// recompute of balances and the allowance aggregate from the transaction
// set, which is the system's only consistency-repair mechanism.
type LedgerServiceInterface interface {
	Load(opts LoadOptions) (*LoadResult, error)
	CycleCategory(id uuid.UUID) (*models.Transaction, decimal.Decimal, error)
	UpdateNote(id uuid.UUID, note string) (*models.Transaction, decimal.Decimal, error)
	UpdateDate(id uuid.UUID, date time.Time) (*models.Transaction, decimal.Decimal, error)
	Delete(id uuid.UUID) (decimal.Decimal, error)
	WeeklySeries() ([]dto.WeeklySeries, error)
}

// MetricsRecorderInterface abstracts metrics recording for services
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
