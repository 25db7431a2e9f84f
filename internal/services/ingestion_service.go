package services

import (
	"log/slog"
	"time"

	"github.com/wcarvalho/sms-expense-tracker/internal/models"
	"github.com/wcarvalho/sms-expense-tracker/internal/repositories"

	"github.com/shopspring/decimal"
)

// allowanceDescription labels manual allowance credits
const allowanceDescription = "Allowance"

type ingestionService struct {
	parser       NotificationParserInterface
	transactions repositories.TransactionRepositoryInterface
	allowance    repositories.AllowanceRepositoryInterface
	metrics      MetricsRecorderInterface
}

// NewIngestionService creates a new IngestionServiceInterface instance
func NewIngestionService(
	parser NotificationParserInterface,
	transactions repositories.TransactionRepositoryInterface,
	allowance repositories.AllowanceRepositoryInterface,
	metrics MetricsRecorderInterface,
) IngestionServiceInterface {
	return &ingestionService{
		parser:       parser,
		transactions: transactions,
		allowance:    allowance,
		metrics:      metrics,
	}
}

// IngestSMS records an expense from an SMS alert body. The parsed amount is
// always negated (expense sign convention) and the record lands in
// unorganized for the user to categorize later, so the aggregate is not
// touched here.
func (s *ingestionService) IngestSMS(body string) (*models.Transaction, error) {
	parsed, err := s.parser.ParseSMS(body)
	if err != nil {
		s.countRejected("sms", err)
		return nil, err
	}

	transaction := &models.Transaction{
		Description: parsed.Description,
		Amount:      parsed.Amount.Neg(),
		Date:        parsed.Date,
		Category:    models.CategoryUnorganized,
	}

	if err := s.transactions.Create(transaction); err != nil {
		return nil, err
	}

	s.countAccepted("sms")
	slog.Info("Ingested SMS transaction",
		"description", transaction.Description,
		"amount", transaction.Amount.String(),
		"date", transaction.Date,
	)

	return transaction, nil
}

// IngestEmail records an expense from a forwarded email subject. Email
// alerts have no date, so the record is stamped with the ingestion time.
// Email expenses count against the allowance immediately, so the aggregate
// gets the original read-modify-write update. That pair of writes is not
// atomic; the next dashboard load rebuilds the aggregate from the
// transaction set either way.
func (s *ingestionService) IngestEmail(subject string) (*models.Transaction, error) {
	parsed, err := s.parser.ParseEmailSubject(subject)
	if err != nil {
		s.countRejected("email", err)
		return nil, err
	}

	transaction := &models.Transaction{
		Description: parsed.Description,
		Amount:      parsed.Amount.Neg(),
		Date:        time.Now(),
		Category:    models.CategoryAllowance,
	}

	if err := s.transactions.Create(transaction); err != nil {
		return nil, err
	}

	aggregate, err := s.allowance.Get()
	if err != nil {
		return nil, err
	}

	newTotal := aggregate.Amount.Add(transaction.Amount)
	if err := s.allowance.Set(newTotal); err != nil {
		return nil, err
	}

	s.countAccepted("email")
	s.recordAllowanceLevel(newTotal)
	slog.Info("Ingested email transaction",
		"description", transaction.Description,
		"amount", transaction.Amount.String(),
		"allowance", newTotal.String(),
	)

	return transaction, nil
}

// AddAllowance records a manual allowance credit. Unlike notification
// ingestion the amount keeps the sign the user entered; the transaction's
// cached balance is the aggregate total after the credit.
func (s *ingestionService) AddAllowance(amount decimal.Decimal) (*models.Transaction, decimal.Decimal, error) {
	aggregate, err := s.allowance.Get()
	if err != nil {
		return nil, decimal.Zero, err
	}

	newTotal := aggregate.Amount.Add(amount)
	if err := s.allowance.Set(newTotal); err != nil {
		return nil, decimal.Zero, err
	}

	transaction := &models.Transaction{
		Description: allowanceDescription,
		Amount:      amount,
		Date:        time.Now(),
		Category:    models.CategoryAllowance,
	}
	transaction.SetBalance(newTotal)

	if err := s.transactions.Create(transaction); err != nil {
		return nil, decimal.Zero, err
	}

	s.countAccepted("manual")
	s.recordAllowanceLevel(newTotal)
	slog.Info("Added allowance",
		"amount", amount.String(),
		"allowance", newTotal.String(),
	)

	return transaction, newTotal, nil
}

func (s *ingestionService) countAccepted(channel string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("ingestion.notification.accepted", map[string]string{
		"channel": channel,
	})
}

func (s *ingestionService) countRejected(channel string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("ingestion.notification.rejected", map[string]string{
		"channel": channel,
		"field":   rejectedField(err),
	})
}

func (s *ingestionService) recordAllowanceLevel(total decimal.Decimal) {
	if s.metrics == nil {
		return
	}
	value, _ := total.Float64()
	s.metrics.RecordGauge("allowance.current", value, nil)
}

func rejectedField(err error) string {
	switch err {
	case ErrAmountNotFound:
		return "amount"
	case ErrDescriptionNotFound:
		return "description"
	case ErrDateNotFound:
		return "date"
	default:
		return "unknown"
	}
}
