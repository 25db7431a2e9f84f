package services

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"github.com/wcarvalho/sms-expense-tracker/internal/dto"
	"github.com/wcarvalho/sms-expense-tracker/internal/models"
	"github.com/wcarvalho/sms-expense-tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrBadSearchPattern is returned when the search filter is not a valid
// regular expression.
var ErrBadSearchPattern = errors.New("invalid search pattern")

type ledgerService struct {
	transactions repositories.TransactionRepositoryInterface
	allowance    repositories.AllowanceRepositoryInterface
	metrics      MetricsRecorderInterface
}

// NewLedgerService creates a new LedgerServiceInterface instance
func NewLedgerService(
	transactions repositories.TransactionRepositoryInterface,
	allowance repositories.AllowanceRepositoryInterface,
	metrics MetricsRecorderInterface,
) LedgerServiceInterface {
	return &ledgerService{
		transactions: transactions,
		allowance:    allowance,
		metrics:      metrics,
	}
}

// Load fetches every transaction, repairs stale category values, recomputes
// running balances for the accumulating categories, rebuilds the allowance
// aggregate from the repaired set, and returns the transactions sorted
// newest first with the requested filters applied. Repairs and balance
// updates are persisted even when filters hide the affected rows.
func (s *ledgerService) Load(opts LoadOptions) (*LoadResult, error) {
	start := time.Now()

	transactions, err := s.transactions.GetAllByDateAsc()
	if err != nil {
		return nil, err
	}

	if err := s.repairCategories(transactions); err != nil {
		return nil, err
	}

	allowanceTotal, err := s.recomputeBalances(transactions)
	if err != nil {
		return nil, err
	}

	if err := s.allowance.Set(allowanceTotal); err != nil {
		return nil, err
	}
	s.recordAllowanceLevel(allowanceTotal)

	// Stable keeps store order for same-day rows.
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	filtered, err := s.applyFilters(transactions, opts)
	if err != nil {
		return nil, err
	}

	s.recordLoadDuration(time.Since(start))

	return &LoadResult{
		Transactions: filtered,
		Allowance:    allowanceTotal,
	}, nil
}

// CycleCategory advances a transaction to the next category in the cycle
// and returns the rebuilt allowance total.
func (s *ledgerService) CycleCategory(id uuid.UUID) (*models.Transaction, decimal.Decimal, error) {
	transaction, err := s.transactions.GetByID(id)
	if err != nil {
		return nil, decimal.Zero, err
	}

	oldCategory := transaction.EffectiveCategory()
	newCategory := models.NextCategory(oldCategory)

	fields := map[string]interface{}{"category": newCategory}
	if transaction.LegacyCounts != nil {
		// Moving off the legacy schema once the category is explicit.
		fields["counts"] = nil
	}
	if err := s.transactions.UpdateFields(id, fields); err != nil {
		return nil, decimal.Zero, err
	}
	transaction.Category = newCategory
	transaction.LegacyCounts = nil

	s.countMutation("cycle_category")
	slog.Info("Cycled transaction category",
		"transaction_id", id,
		"from", oldCategory,
		"to", newCategory,
	)

	total, err := s.allowanceAfterMutation(
		models.IsAccumulatingCategory(oldCategory) || models.IsAccumulatingCategory(newCategory),
	)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return transaction, total, nil
}

// UpdateNote replaces a transaction's note. Notes never shift balances, so
// the stored aggregate is returned as is.
func (s *ledgerService) UpdateNote(id uuid.UUID, note string) (*models.Transaction, decimal.Decimal, error) {
	if err := s.transactions.UpdateFields(id, map[string]interface{}{"note": note}); err != nil {
		return nil, decimal.Zero, err
	}
	s.countMutation("update_note")

	transaction, err := s.transactions.GetByID(id)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total, err := s.allowanceAfterMutation(false)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return transaction, total, nil
}

// UpdateDate moves a transaction to a new date and returns the rebuilt
// allowance total. Date changes reorder the running balances for
// accumulating categories, so the aggregate is recomputed.
func (s *ledgerService) UpdateDate(id uuid.UUID, date time.Time) (*models.Transaction, decimal.Decimal, error) {
	transaction, err := s.transactions.GetByID(id)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if err := s.transactions.UpdateFields(id, map[string]interface{}{"date": date}); err != nil {
		return nil, decimal.Zero, err
	}
	transaction.Date = date

	s.countMutation("update_date")

	total, err := s.allowanceAfterMutation(transaction.Accumulates())
	if err != nil {
		return nil, decimal.Zero, err
	}
	return transaction, total, nil
}

// Delete removes a transaction and returns the rebuilt allowance total.
func (s *ledgerService) Delete(id uuid.UUID) (decimal.Decimal, error) {
	transaction, err := s.transactions.GetByID(id)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.transactions.Delete(id); err != nil {
		return decimal.Zero, err
	}

	s.countMutation("delete")
	slog.Info("Deleted transaction",
		"transaction_id", id,
		"description", transaction.Description,
	)

	return s.allowanceAfterMutation(transaction.Accumulates())
}

// WeeklySeries buckets each accumulating category by week and returns the
// running total at the end of each week, oldest first.
func (s *ledgerService) WeeklySeries() ([]dto.WeeklySeries, error) {
	series := make([]dto.WeeklySeries, 0, len(models.AccumulatingCategories()))

	for _, category := range models.AccumulatingCategories() {
		transactions, err := s.transactions.GetByCategoryByDateAsc(category)
		if err != nil {
			return nil, err
		}

		points := make([]dto.WeeklyPoint, 0)
		running := decimal.Zero
		var currentWeek time.Time

		for i := range transactions {
			week := weekStart(transactions[i].Date)
			if len(points) == 0 || !week.Equal(currentWeek) {
				currentWeek = week
				points = append(points, dto.WeeklyPoint{
					WeekStart: week.Format("2006-01-02"),
				})
			}
			running = running.Add(transactions[i].Amount)
			points[len(points)-1].Total = running.String()
		}

		series = append(series, dto.WeeklySeries{
			Category: category,
			Points:   points,
		})
	}

	return series, nil
}

// repairCategories persists the effective category for rows whose stored
// value is stale, either legacy counts booleans or values removed from the
// cycle.
func (s *ledgerService) repairCategories(transactions []models.Transaction) error {
	for i := range transactions {
		t := &transactions[i]
		if !t.NeedsCategoryRepair() {
			continue
		}

		repaired := t.EffectiveCategory()
		fields := map[string]interface{}{
			"category": repaired,
			"counts":   nil,
		}
		if err := s.transactions.UpdateFields(t.ID, fields); err != nil {
			return fmt.Errorf("failed to repair category for transaction %s: %w", t.ID, err)
		}
		t.Category = repaired
		t.LegacyCounts = nil
	}
	return nil
}

// recomputeBalances walks the date-ascending slice once per accumulating
// category, stamping running totals and persisting any that drifted.
// Returns the allowance category's final total.
func (s *ledgerService) recomputeBalances(transactions []models.Transaction) (decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal, len(models.AccumulatingCategories()))
	for _, category := range models.AccumulatingCategories() {
		totals[category] = decimal.Zero
	}

	for i := range transactions {
		t := &transactions[i]
		category := t.EffectiveCategory()
		if !models.IsAccumulatingCategory(category) {
			if t.Balance != nil {
				if err := s.transactions.UpdateFields(t.ID, map[string]interface{}{"balance": nil}); err != nil {
					return decimal.Zero, fmt.Errorf("failed to clear balance for transaction %s: %w", t.ID, err)
				}
				t.Balance = nil
			}
			continue
		}

		running := totals[category].Add(t.Amount)
		totals[category] = running

		if !t.BalanceEquals(running) {
			if err := s.transactions.UpdateFields(t.ID, map[string]interface{}{"balance": running}); err != nil {
				return decimal.Zero, fmt.Errorf("failed to update balance for transaction %s: %w", t.ID, err)
			}
			t.SetBalance(running)
		}
	}

	return totals[models.CategoryAllowance], nil
}

func (s *ledgerService) applyFilters(transactions []models.Transaction, opts LoadOptions) ([]models.Transaction, error) {
	if opts.ShowAll {
		return transactions, nil
	}

	var pattern *regexp.Regexp
	if opts.Search != "" {
		compiled, err := regexp.Compile("(?i)" + opts.Search)
		if err != nil {
			return nil, ErrBadSearchPattern
		}
		pattern = compiled
	}

	var categories map[string]bool
	if len(opts.Categories) > 0 {
		categories = make(map[string]bool, len(opts.Categories))
		for _, category := range opts.Categories {
			categories[category] = true
		}
	}

	if pattern == nil && categories == nil {
		return transactions, nil
	}

	filtered := make([]models.Transaction, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		if categories != nil && !categories[t.EffectiveCategory()] {
			continue
		}
		if pattern != nil && !pattern.MatchString(t.Description) && !pattern.MatchString(t.Note) {
			continue
		}
		filtered = append(filtered, *t)
	}
	return filtered, nil
}

// allowanceAfterMutation rebuilds the aggregate when the mutation touched
// an accumulating category, otherwise returns the stored total untouched.
func (s *ledgerService) allowanceAfterMutation(accumulates bool) (decimal.Decimal, error) {
	if accumulates {
		return s.rebuildAllowance()
	}
	aggregate, err := s.allowance.Get()
	if err != nil {
		return decimal.Zero, err
	}
	return aggregate.Amount, nil
}

// rebuildAllowance recomputes the aggregate from the transaction set.
func (s *ledgerService) rebuildAllowance() (decimal.Decimal, error) {
	total, err := s.transactions.SumAmountByCategory(models.CategoryAllowance)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.allowance.Set(total); err != nil {
		return decimal.Zero, err
	}
	s.recordAllowanceLevel(total)
	return total, nil
}

// weekStart normalizes a timestamp to midnight UTC of its Monday.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func (s *ledgerService) countMutation(kind string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("ledger.mutation", map[string]string{"kind": kind})
}

func (s *ledgerService) recordLoadDuration(d time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordProcessingTime("ledger.load", d)
}

func (s *ledgerService) recordAllowanceLevel(total decimal.Decimal) {
	if s.metrics == nil {
		return
	}
	value, _ := total.Float64()
	s.metrics.RecordGauge("allowance.current", value, nil)
}
