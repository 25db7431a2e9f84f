package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	suite.Suite
}

func TestTransactionSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) validTransaction() *Transaction {
	return &Transaction{
		Description: "Coffee",
		Amount:      decimal.NewFromFloat(-4.50),
		Date:        time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Category:    CategoryNeed,
	}
}

func (s *TransactionTestSuite) TestValidate_ValidTransaction() {
	s.NoError(s.validTransaction().Validate())
}

func (s *TransactionTestSuite) TestValidate_MissingDescription() {
	txn := s.validTransaction()
	txn.Description = ""

	s.ErrorIs(txn.Validate(), ErrMissingDescription)
}

func (s *TransactionTestSuite) TestValidate_ZeroDate() {
	txn := s.validTransaction()
	txn.Date = time.Time{}

	s.ErrorIs(txn.Validate(), ErrZeroDate)
}

func (s *TransactionTestSuite) TestValidate_InvalidCategory() {
	txn := s.validTransaction()
	txn.Category = "misc"

	s.ErrorIs(txn.Validate(), ErrInvalidCategory)
}

func (s *TransactionTestSuite) TestValidate_EmptyCategoryAllowed() {
	// Legacy rows predate the category field
	txn := s.validTransaction()
	txn.Category = ""

	s.NoError(txn.Validate())
}

func (s *TransactionTestSuite) TestEffectiveCategory_ValidValuePassesThrough() {
	txn := s.validTransaction()

	s.Equal(CategoryNeed, txn.EffectiveCategory())
}

func (s *TransactionTestSuite) TestEffectiveCategory_LegacyCountsTrue() {
	counts := true
	txn := s.validTransaction()
	txn.Category = ""
	txn.LegacyCounts = &counts

	s.Equal(CategoryAllowance, txn.EffectiveCategory())
}

func (s *TransactionTestSuite) TestEffectiveCategory_LegacyCountsFalse() {
	counts := false
	txn := s.validTransaction()
	txn.Category = ""
	txn.LegacyCounts = &counts

	s.Equal(CategoryUnorganized, txn.EffectiveCategory())
}

func (s *TransactionTestSuite) TestEffectiveCategory_ExplicitCategoryWinsOverLegacy() {
	counts := true
	txn := s.validTransaction()
	txn.LegacyCounts = &counts

	s.Equal(CategoryNeed, txn.EffectiveCategory())
}

func (s *TransactionTestSuite) TestEffectiveCategory_UnknownFallsBackToUnorganized() {
	txn := s.validTransaction()
	txn.Category = "misc"

	s.Equal(CategoryUnorganized, txn.EffectiveCategory())
}

func (s *TransactionTestSuite) TestNeedsCategoryRepair() {
	txn := s.validTransaction()
	s.False(txn.NeedsCategoryRepair())

	txn.Category = ""
	s.True(txn.NeedsCategoryRepair())

	txn.Category = "misc"
	s.True(txn.NeedsCategoryRepair())
}

func (s *TransactionTestSuite) TestAccumulates() {
	txn := s.validTransaction()
	s.False(txn.Accumulates())

	txn.Category = CategoryAllowance
	s.True(txn.Accumulates())

	counts := true
	txn.Category = ""
	txn.LegacyCounts = &counts
	s.True(txn.Accumulates(), "legacy counts=true reads as allowance")
}

func (s *TransactionTestSuite) TestBalanceEquals() {
	txn := s.validTransaction()
	s.False(txn.BalanceEquals(decimal.Zero), "no balance set yet")

	txn.SetBalance(decimal.RequireFromString("95.5"))
	s.True(txn.BalanceEquals(decimal.RequireFromString("95.50")), "scale does not matter")
	s.False(txn.BalanceEquals(decimal.NewFromInt(100)))
}
