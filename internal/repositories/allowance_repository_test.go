package repositories

import (
	"testing"

	"github.com/wcarvalho/sms-expense-tracker/internal/database"
	"github.com/wcarvalho/sms-expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AllowanceRepositoryTestSuite struct {
	suite.Suite
	db   *database.DB
	repo AllowanceRepositoryInterface
}

func TestAllowanceRepositorySuite(t *testing.T) {
	suite.Run(t, new(AllowanceRepositoryTestSuite))
}

func (s *AllowanceRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAllowanceRepository(s.db.DB)
}

func (s *AllowanceRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AllowanceRepositoryTestSuite) TestGet_MissingRowReadsAsZero() {
	aggregate, err := s.repo.Get()

	s.NoError(err)
	s.Equal(models.AllowanceAggregateID, aggregate.ID)
	s.True(aggregate.Amount.IsZero())
}

func (s *AllowanceRepositoryTestSuite) TestSet_CreatesRow() {
	err := s.repo.Set(decimal.RequireFromString("123.45"))

	s.NoError(err)

	aggregate, err := s.repo.Get()
	s.NoError(err)
	s.True(aggregate.Amount.Equal(decimal.RequireFromString("123.45")))
}

func (s *AllowanceRepositoryTestSuite) TestSet_OverwritesExistingRow() {
	s.Require().NoError(s.repo.Set(decimal.NewFromInt(10)))

	err := s.repo.Set(decimal.NewFromInt(-25))

	s.NoError(err)

	aggregate, err := s.repo.Get()
	s.NoError(err)
	s.True(aggregate.Amount.Equal(decimal.NewFromInt(-25)))
}

func (s *AllowanceRepositoryTestSuite) TestSet_SingleRowInvariant() {
	s.Require().NoError(s.repo.Set(decimal.NewFromInt(1)))
	s.Require().NoError(s.repo.Set(decimal.NewFromInt(2)))
	s.Require().NoError(s.repo.Set(decimal.NewFromInt(3)))

	var count int64
	s.Require().NoError(s.db.DB.Model(&models.AllowanceAggregate{}).Count(&count).Error)
	s.Equal(int64(1), count)
}
