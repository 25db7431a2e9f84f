package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wcarvalho/sms-expense-tracker/internal/database"
	"github.com/wcarvalho/sms-expense-tracker/internal/dto"
	"github.com/wcarvalho/sms-expense-tracker/internal/models"
	"github.com/wcarvalho/sms-expense-tracker/internal/repositories"
	"github.com/wcarvalho/sms-expense-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type DashboardHandlerTestSuite struct {
	suite.Suite
	echo         *echo.Echo
	db           *database.DB
	transactions repositories.TransactionRepositoryInterface
	allowance    repositories.AllowanceRepositoryInterface
	handler      *DashboardHandler
}

func TestDashboardHandlerSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}

func (s *DashboardHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.db = database.SetupTestDB(s.T())
	s.transactions = repositories.NewTransactionRepository(s.db.DB)
	s.allowance = repositories.NewAllowanceRepository(s.db.DB)

	parser := services.NewNotificationParser()
	ingestion := services.NewIngestionService(parser, s.transactions, s.allowance, nil)
	ledger := services.NewLedgerService(s.transactions, s.allowance, nil)
	s.handler = NewDashboardHandler(ledger, ingestion)
}

func (s *DashboardHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *DashboardHandlerTestSuite) day(d int) time.Time {
	return time.Date(2024, time.April, d, 0, 0, 0, 0, time.UTC)
}

func (s *DashboardHandlerTestSuite) request(method, target, body string) (*httptest.ResponseRecorder, echo.Context) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return rec, s.echo.NewContext(req, rec)
}

// List

func (s *DashboardHandlerTestSuite) TestList_ReturnsTransactionsNewestFirst() {
	database.CreateTestTransaction(s.T(), s.db, "Deposit", 100, models.CategoryAllowance, s.day(1))
	database.CreateTestTransaction(s.T(), s.db, "Coffee", -4.50, models.CategoryAllowance, s.day(2))

	rec, c := s.request(http.MethodGet, "/api/transactions", "")
	s.NoError(s.handler.List(c))

	s.Equal(http.StatusOK, rec.Code)

	var response dto.LedgerResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(2, response.Count)
	s.Equal("95.5", response.Allowance)
	s.Require().Len(response.Transactions, 2)
	s.Equal("Coffee", response.Transactions[0].Description)
	s.Equal("Deposit", response.Transactions[1].Description)
	s.Require().NotNil(response.Transactions[0].Balance)
	s.Equal("95.5", *response.Transactions[0].Balance)
}

func (s *DashboardHandlerTestSuite) TestList_FiltersByCategory() {
	database.CreateTestTransaction(s.T(), s.db, "Deposit", 100, models.CategoryAllowance, s.day(1))
	database.CreateTestTransaction(s.T(), s.db, "Groceries", -60, models.CategoryNeed, s.day(2))

	rec, c := s.request(http.MethodGet, "/api/transactions?category=need", "")
	s.NoError(s.handler.List(c))

	var response dto.LedgerResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(1, response.Count)
	s.Equal("Groceries", response.Transactions[0].Description)
}

func (s *DashboardHandlerTestSuite) TestList_BadSearchPattern() {
	rec, c := s.request(http.MethodGet, "/api/transactions?search=%28", "")
	s.NoError(s.handler.List(c))

	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_005", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestList_EmptyStore() {
	rec, c := s.request(http.MethodGet, "/api/transactions", "")
	s.NoError(s.handler.List(c))

	s.Equal(http.StatusOK, rec.Code)

	var response dto.LedgerResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(0, response.Count)
	s.Equal("0", response.Allowance)
}

// AddAllowance

func (s *DashboardHandlerTestSuite) TestAddAllowance_CreatesCredit() {
	rec, c := s.request(http.MethodPost, "/api/allowance", `{"amount": "25"}`)
	s.NoError(s.handler.AddAllowance(c))

	s.Equal(http.StatusCreated, rec.Code)

	var response dto.MutationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("25", response.Allowance)
	s.Require().NotNil(response.Transaction)
	s.Equal("Allowance", response.Transaction.Description)
	s.Equal("25", response.Transaction.Amount)
}

func (s *DashboardHandlerTestSuite) TestAddAllowance_MissingAmount() {
	rec, c := s.request(http.MethodPost, "/api/allowance", `{}`)
	err := s.handler.AddAllowance(c)

	// Validation errors bubble to the HTTP error handler
	s.Error(err)
	s.Equal(http.StatusOK, rec.Code, "response not committed yet")
}

func (s *DashboardHandlerTestSuite) TestAddAllowance_NonNumericAmount() {
	rec, c := s.request(http.MethodPost, "/api/allowance", `{"amount": "lots"}`)
	s.NoError(s.handler.AddAllowance(c))

	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("ALLOWANCE_001", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestAddAllowance_ZeroAmount() {
	rec, c := s.request(http.MethodPost, "/api/allowance", `{"amount": "0"}`)
	s.NoError(s.handler.AddAllowance(c))

	s.Equal(http.StatusBadRequest, rec.Code)
}

// CycleCategory

func (s *DashboardHandlerTestSuite) TestCycleCategory_Advances() {
	txn := database.CreateTestTransaction(s.T(), s.db, "Coffee", -4, models.CategoryUnorganized, s.day(1))

	rec, c := s.request(http.MethodPost, "/api/transactions/"+txn.ID.String()+"/category", "")
	c.SetParamNames("id")
	c.SetParamValues(txn.ID.String())
	s.NoError(s.handler.CycleCategory(c))

	s.Equal(http.StatusOK, rec.Code)

	var response dto.MutationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().NotNil(response.Transaction)
	s.Equal(models.CategoryAllowance, response.Transaction.Category)
	s.Equal("-4", response.Allowance)
}

func (s *DashboardHandlerTestSuite) TestCycleCategory_InvalidID() {
	rec, c := s.request(http.MethodPost, "/api/transactions/not-a-uuid/category", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	s.NoError(s.handler.CycleCategory(c))

	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("TRANSACTION_004", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestCycleCategory_NotFound() {
	id := uuid.New().String()
	rec, c := s.request(http.MethodPost, "/api/transactions/"+id+"/category", "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	s.NoError(s.handler.CycleCategory(c))

	s.Equal(http.StatusNotFound, rec.Code)
}

// Update

func (s *DashboardHandlerTestSuite) TestUpdate_Note() {
	txn := database.CreateTestTransaction(s.T(), s.db, "Coffee", -4, models.CategoryNeed, s.day(1))

	rec, c := s.request(http.MethodPatch, "/api/transactions/"+txn.ID.String(), `{"note": "with Sam"}`)
	c.SetParamNames("id")
	c.SetParamValues(txn.ID.String())
	s.NoError(s.handler.Update(c))

	s.Equal(http.StatusOK, rec.Code)

	var response dto.MutationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().NotNil(response.Transaction)
	s.Equal("with Sam", response.Transaction.Note)
}

func (s *DashboardHandlerTestSuite) TestUpdate_Date() {
	txn := database.CreateTestTransaction(s.T(), s.db, "Deposit", 50, models.CategoryAllowance, s.day(1))

	rec, c := s.request(http.MethodPatch, "/api/transactions/"+txn.ID.String(), `{"date": "2024-04-20"}`)
	c.SetParamNames("id")
	c.SetParamValues(txn.ID.String())
	s.NoError(s.handler.Update(c))

	s.Equal(http.StatusOK, rec.Code)

	var response dto.MutationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().NotNil(response.Transaction)
	s.True(strings.HasPrefix(response.Transaction.Date, "2024-04-20"))
	s.Equal("50", response.Allowance)
}

func (s *DashboardHandlerTestSuite) TestUpdate_BadDateFormat() {
	txn := database.CreateTestTransaction(s.T(), s.db, "Coffee", -4, models.CategoryNeed, s.day(1))

	_, c := s.request(http.MethodPatch, "/api/transactions/"+txn.ID.String(), `{"date": "20-04-2024"}`)
	c.SetParamNames("id")
	c.SetParamValues(txn.ID.String())

	err := s.handler.Update(c)
	s.Error(err, "iso_date validation rejects the value")
}

func (s *DashboardHandlerTestSuite) TestUpdate_NoFields() {
	txn := database.CreateTestTransaction(s.T(), s.db, "Coffee", -4, models.CategoryNeed, s.day(1))

	rec, c := s.request(http.MethodPatch, "/api/transactions/"+txn.ID.String(), `{}`)
	c.SetParamNames("id")
	c.SetParamValues(txn.ID.String())
	s.NoError(s.handler.Update(c))

	s.Equal(http.StatusBadRequest, rec.Code)
}

// Delete

func (s *DashboardHandlerTestSuite) TestDelete_RemovesTransaction() {
	txn := database.CreateTestTransaction(s.T(), s.db, "Coffee", -4, models.CategoryAllowance, s.day(1))
	database.CreateTestTransaction(s.T(), s.db, "Deposit", 50, models.CategoryAllowance, s.day(2))

	rec, c := s.request(http.MethodDelete, "/api/transactions/"+txn.ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(txn.ID.String())
	s.NoError(s.handler.Delete(c))

	s.Equal(http.StatusOK, rec.Code)

	var response dto.MutationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("50", response.Allowance)

	_, err := s.transactions.GetByID(txn.ID)
	s.ErrorIs(err, repositories.ErrTransactionNotFound)
}

func (s *DashboardHandlerTestSuite) TestDelete_NotFound() {
	id := uuid.New().String()
	rec, c := s.request(http.MethodDelete, "/api/transactions/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	s.NoError(s.handler.Delete(c))

	s.Equal(http.StatusNotFound, rec.Code)
}

// WeeklyChart

func (s *DashboardHandlerTestSuite) TestWeeklyChart_ReturnsSeriesPerAccumulatingCategory() {
	database.CreateTestTransaction(s.T(), s.db, "Deposit", 100, models.CategoryAllowance, s.day(1))

	rec, c := s.request(http.MethodGet, "/api/charts/weekly", "")
	s.NoError(s.handler.WeeklyChart(c))

	s.Equal(http.StatusOK, rec.Code)

	var series []dto.WeeklySeries
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &series))
	s.Len(series, len(models.AccumulatingCategories()))
}
