package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
	validator *Validator
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) SetupTest() {
	s.validator = NewValidator()
}

type categoryPayload struct {
	Category string `json:"category" validate:"transaction_category"`
}

type datePayload struct {
	Date string `json:"date" validate:"iso_date"`
}

func (s *ValidatorTestSuite) TestTransactionCategory_Valid() {
	for _, category := range []string{"unorganized", "allowance", "need", "reimburse", "reimbursed", "not_reimbursed"} {
		s.NoError(s.validator.GetValidate().Struct(categoryPayload{Category: category}), category)
	}
}

func (s *ValidatorTestSuite) TestTransactionCategory_Invalid() {
	for _, category := range []string{"", "misc", "Allowance"} {
		s.Error(s.validator.GetValidate().Struct(categoryPayload{Category: category}), "%q should fail", category)
	}
}

func (s *ValidatorTestSuite) TestISODate_Valid() {
	s.NoError(s.validator.GetValidate().Struct(datePayload{Date: "2024-03-05"}))
}

func (s *ValidatorTestSuite) TestISODate_Invalid() {
	for _, date := range []string{"05-03-2024", "2024/03/05", "March 5, 2024", "2024-3-5", ""} {
		s.Error(s.validator.GetValidate().Struct(datePayload{Date: date}), "%q should fail", date)
	}
}

func (s *ValidatorTestSuite) TestFieldNamesComeFromJSONTags() {
	err := s.validator.GetValidate().Struct(datePayload{Date: "bad"})
	s.Require().Error(err)

	validationErrs, ok := err.(validator.ValidationErrors)
	s.Require().True(ok)
	s.Require().Len(validationErrs, 1)
	s.Equal("date", validationErrs[0].Field())
}
