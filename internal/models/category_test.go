package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CategoryTestSuite struct {
	suite.Suite
}

func TestCategorySuite(t *testing.T) {
	suite.Run(t, new(CategoryTestSuite))
}

func (s *CategoryTestSuite) TestNextCategory_CycleOrder() {
	steps := []struct {
		from string
		to   string
	}{
		{CategoryUnorganized, CategoryAllowance},
		{CategoryAllowance, CategoryNeed},
		{CategoryNeed, CategoryReimburse},
		{CategoryReimburse, CategoryReimbursed},
		{CategoryReimbursed, CategoryNotReimbursed},
		{CategoryNotReimbursed, CategoryUnorganized},
	}

	for _, step := range steps {
		s.Equal(step.to, NextCategory(step.from), "from %s", step.from)
	}
}

func (s *CategoryTestSuite) TestNextCategory_FullCycleReturnsToStart() {
	category := CategoryUnorganized
	for i := 0; i < len(AllCategories()); i++ {
		category = NextCategory(category)
	}
	s.Equal(CategoryUnorganized, category)
}

func (s *CategoryTestSuite) TestNextCategory_UnknownTreatedAsUnorganized() {
	s.Equal(CategoryAllowance, NextCategory("misc"))
	s.Equal(CategoryAllowance, NextCategory(""))
}

func (s *CategoryTestSuite) TestIsValidCategory() {
	for _, category := range AllCategories() {
		s.True(IsValidCategory(category), "%s should be valid", category)
	}

	s.False(IsValidCategory("misc"))
	s.False(IsValidCategory(""))
	s.False(IsValidCategory("Allowance"), "categories are case sensitive")
}

func (s *CategoryTestSuite) TestIsAccumulatingCategory() {
	s.True(IsAccumulatingCategory(CategoryAllowance))
	s.True(IsAccumulatingCategory(CategoryReimburse))

	s.False(IsAccumulatingCategory(CategoryUnorganized))
	s.False(IsAccumulatingCategory(CategoryNeed))
	s.False(IsAccumulatingCategory(CategoryReimbursed))
	s.False(IsAccumulatingCategory(CategoryNotReimbursed))
}

func (s *CategoryTestSuite) TestAccumulatingCategoriesAreValid() {
	for _, category := range AccumulatingCategories() {
		s.True(IsValidCategory(category))
	}
}
