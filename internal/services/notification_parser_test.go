package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type NotificationParserTestSuite struct {
	suite.Suite
	parser NotificationParserInterface
}

func TestNotificationParserSuite(t *testing.T) {
	suite.Run(t, new(NotificationParserTestSuite))
}

func (s *NotificationParserTestSuite) SetupTest() {
	s.parser = NewNotificationParser()
}

// SMS parsing

func (s *NotificationParserTestSuite) TestParseSMS_FullAlert() {
	body := "Chase alert: You made a $42.50 transaction with TRADER JOE'S on March 5, 2024"

	parsed, err := s.parser.ParseSMS(body)

	s.NoError(err)
	s.True(parsed.Amount.Equal(decimal.RequireFromString("42.50")), "amount should be 42.50, got %s", parsed.Amount)
	s.Equal("TRADER JOE'S", parsed.Description)
	s.Equal(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), parsed.Date)
	s.True(parsed.HasDate)
}

func (s *NotificationParserTestSuite) TestParseSMS_WholeDollarAmount() {
	body := "You made a $7 transaction with PARKING METER on July 1, 2024"

	parsed, err := s.parser.ParseSMS(body)

	s.NoError(err)
	s.True(parsed.Amount.Equal(decimal.NewFromInt(7)))
}

func (s *NotificationParserTestSuite) TestParseSMS_AbbreviatedMonth() {
	body := "You made a $12.34 transaction with CAFE on Jan 9, 2024"

	parsed, err := s.parser.ParseSMS(body)

	s.NoError(err)
	s.Equal(time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC), parsed.Date)
}

func (s *NotificationParserTestSuite) TestParseSMS_FirstAmountWins() {
	body := "You made a $10.00 transaction with STORE on May 2, 2024, balance $900.12"

	parsed, err := s.parser.ParseSMS(body)

	s.NoError(err)
	s.True(parsed.Amount.Equal(decimal.RequireFromString("10.00")))
}

func (s *NotificationParserTestSuite) TestParseSMS_MissingAmount() {
	_, err := s.parser.ParseSMS("You made a transaction with STORE on May 2, 2024")

	s.ErrorIs(err, ErrAmountNotFound)
}

func (s *NotificationParserTestSuite) TestParseSMS_MissingDate() {
	_, err := s.parser.ParseSMS("You made a $5.00 transaction with STORE")

	s.ErrorIs(err, ErrDateNotFound)
}

func (s *NotificationParserTestSuite) TestParseSMS_MissingDescription() {
	// Amount and date present but no "with ... on" segment
	_, err := s.parser.ParseSMS("You made a $5.00 transaction at STORE; posted on May 2, 2024")

	s.ErrorIs(err, ErrDescriptionNotFound)
}

func (s *NotificationParserTestSuite) TestParseSMS_AmountCheckedBeforeDate() {
	// Both missing; amount error takes precedence
	_, err := s.parser.ParseSMS("You made a transaction with STORE")

	s.ErrorIs(err, ErrAmountNotFound)
}

func (s *NotificationParserTestSuite) TestParseSMS_EmptyBody() {
	_, err := s.parser.ParseSMS("")

	s.ErrorIs(err, ErrAmountNotFound)
}

// Email subject parsing

func (s *NotificationParserTestSuite) TestParseEmailSubject_FullSubject() {
	subject := "You made a $23.45 transaction with AMAZON.COM"

	parsed, err := s.parser.ParseEmailSubject(subject)

	s.NoError(err)
	s.True(parsed.Amount.Equal(decimal.RequireFromString("23.45")))
	s.Equal("AMAZON.COM", parsed.Description)
	s.False(parsed.HasDate)
}

func (s *NotificationParserTestSuite) TestParseEmailSubject_DescriptionRunsToEnd() {
	// The email pattern is greedy; everything after "with" is the merchant
	subject := "Alert: $9.99 transaction with SPOTIFY USA on card ending 1234"

	parsed, err := s.parser.ParseEmailSubject(subject)

	s.NoError(err)
	s.Equal("SPOTIFY USA on card ending 1234", parsed.Description)
}

func (s *NotificationParserTestSuite) TestParseEmailSubject_MissingAmount() {
	_, err := s.parser.ParseEmailSubject("Your statement is ready")

	s.ErrorIs(err, ErrAmountNotFound)
}

func (s *NotificationParserTestSuite) TestParseEmailSubject_MissingDescription() {
	_, err := s.parser.ParseEmailSubject("You made a $5.00 transaction")

	s.ErrorIs(err, ErrDescriptionNotFound)
}
