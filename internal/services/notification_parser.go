package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotFound      = errors.New("could not locate transaction amount")
	ErrDescriptionNotFound = errors.New("could not locate transaction description")
	ErrDateNotFound        = errors.New("could not locate transaction date")
)

// Patterns match the alert templates the bank sends, e.g.
// "You spent $12.50 with Coffee Shop on Jan 5, 2024".
var (
	amountPattern           = regexp.MustCompile(`\$(\d+\.?\d*)`)
	smsDescriptionPattern   = regexp.MustCompile(`with (.*?) on`)
	smsDatePattern          = regexp.MustCompile(`on ([A-Za-z]+ \d{1,2}, \d{4})`)
	emailDescriptionPattern = regexp.MustCompile(`with (.*)$`)
)

// smsDateLayouts cover the full and abbreviated month names the provider
// uses interchangeably.
var smsDateLayouts = []string{"January 2, 2006", "Jan 2, 2006"}

// ParsedNotification is the structured result of extracting transaction
// fields from a raw notification. Amount is positive as written in the
// message; ingestion applies the expense sign convention.
type ParsedNotification struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	HasDate     bool
}

type notificationParser struct{}

// NewNotificationParser creates a new NotificationParserInterface instance
func NewNotificationParser() NotificationParserInterface {
	return &notificationParser{}
}

// ParseSMS extracts amount, description and date from an SMS alert body.
// Fields are checked in the order amount, date, description so the caller
// reports the first missing field, matching the inbound webhook contract.
func (p *notificationParser) ParseSMS(body string) (*ParsedNotification, error) {
	amount, err := p.extractAmount(body)
	if err != nil {
		return nil, err
	}

	dateMatch := smsDatePattern.FindStringSubmatch(body)
	if dateMatch == nil {
		return nil, ErrDateNotFound
	}

	date, err := parseAlertDate(dateMatch[1])
	if err != nil {
		return nil, ErrDateNotFound
	}

	descMatch := smsDescriptionPattern.FindStringSubmatch(body)
	if descMatch == nil {
		return nil, ErrDescriptionNotFound
	}

	return &ParsedNotification{
		Amount:      amount,
		Description: strings.TrimSpace(descMatch[1]),
		Date:        date,
		HasDate:     true,
	}, nil
}

// ParseEmailSubject extracts amount and description from a forwarded email
// subject. Email alerts end with the merchant and carry no date.
func (p *notificationParser) ParseEmailSubject(subject string) (*ParsedNotification, error) {
	amount, err := p.extractAmount(subject)
	if err != nil {
		return nil, err
	}

	descMatch := emailDescriptionPattern.FindStringSubmatch(subject)
	if descMatch == nil {
		return nil, ErrDescriptionNotFound
	}

	return &ParsedNotification{
		Amount:      amount,
		Description: strings.TrimSpace(descMatch[1]),
	}, nil
}

func (p *notificationParser) extractAmount(message string) (decimal.Decimal, error) {
	match := amountPattern.FindStringSubmatch(message)
	if match == nil {
		return decimal.Zero, ErrAmountNotFound
	}

	amount, err := decimal.NewFromString(match[1])
	if err != nil {
		return decimal.Zero, ErrAmountNotFound
	}

	return amount, nil
}

func parseAlertDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range smsDateLayouts {
		date, err := time.Parse(layout, value)
		if err == nil {
			return date, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
