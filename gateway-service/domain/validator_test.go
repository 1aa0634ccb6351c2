package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newTestValidator(now time.Time) *RequestValidator {
	return NewRequestValidator(NewCardNumberValidator(), NewCurrencyValidator(), fixedClock{now: now})
}

func validRequest() *PaymentRequest {
	return &PaymentRequest{
		CreditCardNumber: "111111111113",
		CVV:              "123",
		ExpiryMonth:      7,
		ExpiryYear:       2020,
		Amount:           decimal.NewFromFloat(10.50),
		Currency:         "GBP",
		CustomerName:     "John Smith",
		Reference:        "order-001",
	}
}

func TestRequestValidator_Validate(t *testing.T) {
	now := time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mutate   func(*PaymentRequest)
		expected []ValidationError
	}{
		{
			name:     "valid request",
			mutate:   func(r *PaymentRequest) {},
			expected: nil,
		},
		{
			name: "invalid card number",
			mutate: func(r *PaymentRequest) {
				r.CreditCardNumber = "123"
			},
			expected: []ValidationError{
				newValidationError("CreditCardNumber", "Credit card number is invalid"),
			},
		},
		{
			name: "unsupported currency",
			mutate: func(r *PaymentRequest) {
				r.Currency = "EUR"
			},
			expected: []ValidationError{
				newValidationError("Currency", "Currency not supported"),
			},
		},
		{
			name: "currency is case insensitive",
			mutate: func(r *PaymentRequest) {
				r.Currency = "hkd"
			},
			expected: nil,
		},
		{
			name: "expiry in current month",
			mutate: func(r *PaymentRequest) {
				r.ExpiryMonth = 6
				r.ExpiryYear = 2020
			},
			expected: []ValidationError{
				newValidationError("", "Card has expired"),
			},
		},
		{
			name: "expiry in past month",
			mutate: func(r *PaymentRequest) {
				r.ExpiryMonth = 5
				r.ExpiryYear = 2020
			},
			expected: []ValidationError{
				newValidationError("", "Card has expired"),
			},
		},
		{
			name: "expiry next month is not expired",
			mutate: func(r *PaymentRequest) {
				r.ExpiryMonth = 7
				r.ExpiryYear = 2020
			},
			expected: nil,
		},
		{
			name: "expiry month out of range",
			mutate: func(r *PaymentRequest) {
				r.ExpiryMonth = 13
			},
			expected: []ValidationError{
				newValidationError("", "Invalid expiry date"),
			},
		},
		{
			name: "expiry month zero",
			mutate: func(r *PaymentRequest) {
				r.ExpiryMonth = 0
			},
			expected: []ValidationError{
				newValidationError("", "Invalid expiry date"),
			},
		},
		{
			name: "negative expiry year",
			mutate: func(r *PaymentRequest) {
				r.ExpiryYear = -1
			},
			expected: []ValidationError{
				newValidationError("", "Invalid expiry date"),
			},
		},
		{
			name: "blank CVV is allowed",
			mutate: func(r *PaymentRequest) {
				r.CVV = "   "
			},
			expected: nil,
		},
		{
			name: "empty CVV is allowed",
			mutate: func(r *PaymentRequest) {
				r.CVV = ""
			},
			expected: nil,
		},
		{
			name: "four digit CVV is allowed",
			mutate: func(r *PaymentRequest) {
				r.CVV = "1234"
			},
			expected: nil,
		},
		{
			name: "CVV too short",
			mutate: func(r *PaymentRequest) {
				r.CVV = "12"
			},
			expected: []ValidationError{
				newValidationError("CVV", "Invalid CVV"),
			},
		},
		{
			name: "CVV too long",
			mutate: func(r *PaymentRequest) {
				r.CVV = "123456"
			},
			expected: []ValidationError{
				newValidationError("CVV", "Invalid CVV"),
			},
		},
		{
			name: "CVV with letters",
			mutate: func(r *PaymentRequest) {
				r.CVV = "abc"
			},
			expected: []ValidationError{
				newValidationError("CVV", "Invalid CVV"),
			},
		},
		{
			name: "zero amount",
			mutate: func(r *PaymentRequest) {
				r.Amount = decimal.Zero
			},
			expected: []ValidationError{
				newValidationError("Amount", "Amount must be greater than zero"),
			},
		},
		{
			name: "negative amount",
			mutate: func(r *PaymentRequest) {
				r.Amount = decimal.NewFromInt(-5)
			},
			expected: []ValidationError{
				newValidationError("Amount", "Amount must be greater than zero"),
			},
		},
		{
			name: "blank customer name",
			mutate: func(r *PaymentRequest) {
				r.CustomerName = "  "
			},
			expected: []ValidationError{
				newValidationError("CustomerName", "Customer name must be provided"),
			},
		},
		{
			name: "errors accumulate across groups in check order",
			mutate: func(r *PaymentRequest) {
				r.CreditCardNumber = "not-a-card"
				r.Currency = "USD"
				r.ExpiryMonth = 1
				r.ExpiryYear = 2019
				r.CVV = "12"
				r.Amount = decimal.Zero
				r.CustomerName = ""
			},
			expected: []ValidationError{
				newValidationError("CreditCardNumber", "Credit card number is invalid"),
				newValidationError("Currency", "Currency not supported"),
				newValidationError("", "Card has expired"),
				newValidationError("CVV", "Invalid CVV"),
				newValidationError("Amount", "Amount must be greater than zero"),
				newValidationError("CustomerName", "Customer name must be provided"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := newTestValidator(now)

			request := validRequest()
			tt.mutate(request)

			validationErrors, err := validator.Validate(request)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, validationErrors)
		})
	}
}

func TestRequestValidator_Validate_NilRequest(t *testing.T) {
	validator := newTestValidator(time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC))

	validationErrors, err := validator.Validate(nil)

	assert.Error(t, err)
	assert.Nil(t, validationErrors)
}

func TestRequestValidator_Validate_Deterministic(t *testing.T) {
	validator := newTestValidator(time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC))

	request := validRequest()
	request.CreditCardNumber = "0000"
	request.Currency = "JPY"

	first, err := validator.Validate(request)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := validator.Validate(request)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
