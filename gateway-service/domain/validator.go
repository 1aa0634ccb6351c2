package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
)

// ValidationError describes a single failed validation check. Attribute is nil
// for cross-field errors such as an expired card.
type ValidationError struct {
	Attribute *string `json:"attribute"`
	Message   string  `json:"message"`
}

func newValidationError(attribute, message string) ValidationError {
	if attribute == "" {
		return ValidationError{Message: message}
	}
	return ValidationError{Attribute: &attribute, Message: message}
}

// Validator produces the ordered validation errors for a payment request
type Validator interface {
	Validate(request *PaymentRequest) ([]ValidationError, error)
}

// RequestValidator composes the card number, currency and clock collaborators
// with the inline expiry, CVV, amount and customer name checks.
type RequestValidator struct {
	cardNumbers CardNumberValidator
	currencies  CurrencyValidator
	clock       Clock
}

// NewRequestValidator creates a new RequestValidator
func NewRequestValidator(
	cardNumbers CardNumberValidator,
	currencies CurrencyValidator,
	clock Clock,
) *RequestValidator {
	return &RequestValidator{
		cardNumbers: cardNumbers,
		currencies:  currencies,
		clock:       clock,
	}
}

// Validate returns every applicable validation error in a fixed order, at most
// one per check group. A nil request is a precondition violation and yields an
// error instead of validation errors.
func (v *RequestValidator) Validate(request *PaymentRequest) ([]ValidationError, error) {
	if request == nil {
		return nil, errors.New("payment request is required")
	}

	var validationErrors []ValidationError

	if !v.cardNumbers.IsValid(request.CreditCardNumber) {
		validationErrors = append(validationErrors,
			newValidationError("CreditCardNumber", "Credit card number is invalid"))
	}

	if !v.currencies.IsSupported(request.Currency) {
		validationErrors = append(validationErrors,
			newValidationError("Currency", "Currency not supported"))
	}

	if err := v.validateExpiry(request); err != nil {
		validationErrors = append(validationErrors, *err)
	}

	if err := validateCVV(request.CVV); err != nil {
		validationErrors = append(validationErrors, *err)
	}

	if !request.Amount.IsPositive() {
		validationErrors = append(validationErrors,
			newValidationError("Amount", "Amount must be greater than zero"))
	}

	if strings.TrimSpace(request.CustomerName) == "" {
		validationErrors = append(validationErrors,
			newValidationError("CustomerName", "Customer name must be provided"))
	}

	return validationErrors, nil
}

// validateExpiry yields at most one of the two expiry errors. A card expiring
// in the current month counts as expired.
func (v *RequestValidator) validateExpiry(request *PaymentRequest) *ValidationError {
	if request.ExpiryMonth < 1 || request.ExpiryMonth > 12 ||
		request.ExpiryYear < 1 || request.ExpiryYear > 9999 {
		err := newValidationError("", "Invalid expiry date")
		return &err
	}

	expiry := time.Date(request.ExpiryYear, time.Month(request.ExpiryMonth), 1, 0, 0, 0, 0, time.UTC)

	now := v.clock.Now().UTC()
	firstOfCurrentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	if !expiry.After(firstOfCurrentMonth) {
		err := newValidationError("", "Card has expired")
		return &err
	}

	return nil
}

// validateCVV treats a blank CVV as absent; a present CVV must be 3 or 4 digits
func validateCVV(cvv string) *ValidationError {
	if strings.TrimSpace(cvv) == "" {
		return nil
	}

	for _, r := range cvv {
		if !unicode.IsDigit(r) {
			err := newValidationError("CVV", "Invalid CVV")
			return &err
		}
	}

	if len(cvv) != 3 && len(cvv) != 4 {
		err := newValidationError("CVV", "Invalid CVV")
		return &err
	}

	return nil
}
