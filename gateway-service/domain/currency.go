package domain

import "strings"

// CurrencyValidator checks whether a currency can be processed
type CurrencyValidator interface {
	IsSupported(code string) bool
}

// SupportedCurrencyValidator checks currency codes against a fixed set
type SupportedCurrencyValidator struct {
	supported []string
}

// NewCurrencyValidator creates a validator for the currencies the gateway accepts
func NewCurrencyValidator() *SupportedCurrencyValidator {
	return &SupportedCurrencyValidator{
		supported: []string{"GBP", "HKD"},
	}
}

// IsSupported reports whether code names a supported currency, ignoring case
func (v *SupportedCurrencyValidator) IsSupported(code string) bool {
	for _, currency := range v.supported {
		if strings.EqualFold(currency, code) {
			return true
		}
	}
	return false
}
