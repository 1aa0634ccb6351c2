package domain

const (
	minCardNumberLength = 12
	maxCardNumberLength = 19
)

// CardNumberValidator validates the structure and checksum of a card number
type CardNumberValidator interface {
	IsValid(number string) bool
}

// LuhnCardNumberValidator validates card numbers with a mod-10 checksum
type LuhnCardNumberValidator struct{}

// NewCardNumberValidator creates a new LuhnCardNumberValidator
func NewCardNumberValidator() *LuhnCardNumberValidator {
	return &LuhnCardNumberValidator{}
}

// IsValid reports whether number is a structurally valid card number with a
// correct checksum. The rightmost digit is the check digit; a digit at string
// index i is doubled when the parity of i matches the parity of the total
// length, and the check digit must equal (10 - sum mod 10) mod 10.
func (v *LuhnCardNumberValidator) IsValid(number string) bool {
	if len(number) < minCardNumberLength || len(number) > maxCardNumberLength {
		return false
	}

	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}

	checkDigit := int(number[len(number)-1] - '0')
	lengthEven := len(number)%2 == 0

	sum := 0
	for i := len(number) - 2; i >= 0; i-- {
		digit := int(number[i] - '0')

		if lengthEven == (i%2 == 0) {
			digit *= 2
			if digit >= 10 {
				digit -= 9
			}
		}

		sum += digit
	}

	expected := (10 - (sum % 10)) % 10

	return expected == checkDigit
}
