package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrAmountTooSmall     = errors.New("amount below minimum allowed")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrInvalidAmountScale = errors.New("amount has more than two decimal places")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrBalanceOverflow    = errors.New("balance exceeds representable magnitude")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrPasswordTooWeak    = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
)

// maxAmount mirrors the DECIMAL(15,2) column: 13 integer digits.
var maxAmount = decimal.New(1, 13)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// ValidateAmount checks that an amount is positive, representable at two
// decimal places, and within column bounds. Bound checks against the
// configured deposit/withdrawal limits happen in the use case layer.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Truncate(2)) {
		return ErrInvalidAmountScale
	}

	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: maximum representable amount is %s", ErrAmountTooLarge, maxAmount.Sub(decimal.New(1, -2)))
	}

	return nil
}

// ValidateBalance checks that a computed balance still fits the
// DECIMAL(15,2) column. Checked before any write.
func ValidateBalance(balance decimal.Decimal) error {
	if balance.GreaterThanOrEqual(maxAmount) {
		return ErrBalanceOverflow
	}
	return nil
}

// ValidateDescription checks a free-text transaction description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: limit is %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}
	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePhone validates phone number format.
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
