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
	ErrMissingClientName = errors.New("client market name is required")
	ErrMissingProduct    = errors.New("product name is required")
	ErrMissingQuantity   = errors.New("quantity is required")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidMarketName = errors.New("invalid market name")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrPasswordTooWeak   = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxNameLength     = 255
	MaxQuantityLength = 64
	MaxPrice          = "1000000000000"
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEntryFields checks the required fields of a new entry.
func ValidateEntryFields(clientName, product, quantity string) error {
	if strings.TrimSpace(clientName) == "" {
		return ErrMissingClientName
	}
	if strings.TrimSpace(product) == "" {
		return ErrMissingProduct
	}
	if strings.TrimSpace(quantity) == "" {
		return ErrMissingQuantity
	}
	if len(quantity) > MaxQuantityLength {
		return fmt.Errorf("%w: quantity exceeds %d characters", ErrMissingQuantity, MaxQuantityLength)
	}
	return nil
}

// ValidatePrice parses a decimal-as-string price as the mobile and web
// clients send it.
func ValidatePrice(price string) (decimal.Decimal, error) {
	price = strings.TrimSpace(price)
	if price == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPrice, price)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price cannot be negative", ErrInvalidPrice)
	}

	maxPrice, _ := decimal.NewFromString(MaxPrice)
	if d.GreaterThan(maxPrice) {
		return decimal.Zero, fmt.Errorf("%w: price exceeds maximum %s", ErrInvalidPrice, MaxPrice)
	}

	return d, nil
}

// ValidateMarketName validates a registry name.
func ValidateMarketName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidMarketName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidMarketName, MaxNameLength)
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

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 500
	const DefaultPageSize = 50

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
