package domain

import (
	"errors"
	"testing"
)

func TestValidateEntryFields(t *testing.T) {
	tests := []struct {
		name     string
		client   string
		product  string
		quantity string
		wantErr  error
	}{
		{"all fields present", "Chorsu bozori", "olma", "20 kg", nil},
		{"missing client", "", "olma", "20 kg", ErrMissingClientName},
		{"whitespace client", "   ", "olma", "20 kg", ErrMissingClientName},
		{"missing product", "Chorsu bozori", "", "20 kg", ErrMissingProduct},
		{"missing quantity", "Chorsu bozori", "olma", "", ErrMissingQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryFields(tt.client, tt.product, tt.quantity)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEntryFields() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePrice(t *testing.T) {
	d, err := ValidatePrice("12500.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "12500.5" {
		t.Errorf("expected 12500.5, got %s", d)
	}

	if _, err := ValidatePrice("abc"); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}

	if _, err := ValidatePrice("-5"); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice for negative, got %v", err)
	}

	// Empty price is allowed, entries can be recorded without one.
	d, err = ValidatePrice("")
	if err != nil {
		t.Fatalf("unexpected error for empty price: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("expected zero for empty price, got %s", d)
	}
}

func TestValidateMarketName(t *testing.T) {
	if err := ValidateMarketName("Oloy bozori"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateMarketName(""); !errors.Is(err, ErrInvalidMarketName) {
		t.Errorf("expected ErrInvalidMarketName, got %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("sotuvchi@example.uz"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateEmail("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Errorf("expected ErrPasswordTooWeak, got %v", err)
	}

	if err := ValidatePassword("longenoughpassword"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Errorf("expected defaults (50, 0), got (%d, %d)", limit, offset)
	}

	limit, _ = ValidatePagination(10000, 0)
	if limit != 500 {
		t.Errorf("expected limit clamped to 500, got %d", limit)
	}
}
