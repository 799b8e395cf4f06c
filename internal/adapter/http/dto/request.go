package dto

import (
	"time"

	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/usecase"
)

// RegisterRequest represents a request to create an account.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
	MarketID *string `json:"market_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
		Role:     domain.Role(r.Role),
		MarketID: r.MarketID,
	}
}

// LoginRequest represents a login request. Role is the login toggle
// the clients show; it is only used to recreate a missing profile.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.LoginInput {
	return usecase.LoginInput{
		Email:    r.Email,
		Password: r.Password,
		RoleHint: domain.Role(r.Role),
	}
}

// CreateEntryRequest represents a request to record a sale. Prices
// travel as strings, matching how the mobile clients send them.
type CreateEntryRequest struct {
	MarketID *string    `json:"market_id,omitempty"`
	Client   string     `json:"client"`
	Product  string     `json:"mahsulot"`
	Quantity string     `json:"miqdor"`
	Price    string     `json:"narx"`
	Phone    string     `json:"izoh,omitempty"`
	SaleDate *time.Time `json:"sana,omitempty"`
}

// ToUseCaseInput converts to use case input. Price parsing errors are
// returned so the handler can reject before touching the use case.
func (r *CreateEntryRequest) ToUseCaseInput(sellerID string) (usecase.AddEntryInput, error) {
	price, err := domain.ValidatePrice(r.Price)
	if err != nil {
		return usecase.AddEntryInput{}, err
	}

	return usecase.AddEntryInput{
		SellerID:   sellerID,
		MarketID:   r.MarketID,
		ClientName: r.Client,
		Product:    r.Product,
		Quantity:   r.Quantity,
		Price:      price,
		Phone:      r.Phone,
		SaleDate:   r.SaleDate,
	}, nil
}

// UpdateEntryRequest represents a field-level patch on an entry.
// A status of "paid" routes through the confirmation workflow.
type UpdateEntryRequest struct {
	Client   *string `json:"client,omitempty"`
	Product  *string `json:"mahsulot,omitempty"`
	Quantity *string `json:"miqdor,omitempty"`
	Price    *string `json:"narx,omitempty"`
	Phone    *string `json:"izoh,omitempty"`
	Status   *string `json:"holat,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateEntryRequest) ToUseCaseInput(entryID, sellerID string) (usecase.UpdateEntryInput, error) {
	input := usecase.UpdateEntryInput{
		EntryID:    entryID,
		SellerID:   sellerID,
		ClientName: r.Client,
		Product:    r.Product,
		Quantity:   r.Quantity,
		Phone:      r.Phone,
	}

	if r.Price != nil {
		price, err := domain.ValidatePrice(*r.Price)
		if err != nil {
			return usecase.UpdateEntryInput{}, err
		}
		input.Price = &price
	}

	if r.Status != nil {
		status := domain.PaymentStatus(*r.Status)
		if !status.IsValid() {
			return usecase.UpdateEntryInput{}, domain.ErrInvalidStatus
		}
		input.Status = &status
	}

	return input, nil
}

// CreateMarketRequest represents a request to register a market.
type CreateMarketRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMarketRequest) ToUseCaseInput() usecase.AddMarketInput {
	return usecase.AddMarketInput{
		Name:      r.Name,
		Phone:     r.Phone,
		Address:   r.Address,
		AvatarURL: r.AvatarURL,
	}
}

// CreateProductRequest represents a request to register a product.
type CreateProductRequest struct {
	Name string `json:"name"`
}
