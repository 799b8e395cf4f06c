package dto

import (
	"time"

	"github.com/bozor/daftar/internal/domain"
)

// EntryResponse represents a sale entry in API responses. Prices are
// strings on the wire.
type EntryResponse struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"user_id"`
	MarketID  *string   `json:"market_id,omitempty"`
	Client    string    `json:"client"`
	Product   string    `json:"mahsulot"`
	Quantity  string    `json:"miqdor"`
	Price     string    `json:"narx"`
	Total     string    `json:"summa"`
	Status    string    `json:"holat"`
	Phone     string    `json:"izoh,omitempty"`
	SaleDate  time.Time `json:"sana"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:        e.ID,
		SellerID:  e.SellerID,
		MarketID:  e.MarketID,
		Client:    e.ClientName,
		Product:   e.Product,
		Quantity:  e.Quantity,
		Price:     e.Price.String(),
		Total:     e.Total.String(),
		Status:    string(e.Status),
		Phone:     e.Phone,
		SaleDate:  e.SaleDate,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ConfirmationResponse represents a payment confirmation in API responses.
type ConfirmationResponse struct {
	ID              string     `json:"id"`
	EntryID         string     `json:"entry_id"`
	RequestedBy     string     `json:"requested_by"`
	MarketID        string     `json:"market_id"`
	RequestedStatus string     `json:"requested_status"`
	CurrentStatus   string     `json:"current_status"`
	Status          string     `json:"status"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ConfirmationFromDomain converts a domain confirmation to a response.
func ConfirmationFromDomain(c *domain.PaymentConfirmation) *ConfirmationResponse {
	return &ConfirmationResponse{
		ID:              c.ID,
		EntryID:         c.EntryID,
		RequestedBy:     c.RequestedBy,
		MarketID:        c.MarketID,
		RequestedStatus: string(c.RequestedStatus),
		CurrentStatus:   string(c.CurrentStatus),
		Status:          string(c.Status),
		ReviewedBy:      c.ReviewedBy,
		ReviewedAt:      c.ReviewedAt,
		CreatedAt:       c.CreatedAt,
	}
}

// ReviewItemResponse is one row of a market's review queue: the
// pending confirmation together with the entry under review.
type ReviewItemResponse struct {
	Confirmation *ConfirmationResponse `json:"confirmation"`
	Entry        *EntryResponse        `json:"entry"`
}

// ReviewItemsFromDomain converts domain review items to responses.
func ReviewItemsFromDomain(items []*domain.ReviewItem) []*ReviewItemResponse {
	result := make([]*ReviewItemResponse, len(items))
	for i, item := range items {
		result[i] = &ReviewItemResponse{
			Confirmation: ConfirmationFromDomain(item.Confirmation),
			Entry:        EntryFromDomain(item.Entry),
		}
	}
	return result
}

// RequestPaymentResponse is the outcome of a payment request.
// Confirmation is absent when the workflow degraded to a direct
// paid write.
type RequestPaymentResponse struct {
	Confirmation *ConfirmationResponse `json:"confirmation,omitempty"`
	Entry        *EntryResponse        `json:"entry"`
	Fallback     bool                  `json:"fallback,omitempty"`
}

// MarketResponse represents a market in API responses.
type MarketResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MarketFromDomain converts a domain market to a response.
func MarketFromDomain(m *domain.Market) *MarketResponse {
	return &MarketResponse{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Address:   m.Address,
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
	}
}

// MarketsFromDomain converts domain markets to responses.
func MarketsFromDomain(markets []*domain.Market) []*MarketResponse {
	result := make([]*MarketResponse, len(markets))
	for i, m := range markets {
		result[i] = MarketFromDomain(m)
	}
	return result
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductFromDomain converts a domain product to a response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// ProductsFromDomain converts domain products to responses.
func ProductsFromDomain(products []*domain.Product) []*ProductResponse {
	result := make([]*ProductResponse, len(products))
	for i, p := range products {
		result[i] = ProductFromDomain(p)
	}
	return result
}

// ProfileResponse represents a profile in API responses.
type ProfileResponse struct {
	ID        string  `json:"id"`
	Role      string  `json:"role"`
	FullName  string  `json:"full_name,omitempty"`
	MarketID  *string `json:"market_id,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
}

// ProfileFromDomain converts a domain profile to a response.
func ProfileFromDomain(p *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		Role:      string(p.Role),
		FullName:  p.FullName,
		MarketID:  p.MarketID,
		AvatarURL: p.AvatarURL,
	}
}

// AuthResponse represents a successful register or login.
type AuthResponse struct {
	Token   string           `json:"token"`
	UserID  string           `json:"user_id"`
	Email   string           `json:"email"`
	Profile *ProfileResponse `json:"profile"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
