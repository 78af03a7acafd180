package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// --- Auth ---

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Authority struct {
	Authority string `json:"authority"`
}

type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	Username    string      `json:"username"`
	Authorities []Authority `json:"authorities"`
}

func (r LoginResponse) Roles() []string {
	roles := make([]string, 0, len(r.Authorities))
	for _, a := range r.Authorities {
		roles = append(roles, a.Authority)
	}
	return roles
}

// RegisterRequest carries the email in Username; the backend logs in by email.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// --- Product ---

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         decimal.Decimal   `json:"price"`
	Stock         int               `json:"stock"`
	Image         string            `json:"image"`
	Category      *CategoryResponse `json:"category"`
	AverageRating float64           `json:"averageRating"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// ProductPayload is the JSON part named "product" of the admin multipart
// create/update body.
type ProductPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	CategoryID  int64  `json:"categoryId"`
	Image       string `json:"image"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CartItemResponse struct {
	CartItemID      int64           `json:"cartItemId"`
	ProductID       int64           `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductImageURL string          `json:"productImageUrl"`
	Quantity        int             `json:"quantity"`
	PricePerUnit    decimal.Decimal `json:"pricePerUnit"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	CartID           int64              `json:"cartId"`
	Items            []CartItemResponse `json:"items"`
	TotalUniqueItems int                `json:"totalUniqueItems"`
	TotalItemUnits   int                `json:"totalItemUnits"`
	GrandTotal       decimal.Decimal    `json:"grandTotal"`
}

// --- Checkout / orders ---

type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
	Quantity        int    `json:"quantity,omitempty"`
}

type OrderResponse struct {
	OrderID      int64           `json:"orderId"`
	CustomerName string          `json:"customerName"`
	Username     string          `json:"username"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	OrderDate    string          `json:"orderDate"`
}

type OrderHistoryResponse struct {
	OrderID      int64           `json:"orderId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
}

type ProfileResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// --- Errors ---

type ErrorResponse struct {
	Message string `json:"message"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-8601 variants the backend emits, with or
// without zone and fraction. Unparsable input yields the zero time.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
