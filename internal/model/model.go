package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleAdmin    = "ROLE_ADMIN"
	RoleCustomer = "ROLE_CUSTOMER"
)

const PlaceholderImage = "/placeholder.jpg"

// Session is the browser-held credential set written at login.
type Session struct {
	Token    string
	Username string
	Roles    []string
}

func (s Session) Authenticated() bool { return s.Token != "" }

func (s Session) HasRole(role string) bool { return slices.Contains(s.Roles, role) }

type Category struct {
	ID   int64
	Name string
}

// Categories is the fixed category list offered by the catalog filter and
// the product editor.
var Categories = []Category{
	{ID: 1, Name: "Baju"},
	{ID: 2, Name: "Outer"},
	{ID: 3, Name: "Accessories"},
}

func LookupCategory(id int64) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	Stock         int
	Image         string
	Category      *Category
	AverageRating float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Product) ImageOrPlaceholder() string {
	if p.Image == "" {
		return PlaceholderImage
	}
	return p.Image
}

func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

func (p Product) StockLabel() string {
	switch {
	case p.Stock > 10:
		return "In Stock"
	case p.Stock > 0:
		return "Low Stock"
	default:
		return "Out of Stock"
	}
}

// CartItem is one cart line. Subtotal is computed by the backend.
type CartItem struct {
	CartItemID      int64
	ProductID       int64
	ProductName     string
	ProductImageURL string
	Quantity        int
	PricePerUnit    decimal.Decimal
	Subtotal        decimal.Decimal
}

func (i CartItem) ImageOrPlaceholder() string {
	if i.ProductImageURL == "" {
		return PlaceholderImage
	}
	return i.ProductImageURL
}

// Cart mirrors the backend cart. GrandTotal is the backend's sum of line
// subtotals and is displayed as-is.
type Cart struct {
	CartID           int64
	Items            []CartItem
	TotalUniqueItems int
	TotalItemUnits   int
	GrandTotal       decimal.Decimal
}

func (c *Cart) Empty() bool { return c == nil || len(c.Items) == 0 }

// Order is the admin projection of an order.
type Order struct {
	OrderID      int64
	CustomerName string
	Username     string
	Status       string
	TotalPrice   decimal.Decimal
	TotalAmount  decimal.Decimal
	OrderDate    time.Time
}

// OrderHistoryItem is one purchased line in the customer's history.
type OrderHistoryItem struct {
	OrderID      int64
	ProductName  string
	ProductImage string
	Status       string
	Total        decimal.Decimal
}

func (o OrderHistoryItem) ImageOrPlaceholder() string {
	if o.ProductImage == "" {
		return PlaceholderImage
	}
	return o.ProductImage
}

type UserProfile struct {
	Name    string
	Address string
}

type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "COD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentTransfer
}

type ShippingMode string

const (
	ShippingStorePickup  ShippingMode = "store-pickup"
	ShippingHomeDelivery ShippingMode = "home-delivery"
)

var homeDeliveryFee = decimal.NewFromInt(25000)

// ParseShippingMode falls back to store pickup for anything unrecognised.
func ParseShippingMode(s string) ShippingMode {
	if ShippingMode(s) == ShippingHomeDelivery {
		return ShippingHomeDelivery
	}
	return ShippingStorePickup
}

func (m ShippingMode) Cost() decimal.Decimal {
	if m == ShippingHomeDelivery {
		return homeDeliveryFee
	}
	return decimal.Zero
}
