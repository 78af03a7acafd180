package service

import (
	"errors"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
)

var (
	ErrMissingCredentials    = errors.New("missing credentials")
	ErrUnknownRole           = errors.New("unknown role")
	ErrSignupFieldsRequired  = errors.New("signup fields required")
	ErrUnknownCategory       = errors.New("unknown category")
	ErrProductNotFound       = errors.New("product not found")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrInvalidCheckout       = errors.New("invalid checkout target")
	ErrPaymentMethodRequired = errors.New("payment method required")
	ErrImageRequired         = errors.New("image required")
	ErrInvalidImage          = errors.New("invalid image")
	ErrInvalidPrice          = errors.New("invalid price")
	ErrInvalidStock          = errors.New("invalid stock")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrProductNameRequired   = errors.New("product name required")
)

var messages = []struct {
	err error
	msg string
}{
	{ErrMissingCredentials, "Email and password are required."},
	{ErrUnknownRole, "Unknown role. Cannot redirect."},
	{ErrSignupFieldsRequired, "All fields are required."},
	{ErrUnknownCategory, "Unknown category."},
	{ErrProductNotFound, "Product not found."},
	{ErrCartItemNotFound, "Cart item not found."},
	{ErrInvalidQuantity, "Quantity must be at least 1."},
	{ErrInsufficientStock, "Not enough stock for that quantity."},
	{ErrInvalidCheckout, "Invalid checkout link."},
	{ErrPaymentMethodRequired, "Please select a payment method."},
	{ErrImageRequired, "Image is required"},
	{ErrInvalidImage, "Image must be a valid picture."},
	{ErrInvalidPrice, "Price must be a whole number of rupiah."},
	{ErrInvalidStock, "Stock must be a non-negative whole number."},
	{ErrInvalidCategory, "Please select a category."},
	{ErrProductNameRequired, "Name is required."},
}

// Message is the user-facing text for err. Local validation failures have
// fixed messages; backend and session failures go through
// apiclient.UserMessage with fallback.
func Message(err error, fallback string) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return apiclient.UserMessage(err, fallback)
}
