package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/repository"
)

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// CartView is the cart screen. Subtotal is the backend's grand total;
// shipping only changes the advisory Total and is never sent anywhere.
type CartView struct {
	Cart         *model.Cart
	Shipping     model.ShippingMode
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

func (s *CartService) View(ctx context.Context, token string, shipping model.ShippingMode) (*CartView, error) {
	cart, err := s.cartRepo.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}
	cost := shipping.Cost()
	return &CartView{
		Cart:         cart,
		Shipping:     shipping,
		Subtotal:     cart.GrandTotal,
		ShippingCost: cost,
		Total:        cart.GrandTotal.Add(cost),
	}, nil
}

// AddItem puts quantity units of a product in the cart and returns the cart
// path.
func (s *CartService) AddItem(ctx context.Context, token string, productID int64, quantity int) (string, error) {
	if quantity < 1 {
		return "", ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(ctx, token, productID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", ErrProductNotFound
	}
	if quantity > product.Stock {
		return "", ErrInsufficientStock
	}
	if err := s.cartRepo.AddItem(ctx, token, productID, quantity); err != nil {
		return "", err
	}
	return PathCart, nil
}
