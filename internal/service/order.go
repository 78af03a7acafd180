package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flicky/club-eskimo-web/internal/dto"
	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/repository"
)

type CheckoutKind int

const (
	CheckoutCart CheckoutKind = iota
	CheckoutCartItem
	CheckoutProduct
)

// CheckoutTarget is what the payment route points at: the whole cart, one
// cart line (/payment/:itemId) or one product with an explicit quantity
// (/payment/:productId/:quantity).
type CheckoutTarget struct {
	Kind     CheckoutKind
	ID       int64
	Quantity int
}

// ParseCheckoutTarget reads the optional route parameters.
func ParseCheckoutTarget(id, quantity string) (CheckoutTarget, error) {
	if id == "" {
		return CheckoutTarget{Kind: CheckoutCart}, nil
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return CheckoutTarget{}, ErrInvalidCheckout
	}
	if quantity == "" {
		return CheckoutTarget{Kind: CheckoutCartItem, ID: n}, nil
	}
	q, err := strconv.Atoi(quantity)
	if err != nil || q < 1 {
		return CheckoutTarget{}, ErrInvalidQuantity
	}
	return CheckoutTarget{Kind: CheckoutProduct, ID: n, Quantity: q}, nil
}

func (t CheckoutTarget) Path() string {
	switch t.Kind {
	case CheckoutCartItem:
		return fmt.Sprintf("%s/%d", PathPayment, t.ID)
	case CheckoutProduct:
		return fmt.Sprintf("%s/%d/%d", PathPayment, t.ID, t.Quantity)
	default:
		return PathPayment
	}
}

// CheckoutView is the payment screen. A failed item fetch leaves Items
// empty, which disables submission; a failed profile fetch only leaves the
// address blank.
type CheckoutView struct {
	Target   CheckoutTarget
	Items    []model.CartItem
	ItemsErr error
	Profile  *model.UserProfile
	Total    decimal.Decimal
}

func (v *CheckoutView) CanSubmit() bool { return len(v.Items) > 0 }

func (v *CheckoutView) ShippingAddress() string {
	if v.Profile == nil {
		return ""
	}
	return v.Profile.Address
}

type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo, productRepo: productRepo, userRepo: userRepo}
}

func (s *OrderService) PrepareCheckout(ctx context.Context, token string, target CheckoutTarget) *CheckoutView {
	view := &CheckoutView{Target: target}

	if profile, err := s.userRepo.GetProfile(ctx, token); err == nil {
		view.Profile = profile
	}

	switch target.Kind {
	case CheckoutCart:
		cart, err := s.cartRepo.GetCart(ctx, token)
		if err != nil {
			view.ItemsErr = err
			break
		}
		view.Items = cart.Items
		view.Total = cart.GrandTotal
	case CheckoutCartItem:
		item, err := s.cartRepo.GetItem(ctx, token, target.ID)
		if err == nil && item == nil {
			err = ErrCartItemNotFound
		}
		if err != nil {
			view.ItemsErr = err
			break
		}
		view.Items = []model.CartItem{*item}
		view.Total = item.Subtotal
	case CheckoutProduct:
		product, err := s.productRepo.GetByID(ctx, token, target.ID)
		if err == nil && product == nil {
			err = ErrProductNotFound
		}
		if err != nil {
			view.ItemsErr = err
			break
		}
		// There is no server line for a direct purchase, so the preview
		// line is priced here.
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(target.Quantity)))
		view.Items = []model.CartItem{{
			ProductID:       product.ID,
			ProductName:     product.Name,
			ProductImageURL: product.Image,
			Quantity:        target.Quantity,
			PricePerUnit:    product.Price,
			Subtotal:        subtotal,
		}}
		view.Total = subtotal
	}
	return view
}

// Checkout places the order and returns the success path. No request is
// sent without a valid payment method.
func (s *OrderService) Checkout(ctx context.Context, token string, target CheckoutTarget, method model.PaymentMethod, shippingAddress string) (string, error) {
	if !method.Valid() {
		return "", ErrPaymentMethodRequired
	}
	req := dto.CheckoutRequest{
		ShippingAddress: strings.TrimSpace(shippingAddress),
		PaymentMethod:   string(method),
	}

	switch target.Kind {
	case CheckoutCart:
		if err := s.orderRepo.CheckoutCart(ctx, token, req); err != nil {
			return "", err
		}
	case CheckoutProduct:
		req.Quantity = target.Quantity
		if err := s.orderRepo.CheckoutProduct(ctx, token, target.ID, req); err != nil {
			return "", err
		}
	case CheckoutCartItem:
		item, err := s.cartRepo.GetItem(ctx, token, target.ID)
		if err != nil {
			return "", err
		}
		if item == nil {
			return "", ErrCartItemNotFound
		}
		req.Quantity = item.Quantity
		if err := s.orderRepo.CheckoutProduct(ctx, token, item.ProductID, req); err != nil {
			return "", err
		}
	default:
		return "", ErrInvalidCheckout
	}
	return PathPaymentSuccess, nil
}

func (s *OrderService) History(ctx context.Context, token string) ([]model.OrderHistoryItem, error) {
	return s.orderRepo.History(ctx, token)
}
