package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
	"github.com/flicky/club-eskimo-web/internal/dto"
	"github.com/flicky/club-eskimo-web/internal/model"
)

// OrderRepository places and lists the customer's orders.
type OrderRepository interface {
	CheckoutCart(ctx context.Context, token string, req dto.CheckoutRequest) error
	CheckoutProduct(ctx context.Context, token string, productID int64, req dto.CheckoutRequest) error
	History(ctx context.Context, token string) ([]model.OrderHistoryItem, error)
}

type restOrderRepo struct{ api *apiclient.Client }

func NewOrderRepository(api *apiclient.Client) OrderRepository {
	return &restOrderRepo{api: api}
}

func (r *restOrderRepo) CheckoutCart(ctx context.Context, token string, req dto.CheckoutRequest) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost, Path: "/api/customer/checkout", Auth: true, Token: token, Body: req,
	}, nil)
	if err != nil {
		return fmt.Errorf("checkout cart: %w", err)
	}
	return nil
}

func (r *restOrderRepo) CheckoutProduct(ctx context.Context, token string, productID int64, req dto.CheckoutRequest) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost, Path: "/api/customer/checkout/product/" + strconv.FormatInt(productID, 10),
		Auth: true, Token: token, Body: req,
	}, nil)
	if err != nil {
		return fmt.Errorf("checkout product %d: %w", productID, err)
	}
	return nil
}

func (r *restOrderRepo) History(ctx context.Context, token string) ([]model.OrderHistoryItem, error) {
	var resp []dto.OrderHistoryResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet, Path: "/api/customer/orders/history", Auth: true, Token: token,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	items := make([]model.OrderHistoryItem, 0, len(resp))
	for _, o := range resp {
		items = append(items, model.OrderHistoryItem{
			OrderID:      o.OrderID,
			ProductName:  o.ProductName,
			ProductImage: o.ProductImage,
			Status:       o.Status,
			Total:        o.Total,
		})
	}
	return items, nil
}
