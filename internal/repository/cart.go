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

type CartRepository interface {
	GetCart(ctx context.Context, token string) (*model.Cart, error)
	GetItem(ctx context.Context, token string, itemID int64) (*model.CartItem, error)
	AddItem(ctx context.Context, token string, productID int64, quantity int) error
}

type restCartRepo struct{ api *apiclient.Client }

func NewCartRepository(api *apiclient.Client) CartRepository {
	return &restCartRepo{api: api}
}

func (r *restCartRepo) GetCart(ctx context.Context, token string) (*model.Cart, error) {
	var resp dto.CartResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet, Path: "/api/customer/cart", Auth: true, Token: token,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	items := make([]model.CartItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, toCartItem(item))
	}
	return &model.Cart{
		CartID:           resp.CartID,
		Items:            items,
		TotalUniqueItems: resp.TotalUniqueItems,
		TotalItemUnits:   resp.TotalItemUnits,
		GrandTotal:       resp.GrandTotal,
	}, nil
}

func (r *restCartRepo) GetItem(ctx context.Context, token string, itemID int64) (*model.CartItem, error) {
	var resp dto.CartItemResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet, Path: "/api/customer/cart/item/" + strconv.FormatInt(itemID, 10),
		Auth: true, Token: token,
	}, &resp)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	item := toCartItem(resp)
	return &item, nil
}

func (r *restCartRepo) AddItem(ctx context.Context, token string, productID int64, quantity int) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost, Path: "/api/customer/cart", Auth: true, Token: token,
		Body: dto.AddCartItemRequest{ProductID: productID, Quantity: quantity},
	}, nil)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

func toCartItem(item dto.CartItemResponse) model.CartItem {
	return model.CartItem{
		CartItemID:      item.CartItemID,
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		ProductImageURL: item.ProductImageURL,
		Quantity:        item.Quantity,
		PricePerUnit:    item.PricePerUnit,
		Subtotal:        item.Subtotal,
	}
}
