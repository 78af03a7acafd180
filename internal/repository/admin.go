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

// AdminRepository is the back-office product and order management API.
type AdminRepository interface {
	ListProducts(ctx context.Context, token string) ([]model.Product, error)
	GetProduct(ctx context.Context, token string, id int64) (*model.Product, error)
	// CreateProduct and UpdateProduct send a multipart body; image may be nil.
	CreateProduct(ctx context.Context, token string, payload dto.ProductPayload, image *apiclient.FileUpload) error
	UpdateProduct(ctx context.Context, token string, id int64, payload dto.ProductPayload, image *apiclient.FileUpload) error
	DeleteProduct(ctx context.Context, token string, id int64) error
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
}

type restAdminRepo struct{ api *apiclient.Client }

func NewAdminRepository(api *apiclient.Client) AdminRepository {
	return &restAdminRepo{api: api}
}

func adminProductPath(id int64) string {
	return "/api/admin/products/" + strconv.FormatInt(id, 10)
}

func (r *restAdminRepo) ListProducts(ctx context.Context, token string) ([]model.Product, error) {
	var resp dto.ProductListResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet, Path: "/api/admin/products", Auth: true, Token: token,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list admin products: %w", err)
	}
	return toProducts(resp.Products), nil
}

func (r *restAdminRepo) GetProduct(ctx context.Context, token string, id int64) (*model.Product, error) {
	var resp dto.ProductResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet, Path: adminProductPath(id), Auth: true, Token: token,
	}, &resp)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin product: %w", err)
	}
	p := toProduct(resp)
	return &p, nil
}

func (r *restAdminRepo) CreateProduct(ctx context.Context, token string, payload dto.ProductPayload, image *apiclient.FileUpload) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost, Path: "/api/admin/products", Auth: true, Token: token,
		Multipart: productMultipart(payload, image),
	}, nil)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *restAdminRepo) UpdateProduct(ctx context.Context, token string, id int64, payload dto.ProductPayload, image *apiclient.FileUpload) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPut, Path: adminProductPath(id), Auth: true, Token: token,
		Multipart: productMultipart(payload, image),
	}, nil)
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	return nil
}

func (r *restAdminRepo) DeleteProduct(ctx context.Context, token string, id int64) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodDelete, Path: adminProductPath(id), Auth: true, Token: token,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (r *restAdminRepo) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	var resp []dto.OrderResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet, Path: "/api/admin/orders", Auth: true, Token: token,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := make([]model.Order, 0, len(resp))
	for _, o := range resp {
		orders = append(orders, model.Order{
			OrderID:      o.OrderID,
			CustomerName: o.CustomerName,
			Username:     o.Username,
			Status:       o.Status,
			TotalPrice:   o.TotalPrice,
			TotalAmount:  o.TotalAmount,
			OrderDate:    dto.ParseTimestamp(o.OrderDate),
		})
	}
	return orders, nil
}

func productMultipart(payload dto.ProductPayload, image *apiclient.FileUpload) *apiclient.Multipart {
	return &apiclient.Multipart{
		JSONField: "product",
		JSON:      payload,
		FileField: "image",
		File:      image,
	}
}
