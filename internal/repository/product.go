package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
	"github.com/flicky/club-eskimo-web/internal/dto"
	"github.com/flicky/club-eskimo-web/internal/model"
)

// ProductRepository is the customer-facing catalog.
type ProductRepository interface {
	// List returns every product, or only those of categoryID when it is
	// non-zero.
	List(ctx context.Context, token string, categoryID int64) ([]model.Product, error)
	GetByID(ctx context.Context, token string, id int64) (*model.Product, error)
}

type restProductRepo struct{ api *apiclient.Client }

func NewProductRepository(api *apiclient.Client) ProductRepository {
	return &restProductRepo{api: api}
}

func (r *restProductRepo) List(ctx context.Context, token string, categoryID int64) ([]model.Product, error) {
	path := "/api/customer/products"
	if categoryID != 0 {
		path += "/category/" + strconv.FormatInt(categoryID, 10)
	}
	var resp dto.ProductListResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet, Path: path, Auth: true, Token: token,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return toProducts(resp.Products), nil
}

func (r *restProductRepo) GetByID(ctx context.Context, token string, id int64) (*model.Product, error) {
	var resp dto.ProductResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet, Path: "/api/customer/products/" + strconv.FormatInt(id, 10),
		Auth: true, Token: token,
	}, &resp)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p := toProduct(resp)
	return &p, nil
}

func isNotFound(err error) bool {
	var apiErr *apiclient.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func toProducts(in []dto.ProductResponse) []model.Product {
	out := make([]model.Product, 0, len(in))
	for _, p := range in {
		out = append(out, toProduct(p))
	}
	return out
}

func toProduct(p dto.ProductResponse) model.Product {
	product := model.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		Image:         p.Image,
		AverageRating: p.AverageRating,
		CreatedAt:     dto.ParseTimestamp(p.CreatedAt),
		UpdatedAt:     dto.ParseTimestamp(p.UpdatedAt),
	}
	if p.Category != nil {
		product.Category = &model.Category{ID: p.Category.ID, Name: p.Category.Name}
	}
	return product
}
