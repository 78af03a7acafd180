package service

import (
	"context"

	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/repository"
)

type ProductService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Catalog is the home screen: the product list plus the filter state.
type Catalog struct {
	Products   []model.Product
	Categories []model.Category
	// SelectedCategory is 0 for "All".
	SelectedCategory int64
}

// Catalog fetches all products, or the products of one category. Each
// selection is a fresh fetch; nothing is filtered locally.
func (s *ProductService) Catalog(ctx context.Context, token string, categoryID int64) (*Catalog, error) {
	if categoryID != 0 {
		if _, ok := model.LookupCategory(categoryID); !ok {
			return nil, ErrUnknownCategory
		}
	}
	products, err := s.productRepo.List(ctx, token, categoryID)
	if err != nil {
		return nil, err
	}
	return &Catalog{Products: products, Categories: model.Categories, SelectedCategory: categoryID}, nil
}

func (s *ProductService) GetByID(ctx context.Context, token string, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
