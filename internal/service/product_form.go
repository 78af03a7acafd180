package service

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
	"github.com/flicky/club-eskimo-web/internal/dto"
	"github.com/flicky/club-eskimo-web/internal/model"
)

// ProductForm is the add/edit product form as submitted. ID is zero in
// create mode. ImageURL is the image currently shown, kept on edit when no
// new file is attached.
type ProductForm struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Stock       string
	CategoryID  string
	ImageURL    string
}

func (f ProductForm) IsEdit() bool { return f.ID != 0 }

func (f ProductForm) payload() (dto.ProductPayload, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return dto.ProductPayload{}, ErrProductNameRequired
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil || price.IsNegative() || !price.IsInteger() {
		return dto.ProductPayload{}, ErrInvalidPrice
	}
	stock, err := strconv.Atoi(strings.TrimSpace(f.Stock))
	if err != nil || stock < 0 {
		return dto.ProductPayload{}, ErrInvalidStock
	}
	categoryID, err := strconv.ParseInt(strings.TrimSpace(f.CategoryID), 10, 64)
	if err != nil {
		return dto.ProductPayload{}, ErrInvalidCategory
	}
	if _, ok := model.LookupCategory(categoryID); !ok {
		return dto.ProductPayload{}, ErrInvalidCategory
	}
	return dto.ProductPayload{
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		Price:       price.IntPart(),
		Stock:       stock,
		CategoryID:  categoryID,
	}, nil
}

// ProductForm returns an empty form for id 0, or the form prefilled from
// the stored product.
func (s *AdminService) ProductForm(ctx context.Context, token string, id int64) (*ProductForm, error) {
	if id == 0 {
		return &ProductForm{}, nil
	}
	p, err := s.adminRepo.GetProduct(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	form := &ProductForm{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Stock:       strconv.Itoa(p.Stock),
		ImageURL:    p.Image,
	}
	if p.Category != nil {
		form.CategoryID = strconv.FormatInt(p.Category.ID, 10)
	}
	return form, nil
}

// SaveProduct creates or updates the product and returns the admin path.
// Creating requires an image; updating without one keeps the current image.
func (s *AdminService) SaveProduct(ctx context.Context, token string, form ProductForm, image *apiclient.FileUpload) (string, error) {
	if !form.IsEdit() && image == nil {
		return "", ErrImageRequired
	}
	payload, err := form.payload()
	if err != nil {
		return "", err
	}
	if image != nil {
		if _, err := imaging.Decode(bytes.NewReader(image.Content)); err != nil {
			return "", ErrInvalidImage
		}
	}

	if form.IsEdit() {
		if image == nil {
			payload.Image = form.ImageURL
		}
		if err := s.adminRepo.UpdateProduct(ctx, token, form.ID, payload, image); err != nil {
			return "", err
		}
		return PathAdmin, nil
	}
	if err := s.adminRepo.CreateProduct(ctx, token, payload, image); err != nil {
		return "", err
	}
	return PathAdmin, nil
}
