package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
	"github.com/flicky/club-eskimo-web/internal/dto"
	"github.com/flicky/club-eskimo-web/internal/model"
)

type savedProduct struct {
	id      int64
	payload dto.ProductPayload
	image   *apiclient.FileUpload
}

type mockAdminRepo struct {
	mu          sync.Mutex
	products    []model.Product
	productsErr error
	orders      []model.Order
	ordersErr   error
	created     []savedProduct
	updated     []savedProduct
	deleted     []int64
	deleteErr   error
}

func (m *mockAdminRepo) ListProducts(_ context.Context, _ string) ([]model.Product, error) {
	return m.products, m.productsErr
}

func (m *mockAdminRepo) GetProduct(_ context.Context, _ string, id int64) (*model.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *mockAdminRepo) CreateProduct(_ context.Context, _ string, payload dto.ProductPayload, img *apiclient.FileUpload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, savedProduct{payload: payload, image: img})
	return nil
}

func (m *mockAdminRepo) UpdateProduct(_ context.Context, _ string, id int64, payload dto.ProductPayload, img *apiclient.FileUpload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = append(m.updated, savedProduct{id: id, payload: payload, image: img})
	return nil
}

func (m *mockAdminRepo) DeleteProduct(_ context.Context, _ string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockAdminRepo) ListOrders(_ context.Context, _ string) ([]model.Order, error) {
	return m.orders, m.ordersErr
}

func adminFixture() *mockAdminRepo {
	return &mockAdminRepo{
		products: []model.Product{
			{ID: 1, Name: "Kaos", Price: decimal.NewFromInt(120000), Stock: 5, Image: "/img/kaos.png", Category: &model.Category{ID: 1, Name: "Baju"}},
			{ID: 2, Name: "Parka", Price: decimal.NewFromInt(450000), Stock: 2, Category: &model.Category{ID: 2, Name: "Outer"}},
		},
		orders: []model.Order{{OrderID: 7, CustomerName: "Ani", Status: "pending"}},
	}
}

func pngUpload(t *testing.T) *apiclient.FileUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &apiclient.FileUpload{Filename: "kaos.png", ContentType: "image/png", Content: buf.Bytes()}
}

func TestAdminService_Dashboard(t *testing.T) {
	d := NewAdminService(adminFixture()).Dashboard(context.Background(), "tok")
	require.NoError(t, d.ProductsErr)
	require.NoError(t, d.OrdersErr)
	assert.Len(t, d.Products, 2)
	assert.Len(t, d.Orders, 1)
}

func TestAdminService_Dashboard_IndependentFailures(t *testing.T) {
	repo := adminFixture()
	repo.productsErr = &apiclient.APIError{StatusCode: 500, Message: "db down"}
	d := NewAdminService(repo).Dashboard(context.Background(), "tok")
	assert.Error(t, d.ProductsErr)
	require.NoError(t, d.OrdersErr)
	assert.Len(t, d.Orders, 1)

	repo = adminFixture()
	repo.ordersErr = errors.New("timeout")
	d = NewAdminService(repo).Dashboard(context.Background(), "tok")
	require.NoError(t, d.ProductsErr)
	assert.Len(t, d.Products, 2)
	assert.Equal(t, "Failed to fetch orders", Message(d.OrdersErr, "Failed to fetch orders"))
}

func TestAdminService_DeleteProduct(t *testing.T) {
	repo := adminFixture()
	svc := NewAdminService(repo)

	t.Run("declined", func(t *testing.T) {
		deleted, err := svc.DeleteProduct(context.Background(), "tok", 1, false)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Empty(t, repo.deleted)
	})

	t.Run("confirmed", func(t *testing.T) {
		deleted, err := svc.DeleteProduct(context.Background(), "tok", 1, true)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, []int64{1}, repo.deleted)
	})

	t.Run("failed", func(t *testing.T) {
		repo.deleteErr = &apiclient.APIError{StatusCode: 409, Message: "Product has orders"}
		deleted, err := svc.DeleteProduct(context.Background(), "tok", 2, true)
		assert.False(t, deleted)
		assert.Equal(t, "Product has orders", Message(err, "Delete failed"))
		assert.Equal(t, []int64{1}, repo.deleted)
	})
}

func TestAdminService_SaveProduct_PriceSentAsWholeRupiah(t *testing.T) {
	repo := adminFixture()
	form := validForm()
	form.Price = " 150000.00 "

	_, err := NewAdminService(repo).SaveProduct(context.Background(), "tok", form, pngUpload(t))
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	raw, err := json.Marshal(repo.created[0].payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Kaos","description":"Katun","price":150000,"stock":5,"categoryId":1,"image":""}`, string(raw))
}

func validForm() ProductForm {
	return ProductForm{Name: "Kaos", Description: "Katun", Price: "120000", Stock: "5", CategoryID: "1"}
}

func TestAdminService_SaveProduct_CreateRequiresImage(t *testing.T) {
	repo := adminFixture()
	_, err := NewAdminService(repo).SaveProduct(context.Background(), "tok", validForm(), nil)
	assert.ErrorIs(t, err, ErrImageRequired)
	assert.Equal(t, "Image is required", Message(err, "Save failed"))
	assert.Empty(t, repo.created)
}

func TestAdminService_SaveProduct_Create(t *testing.T) {
	repo := adminFixture()
	upload := pngUpload(t)

	next, err := NewAdminService(repo).SaveProduct(context.Background(), "tok", validForm(), upload)
	require.NoError(t, err)
	assert.Equal(t, PathAdmin, next)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Kaos", repo.created[0].payload.Name)
	assert.Equal(t, int64(120000), repo.created[0].payload.Price)
	assert.Equal(t, int64(1), repo.created[0].payload.CategoryID)
	assert.Same(t, upload, repo.created[0].image)
}

func TestAdminService_SaveProduct_UpdateKeepsImage(t *testing.T) {
	repo := adminFixture()
	svc := NewAdminService(repo)

	form, err := svc.ProductForm(context.Background(), "tok", 1)
	require.NoError(t, err)
	assert.True(t, form.IsEdit())
	assert.Equal(t, "/img/kaos.png", form.ImageURL)
	assert.Equal(t, "1", form.CategoryID)

	form.Stock = "9"
	_, err = svc.SaveProduct(context.Background(), "tok", *form, nil)
	require.NoError(t, err)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, int64(1), repo.updated[0].id)
	assert.Equal(t, "/img/kaos.png", repo.updated[0].payload.Image)
	assert.Equal(t, 9, repo.updated[0].payload.Stock)
	assert.Nil(t, repo.updated[0].image)
}

func TestAdminService_SaveProduct_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductForm)
		image  *apiclient.FileUpload
		want   error
	}{
		{"blank name", func(f *ProductForm) { f.Name = " " }, nil, ErrProductNameRequired},
		{"negative price", func(f *ProductForm) { f.Price = "-1" }, nil, ErrInvalidPrice},
		{"text price", func(f *ProductForm) { f.Price = "mahal" }, nil, ErrInvalidPrice},
		{"fractional price", func(f *ProductForm) { f.Price = "12.5" }, nil, ErrInvalidPrice},
		{"fractional stock", func(f *ProductForm) { f.Stock = "1.5" }, nil, ErrInvalidStock},
		{"unknown category", func(f *ProductForm) { f.CategoryID = "9" }, nil, ErrInvalidCategory},
		{"not an image", func(*ProductForm) {}, &apiclient.FileUpload{Filename: "x.png", Content: []byte("nope")}, ErrInvalidImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := adminFixture()
			form := validForm()
			form.ID = 1
			tt.mutate(&form)
			_, err := NewAdminService(repo).SaveProduct(context.Background(), "tok", form, tt.image)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.updated)
		})
	}
}

func TestAdminService_ProductForm(t *testing.T) {
	svc := NewAdminService(adminFixture())

	empty, err := svc.ProductForm(context.Background(), "tok", 0)
	require.NoError(t, err)
	assert.False(t, empty.IsEdit())

	_, err = svc.ProductForm(context.Background(), "tok", 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
