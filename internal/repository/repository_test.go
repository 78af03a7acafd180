package repository

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
	"github.com/flicky/club-eskimo-web/internal/dto"
)

// newBackend starts a fake storefront API and returns a client bound to it.
func newBackend(t *testing.T, mux *http.ServeMux) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	api, err := apiclient.New(srv.URL, srv.Client(), nil)
	require.NoError(t, err)
	return api
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func requireBearer(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
}

func TestProductRepo_ListAndFilter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/customer/products", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		_, _ = io.WriteString(w, `{"products":[
			{"id":1,"name":"Kaos","price":120000,"stock":4,"category":{"id":1,"name":"Baju"},"createdAt":"2025-06-01T10:00:00"},
			{"id":2,"name":"Parka","price":450000,"stock":0}]}`)
	})
	mux.HandleFunc("GET /api/customer/products/category/2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"products":[{"id":2,"name":"Parka","price":450000}]}`)
	})
	repo := NewProductRepository(newBackend(t, mux))

	all, err := repo.List(t.Context(), "tok", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Baju", all[0].CategoryName())
	assert.True(t, all[0].Price.Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), all[0].CreatedAt)
	assert.Nil(t, all[1].Category)

	outer, err := repo.List(t.Context(), "tok", 2)
	require.NoError(t, err)
	require.Len(t, outer, 1)
	assert.Equal(t, "Parka", outer[0].Name)
}

func TestProductRepo_GetByID_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/customer/products/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	repo := NewProductRepository(newBackend(t, mux))

	p, err := repo.GetByID(t.Context(), "tok", 9)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestCartRepo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/customer/cart", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		_, _ = io.WriteString(w, `{"cartId":7,"totalUniqueItems":2,"totalItemUnits":3,"grandTotal":390000,"items":[
			{"cartItemId":11,"productId":1,"productName":"Kaos","quantity":2,"pricePerUnit":120000,"subtotal":240000},
			{"cartItemId":12,"productId":3,"productName":"Topi","quantity":1,"pricePerUnit":150000,"subtotal":150000}]}`)
	})
	mux.HandleFunc("GET /api/customer/cart/item/12", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"cartItemId":12,"productId":3,"productName":"Topi","quantity":1,"pricePerUnit":150000,"subtotal":150000}`)
	})
	mux.HandleFunc("POST /api/customer/cart", func(w http.ResponseWriter, r *http.Request) {
		var req dto.AddCartItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, dto.AddCartItemRequest{ProductID: 3, Quantity: 2}, req)
		w.WriteHeader(http.StatusCreated)
	})
	repo := NewCartRepository(newBackend(t, mux))

	cart, err := repo.GetCart(t.Context(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cart.CartID)
	assert.Len(t, cart.Items, 2)
	assert.True(t, cart.GrandTotal.Equal(decimal.NewFromInt(390000)))

	item, err := repo.GetItem(t.Context(), "tok", 12)
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.ProductID)

	require.NoError(t, repo.AddItem(t.Context(), "tok", 3, 2))
}

func TestOrderRepo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/customer/checkout", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]any{"shippingAddress": "Jl. Es 1", "paymentMethod": "COD"}, req)
	})
	mux.HandleFunc("POST /api/customer/checkout/product/5", func(w http.ResponseWriter, r *http.Request) {
		var req dto.CheckoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req.Quantity)
	})
	mux.HandleFunc("GET /api/customer/orders/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []dto.OrderHistoryResponse{{OrderID: 1, ProductName: "Kaos", Status: "pending", Total: decimal.NewFromInt(240000)}})
	})
	repo := NewOrderRepository(newBackend(t, mux))

	require.NoError(t, repo.CheckoutCart(t.Context(), "tok", dto.CheckoutRequest{ShippingAddress: "Jl. Es 1", PaymentMethod: "COD"}))
	require.NoError(t, repo.CheckoutProduct(t.Context(), "tok", 5, dto.CheckoutRequest{PaymentMethod: "TRANSFER", Quantity: 3}))

	history, err := repo.History(t.Context(), "tok")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "pending", history[0].Status)
}

func TestUserRepo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, dto.LoginResponse{AccessToken: "tok", Username: "a@b.c",
			Authorities: []dto.Authority{{Authority: "ROLE_CUSTOMER"}}})
	})
	mux.HandleFunc("POST /api/customer/register", func(w http.ResponseWriter, r *http.Request) {
		var req dto.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.c", req.Username)
		assert.Equal(t, "0812", req.PhoneNumber)
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
	})
	mux.HandleFunc("GET /api/customer/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, dto.ProfileResponse{Name: "Ani", Address: "Jl. Es 1"})
	})
	repo := NewUserRepository(newBackend(t, mux))

	resp, err := repo.Login(t.Context(), dto.LoginRequest{Username: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_CUSTOMER"}, resp.Roles())

	require.NoError(t, repo.Register(t.Context(), dto.RegisterRequest{Username: "a@b.c", PhoneNumber: "0812"}))
	require.NoError(t, repo.Logout(t.Context(), "tok"))

	profile, err := repo.GetProfile(t.Context(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Jl. Es 1", profile.Address)
}

func TestAdminRepo(t *testing.T) {
	deleted := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"products":[{"id":1,"name":"Kaos","price":120000,"stock":20}]}`)
	})
	mux.HandleFunc("GET /api/admin/orders", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"orderId":3,"customerName":"Ani","username":"a@b.c","status":"pending","totalPrice":240000,"orderDate":"2025-06-01T08:15:00"}]`)
	})
	mux.HandleFunc("PUT /api/admin/products/1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, _, err := r.FormFile("product")
		require.NoError(t, err)
		raw, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Kaos","description":"","price":125000,"stock":20,"categoryId":1,"image":"/img/kaos.jpg"}`, string(raw))
		_, _, err = r.FormFile("image")
		assert.ErrorIs(t, err, http.ErrMissingFile)
	})
	mux.HandleFunc("DELETE /api/admin/products/1", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})
	repo := NewAdminRepository(newBackend(t, mux))

	products, err := repo.ListProducts(t.Context(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "In Stock", products[0].StockLabel())

	orders, err := repo.ListOrders(t.Context(), "tok")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2025, orders[0].OrderDate.Year())

	require.NoError(t, repo.UpdateProduct(t.Context(), "tok", 1, dto.ProductPayload{Name: "Kaos", Price: 125000, Stock: 20, CategoryID: 1, Image: "/img/kaos.jpg"}, nil))
	require.NoError(t, repo.DeleteProduct(t.Context(), "tok", 1))
	assert.True(t, deleted)
}
