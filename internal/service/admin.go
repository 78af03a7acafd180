package service

import (
	"context"
	"sync"

	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/repository"
)

type AdminService struct {
	adminRepo repository.AdminRepository
}

func NewAdminService(adminRepo repository.AdminRepository) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

// Dashboard holds the admin screen's two independent lists. A failure in
// one never hides the other.
type Dashboard struct {
	Products    []model.Product
	Orders      []model.Order
	ProductsErr error
	OrdersErr   error
}

// Dashboard fetches products and orders concurrently.
func (s *AdminService) Dashboard(ctx context.Context, token string) *Dashboard {
	d := &Dashboard{}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.Products, d.ProductsErr = s.adminRepo.ListProducts(ctx, token)
	}()
	go func() {
		defer wg.Done()
		d.Orders, d.OrdersErr = s.adminRepo.ListOrders(ctx, token)
	}()
	wg.Wait()
	return d
}

// DeleteProduct removes a product once the admin has confirmed. It reports
// whether the backend accepted the delete.
func (s *AdminService) DeleteProduct(ctx context.Context, token string, id int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	if err := s.adminRepo.DeleteProduct(ctx, token, id); err != nil {
		return false, err
	}
	return true, nil
}
