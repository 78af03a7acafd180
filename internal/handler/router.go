package handler

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/flicky/club-eskimo-web/internal/middleware"
	"github.com/flicky/club-eskimo-web/internal/session"
)

type Handlers struct {
	Auth    *AuthHandler
	Product *ProductHandler
	Cart    *CartHandler
	Order   *OrderHandler
	Admin   *AdminHandler
	Health  *HealthHandler
}

// NewRouter wires every client route. Credential submits go through
// authLimiter.
func NewRouter(h Handlers, store *session.Store, authLimiter *middleware.RateLimiter, log *slog.Logger) (*gin.Engine, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", h.Health.Healthz)
	router.GET("/readyz", h.Health.Readyz)

	web := router.Group("", middleware.LoadSession(store))
	{
		web.GET("/", h.Auth.LoginPage)
		web.POST("/", authLimiter.Limit(), h.Auth.Login)
		web.GET("/signup", h.Auth.SignupPage)
		web.POST("/signup", authLimiter.Limit(), h.Auth.Signup)
		web.POST("/logout", h.Auth.Logout)

		web.GET("/homepage", h.Product.Catalog)
		web.GET("/detailBarang/:id", h.Product.Detail)
		web.POST("/detailBarang/:id/cart", h.Product.AddToCart)
		web.POST("/detailBarang/:id/buy", h.Product.BuyNow)

		web.GET("/cart", h.Cart.View)

		web.GET("/payment", h.Order.PaymentPage)
		web.POST("/payment", h.Order.Pay)
		web.GET("/payment/:id", h.Order.PaymentPage)
		web.POST("/payment/:id", h.Order.Pay)
		web.GET("/payment/:id/:quantity", h.Order.PaymentPage)
		web.POST("/payment/:id/:quantity", h.Order.Pay)
		web.GET("/paymentSuccess", h.Order.PaymentSuccess)
		web.GET("/history", h.Order.History)

		web.GET("/admin", h.Admin.Dashboard)
		web.GET("/admin/products/:id/delete", h.Admin.DeleteConfirm)
		web.POST("/admin/products/:id/delete", h.Admin.Delete)
		web.GET("/product", h.Admin.EditorPage)
		web.POST("/product", h.Admin.SaveProduct)
		web.GET("/product/:productId", h.Admin.EditorPage)
		web.POST("/product/:productId", h.Admin.SaveProduct)
	}

	return router, nil
}
