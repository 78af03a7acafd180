package handler

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flicky/club-eskimo-web/internal/middleware"
	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/service"
	"github.com/flicky/club-eskimo-web/internal/session"
)

type ProductHandler struct {
	pages
	products *service.ProductService
	cart     *service.CartService
}

func NewProductHandler(products *service.ProductService, cart *service.CartService, store *session.Store, log *slog.Logger) *ProductHandler {
	return &ProductHandler{pages: pages{store: store, log: log}, products: products, cart: cart}
}

// parseCategory reads ?category=; empty or "all" selects every product.
func parseCategory(s string) (int64, error) {
	if s == "" || s == "all" {
		return 0, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, service.ErrUnknownCategory
	}
	return id, nil
}

func (h *ProductHandler) Catalog(c *gin.Context) {
	sess := middleware.GetSession(c)
	data := gin.H{"Title": "Products", "Categories": model.Categories, "Selected": int64(0)}

	categoryID, err := parseCategory(c.Query("category"))
	var catalog *service.Catalog
	if err == nil {
		catalog, err = h.products.Catalog(c.Request.Context(), sess.Token, categoryID)
	}
	if err != nil {
		msg, done := h.loadError(c, err, "Failed to fetch products")
		if done {
			return
		}
		data["Error"] = msg
		h.renderStatus(c, statusFor(err), "catalog.html", data)
		return
	}

	data["Products"] = catalog.Products
	data["Categories"] = catalog.Categories
	data["Selected"] = catalog.SelectedCategory
	h.render(c, "catalog.html", data)
}

func (h *ProductHandler) Detail(c *gin.Context) {
	sess := middleware.GetSession(c)
	product, err := h.products.GetByID(c.Request.Context(), sess.Token, parseID(c.Param("id")))
	if err != nil {
		msg, done := h.loadError(c, err, "Failed to fetch product")
		if done {
			return
		}
		h.renderStatus(c, statusFor(err), "detail.html", gin.H{"Title": "Product", "Error": msg})
		return
	}
	h.render(c, "detail.html", gin.H{"Title": product.Name, "Product": product})
}

func (h *ProductHandler) AddToCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	id := parseID(c.Param("id"))
	quantity, _ := strconv.Atoi(c.DefaultPostForm("quantity", "1"))

	next, err := h.cart.AddItem(c.Request.Context(), sess.Token, id, quantity)
	if err != nil {
		h.fail(c, err, "Failed to add to cart", service.ProductDetailPath(id))
		return
	}
	h.redirect(c, next)
}

// BuyNow sends the browser to the single-product checkout.
func (h *ProductHandler) BuyNow(c *gin.Context) {
	sess := middleware.GetSession(c)
	back := service.ProductDetailPath(parseID(c.Param("id")))

	target, err := service.ParseCheckoutTarget(c.Param("id"), c.DefaultPostForm("quantity", "1"))
	if err != nil {
		h.fail(c, err, "Invalid checkout link.", back)
		return
	}
	product, err := h.products.GetByID(c.Request.Context(), sess.Token, target.ID)
	if err != nil {
		h.fail(c, err, "Failed to fetch product", back)
		return
	}
	if target.Quantity > product.Stock {
		h.fail(c, service.ErrInsufficientStock, "", back)
		return
	}
	h.redirect(c, target.Path())
}
