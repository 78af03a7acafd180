package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/flicky/club-eskimo-web/internal/middleware"
	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/service"
	"github.com/flicky/club-eskimo-web/internal/session"
)

type CartHandler struct {
	pages
	svc *service.CartService
}

func NewCartHandler(svc *service.CartService, store *session.Store, log *slog.Logger) *CartHandler {
	return &CartHandler{pages: pages{store: store, log: log}, svc: svc}
}

// View renders the cart. ?shipping= picks the advisory shipping mode.
func (h *CartHandler) View(c *gin.Context) {
	sess := middleware.GetSession(c)
	data := gin.H{"Title": "Cart", "DeliveryFee": model.ShippingHomeDelivery.Cost()}

	view, err := h.svc.View(c.Request.Context(), sess.Token, model.ParseShippingMode(c.Query("shipping")))
	if err != nil {
		msg, done := h.loadError(c, err, "Failed to fetch cart")
		if done {
			return
		}
		data["Error"] = msg
		h.render(c, "cart.html", data)
		return
	}
	data["Cart"] = view
	h.render(c, "cart.html", data)
}
