package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/flicky/club-eskimo-web/internal/middleware"
	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/service"
	"github.com/flicky/club-eskimo-web/internal/session"
)

type OrderHandler struct {
	pages
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService, store *session.Store, log *slog.Logger) *OrderHandler {
	return &OrderHandler{pages: pages{store: store, log: log}, svc: svc}
}

// PaymentPage serves /payment, /payment/:id and /payment/:id/:quantity.
func (h *OrderHandler) PaymentPage(c *gin.Context) {
	sess := middleware.GetSession(c)

	target, err := service.ParseCheckoutTarget(c.Param("id"), c.Param("quantity"))
	if err != nil {
		h.renderStatus(c, statusFor(err), "payment.html", gin.H{"Title": "Payment", "Error": service.Message(err, "")})
		return
	}

	view := h.svc.PrepareCheckout(c.Request.Context(), sess.Token, target)
	data := gin.H{"Title": "Payment", "Checkout": view}
	if view.ItemsErr != nil {
		msg, done := h.loadError(c, view.ItemsErr, "Failed to fetch items")
		if done {
			return
		}
		data["Error"] = msg
	}
	h.render(c, "payment.html", data)
}

func (h *OrderHandler) Pay(c *gin.Context) {
	sess := middleware.GetSession(c)

	target, err := service.ParseCheckoutTarget(c.Param("id"), c.Param("quantity"))
	if err != nil {
		h.fail(c, err, "", service.PathCart)
		return
	}
	next, err := h.svc.Checkout(c.Request.Context(), sess.Token, target,
		model.PaymentMethod(c.PostForm("paymentMethod")), c.PostForm("shippingAddress"))
	if err != nil {
		h.fail(c, err, "Checkout failed", target.Path())
		return
	}
	h.redirect(c, next)
}

func (h *OrderHandler) PaymentSuccess(c *gin.Context) {
	h.render(c, "payment_success.html", gin.H{"Title": "Payment successful"})
}

func (h *OrderHandler) History(c *gin.Context) {
	sess := middleware.GetSession(c)
	data := gin.H{"Title": "Order history"}

	orders, err := h.svc.History(c.Request.Context(), sess.Token)
	if err != nil {
		msg, done := h.loadError(c, err, "Failed to fetch order history")
		if done {
			return
		}
		data["Error"] = msg
	}
	data["Orders"] = orders
	h.render(c, "history.html", data)
}
