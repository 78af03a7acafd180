package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
	"github.com/flicky/club-eskimo-web/internal/middleware"
	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/service"
	"github.com/flicky/club-eskimo-web/internal/session"
)

type AdminHandler struct {
	pages
	svc           *service.AdminService
	maxUploadSize int64
}

func NewAdminHandler(svc *service.AdminService, store *session.Store, log *slog.Logger, maxUploadSize int64) *AdminHandler {
	return &AdminHandler{pages: pages{store: store, log: log}, svc: svc, maxUploadSize: maxUploadSize}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	sess := middleware.GetSession(c)
	h.renderDashboard(c, h.svc.Dashboard(c.Request.Context(), sess.Token))
}

func (h *AdminHandler) renderDashboard(c *gin.Context, d *service.Dashboard) {
	data := gin.H{"Title": "Admin", "Dashboard": d}
	if d.ProductsErr != nil {
		msg, done := h.loadError(c, d.ProductsErr, "Failed to fetch products")
		if done {
			return
		}
		data["ProductsError"] = msg
	}
	if d.OrdersErr != nil {
		msg, done := h.loadError(c, d.OrdersErr, "Failed to fetch orders")
		if done {
			return
		}
		data["OrdersError"] = msg
	}
	h.render(c, "admin.html", data)
}

// DeleteConfirm asks before a product is deleted.
func (h *AdminHandler) DeleteConfirm(c *gin.Context) {
	id := parseID(c.Param("id"))
	if id == 0 {
		h.redirect(c, service.PathAdmin)
		return
	}
	h.render(c, "admin_delete.html", gin.H{"Title": "Delete product", "ProductID": id})
}

// Delete removes the product when confirm=yes, flashes the outcome and
// sends the admin back to the dashboard.
func (h *AdminHandler) Delete(c *gin.Context) {
	sess := middleware.GetSession(c)
	id := parseID(c.Param("id"))
	if id == 0 {
		h.redirect(c, service.PathAdmin)
		return
	}

	deleted, err := h.svc.DeleteProduct(c.Request.Context(), sess.Token, id, c.PostForm("confirm") == "yes")
	switch {
	case err != nil:
		_ = c.Error(err)
		if h.expired(c, err) {
			return
		}
		h.flash(c, "Failed to delete product: "+service.Message(err, err.Error()))
	case deleted:
		h.flash(c, "Product deleted successfully")
	}
	h.redirect(c, service.PathAdmin)
}

func (h *AdminHandler) EditorPage(c *gin.Context) {
	sess := middleware.GetSession(c)
	id := parseID(c.Param("productId"))
	data := gin.H{"Title": "Product", "Categories": model.Categories}

	form, err := h.svc.ProductForm(c.Request.Context(), sess.Token, id)
	if err != nil {
		msg, done := h.loadError(c, err, "Failed to fetch product")
		if done {
			return
		}
		data["Error"] = msg
		data["Form"] = &service.ProductForm{ID: id}
		h.renderStatus(c, statusFor(err), "product_form.html", data)
		return
	}
	data["Form"] = form
	h.render(c, "product_form.html", data)
}

func (h *AdminHandler) SaveProduct(c *gin.Context) {
	sess := middleware.GetSession(c)
	id := parseID(c.Param("productId"))
	back := service.ProductEditorPath(id)
	fallback := "Failed to add product"
	if id != 0 {
		fallback = "Failed to update product"
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	if err := c.Request.ParseMultipartForm(h.maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.fail(c, err, "Upload is too large.", back)
		return
	}
	image, err := formUpload(c, "image")
	if err != nil {
		h.fail(c, err, "Failed to read image.", back)
		return
	}

	form := service.ProductForm{
		ID:          id,
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Stock:       c.PostForm("stock"),
		CategoryID:  c.PostForm("categoryId"),
		ImageURL:    c.PostForm("imageUrl"),
	}
	next, err := h.svc.SaveProduct(c.Request.Context(), sess.Token, form, image)
	if err != nil {
		h.fail(c, err, fallback, back)
		return
	}
	h.redirect(c, next)
}

// formUpload returns the named file part, or nil when none was chosen.
func formUpload(c *gin.Context, field string) (*apiclient.FileUpload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size == 0 {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(content)
	}
	return &apiclient.FileUpload{Filename: fh.Filename, ContentType: contentType, Content: content}, nil
}
