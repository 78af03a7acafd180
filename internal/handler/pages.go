package handler

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
	"github.com/flicky/club-eskimo-web/internal/middleware"
	"github.com/flicky/club-eskimo-web/internal/money"
	"github.com/flicky/club-eskimo-web/internal/service"
	"github.com/flicky/club-eskimo-web/internal/session"
)

const msgSessionExpired = "Session expired, please log in again."

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"rupiah":     money.FormatRupiah,
		"detailPath": service.ProductDetailPath,
		"editorPath": service.ProductEditorPath,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("02 Jan 2006 15:04")
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// pages is shared by every screen handler: rendering with the session and
// pending flashes, redirects, and the expired-session path.
type pages struct {
	store *session.Store
	log   *slog.Logger
}

func (p pages) render(c *gin.Context, name string, data gin.H) {
	p.renderStatus(c, http.StatusOK, name, data)
}

func (p pages) renderStatus(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = middleware.GetSession(c)
	// Flashes rewrites the cookie, so it must run before the body is written.
	data["Flashes"] = p.store.Flashes(c.Writer, c.Request)
	c.HTML(status, name, data)
}

func (p pages) redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}

func (p pages) flash(c *gin.Context, msg string) {
	if err := p.store.AddFlash(c.Writer, c.Request, msg); err != nil {
		p.log.Error("save flash", "error", err, "request_id", middleware.GetRequestID(c))
	}
}

// expired handles a backend 401 on an authenticated call: the session is
// dropped and the browser goes back to login. It reports whether it
// responded.
func (p pages) expired(c *gin.Context, err error) bool {
	if !errors.Is(err, apiclient.ErrSessionExpired) {
		return false
	}
	if err := p.store.Clear(c.Writer, c.Request); err != nil {
		p.log.Error("clear session", "error", err, "request_id", middleware.GetRequestID(c))
	}
	p.flash(c, msgSessionExpired)
	p.redirect(c, service.PathLogin)
	return true
}

// fail reports a failed form action as a flash on the page at back.
func (p pages) fail(c *gin.Context, err error, fallback, back string) {
	_ = c.Error(err)
	if p.expired(c, err) {
		return
	}
	p.flash(c, service.Message(err, fallback))
	p.redirect(c, back)
}

// loadError turns a failed page fetch into the message shown on the page,
// or responds itself when the session has expired.
func (p pages) loadError(c *gin.Context, err error, fallback string) (string, bool) {
	_ = c.Error(err)
	if p.expired(c, err) {
		return "", true
	}
	return service.Message(err, fallback), false
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrCartItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownCategory), errors.Is(err, service.ErrInvalidCheckout),
		errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}

// parseID returns a positive id from a path segment, or 0 when it is
// absent or not numeric. For /product/:productId, 0 means create mode.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
