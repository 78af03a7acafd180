package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/flicky/club-eskimo-web/internal/middleware"
	"github.com/flicky/club-eskimo-web/internal/service"
	"github.com/flicky/club-eskimo-web/internal/session"
)

type AuthHandler struct {
	pages
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService, store *session.Store, log *slog.Logger) *AuthHandler {
	return &AuthHandler{pages: pages{store: store, log: log}, svc: svc}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.render(c, "login.html", gin.H{"Title": "Login", "Username": ""})
}

func (h *AuthHandler) Login(c *gin.Context) {
	res, err := h.svc.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		h.fail(c, err, "Invalid email or password", service.PathLogin)
		return
	}
	if err := h.store.Save(c.Writer, c.Request, res.Session); err != nil {
		_ = c.Error(err)
		h.flash(c, "Login failed, please try again.")
		h.redirect(c, service.PathLogin)
		return
	}
	h.redirect(c, res.RedirectTo)
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	h.render(c, "signup.html", gin.H{"Title": "Sign up", "Form": service.SignupInput{}})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	next, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		Email:    c.PostForm("email"),
		Name:     c.PostForm("name"),
		Password: c.PostForm("password"),
		Address:  c.PostForm("address"),
		Phone:    c.PostForm("phone"),
	})
	if err != nil {
		h.fail(c, err, "Registration failed.", service.PathSignup)
		return
	}
	h.redirect(c, next)
}

// Logout always ends the local session, whatever the backend said.
func (h *AuthHandler) Logout(c *gin.Context) {
	next := h.svc.Logout(c.Request.Context(), middleware.GetSession(c).Token)
	if err := h.store.Clear(c.Writer, c.Request); err != nil {
		_ = c.Error(err)
	}
	h.redirect(c, next)
}
