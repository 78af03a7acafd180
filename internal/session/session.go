// Package session keeps the storefront credential (bearer token, username,
// roles) in a gorilla session, along with one-shot flash messages.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"

	"github.com/flicky/club-eskimo-web/internal/model"
)

const (
	keyToken    = "token"
	keyUsername = "username"
	keyRoles    = "roles"
)

// Store reads and writes model.Session values on top of a sessions.Store.
type Store struct {
	backend sessions.Store
	name    string
	now     func() time.Time
}

func NewStore(backend sessions.Store, name string) *Store {
	return &Store{backend: backend, name: name, now: time.Now}
}

// NewCookieStore returns a signed-cookie backend.
func NewCookieStore(secret []byte, maxAge time.Duration, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = cookieOptions(maxAge, secure)
	return store
}

func cookieOptions(maxAge time.Duration, secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Load returns the session carried by r. A missing, unreadable or expired
// session yields the zero Session.
func (s *Store) Load(r *http.Request) model.Session {
	sess, err := s.backend.Get(r, s.name)
	if err != nil {
		return model.Session{}
	}
	token, _ := sess.Values[keyToken].(string)
	if token == "" || s.tokenExpired(token) {
		return model.Session{}
	}
	username, _ := sess.Values[keyUsername].(string)
	roles, _ := sess.Values[keyRoles].(string)
	out := model.Session{Token: token, Username: username}
	if roles != "" {
		out.Roles = strings.Split(roles, ",")
	}
	return out
}

func (s *Store) Save(w http.ResponseWriter, r *http.Request, m model.Session) error {
	sess, err := s.get(r)
	if err != nil {
		return err
	}
	sess.Values[keyToken] = m.Token
	sess.Values[keyUsername] = m.Username
	sess.Values[keyRoles] = strings.Join(m.Roles, ",")
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear drops the credential but keeps the session so that a flash added
// afterwards still reaches the next page.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.get(r)
	if err != nil {
		return err
	}
	delete(sess.Values, keyToken)
	delete(sess.Values, keyUsername)
	delete(sess.Values, keyRoles)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	sess, err := s.get(r)
	if err != nil {
		return err
	}
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save flash: %w", err)
	}
	return nil
}

// Flashes pops pending flash messages.
func (s *Store) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess, err := s.get(r)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

// get tolerates a cookie that no longer decodes (rotated secret, evicted
// Redis key) by handing back the fresh session gorilla created.
func (s *Store) get(r *http.Request) (*sessions.Session, error) {
	sess, err := s.backend.Get(r, s.name)
	if sess == nil {
		if err == nil {
			err = errors.New("no session")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// The signature is not checked; the backend remains the authority. Opaque
// tokens never expire here.
func (s *Store) tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.now())
}
