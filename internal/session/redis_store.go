package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session values in Redis. The cookie only carries a
// signed session id, so the bearer token never reaches the browser.
type RedisStore struct {
	client    redis.Cmdable
	codecs    []securecookie.Codec
	keyPrefix string
	options   *sessions.Options
}

func NewRedisStore(client redis.Cmdable, keyPrefix string, secret []byte, maxAge time.Duration, secure bool) *RedisStore {
	codecs := securecookie.CodecsFromPairs(secret)
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(int(maxAge.Seconds()))
		}
	}
	return &RedisStore{
		client:    client,
		codecs:    codecs,
		keyPrefix: keyPrefix,
		options:   cookieOptions(maxAge, secure),
	}
}

func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.options
	sess.Options = &opts
	sess.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &sess.ID, s.codecs...); err != nil {
		return sess, fmt.Errorf("decode session cookie: %w", err)
	}
	found, err := s.load(r.Context(), sess)
	if err != nil {
		return sess, err
	}
	sess.IsNew = !found
	return sess, nil
}

func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	ctx := r.Context()
	if sess.Options.MaxAge < 0 {
		if sess.ID != "" {
			if err := s.client.Del(ctx, s.keyPrefix+sess.ID).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if err := s.store(ctx, sess); err != nil {
		return err
	}
	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}

// Values are limited to JSON-representable data with string keys; the
// session package only ever stores strings and flash slices.
func (s *RedisStore) store(ctx context.Context, sess *sessions.Session) error {
	values := make(map[string]any, len(sess.Values))
	for k, v := range sess.Values {
		key, ok := k.(string)
		if !ok {
			return fmt.Errorf("session key %v is not a string", k)
		}
		values[key] = v
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Duration(sess.Options.MaxAge) * time.Second
	if err := s.client.Set(ctx, s.keyPrefix+sess.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context, sess *sessions.Session) (bool, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+sess.ID).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return false, fmt.Errorf("decode session: %w", err)
	}
	for k, v := range values {
		sess.Values[k] = v
	}
	return true, nil
}
