package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/session"
)

const sessionKey = "session"

// LoadSession reads the browser session once per request. Requests without
// a usable session carry the zero model.Session; the API client then fails
// authenticated calls locally, so no route is blocked here.
func LoadSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, store.Load(c.Request))
		c.Next()
	}
}

func GetSession(c *gin.Context) model.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(model.Session)
	return sess
}
