package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"github.com/jengzang/health-insights-go/internal/shell"
	"github.com/jengzang/health-insights-go/pkg/response"
)

const sessionKey = "session"

// SessionResolver looks up the session a bearer token names
type SessionResolver interface {
	Resolve(token string) (*shell.Session, error)
}

// SessionAuth requires a valid "Authorization: Bearer <token>" header and
// stores the resolved session on the context
func SessionAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "Missing session token", nil)
			return
		}

		sess, err := sessions.Resolve(token)
		if err != nil {
			msg := "Invalid session token"
			if eris.Is(err, shell.ErrSessionNotFound) {
				msg = "Session expired"
			}
			response.Unauthorized(c, msg, err)
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// Session returns the session stored by SessionAuth
func Session(c *gin.Context) *shell.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*shell.Session)
	return sess
}
