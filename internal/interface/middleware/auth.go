package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloggramm/bloggramm/internal/application"
	"github.com/bloggramm/bloggramm/pkg/helpers"
)

const (
	CtxUserNameKey  = "userName"
	CtxUserEmailKey = "userEmail"
)

// EnsureLogin gates management pages. The request is authorized only when the
// session cookie parses and resolves to a live server-side session; anything
// else redirects to the login page.
func EnsureLogin(sessions application.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil || sess.UserName != claims.UserName {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(CtxUserNameKey, sess.UserName)
		c.Set(CtxUserEmailKey, sess.Email)
		c.Next()
	}
}

// CurrentSession resolves the session for optional display (nav state) without
// gating the route. Returns nil when the request carries no valid session.
func CurrentSession(c *gin.Context, sessions application.SessionStore, jwt *helpers.JWTManager) *application.Session {
	token, err := c.Cookie(helpers.SessionCookieName)
	if err != nil || token == "" {
		return nil
	}
	claims, err := jwt.ParseSessionToken(token)
	if err != nil {
		return nil
	}
	sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
	if err != nil {
		return nil
	}
	return sess
}
