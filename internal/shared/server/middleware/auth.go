package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const usernameKey = "username"

// TokenVerifier resolves a bearer token to the username it binds.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Bearer attaches the username of a verified Authorization header. Missing,
// malformed or unverifiable tokens leave the request anonymous; routes that
// need a user check UsernameFromContext themselves.
func Bearer(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username, ok := verifyHeader(tokens, c.GetHeader("Authorization")); ok {
			c.Set(usernameKey, username)
		}
		c.Next()
	}
}

func verifyHeader(tokens TokenVerifier, header string) (string, bool) {
	token, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" || tokens == nil {
		return "", false
	}
	username, err := tokens.Verify(token)
	if err != nil || username == "" {
		return "", false
	}
	return username, true
}

// UsernameFromContext fetches the username set by the Bearer middleware.
func UsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(usernameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
