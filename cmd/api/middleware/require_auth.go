package middleware

import (
	"github.com/gin-gonic/gin"

	"cruze/cmd/api/auth"
)

const ctxKeyUserCode = "user_code"

// RequireAuth parses the bearer token and stores the user code in the gin
// context. Requests without a valid token are rejected with 401.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		userCode, _, err := jwtManager.Parse(token)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		c.Set(ctxKeyUserCode, userCode)
		c.Next()
	}
}

// UserCode returns the authenticated user code stored by RequireAuth.
func UserCode(c *gin.Context) string {
	v, _ := c.Get(ctxKeyUserCode)
	code, _ := v.(string)
	return code
}
