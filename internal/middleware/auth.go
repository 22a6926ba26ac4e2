package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	authservice "github.com/clinicdesk/clinic-api/internal/service/auth"
	"github.com/clinicdesk/clinic-api/pkg/httputil"
)

const (
	// ContextPrincipal is the gin context key for the authenticated staff identity.
	ContextPrincipal = "principal"

	principalCacheTTL = 5 * time.Minute
)

type AuthMiddleware struct {
	authSvc    *authservice.Service
	principals *gocache.Cache
}

func NewAuthMiddleware(authSvc *authservice.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authSvc:    authSvc,
		principals: gocache.New(principalCacheTTL, 2*principalCacheTTL),
	}
}

// Authenticate verifies the bearer token and restores the principal,
// caching lookups so repeated requests skip the store.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Error:   &httputil.Error{Code: "unauthorized", Message: "missing authorization header"},
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Error:   &httputil.Error{Code: "unauthorized", Message: "invalid authorization format"},
			})
			return
		}

		claims, err := m.authSvc.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Error:   &httputil.Error{Code: "unauthorized", Message: "invalid token"},
			})
			return
		}

		key := claims.PrincipalID.String()
		if cached, ok := m.principals.Get(key); ok {
			c.Set(ContextPrincipal, cached)
			c.Next()
			return
		}

		principal, err := m.authSvc.LoadPrincipal(c.Request.Context(), claims.PrincipalID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Error:   &httputil.Error{Code: "unauthorized", Message: "unknown principal"},
			})
			return
		}

		m.principals.Set(key, principal, gocache.DefaultExpiration)
		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}
