package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storefront/backend/internal/service"
	"github.com/storefront/backend/internal/tokens"
)

const identityKey = "identity"

type Auth struct {
	JWTSecret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{JWTSecret: secret}
}

// RequireAuth validates the bearer token and attaches the resolved identity
// to the request context. Handlers never touch the token themselves.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
		}

		claims, err := tokens.AccessClaimsFromToken(tokenStr, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
		}

		c.Set(identityKey, service.Identity{UserID: userID, IsAdmin: claims.IsAdmin})
		return next(c)
	}
}

func (m *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := IdentityFromContext(c)
		if !ok || !ident.IsAdmin {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized as an admin")
		}
		return next(c)
	}
}

func IdentityFromContext(c echo.Context) (service.Identity, bool) {
	ident, ok := c.Get(identityKey).(service.Identity)
	return ident, ok
}
