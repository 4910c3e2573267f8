package api

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/yafiirfan/backend.movie/internal/apperr"
	"github.com/yafiirfan/backend.movie/internal/auth"
	"github.com/yafiirfan/backend.movie/internal/service"
)

const (
	claimsContextKey = "claims"
	userIDContextKey = "userID"
)

// BearerAuth extracts and verifies the Authorization bearer token, storing
// the parsed claims in the request context. A missing, mistyped, or invalid
// credential becomes an invalid-token failure.
func BearerAuth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return tokens.Parse(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperr.InvalidToken(err)
		},
	})
}

// ResolveUser turns the verified claims into a live user id. A token whose
// user no longer exists is rejected the same way as a forged one.
func ResolveUser(userService *service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*auth.Claims)
			if !ok {
				return apperr.ErrInvalidToken
			}

			user, err := userService.GetUserByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					return apperr.InvalidToken(err)
				}
				return err
			}

			c.Set(userIDContextKey, user.ID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id set by ResolveUser.
func UserID(c echo.Context) (int, bool) {
	id, ok := c.Get(userIDContextKey).(int)
	return id, ok
}
