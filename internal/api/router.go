package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/yafiirfan/backend.movie/internal/apperr"
	"github.com/yafiirfan/backend.movie/internal/auth"
)

// NewHTTPErrorHandler funnels every handler failure through the classifier.
// Nothing internal reaches the client: classified errors get their fixed
// message, everything else becomes a logged 500.
func NewHTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// Routing-level errors (unknown path, wrong method) keep echo's code.
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg, ok := he.Message.(string)
			if !ok {
				msg = http.StatusText(he.Code)
			}
			_ = c.JSON(he.Code, map[string]string{"message": msg})
			return
		}

		status, message := apperr.Classify(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Request().URL.Path).Msg("request failed")
		} else {
			logger.Debug().Err(err).Str("method", c.Request().Method).Str("path", c.Request().URL.Path).Msg("request rejected")
		}
		_ = c.JSON(status, map[string]string{"message": message})
	}
}

// NewRouter wires middleware and routes. The two profile routes sit behind
// the bearer-token gate; everything else is public.
func NewRouter(h *UserHandler, tokens *auth.TokenManager, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.POST("/google-login", h.GoogleLogin)

	protected := e.Group("", BearerAuth(tokens), ResolveUser(h.userService))
	protected.PUT("/user-update", h.UpdateUser)
	protected.DELETE("/user-delete", h.DeleteUser)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "user-auth",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	return e
}
