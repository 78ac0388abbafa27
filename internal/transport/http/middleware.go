package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tranquilopay/tranquilopay-api/internal/util"
)

const contextUserIDKey = "auth.user_id"

// RequireToken guards private routes with a bearer session token. A missing
// credential and an invalid one map to different statuses so clients can
// tell "log in first" apart from "your token is broken".
func RequireToken(jwt *util.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("access denied"))
			}

			claims, err := jwt.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusBadRequest, util.Error("invalid token"))
			}
			userID, err := claims.UserID()
			if err != nil {
				return c.JSON(http.StatusBadRequest, util.Error("invalid token"))
			}

			c.Set(contextUserIDKey, userID)
			return next(c)
		}
	}
}
