package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tranquilopay/tranquilopay-api/internal/domain"
	"github.com/tranquilopay/tranquilopay-api/internal/service"
	"github.com/tranquilopay/tranquilopay-api/internal/util"
)

// RegisterUsers wires the directory routes: the public existence probe and
// the token-protected profile lookup.
func RegisterUsers(e *echo.Echo, auth *service.AuthService, jwt *util.JWTManager) {
	e.GET("/user/exists/:identifier", func(c echo.Context) error {
		exists, err := auth.UserExists(c.Request().Context(), c.Param("identifier"))
		if err != nil {
			return serverError(c, err)
		}
		return c.JSON(http.StatusOK, UserExistsResponse{IsUserAlreadyExists: exists})
	})

	e.GET("/user/:id", func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		}

		user, err := auth.GetUser(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, util.Error("user not found"))
			}
			return serverError(c, err)
		}
		return c.JSON(http.StatusOK, util.Data("user", toUserResponse(user)))
	}, RequireToken(jwt))
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		CPF:       user.CPF,
		Email:     user.Email,
		Phone:     user.Phone,
		State:     user.State,
		City:      user.City,
		Street:    user.Street,
		District:  user.District,
		Number:    user.Number,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
