package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tranquilopay/tranquilopay-api/internal/service"
	"github.com/tranquilopay/tranquilopay-api/internal/util"
)

// RegisterAuth wires the public credential routes.
func RegisterAuth(e *echo.Echo, auth *service.AuthService, resets *service.PasswordResetService) {
	e.POST("/auth/register", func(c echo.Context) error {
		var req RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("bad request body"))
		}

		_, err := auth.Register(c.Request().Context(), service.RegisterInput{
			Name:            req.Name,
			CPF:             req.CPF,
			State:           req.State,
			City:            req.City,
			Street:          req.Street,
			District:        req.District,
			Number:          req.Number,
			Email:           req.Email,
			Phone:           req.Phone,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		if err != nil {
			var vErr *service.ValidationError
			if errors.As(err, &vErr) {
				return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: vErr.Messages()})
			}
			switch {
			case errors.Is(err, service.ErrUserAlreadyExists),
				errors.Is(err, service.ErrPasswordTooWeak),
				errors.Is(err, service.ErrPasswordConfirm):
				return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
			}
			return serverError(c, err)
		}
		return c.JSON(http.StatusCreated, util.Message("user created successfully"))
	})

	e.POST("/auth/login", func(c echo.Context) error {
		var req LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("bad request body"))
		}

		token, _, err := auth.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			var vErr *service.ValidationError
			switch {
			case errors.As(err, &vErr):
				return c.JSON(http.StatusUnprocessableEntity, util.Error(vErr.Error()))
			case errors.Is(err, service.ErrUserNotFound):
				return c.JSON(http.StatusNotFound, util.Error("user not found"))
			case errors.Is(err, service.ErrInvalidPassword):
				return c.JSON(http.StatusUnprocessableEntity, util.Error("invalid password"))
			}
			return serverError(c, err)
		}
		return c.JSON(http.StatusOK, LoginResponse{Message: "authentication successful", Token: token})
	})

	e.POST("/auth/forgot_password", func(c echo.Context) error {
		var req ForgotPasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("bad request body"))
		}

		err := resets.Request(c.Request().Context(), req.Email)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserNotFound):
				return c.JSON(http.StatusBadRequest, util.Error("user not found in our database"))
			case errors.Is(err, service.ErrMailDelivery):
				return c.JSON(http.StatusBadRequest, util.Error("could not send the password recovery email"))
			}
			return serverError(c, err)
		}
		return c.JSON(http.StatusOK, util.Data("status", "recovery email sent"))
	})

	e.POST("/auth/reset_password", func(c echo.Context) error {
		var req ResetPasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("bad request body"))
		}

		err := resets.Confirm(c.Request().Context(), req.Email, req.Token, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserNotFound):
				return c.JSON(http.StatusBadRequest, util.Error("user not found in our database"))
			case errors.Is(err, service.ErrResetTokenInvalid):
				return c.JSON(http.StatusBadRequest, util.Error("the supplied token is not valid"))
			case errors.Is(err, service.ErrResetTokenExpired):
				return c.JSON(http.StatusBadRequest, util.Error("the supplied token has expired, please request a new one"))
			case errors.Is(err, service.ErrPasswordTooWeak):
				return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
			}
			return serverError(c, err)
		}
		return c.JSON(http.StatusOK, util.Data("status", "password changed successfully"))
	})
}

func serverError(c echo.Context, err error) error {
	c.Logger().Errorf("request failed: %v", err)
	return c.JSON(http.StatusInternalServerError, util.Error("unexpected error, please try again later"))
}
