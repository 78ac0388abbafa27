package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tranquilopay/tranquilopay-api/internal/service"
	"github.com/tranquilopay/tranquilopay-api/internal/util"
)

// RegisterPayments wires the gateway proxy route.
func RegisterPayments(e *echo.Echo, payments *service.PaymentService) {
	e.POST("/payments", func(c echo.Context) error {
		var req ChargeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("bad request body"))
		}

		result, err := payments.CreateCharge(c.Request().Context(), service.ChargeInput{
			Customer:    req.Customer,
			BillingType: req.BillingType,
			DueDate:     req.DueDate,
			Value:       req.Value,
		})
		if err != nil {
			var vErr *service.ValidationError
			switch {
			case errors.As(err, &vErr):
				return c.JSON(http.StatusUnprocessableEntity, util.Error(vErr.Error()))
			case errors.Is(err, service.ErrBillingTypeInvalid):
				return c.JSON(http.StatusUnprocessableEntity, util.Error("the billingType field is not valid"))
			}
			return serverError(c, err)
		}

		return c.JSON(http.StatusOK, ChargeResponse{
			Message: "charge created successfully",
			URL:     result.InvoiceURL,
			Data:    result.Raw,
		})
	})
}
