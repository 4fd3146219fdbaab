package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-market.com/task-market/internal/data_models"
)

func ValidateCreateOfferRequest(r *dto.CreateOfferRequest) error {
	if r.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}
	if r.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	return nil
}
