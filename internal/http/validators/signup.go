package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-market.com/task-market/internal/data_models"
)

func ValidateSignupRequest(r *dto.SignupRequest) error {
	if r.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if r.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	return nil
}
