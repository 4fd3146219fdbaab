package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-market.com/task-market/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.Details == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "details are required")
	}
	if r.Budget <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "budget must be positive")
	}
	return nil
}
