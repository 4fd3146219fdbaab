package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/constants"
	dto "task-market.com/task-market/internal/data_models"
	apperrors "task-market.com/task-market/internal/errors"
	middleware "task-market.com/task-market/internal/http/middlewares"
	"task-market.com/task-market/internal/http/validators"
	"task-market.com/task-market/internal/services"
)

type Handler struct {
	users     *services.UserService
	tasks     *services.TaskService
	offers    *services.OfferService
	approvals *services.ApprovalService
}

func NewHandler(
	users *services.UserService,
	tasks *services.TaskService,
	offers *services.OfferService,
	approvals *services.ApprovalService,
) *Handler {
	return &Handler{
		users:     users,
		tasks:     tasks,
		offers:    offers,
		approvals: approvals,
	}
}

func httpError(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func (h *Handler) SignupCustomer(c echo.Context) error {
	return h.signup(c, constants.RoleCustomer)
}

func (h *Handler) SignupServiceProvider(c echo.Context) error {
	return h.signup(c, constants.RoleServiceProvider)
}

func (h *Handler) signup(c echo.Context, role constants.Role) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSignupRequest(&req); err != nil {
		return err
	}

	user, err := h.users.Signup(c.Request().Context(), req.Name, req.Email, role)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":      user,
		"api_token": user.APIToken,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity.Role != constants.RoleCustomer {
		return httpError(apperrors.ErrUnauthorized)
	}

	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), identity.UserID, req.Title, req.Details, req.Budget)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListOpenTasks(c echo.Context) error {
	tasks, err := h.tasks.ListOpenTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) ListMyTasks(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	tasks, err := h.tasks.ListMyTasks(c.Request().Context(), identity.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) CompleteTask(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	task, err := h.tasks.CompleteTask(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateOffer(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity.Role != constants.RoleServiceProvider {
		return httpError(apperrors.ErrUnauthorized)
	}

	var req dto.CreateOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateOfferRequest(&req); err != nil {
		return err
	}

	offer, err := h.offers.CreateOffer(c.Request().Context(), identity.UserID, c.Param("id"), req.Amount, req.Message)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, offer)
}

func (h *Handler) ListMyOffers(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	offers, err := h.offers.ListMyOffers(c.Request().Context(), identity.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list offers")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(offers),
		"offers": offers,
	})
}

func (h *Handler) ListTaskOffers(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	offers, err := h.offers.ListTaskOffers(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(offers),
		"offers": offers,
	})
}

func (h *Handler) ApproveOffer(c echo.Context) error {
	identity := middleware.IdentityFrom(c)

	result, err := h.approvals.ApproveOffer(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"data": result})
}
