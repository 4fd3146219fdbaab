package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/services"
	"task-market.com/task-market/internal/webhooks"
)

// WebhookHandler is the payment provider's entry point. It owns reading
// the raw body: the signature covers the exact bytes on the wire, so no
// body parsing happens before verification.
type WebhookHandler struct {
	verifier   *webhooks.Verifier
	reconciler *services.ReconciliationService
}

func NewWebhookHandler(verifier *webhooks.Verifier, reconciler *services.ReconciliationService) *WebhookHandler {
	return &WebhookHandler{
		verifier:   verifier,
		reconciler: reconciler,
	}
}

// HandlePaymentEvent acknowledges Applied, Duplicate and Ignored with 200
// so the provider stops redelivering; TaskNotFound and PersistenceError
// are surfaced as retryable.
func (h *WebhookHandler) HandlePaymentEvent(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	event, err := h.verifier.Verify(c.Request().Header.Get(webhooks.SignatureHeader), body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "webhook verification failed")
	}

	outcome, err := h.reconciler.ApplyPaymentEvent(c.Request().Context(), event)
	switch outcome {
	case services.OutcomeApplied:
		return c.JSON(http.StatusOK, echo.Map{"task_id": event.TaskID})
	case services.OutcomeDuplicate:
		return c.JSON(http.StatusOK, echo.Map{"message": "duplicate"})
	case services.OutcomeIgnored:
		return c.JSON(http.StatusOK, echo.Map{"message": "skipped", "type": event.Type, "id": event.ID})
	case services.OutcomeTaskNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
