package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/auth"
	middleware "task-market.com/task-market/internal/http/middlewares"
	"task-market.com/task-market/internal/ratelimit"
)

func Register(
	e *echo.Echo,
	h *Handler,
	wh *WebhookHandler,
	authenticator auth.Authenticator,
	limiter ratelimit.Limiter,
	rateLimitPerMinute int,
) {
	e.Use(middleware.RateLimiter(limiter, rateLimitPerMinute, time.Minute))

	e.POST("/customers", h.SignupCustomer)
	e.POST("/service-providers", h.SignupServiceProvider)

	e.GET("/tasks", h.ListOpenTasks)
	e.GET("/tasks/:id", h.GetTask)

	e.POST("/webhooks/payments", wh.HandlePaymentEvent)

	authed := e.Group("", middleware.Authn(authenticator))
	authed.POST("/tasks", h.CreateTask)
	authed.GET("/my-tasks", h.ListMyTasks)
	authed.POST("/tasks/:id/complete", h.CompleteTask)
	authed.POST("/tasks/:id/offers", h.CreateOffer)
	authed.GET("/tasks/:id/offers", h.ListTaskOffers)
	authed.GET("/my-offers", h.ListMyOffers)
	authed.POST("/offers/:id/approve", h.ApproveOffer)
}
