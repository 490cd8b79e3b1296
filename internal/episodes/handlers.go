package episodes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for episode notifications.
type Handlers struct {
	checker  *Checker
	notifier *Notifier
}

// NewHandlers creates new notification handlers.
func NewHandlers(checker *Checker, notifier *Notifier) *Handlers {
	return &Handlers{checker: checker, notifier: notifier}
}

// RegisterRoutes registers the notification routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.List)
	g.POST("/notifications/check", h.Check)
	g.POST("/notifications/:id/read", h.MarkRead)
	g.DELETE("/notifications/:id", h.Remove)
	g.DELETE("/notifications", h.Clear)
}

// List returns all stored notifications.
// GET /api/notifications
func (h *Handlers) List(c echo.Context) error {
	notifications, err := h.notifier.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load notifications")
	}
	return c.JSON(http.StatusOK, notifications)
}

// Check triggers an immediate watch-list check and returns the results.
// POST /api/notifications/check
func (h *Handlers) Check(c echo.Context) error {
	results := h.checker.Run(c.Request().Context())
	if results == nil {
		results = []CheckResult{}
	}
	return c.JSON(http.StatusOK, results)
}

// MarkRead marks one notification as read.
// POST /api/notifications/:id/read
func (h *Handlers) MarkRead(c echo.Context) error {
	err := h.notifier.MarkRead(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update notification")
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove deletes one notification.
// DELETE /api/notifications/:id
func (h *Handlers) Remove(c echo.Context) error {
	err := h.notifier.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete notification")
	}
	return c.NoContent(http.StatusNoContent)
}

// Clear deletes all notifications.
// DELETE /api/notifications
func (h *Handlers) Clear(c echo.Context) error {
	if err := h.notifier.Clear(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to clear notifications")
	}
	return c.NoContent(http.StatusNoContent)
}
