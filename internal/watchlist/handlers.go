package watchlist

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for watch-list operations.
type Handlers struct {
	service *Service
}

// NewHandlers creates new watch-list handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the watch-list routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/watchlist", h.List)
	g.POST("/watchlist", h.Add)
	g.DELETE("/watchlist/:id", h.Remove)
	g.PUT("/watchlist/:id/progress", h.SetProgress)
}

// List returns the watch list.
// GET /api/watchlist
func (h *Handlers) List(c echo.Context) error {
	entries, err := h.service.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load watch list")
	}
	return c.JSON(http.StatusOK, entries)
}

// Add adds an anime to the watch list.
// POST /api/watchlist
func (h *Handlers) Add(c echo.Context) error {
	var entry Entry
	if err := c.Bind(&entry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid watch list entry")
	}
	if entry.AnimeID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "animeId is required")
	}

	entries, err := h.service.Add(c.Request().Context(), entry)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update watch list")
	}
	return c.JSON(http.StatusOK, entries)
}

// Remove removes an anime from the watch list.
// DELETE /api/watchlist/:id
func (h *Handlers) Remove(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	entries, err := h.service.Remove(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update watch list")
	}
	return c.JSON(http.StatusOK, entries)
}

// SetProgress records the last watched episode for an anime.
// PUT /api/watchlist/:id/progress
func (h *Handlers) SetProgress(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var body struct {
		Episode int `json:"episode"`
	}
	if err := c.Bind(&body); err != nil || body.Episode < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "episode must be a non-negative number")
	}

	if err := h.service.SetProgress(c.Request().Context(), id, body.Episode); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to record progress")
	}
	return c.NoContent(http.StatusNoContent)
}
