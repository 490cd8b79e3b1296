package metadata

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nyanbar/nyanbar/internal/metadata/anilist"
)

// Handlers provides HTTP handlers for catalog operations.
type Handlers struct {
	service *Service
}

// NewHandlers creates new metadata handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/anime/:id", h.GetAnime)
	g.GET("/search", h.Search)
	g.GET("/trending", h.Trending)
	g.GET("/popular", h.Popular)
}

// GetAnime gets anime detail by AniList ID.
// GET /api/anime/:id
func (h *Handlers) GetAnime(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	result, err := h.service.GetAnime(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, anilist.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "anime not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch anime data")
	}

	return c.JSON(http.StatusOK, result)
}

// Search searches anime by title.
// GET /api/search?query=...
func (h *Handlers) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "search query is required")
	}

	results, err := h.service.Search(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to search anime")
	}

	return c.JSON(http.StatusOK, results)
}

// Trending returns trending anime.
// GET /api/trending
func (h *Handlers) Trending(c echo.Context) error {
	results, err := h.service.Trending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch trending anime")
	}

	return c.JSON(http.StatusOK, results)
}

// Popular returns popular releasing anime.
// GET /api/popular
func (h *Handlers) Popular(c echo.Context) error {
	results, err := h.service.Popular(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch popular anime")
	}

	return c.JSON(http.StatusOK, results)
}
