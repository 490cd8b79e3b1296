package torrents

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for torrent search.
type Handlers struct {
	service *Service
}

// NewHandlers creates new torrent handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the torrent routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/torrents/:animeTitle", h.SearchTorrents)
}

// SearchTorrents searches the upstream index for an anime title.
// GET /api/torrents/:animeTitle?episode={N|all}&sort={quality|seeds|size_desc|size_asc}
//
// Upstream failures never surface here; the response is always a (possibly
// empty) JSON array unless the request itself is malformed.
func (h *Handlers) SearchTorrents(c echo.Context) error {
	rawTitle := c.Param("animeTitle")
	if decoded, err := url.PathUnescape(rawTitle); err == nil {
		rawTitle = decoded
	}

	selector, err := ParseEpisodeSelector(c.QueryParam("episode"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "episode must be a positive number or \"all\"")
	}

	listings := h.service.Search(c.Request().Context(), rawTitle, selector, SortOption(c.QueryParam("sort")))
	return c.JSON(http.StatusOK, listings)
}
