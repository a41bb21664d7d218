package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/middleware"
	"github.com/Bey1222/yonk-backend/models"
	"github.com/Bey1222/yonk-backend/services"
)

type SearchController struct {
	svc services.Searcher
	log *zap.Logger

	mu       sync.Mutex
	sessions map[string]*services.SearchSession
}

func NewSearchController(svc services.Searcher, log *zap.Logger) *SearchController {
	return &SearchController{
		svc:      svc,
		log:      log,
		sessions: make(map[string]*services.SearchSession),
	}
}

// session returns the caller's search session, creating it on first use.
// Sessions are per user so one caller's keystrokes never supersede
// another's in-flight search.
func (sc *SearchController) session(userID string) *services.SearchSession {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	s, ok := sc.sessions[userID]
	if !ok {
		s = services.NewSearchSession(sc.svc)
		sc.sessions[userID] = s
	}
	return s
}

// Search handles GET /search?q=&offset=&limit=. The inline page is the
// first 10 results; "see more" re-windows the same ordered sequence via
// offset/limit. A request superseded by a newer one from the same user
// comes back 409 so the client drops it instead of rendering it.
func (sc *SearchController) Search(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	query := c.Query("q")

	results, err := sc.session(userID).Search(c.Request.Context(), query)
	if err != nil {
		sc.respondSearchError(c, err)
		return
	}

	offset := parsePositiveInt(c.Query("offset"), 0)
	limit := parsePositiveInt(c.Query("limit"), services.InlineResultLimit)

	total := len(results)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	window := results[offset:end]
	if window == nil {
		window = []models.SearchResult{}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": window,
		"total":   total,
		"offset":  offset,
		"limit":   limit,
	})
}

func (sc *SearchController) respondSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrStaleSearch):
		c.JSON(http.StatusConflict, gin.H{"error": "search superseded by a newer query"})
	case errors.Is(err, services.ErrNoToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		sc.log.Warn("search unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
	default:
		sc.log.Error("search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
	}
}

func parsePositiveInt(raw string, defaultVal int) int {
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
