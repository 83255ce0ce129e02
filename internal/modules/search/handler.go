package search

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/irbrowse/core/internal/pkg/apperr"
	"github.com/irbrowse/core/internal/pkg/pagination"
	"github.com/irbrowse/core/internal/pkg/response"
)

type Handler struct {
	engine Engine
}

func NewHandler(engine Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
	rg.GET("/available_languages", h.languages)
}

func (h *Handler) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, apperr.E(apperr.KindInvalidQuery, "missing query parameter q"))
		return
	}

	limit := intQuery(c, "num_results", pagination.DefaultSize)
	if limit < 1 {
		limit = pagination.DefaultSize
	}
	if limit > pagination.MaxSize {
		limit = pagination.MaxSize
	}

	offset := intQuery(c, "offset", -1)
	if offset < 0 {
		// page alias used by the result-list UI
		page := intQuery(c, "p", 1)
		if page < 1 {
			page = 1
		}
		offset = (page - 1) * limit
	}

	res, err := h.engine.Search(c.Request.Context(), Request{
		Query:       q,
		Language:    c.Query("language"),
		CorpusNames: c.QueryArray("corpus_name"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) languages(c *gin.Context) {
	response.OK(c, Languages())
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
