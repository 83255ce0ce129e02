package summary

import (
	"github.com/gin-gonic/gin"

	"github.com/irbrowse/core/internal/pkg/response"
)

type Handler struct {
	cache *Cache
}

func NewHandler(cache *Cache) *Handler {
	return &Handler{cache: cache}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/document_summary", h.summary)
}

func (h *Handler) summary(c *gin.Context) {
	corpusName := c.Query("corpus_name")
	documentID := c.Query("document_id")
	if corpusName == "" || documentID == "" {
		response.BadRequest(c, "corpus_name and document_id are required")
		return
	}

	text, err := h.cache.GetSummary(c.Request.Context(), corpusName, documentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"summary": text})
}
