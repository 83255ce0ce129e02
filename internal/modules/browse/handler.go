package browse

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/irbrowse/core/internal/pkg/pagination"
	"github.com/irbrowse/core/internal/pkg/response"
)

// Browser is the read capability the handler depends on.
type Browser interface {
	ListCorpora(ctx context.Context) ([]Corpus, error)
	ListDatasets(ctx context.Context, corpusName string) ([]Dataset, error)
	PageDocuments(ctx context.Context, corpusName string, p pagination.Params) (pagination.Paginated[Document], error)
	PageQueries(ctx context.Context, corpusName, datasetName string, p pagination.Params) (pagination.Paginated[Query], error)
	PageRelevantQueries(ctx context.Context, corpusName, documentID string, p pagination.Params) (pagination.Paginated[RelevantQuery], error)
	PageRelevantDocuments(ctx context.Context, corpusName, datasetName, queryID string, p pagination.Params) (pagination.Paginated[DocumentWithRelevance], error)
	GetDocument(ctx context.Context, corpusName, documentID string) (*Document, error)
	GetQuery(ctx context.Context, corpusName, datasetName, queryID string) (*Query, error)
}

type Handler struct {
	svc Browser
}

func NewHandler(svc Browser) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the browse endpoints. The corpus overview lives at the
// root for compatibility with the original API surface.
func (h *Handler) RegisterRoutes(root, api *gin.RouterGroup) {
	root.GET("/get_corpora", h.corpora)

	api.GET("/datasets", h.datasets)
	api.GET("/documents", h.documents)
	api.GET("/document", h.document)
	api.GET("/queries", h.queries)
	api.GET("/query", h.query)
	api.GET("/relevant_queries", h.relevantQueries)
	api.GET("/relevant_documents", h.relevantDocuments)
}

func (h *Handler) corpora(c *gin.Context) {
	corpora, err := h.svc.ListCorpora(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, corpora)
}

func (h *Handler) datasets(c *gin.Context) {
	corpusName, ok := requiredQuery(c, "corpus_name")
	if !ok {
		return
	}
	datasets, err := h.svc.ListDatasets(c.Request.Context(), corpusName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, datasets)
}

func (h *Handler) documents(c *gin.Context) {
	corpusName, ok := requiredQuery(c, "corpus_name")
	if !ok {
		return
	}
	page, err := h.svc.PageDocuments(c.Request.Context(), corpusName, pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

func (h *Handler) document(c *gin.Context) {
	corpusName, ok := requiredQuery(c, "corpus_name")
	if !ok {
		return
	}
	documentID, ok := requiredQuery(c, "document_id")
	if !ok {
		return
	}
	doc, err := h.svc.GetDocument(c.Request.Context(), corpusName, documentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, doc)
}

func (h *Handler) queries(c *gin.Context) {
	corpusName, ok := requiredQuery(c, "corpus_name")
	if !ok {
		return
	}
	page, err := h.svc.PageQueries(c.Request.Context(), corpusName, c.Query("dataset_name"), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

func (h *Handler) query(c *gin.Context) {
	corpusName, ok := requiredQuery(c, "corpus_name")
	if !ok {
		return
	}
	datasetName, ok := requiredQuery(c, "dataset_name")
	if !ok {
		return
	}
	queryID, ok := requiredQuery(c, "query_id")
	if !ok {
		return
	}
	q, err := h.svc.GetQuery(c.Request.Context(), corpusName, datasetName, queryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, q)
}

func (h *Handler) relevantQueries(c *gin.Context) {
	corpusName, ok := requiredQuery(c, "corpus_name")
	if !ok {
		return
	}
	documentID, ok := requiredQuery(c, "document_id")
	if !ok {
		return
	}

	p := pagination.FromContext(c)
	if p.OrderBy == "" && c.Query("desc") == "" {
		// judged queries are most useful strongest-first
		p.OrderBy = "relevance"
		p.Desc = true
	}

	page, err := h.svc.PageRelevantQueries(c.Request.Context(), corpusName, documentID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

func (h *Handler) relevantDocuments(c *gin.Context) {
	corpusName, ok := requiredQuery(c, "corpus_name")
	if !ok {
		return
	}
	datasetName, ok := requiredQuery(c, "dataset_name")
	if !ok {
		return
	}
	queryID, ok := requiredQuery(c, "query_id")
	if !ok {
		return
	}

	p := pagination.FromContext(c)
	if p.OrderBy == "" && c.Query("desc") == "" {
		p.OrderBy = "relevance"
		p.Desc = true
	}

	page, err := h.svc.PageRelevantDocuments(c.Request.Context(), corpusName, datasetName, queryID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

func requiredQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		response.BadRequest(c, "missing query parameter "+name)
		return "", false
	}
	return v, true
}
