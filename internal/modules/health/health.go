package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/irbrowse/core/internal/pkg/cron"
	"github.com/irbrowse/core/internal/pkg/response"
)

var probeClient = &http.Client{Timeout: 5 * time.Second}

type Handler struct {
	db         *gorm.DB
	llmBaseURL string
	sched      *cron.Scheduler
}

func NewHandler(db *gorm.DB, llmBaseURL string, sched *cron.Scheduler) *Handler {
	return &Handler{db: db, llmBaseURL: llmBaseURL, sched: sched}
}

func (h *Handler) RegisterRoutes(root, api *gin.RouterGroup) {
	root.GET("/ready", h.ready)

	api.GET("/jobs", h.jobs)
	api.POST("/jobs/run/:name", h.runJob)
}

// ready reports 200 only once both the database and the text-generation
// service answer.
func (h *Handler) ready(c *gin.Context) {
	ctx := c.Request.Context()
	dbOK := h.pingDB(ctx)
	genOK := h.pingGenerator(ctx)

	status := "ok"
	code := http.StatusOK
	if !dbOK || !genOK {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbOK,
		"generator": genOK,
	})
}

func (h *Handler) pingDB(ctx context.Context) bool {
	sqlDB, err := h.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

func (h *Handler) pingGenerator(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.llmBaseURL+"/models", nil)
	if err != nil {
		return false
	}
	resp, err := probeClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}

func (h *Handler) jobs(c *gin.Context) {
	response.OK(c, h.sched.List())
}

func (h *Handler) runJob(c *gin.Context) {
	if err := h.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.OK(c, gin.H{"message": "job triggered"})
}
