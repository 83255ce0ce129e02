package app

import (
	"github.com/gin-gonic/gin"

	"github.com/irbrowse/core/internal/modules/browse"
	"github.com/irbrowse/core/internal/modules/health"
	"github.com/irbrowse/core/internal/modules/search"
	"github.com/irbrowse/core/internal/modules/summary"
	"github.com/irbrowse/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	root := r.Group("")
	api := r.Group("/api")

	browseSvc := browse.NewService(a.db)
	browse.NewHandler(browseSvc).RegisterRoutes(root, api)

	searchSvc := search.NewService(a.db, a.cfg.Search.SnippetLength)
	search.NewHandler(searchSvc).RegisterRoutes(api)

	generator := summary.NewOpenAIGenerator(a.cfg.LLM)
	a.cache = summary.NewCache(browseSvc, generator, a.cfg.CacheTTL(), a.logger)
	summary.NewHandler(a.cache).RegisterRoutes(api)

	health.NewHandler(a.db, a.cfg.LLM.BaseURL(), a.sched).RegisterRoutes(root, api)
}
