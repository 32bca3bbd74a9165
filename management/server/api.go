package server

import (
	"taller/management/server/middleware"
	"taller/pkg/version"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) apiRouter() {
	r := s.Engine

	r.GET("/healthz", func(c *gin.Context) {
		WriteOK(c.JSON, "ok")
	})
	r.GET("/version", func(c *gin.Context) {
		WriteOK(c.JSON, version.Get())
	})
	if s.cfg.Metrics.Enabled {
		path := s.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	public := r.Group("/public")
	public.Use(middleware.AuthMiddleware())
	{
		// the plate is handed on exactly as it arrived
		public.Group("/orders").GET("/by-plate/:plate", s.ordersByPlate)
		public.Group("/budgets").GET("/:id", s.publicBudget)
	}

	s.orderApi()
	s.budgetApi()
}
