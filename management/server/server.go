// Copyright 2026 The Taller Authors, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"

	"taller/internal/config"
	"taller/internal/log"
	"taller/management/controller"
	"taller/management/server/middleware"
	"taller/management/service"
	"taller/management/web"
	"taller/management/web/admin"
	"taller/pkg/loop"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// Server is the main server struct.
type Server struct {
	*gin.Engine
	logger *log.Logger
	cfg    *config.Config

	registry *prometheus.Registry
	loop     *loop.TaskLoop
	pages    *web.App

	orderController  controller.OrderController
	budgetController controller.BudgetController
}

// ServerConfig is the server configuration. The controllers are built
// from DB unless given explicitly.
type ServerConfig struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Cache service.PlateCache

	OrderController  controller.OrderController
	BudgetController controller.BudgetController

	// Registry receives the HTTP metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// NewServer creates a new server.
func NewServer(cfg *ServerConfig) (*Server, error) {
	logger := log.GetLogger("management")

	if cfg.Cfg == nil {
		return nil, errors.New("server: missing config")
	}

	s := &Server{
		logger:           logger,
		cfg:              cfg.Cfg,
		registry:         cfg.Registry,
		orderController:  cfg.OrderController,
		budgetController: cfg.BudgetController,
	}

	if s.orderController == nil || s.budgetController == nil {
		if cfg.DB == nil {
			return nil, errors.New("server: a database is required to build the controllers")
		}
		if s.orderController == nil {
			s.orderController = controller.NewOrderController(service.NewOrderService(cfg.DB, cfg.Cache))
		}
		if s.budgetController == nil {
			s.budgetController = controller.NewBudgetController(service.NewBudgetService(cfg.DB))
		}
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	s.loop = loop.NewTaskLoop(1)
	s.loop.OnError = func(err error) {
		logger.Error("background task failed", err)
	}

	pages, err := web.NewApp(&web.Options{
		Orders:  s.orderController,
		Budgets: s.budgetController,
		Admin: admin.NewLoader(&admin.Deps{
			Orders:  s.orderController,
			Budgets: s.budgetController,
		}),
		Loop: s.loop,
	})
	if err != nil {
		logger.Error("init pages failed", err)
		return nil, err
	}
	s.pages = pages

	// http
	s.Engine = gin.New()
	// route on the escaped path so an encoded "/" stays inside a path
	// value; values are unescaped before handlers see them
	s.UseRawPath = true
	s.RedirectTrailingSlash = false
	if gin.Mode() == gin.DebugMode {
		s.Use(gin.Logger())
	}
	// metrics sits outside Recovery so panics are counted as 500s
	if s.cfg.Metrics.Enabled {
		s.Use(middleware.NewMetrics(s.registry).Handler())
	}
	s.Use(gin.Recovery(), middleware.RequestID(), middleware.CORSMiddleware())

	s.apiRouter()
	s.pages.Register(s.Engine)

	return s, nil
}

// Start mounts the pages and blocks until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.pages.Mount()
	<-ctx.Done()
	s.loop.Stop()
	return nil
}

// Registry exposes the metrics registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Orders exposes the order controller to background jobs.
func (s *Server) Orders() controller.OrderController {
	return s.orderController
}
