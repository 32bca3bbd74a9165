package server

import (
	"taller/management/dto"
	"taller/management/server/middleware"

	"github.com/gin-gonic/gin"
)

func (s *Server) budgetApi() {
	budgetApi := s.Group("/api/v1/budgets")
	budgetApi.Use(middleware.AuthMiddleware())
	{
		budgetApi.GET("", s.listBudgets)
		budgetApi.POST("", s.createBudget)
		budgetApi.GET("/:id", s.getBudget)
		budgetApi.PUT("/:id/status", s.updateBudgetStatus)
		budgetApi.DELETE("/:id", s.deleteBudget)
	}
}

// publicBudget serves the read-only quote a customer receives by link.
func (s *Server) publicBudget(c *gin.Context) {
	s.getBudget(c)
}

func (s *Server) listBudgets(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		WriteBadRequest(c.JSON, err.Error())
		return
	}
	page, err := s.budgetController.List(c.Request.Context(), &req)
	if err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteOK(c.JSON, page)
}

func (s *Server) getBudget(c *gin.Context) {
	budget, err := s.budgetController.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteOK(c.JSON, budget)
}

func (s *Server) createBudget(c *gin.Context) {
	var req dto.BudgetDto
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteBadRequest(c.JSON, err.Error())
		return
	}
	budget, err := s.budgetController.Create(c.Request.Context(), &req)
	if err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteCreated(c.JSON, budget)
}

func (s *Server) updateBudgetStatus(c *gin.Context) {
	var req dto.StatusDto
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteBadRequest(c.JSON, err.Error())
		return
	}
	budget, err := s.budgetController.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteOK(c.JSON, budget)
}

func (s *Server) deleteBudget(c *gin.Context) {
	if err := s.budgetController.Delete(c.Request.Context(), c.Param("id")); err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteOK(c.JSON, nil)
}
