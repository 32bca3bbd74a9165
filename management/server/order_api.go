package server

import (
	"taller/management/dto"
	"taller/management/server/middleware"

	"github.com/gin-gonic/gin"
)

func (s *Server) orderApi() {
	orderApi := s.Group("/api/v1/orders")
	orderApi.Use(middleware.AuthMiddleware())
	{
		orderApi.GET("", s.listOrders)
		orderApi.POST("", s.createOrder)
		orderApi.GET("/:id", s.getOrder)
		orderApi.PUT("/:id/status", s.updateOrderStatus)
		orderApi.DELETE("/:id", s.deleteOrder)
	}
}

// ordersByPlate is the public repair status lookup.
func (s *Server) ordersByPlate(c *gin.Context) {
	orders, err := s.orderController.ListByPlate(c.Request.Context(), c.Param("plate"))
	if err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteOK(c.JSON, orders)
}

func (s *Server) listOrders(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		WriteBadRequest(c.JSON, err.Error())
		return
	}
	page, err := s.orderController.List(c.Request.Context(), &req)
	if err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteOK(c.JSON, page)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.orderController.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteOK(c.JSON, order)
}

func (s *Server) createOrder(c *gin.Context) {
	var req dto.OrderDto
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteBadRequest(c.JSON, err.Error())
		return
	}
	order, err := s.orderController.Create(c.Request.Context(), &req)
	if err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteCreated(c.JSON, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req dto.StatusDto
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteBadRequest(c.JSON, err.Error())
		return
	}
	order, err := s.orderController.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteOK(c.JSON, order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.orderController.Delete(c.Request.Context(), c.Param("id")); err != nil {
		WriteError(c.JSON, err)
		return
	}
	WriteOK(c.JSON, nil)
}
