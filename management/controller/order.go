package controller

import (
	"context"

	"taller/internal/log"
	"taller/management/dto"
	"taller/management/service"
	"taller/management/vo"
)

type OrderController interface {
	ListByPlate(ctx context.Context, plate string) ([]*vo.OrderVo, error)
	Get(ctx context.Context, id string) (*vo.OrderVo, error)
	List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.OrderVo], error)
	Create(ctx context.Context, req *dto.OrderDto) (*vo.OrderVo, error)
	UpdateStatus(ctx context.Context, id string, status string) (*vo.OrderVo, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type orderController struct {
	log          *log.Logger
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) OrderController {
	return &orderController{
		log:          log.GetLogger("order-controller"),
		orderService: orderService,
	}
}

func (o *orderController) ListByPlate(ctx context.Context, plate string) ([]*vo.OrderVo, error) {
	return o.orderService.ListByPlate(ctx, plate)
}

func (o *orderController) Get(ctx context.Context, id string) (*vo.OrderVo, error) {
	return o.orderService.Get(ctx, id)
}

func (o *orderController) List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.OrderVo], error) {
	return o.orderService.List(ctx, req)
}

func (o *orderController) Create(ctx context.Context, req *dto.OrderDto) (*vo.OrderVo, error) {
	return o.orderService.Create(ctx, req)
}

func (o *orderController) UpdateStatus(ctx context.Context, id string, status string) (*vo.OrderVo, error) {
	v, err := o.orderService.UpdateStatus(ctx, id, status)
	if err == nil {
		o.log.Info("order status changed", "id", id, "status", status)
	}
	return v, err
}

func (o *orderController) Delete(ctx context.Context, id string) error {
	if err := o.orderService.Delete(ctx, id); err != nil {
		return err
	}
	o.log.Info("order deleted", "id", id)
	return nil
}

func (o *orderController) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return o.orderService.CountByStatus(ctx)
}
