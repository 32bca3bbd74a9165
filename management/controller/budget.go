package controller

import (
	"context"

	"taller/internal/log"
	"taller/management/dto"
	"taller/management/service"
	"taller/management/vo"
)

type BudgetController interface {
	Get(ctx context.Context, id string) (*vo.BudgetVo, error)
	List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.BudgetVo], error)
	Create(ctx context.Context, req *dto.BudgetDto) (*vo.BudgetVo, error)
	UpdateStatus(ctx context.Context, id string, status string) (*vo.BudgetVo, error)
	Delete(ctx context.Context, id string) error
}

type budgetController struct {
	log           *log.Logger
	budgetService service.BudgetService
}

func NewBudgetController(budgetService service.BudgetService) BudgetController {
	return &budgetController{
		log:           log.GetLogger("budget-controller"),
		budgetService: budgetService,
	}
}

func (b *budgetController) Get(ctx context.Context, id string) (*vo.BudgetVo, error) {
	return b.budgetService.Get(ctx, id)
}

func (b *budgetController) List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.BudgetVo], error) {
	return b.budgetService.List(ctx, req)
}

func (b *budgetController) Create(ctx context.Context, req *dto.BudgetDto) (*vo.BudgetVo, error) {
	return b.budgetService.Create(ctx, req)
}

func (b *budgetController) UpdateStatus(ctx context.Context, id string, status string) (*vo.BudgetVo, error) {
	v, err := b.budgetService.UpdateStatus(ctx, id, status)
	if err == nil {
		b.log.Info("budget status changed", "id", id, "status", status)
	}
	return v, err
}

func (b *budgetController) Delete(ctx context.Context, id string) error {
	if err := b.budgetService.Delete(ctx, id); err != nil {
		return err
	}
	b.log.Info("budget deleted", "id", id)
	return nil
}
