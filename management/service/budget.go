package service

import (
	"context"
	"fmt"
	"strings"

	"taller/internal/log"
	"taller/management/dto"
	"taller/management/model"
	"taller/management/repository"
	"taller/management/vo"
	"taller/pkg/terrors"

	"gorm.io/gorm"
)

type BudgetService interface {
	Get(ctx context.Context, id string) (*vo.BudgetVo, error)
	List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.BudgetVo], error)
	Create(ctx context.Context, req *dto.BudgetDto) (*vo.BudgetVo, error)
	UpdateStatus(ctx context.Context, id string, status string) (*vo.BudgetVo, error)
	Delete(ctx context.Context, id string) error
}

type budgetService struct {
	log  *log.Logger
	repo *repository.BudgetRepository
}

func NewBudgetService(db *gorm.DB) BudgetService {
	return &budgetService{
		log:  log.GetLogger("budget-service"),
		repo: repository.NewBudgetRepository(db),
	}
}

func (s *budgetService) Get(ctx context.Context, id string) (*vo.BudgetVo, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	if b == nil {
		return nil, terrors.ErrBudgetNotFound
	}
	return vo.NewBudgetVo(b), nil
}

func (s *budgetService) List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.BudgetVo], error) {
	filters := []repository.Scope{
		repository.WithKeyword(req.Search, "plate", "customer_name"),
		repository.WithStatus(req.Status),
	}

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, fmt.Errorf("count budgets: %w", err)
	}

	page, size := pageOf(req)
	budgets, err := s.repo.Find(ctx, append(filters, repository.Preload("Items"), repository.Newest(), repository.Paginate(page, size))...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	list := make([]*vo.BudgetVo, 0, len(budgets))
	for _, b := range budgets {
		list = append(list, vo.NewBudgetVo(b))
	}
	return &dto.PageResult[*vo.BudgetVo]{
		Total:    total,
		Page:     page,
		PageSize: size,
		List:     list,
	}, nil
}

func (s *budgetService) Create(ctx context.Context, req *dto.BudgetDto) (*vo.BudgetVo, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, terrors.ErrCustomerMissing
	}
	if len(req.Items) == 0 {
		return nil, terrors.ErrEmptyBudget
	}

	b := &model.Budget{
		CustomerName: req.CustomerName,
		Plate:        req.Plate,
		Notes:        req.Notes,
		Status:       model.BudgetDraft,
		Items:        make([]model.BudgetItem, 0, len(req.Items)),
	}
	if req.OrderID != "" {
		orderID := req.OrderID
		b.OrderID = &orderID
	}
	for _, it := range req.Items {
		if strings.TrimSpace(it.Description) == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return nil, terrors.ErrInvalidItem
		}
		b.Items = append(b.Items, model.BudgetItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	s.log.Info("budget created", "id", b.ID, "total", b.Total())
	return vo.NewBudgetVo(b), nil
}

func (s *budgetService) UpdateStatus(ctx context.Context, id string, status string) (*vo.BudgetVo, error) {
	st := model.BudgetStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: %q", terrors.ErrInvalidStatus, status)
	}

	n, err := s.repo.Update(ctx, map[string]interface{}{"status": st}, repository.WithID(id))
	if err != nil {
		return nil, fmt.Errorf("update budget status: %w", err)
	}
	if n == 0 {
		return nil, terrors.ErrBudgetNotFound
	}
	return s.Get(ctx, id)
}

func (s *budgetService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n == 0 {
		return terrors.ErrBudgetNotFound
	}
	return nil
}
