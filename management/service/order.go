package service

import (
	"context"
	"encoding/json"
	"errors"
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

// publicLookupLimit bounds how many orders a plate lookup returns.
const publicLookupLimit = 20

type OrderService interface {
	// ListByPlate is the public lookup: newest orders of the exact plate,
	// without customer contact data.
	ListByPlate(ctx context.Context, plate string) ([]*vo.OrderVo, error)
	Get(ctx context.Context, id string) (*vo.OrderVo, error)
	List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.OrderVo], error)
	Create(ctx context.Context, req *dto.OrderDto) (*vo.OrderVo, error)
	UpdateStatus(ctx context.Context, id string, status string) (*vo.OrderVo, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type orderService struct {
	log   *log.Logger
	repo  *repository.OrderRepository
	cache PlateCache
}

// NewOrderService builds the order service. cache may be nil.
func NewOrderService(db *gorm.DB, cache PlateCache) OrderService {
	if cache == nil {
		cache = noopCache{}
	}
	return &orderService{
		log:   log.GetLogger("order-service"),
		repo:  repository.NewOrderRepository(db),
		cache: cache,
	}
}

func (s *orderService) ListByPlate(ctx context.Context, plate string) ([]*vo.OrderVo, error) {
	if data, ok, err := s.cache.Get(ctx, plate); err != nil {
		s.log.Warn("plate cache read failed", "plate", plate, "err", err)
	} else if ok {
		var cached []*vo.OrderVo
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	orders, err := s.repo.ListByPlate(ctx, plate, publicLookupLimit)
	if err != nil {
		return nil, fmt.Errorf("list orders by plate: %w", err)
	}
	if len(orders) == 0 {
		return nil, terrors.ErrOrderNotFound
	}

	result := make([]*vo.OrderVo, 0, len(orders))
	for _, o := range orders {
		result = append(result, vo.NewOrderVo(o).Public())
	}

	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, plate, data); err != nil {
			s.log.Warn("plate cache write failed", "plate", plate, "err", err)
		}
	}
	return result, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*vo.OrderVo, error) {
	o, err := s.repo.First(ctx, repository.WithID(id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, terrors.ErrOrderNotFound
	}
	return vo.NewOrderVo(o), nil
}

func (s *orderService) List(ctx context.Context, req *dto.PageRequest) (*dto.PageResult[*vo.OrderVo], error) {
	filters := []repository.Scope{
		repository.WithKeyword(req.Search, "plate", "customer_name", "vehicle_model"),
		repository.WithStatus(req.Status),
	}

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	page, size := pageOf(req)
	orders, err := s.repo.Find(ctx, append(filters, repository.Newest(), repository.Paginate(page, size))...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	list := make([]*vo.OrderVo, 0, len(orders))
	for _, o := range orders {
		list = append(list, vo.NewOrderVo(o))
	}
	return &dto.PageResult[*vo.OrderVo]{
		Total:    total,
		Page:     page,
		PageSize: size,
		List:     list,
	}, nil
}

func (s *orderService) Create(ctx context.Context, req *dto.OrderDto) (*vo.OrderVo, error) {
	if strings.TrimSpace(req.Plate) == "" {
		return nil, terrors.ErrPlateRequired
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, terrors.ErrCustomerMissing
	}

	o := &model.Order{
		Plate:        req.Plate,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		VehicleModel: req.VehicleModel,
		Description:  req.Description,
		Status:       model.OrderReceived,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.invalidate(ctx, o.Plate)
	s.log.Info("order created", "id", o.ID, "plate", o.Plate)
	return vo.NewOrderVo(o), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, status string) (*vo.OrderVo, error) {
	st := model.OrderStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: %q", terrors.ErrInvalidStatus, status)
	}

	n, err := s.repo.Update(ctx, map[string]interface{}{"status": st}, repository.WithID(id))
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if n == 0 {
		return nil, terrors.ErrOrderNotFound
	}

	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, o.Plate)
	return o, nil
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	o, err := s.repo.First(ctx, repository.WithID(id))
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return terrors.ErrOrderNotFound
	}

	if _, err := s.repo.Delete(ctx, repository.WithID(id)); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	s.invalidate(ctx, o.Plate)
	return nil
}

func (s *orderService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *orderService) invalidate(ctx context.Context, plate string) {
	if err := s.cache.Delete(ctx, plate); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("plate cache invalidation failed", "plate", plate, "err", err)
	}
}
