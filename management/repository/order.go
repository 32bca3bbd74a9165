package repository

import (
	"context"

	"taller/management/model"

	"gorm.io/gorm"
)

type OrderRepository struct {
	*BaseRepository[model.Order]
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{BaseRepository: NewBaseRepository[model.Order](db)}
}

// ListByPlate returns the orders of a plate, newest first.
func (r *OrderRepository) ListByPlate(ctx context.Context, plate string, limit int) ([]*model.Order, error) {
	return r.Find(ctx, WithPlate(plate), Newest(), func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

type statusCount struct {
	Status string
	Total  int64
}

// CountByStatus groups live orders by status.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(model.OrderStatuses))
	for _, s := range model.OrderStatuses {
		counts[string(s)] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
