package repository

import (
	"context"

	"taller/management/model"

	"gorm.io/gorm"
)

type BudgetRepository struct {
	*BaseRepository[model.Budget]
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{BaseRepository: NewBaseRepository[model.Budget](db)}
}

// Get loads a budget with its items, nil when absent.
func (r *BudgetRepository) Get(ctx context.Context, id string) (*model.Budget, error) {
	return r.First(ctx, WithID(id), func(db *gorm.DB) *gorm.DB {
		return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	})
}

// Remove deletes the budget and its items in one transaction.
func (r *BudgetRepository) Remove(ctx context.Context, id string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", id).Delete(&model.BudgetItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Budget{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}
