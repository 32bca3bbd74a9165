package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type BaseRepository[T any] struct {
	db *gorm.DB
}

func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

// Find 自动返回 []*T
func (r *BaseRepository[T]) Find(ctx context.Context, scopes ...Scope) ([]*T, error) {
	var results []*T
	err := r.db.WithContext(ctx).Scopes(scopes...).Find(&results).Error
	return results, err
}

// First returns nil, nil when nothing matches.
func (r *BaseRepository[T]) First(ctx context.Context, scopes ...Scope) (*T, error) {
	var result T
	err := r.db.WithContext(ctx).Scopes(scopes...).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *BaseRepository[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var total int64
	var model T
	err := r.db.WithContext(ctx).Model(&model).Scopes(scopes...).Count(&total).Error
	return total, err
}

// WithTransaction runs fn with a repository bound to the transaction.
func (r *BaseRepository[T]) WithTransaction(ctx context.Context, fn func(txRepo *BaseRepository[T]) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BaseRepository[T]{db: tx})
	})
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Update writes the given columns on the rows matched by scopes and
// returns the number of rows affected.
func (r *BaseRepository[T]) Update(ctx context.Context, values map[string]interface{}, scopes ...Scope) (int64, error) {
	var model T
	res := r.db.WithContext(ctx).Model(&model).Scopes(scopes...).Updates(values)
	return res.RowsAffected, res.Error
}

// GetByID returns gorm.ErrRecordNotFound when the id does not exist.
func (r *BaseRepository[T]) GetByID(ctx context.Context, id interface{}, preloads ...string) (*T, error) {
	var result T
	db := r.db.WithContext(ctx)
	for _, p := range preloads {
		db = db.Preload(p)
	}
	if err := db.Where("id = ?", id).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete 批量删除, returns rows affected.
func (r *BaseRepository[T]) Delete(ctx context.Context, scopes ...Scope) (int64, error) {
	var model T
	res := r.db.WithContext(ctx).Scopes(scopes...).Delete(&model)
	return res.RowsAffected, res.Error
}
