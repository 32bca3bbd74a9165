package repository

import (
	"strings"

	"gorm.io/gorm"
)

type Scope = func(*gorm.DB) *gorm.DB

func WithID(id string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

// WithPlate matches the plate exactly as given.
func WithPlate(plate string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("plate = ?", plate)
	}
}

func WithStatus(status string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}
}

func WithBudgetID(budgetID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("budget_id = ?", budgetID)
	}
}

// WithKeyword does a LIKE search over the given columns.
func WithKeyword(keyword string, columns ...string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if keyword == "" || len(columns) == 0 {
			return db
		}
		like := "%" + keyword + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			conds[i] = c + " LIKE ?"
			args[i] = like
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

func Newest() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}
}

func Preload(assoc string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(assoc)
	}
}

// Paginate 通用分页 Scope
func Paginate(page, pageSize int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 {
			page = 1
		}

		// cap the page size so one request cannot pull the whole table
		switch {
		case pageSize > 100:
			pageSize = 100
		case pageSize <= 0:
			pageSize = 10
		}

		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}
