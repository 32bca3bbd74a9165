package dto

// PageRequest common paging query.
type PageRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"pageSize" json:"pageSize"`
	Search   string `form:"search" json:"search"`
	Status   string `form:"status" json:"status"`
}

// PageResult generic paging container.
type PageResult[T any] struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	List     []T   `json:"list"`
}
