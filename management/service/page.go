package service

import "taller/management/dto"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageOf applies the same defaults and caps as repository.Paginate.
func pageOf(req *dto.PageRequest) (page, size int) {
	page, size = req.Page, req.PageSize
	if page <= 0 {
		page = 1
	}
	switch {
	case size > maxPageSize:
		size = maxPageSize
	case size <= 0:
		size = defaultPageSize
	}
	return page, size
}
