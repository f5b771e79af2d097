package handler

import "gorm.io/gorm"

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// Paginate counts and fetches one page of T from the given query, oldest
// rows first per the caller's ordering, and wraps the page with its meta.
func Paginate[T any](db *gorm.DB, page, limit int) (*PaginatedResponse[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	var totalItems int64
	if err := db.Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, err
	}

	var results []T
	if err := db.Offset((page - 1) * limit).Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}

	return &PaginatedResponse[T]{
		Data: results,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}, nil
}
