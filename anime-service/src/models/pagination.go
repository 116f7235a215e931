package models

type PaginationItems struct {
	Count   int `json:"count"`
	Total   int `json:"total"`
	PerPage int `json:"per_page"`
}

// PaginationMeta describes the page returned by a list endpoint.
type PaginationMeta struct {
	CurrentPage     int             `json:"current_page"`
	LastVisiblePage int             `json:"last_visible_page"`
	HasNextPage     bool            `json:"has_next_page"`
	HasPreviousPage bool            `json:"has_previous_page"`
	Items           PaginationItems `json:"items"`
}

// PaginatedResponse is the envelope of every list endpoint.
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}
