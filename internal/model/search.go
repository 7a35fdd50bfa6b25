package model

// Paging selects one page of a search. A zero value means "all results".
type Paging struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

func (p Paging) Unpaged() bool {
	return p.PageNumber == 0 && p.PageSize == 0
}

func (p Paging) Offset() int {
	return p.PageNumber * p.PageSize
}

type SearchResult[T any] struct {
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Entities   []T `json:"entities"`
}

// NewSearchResult computes the page count for total matches under paging.
func NewSearchResult[T any](entities []T, total int, paging Paging) *SearchResult[T] {
	if entities == nil {
		entities = []T{}
	}

	totalPages := 1
	if !paging.Unpaged() && paging.PageSize > 0 {
		totalPages = (total + paging.PageSize - 1) / paging.PageSize
	}
	if total == 0 {
		totalPages = 0
	}

	return &SearchResult[T]{
		Total:      total,
		TotalPages: totalPages,
		Entities:   entities,
	}
}
