package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchResult(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		paging     Paging
		wantPages  int
		wantOffset int
	}{
		{"unpaged", 7, Paging{}, 1, 0},
		{"empty", 0, Paging{PageSize: 5}, 0, 0},
		{"exact", 10, Paging{PageNumber: 1, PageSize: 5}, 2, 5},
		{"remainder", 11, Paging{PageNumber: 2, PageSize: 5}, 3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSearchResult[*Goal](nil, tt.total, tt.paging)
			assert.Equal(t, tt.wantPages, result.TotalPages)
			assert.Equal(t, tt.total, result.Total)
			assert.NotNil(t, result.Entities)
			assert.Equal(t, tt.wantOffset, tt.paging.Offset())
		})
	}
}
