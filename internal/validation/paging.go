package validation

import (
	"errors"
	"math"

	"github.com/livingprogress/mentorme/internal/model"
)

const MaxPageSize = 500

// ValidatePaging rejects a negative page number or a non-positive page size.
// The zero value is accepted and means "all results".
func ValidatePaging(paging model.Paging) error {
	if paging.Unpaged() {
		return nil
	}

	if paging.PageNumber < 0 {
		return errors.New("pageNumber must not be negative")
	}

	if paging.PageSize <= 0 {
		return errors.New("pageSize must be positive")
	}

	if paging.PageSize > MaxPageSize {
		return errors.New("pageSize is too large (max 500)")
	}

	// The row offset is PageNumber*PageSize and must not overflow
	if paging.PageNumber > math.MaxInt/paging.PageSize {
		return errors.New("pageNumber is too large")
	}

	return nil
}
