package service

import (
	"errors"
	"fmt"

	"github.com/livingprogress/mentorme/internal/repository"
)

// Error taxonomy surfaced to callers. Handlers map these to status codes.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrOperationFailed = errors.New("operation failed")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// wrapRepoErr classifies a repository error into the service taxonomy.
func wrapRepoErr(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrNotFound), errors.Is(err, ErrOperationFailed):
		return err
	case errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrProgramNotFound),
		errors.Is(err, repository.ErrMentorNotFound),
		errors.Is(err, repository.ErrMenteeNotFound),
		errors.Is(err, repository.ErrDocumentNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repository.ErrDuplicateEmail), errors.Is(err, repository.ErrInUse):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	default:
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}
}

func validateID(id int64, name string) error {
	if id <= 0 {
		return invalidArgument("%s must be positive", name)
	}
	return nil
}
