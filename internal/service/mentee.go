package service

import (
	"context"
	"strings"
	"time"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/repository"
	"github.com/livingprogress/mentorme/internal/validation"
)

type MenteeService struct {
	repo repository.MenteeRepository
}

func NewMenteeService(repo repository.MenteeRepository) *MenteeService {
	return &MenteeService{
		repo: repo,
	}
}

func (s *MenteeService) Get(ctx context.Context, id int64) (*model.Mentee, error) {
	err := validateID(id, "id")
	if err != nil {
		return nil, err
	}

	mentee, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return mentee, nil
}

func (s *MenteeService) Create(ctx context.Context, mentee *model.Mentee) (*model.Mentee, error) {
	if mentee == nil {
		return nil, invalidArgument("mentee is required")
	}

	if mentee.ID != 0 {
		return nil, invalidArgument("id must not be set on create")
	}

	normalizeMentee(mentee)
	err := validation.Struct(mentee)
	if err != nil {
		return nil, invalidArgument("%s", err.Error())
	}

	now := time.Now()
	mentee.CreatedAt = now
	mentee.UpdatedAt = now

	err = s.repo.Create(ctx, mentee)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return mentee, nil
}

func (s *MenteeService) Update(ctx context.Context, id int64, mentee *model.Mentee) (*model.Mentee, error) {
	err := validateID(id, "id")
	if err != nil {
		return nil, err
	}

	if mentee == nil {
		return nil, invalidArgument("mentee is required")
	}

	if mentee.ID != id {
		return nil, invalidArgument("mentee id %d does not match path id %d", mentee.ID, id)
	}

	normalizeMentee(mentee)
	err = validation.Struct(mentee)
	if err != nil {
		return nil, invalidArgument("%s", err.Error())
	}

	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	mentee.CreatedAt = existing.CreatedAt
	mentee.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, mentee)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return mentee, nil
}

// Delete fails with ErrInvalidArgument while the mentee still has programs.
func (s *MenteeService) Delete(ctx context.Context, id int64) error {
	err := validateID(id, "id")
	if err != nil {
		return err
	}

	return wrapRepoErr(s.repo.Delete(ctx, id))
}

func (s *MenteeService) Search(ctx context.Context, criteria model.MenteeSearchCriteria, paging model.Paging) (*model.SearchResult[*model.Mentee], error) {
	err := validation.ValidatePaging(paging)
	if err != nil {
		return nil, invalidArgument("%s", err.Error())
	}

	mentees, total, err := s.repo.Search(ctx, criteria, paging)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return model.NewSearchResult(mentees, total, paging), nil
}

func normalizeMentee(mentee *model.Mentee) {
	mentee.FirstName = strings.TrimSpace(mentee.FirstName)
	mentee.LastName = strings.TrimSpace(mentee.LastName)
	mentee.Email = strings.ToLower(strings.TrimSpace(mentee.Email))
}
