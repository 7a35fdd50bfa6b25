package service

import (
	"context"
	"strings"
	"time"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/repository"
	"github.com/livingprogress/mentorme/internal/validation"
)

type MentorService struct {
	repo repository.MentorRepository
}

func NewMentorService(repo repository.MentorRepository) *MentorService {
	return &MentorService{
		repo: repo,
	}
}

func (s *MentorService) Get(ctx context.Context, id int64) (*model.Mentor, error) {
	err := validateID(id, "id")
	if err != nil {
		return nil, err
	}

	mentor, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return mentor, nil
}

func (s *MentorService) Create(ctx context.Context, mentor *model.Mentor) (*model.Mentor, error) {
	if mentor == nil {
		return nil, invalidArgument("mentor is required")
	}

	if mentor.ID != 0 {
		return nil, invalidArgument("id must not be set on create")
	}

	normalizeMentor(mentor)
	err := validation.Struct(mentor)
	if err != nil {
		return nil, invalidArgument("%s", err.Error())
	}

	now := time.Now()
	mentor.CreatedAt = now
	mentor.UpdatedAt = now

	err = s.repo.Create(ctx, mentor)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return mentor, nil
}

func (s *MentorService) Update(ctx context.Context, id int64, mentor *model.Mentor) (*model.Mentor, error) {
	err := validateID(id, "id")
	if err != nil {
		return nil, err
	}

	if mentor == nil {
		return nil, invalidArgument("mentor is required")
	}

	if mentor.ID != id {
		return nil, invalidArgument("mentor id %d does not match path id %d", mentor.ID, id)
	}

	normalizeMentor(mentor)
	err = validation.Struct(mentor)
	if err != nil {
		return nil, invalidArgument("%s", err.Error())
	}

	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	mentor.CreatedAt = existing.CreatedAt
	mentor.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, mentor)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return mentor, nil
}

// Delete fails with ErrInvalidArgument while the mentor still has programs.
func (s *MentorService) Delete(ctx context.Context, id int64) error {
	err := validateID(id, "id")
	if err != nil {
		return err
	}

	return wrapRepoErr(s.repo.Delete(ctx, id))
}

func (s *MentorService) Search(ctx context.Context, criteria model.MentorSearchCriteria, paging model.Paging) (*model.SearchResult[*model.Mentor], error) {
	err := validation.ValidatePaging(paging)
	if err != nil {
		return nil, invalidArgument("%s", err.Error())
	}

	mentors, total, err := s.repo.Search(ctx, criteria, paging)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return model.NewSearchResult(mentors, total, paging), nil
}

func normalizeMentor(mentor *model.Mentor) {
	mentor.FirstName = strings.TrimSpace(mentor.FirstName)
	mentor.LastName = strings.TrimSpace(mentor.LastName)
	mentor.Email = strings.ToLower(strings.TrimSpace(mentor.Email))
}
