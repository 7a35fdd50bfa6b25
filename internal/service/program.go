package service

import (
	"context"
	"time"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/repository"
	"github.com/livingprogress/mentorme/internal/validation"
)

type ProgramService struct {
	repo       repository.ProgramRepository
	goalRepo   repository.GoalRepository
	mentorRepo repository.MentorRepository
	menteeRepo repository.MenteeRepository
}

func NewProgramService(
	repo repository.ProgramRepository,
	goalRepo repository.GoalRepository,
	mentorRepo repository.MentorRepository,
	menteeRepo repository.MenteeRepository,
) *ProgramService {
	return &ProgramService{
		repo:       repo,
		goalRepo:   goalRepo,
		mentorRepo: mentorRepo,
		menteeRepo: menteeRepo,
	}
}

// Get returns the program with its goals.
func (s *ProgramService) Get(ctx context.Context, id int64) (*model.Program, error) {
	err := validateID(id, "id")
	if err != nil {
		return nil, err
	}

	program, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	program.Goals, err = s.goalRepo.ByProgram(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return program, nil
}

// Create stores a new program. A new program has no goals and so starts incomplete.
func (s *ProgramService) Create(ctx context.Context, program *model.Program) (*model.Program, error) {
	if program == nil {
		return nil, invalidArgument("program is required")
	}

	if program.ID != 0 {
		return nil, invalidArgument("id must not be set on create")
	}

	err := s.validate(ctx, program)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	created := &model.Program{
		MentorID:    program.MentorID,
		MenteeID:    program.MenteeID,
		Title:       program.Title,
		Description: program.Description,
		StartDate:   program.StartDate,
		EndDate:     program.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(ctx, created)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	created.Goals = []*model.Goal{}
	return created, nil
}

// Update writes the client-owned fields; completion state in the body is ignored.
func (s *ProgramService) Update(ctx context.Context, id int64, program *model.Program) (*model.Program, error) {
	err := validateID(id, "id")
	if err != nil {
		return nil, err
	}

	if program == nil {
		return nil, invalidArgument("program is required")
	}

	if program.ID != id {
		return nil, invalidArgument("program id %d does not match path id %d", program.ID, id)
	}

	err = s.validate(ctx, program)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	existing.MentorID = program.MentorID
	existing.MenteeID = program.MenteeID
	existing.Title = program.Title
	existing.Description = program.Description
	existing.StartDate = program.StartDate
	existing.EndDate = program.EndDate
	existing.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, existing)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return s.Get(ctx, id)
}

func (s *ProgramService) Search(ctx context.Context, criteria model.ProgramSearchCriteria, paging model.Paging) (*model.SearchResult[*model.Program], error) {
	err := validation.ValidatePaging(paging)
	if err != nil {
		return nil, invalidArgument("%s", err.Error())
	}

	programs, total, err := s.repo.Search(ctx, criteria, paging)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return model.NewSearchResult(programs, total, paging), nil
}

func (s *ProgramService) validate(ctx context.Context, program *model.Program) error {
	err := validation.Struct(program)
	if err != nil {
		return invalidArgument("%s", err.Error())
	}

	if program.StartDate != nil && program.EndDate != nil && program.EndDate.Before(*program.StartDate) {
		return invalidArgument("endDate must not be before startDate")
	}

	_, err = s.mentorRepo.ByID(ctx, program.MentorID)
	if err != nil {
		return wrapRepoErr(err)
	}

	_, err = s.menteeRepo.ByID(ctx, program.MenteeID)
	if err != nil {
		return wrapRepoErr(err)
	}

	return nil
}
