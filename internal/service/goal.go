package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/repository"
	"github.com/livingprogress/mentorme/internal/validation"
)

// GoalService persists individual goals. It does not recompute program
// completion; GoalWorkflow does that after each mutation.
type GoalService struct {
	repo        repository.GoalRepository
	programRepo repository.ProgramRepository
}

func NewGoalService(repo repository.GoalRepository, programRepo repository.ProgramRepository) *GoalService {
	return &GoalService{
		repo:        repo,
		programRepo: programRepo,
	}
}

// WithTx returns a copy bound to tx.
func (s *GoalService) WithTx(tx *sqlx.Tx) *GoalService {
	return &GoalService{
		repo:        s.repo.WithTx(tx),
		programRepo: s.programRepo.WithTx(tx),
	}
}

func (s *GoalService) Get(ctx context.Context, id int64) (*model.Goal, error) {
	err := validateID(id, "id")
	if err != nil {
		return nil, err
	}

	goal, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return goal, nil
}

// getForUpdate reads a goal and row-locks it when the service is bound to a transaction.
func (s *GoalService) getForUpdate(ctx context.Context, id int64) (*model.Goal, error) {
	err := validateID(id, "id")
	if err != nil {
		return nil, err
	}

	goal, err := s.repo.ByIDForUpdate(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return goal, nil
}

func (s *GoalService) lockProgramGoals(ctx context.Context, programID int64) error {
	return wrapRepoErr(s.repo.LockByProgram(ctx, programID))
}

// ValidateCreate checks a create request without touching storage.
func (s *GoalService) ValidateCreate(goal *model.Goal) error {
	if goal == nil {
		return invalidArgument("goal is required")
	}

	if goal.ID != 0 {
		return invalidArgument("id must not be set on create")
	}

	err := validation.Struct(goal)
	if err != nil {
		return invalidArgument("%s", err.Error())
	}

	return nil
}

func (s *GoalService) Create(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	err := s.ValidateCreate(goal)
	if err != nil {
		return nil, err
	}

	_, err = s.programRepo.ByID(ctx, goal.ProgramID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	now := time.Now()
	created := &model.Goal{
		ProgramID:   goal.ProgramID,
		Subject:     goal.Subject,
		Description: goal.Description,
		Completed:   goal.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(ctx, created)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return created, nil
}

// ValidateUpdate checks an update request without touching storage.
func (s *GoalService) ValidateUpdate(id int64, goal *model.Goal) error {
	err := validateID(id, "id")
	if err != nil {
		return err
	}

	if goal == nil {
		return invalidArgument("goal is required")
	}

	if goal.ID != id {
		return invalidArgument("goal id %d does not match path id %d", goal.ID, id)
	}

	// A goal never moves between programs; an omitted programId keeps the current one.
	check := *goal
	if check.ProgramID == 0 {
		check.ProgramID = 1
	}

	err = validation.Struct(&check)
	if err != nil {
		return invalidArgument("%s", err.Error())
	}

	return nil
}

// Update persists the goal and returns it with its owning Program populated,
// including the program's current goal set.
func (s *GoalService) Update(ctx context.Context, id int64, goal *model.Goal) (*model.Goal, error) {
	err := s.ValidateUpdate(id, goal)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	if goal.ProgramID != 0 && goal.ProgramID != existing.ProgramID {
		return nil, invalidArgument("goal cannot move to another program")
	}

	existing.Subject = goal.Subject
	existing.Description = goal.Description
	existing.Completed = goal.Completed
	existing.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, existing)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	program, err := s.programWithGoals(ctx, existing.ProgramID)
	if err != nil {
		return nil, err
	}
	existing.Program = program

	return existing, nil
}

// Delete removes the goal and returns it so callers know which program to propagate.
func (s *GoalService) Delete(ctx context.Context, id int64) (*model.Goal, error) {
	goal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return goal, nil
}

func (s *GoalService) Search(ctx context.Context, criteria model.GoalSearchCriteria, paging model.Paging) (*model.SearchResult[*model.Goal], error) {
	err := validation.ValidatePaging(paging)
	if err != nil {
		return nil, invalidArgument("%s", err.Error())
	}

	if criteria.ProgramID < 0 {
		return nil, invalidArgument("programId must be positive")
	}

	goals, total, err := s.repo.Search(ctx, criteria, paging)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	return model.NewSearchResult(goals, total, paging), nil
}

// ProgramGoals returns the full goal set of a program.
func (s *GoalService) ProgramGoals(ctx context.Context, programID int64) ([]*model.Goal, error) {
	goals, err := s.repo.ByProgram(ctx, programID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	return goals, nil
}

func (s *GoalService) programWithGoals(ctx context.Context, programID int64) (*model.Program, error) {
	program, err := s.programRepo.ByID(ctx, programID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	goals, err := s.ProgramGoals(ctx, programID)
	if err != nil {
		return nil, err
	}
	program.Goals = goals

	return program, nil
}
