package service

import (
	"context"
	"testing"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A GoalService without repositories panics on any persistence call, so a
// returned error proves validation ran first.
func TestGoalUpdateRejectsBeforePersistence(t *testing.T) {
	s := NewGoalService(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		id   int64
		goal *model.Goal
	}{
		{"zero id", 0, &model.Goal{ID: 0, ProgramID: 1, Subject: "Read"}},
		{"negative id", -3, &model.Goal{ID: -3, ProgramID: 1, Subject: "Read"}},
		{"nil goal", 1, nil},
		{"mismatched id", 1, &model.Goal{ID: 2, ProgramID: 1, Subject: "Read"}},
		{"invalid body", 1, &model.Goal{ID: 1, ProgramID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Update(ctx, tt.id, tt.goal)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestWorkflowUpdateRejectsBeforePersistence(t *testing.T) {
	w := NewGoalWorkflow(nil, NewGoalService(nil, nil), nil, NewProgramLocks(), nil, nil)

	_, err := w.UpdateGoal(context.Background(), 0, &model.Goal{Subject: "Read"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGoalGetAndDeleteValidateID(t *testing.T) {
	s := NewGoalService(nil, nil)

	_, err := s.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Delete(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGoalCreateValidation(t *testing.T) {
	s := NewGoalService(nil, nil)

	_, err := s.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Create(context.Background(), &model.Goal{ID: 5, ProgramID: 1, Subject: "Read"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Create(context.Background(), &model.Goal{ProgramID: 1})
	assert.EqualError(t, err, "invalid argument: subject is required")
}

func TestGoalUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.goals.Update(context.Background(), 404, &model.Goal{ID: 404, Subject: "Missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalCreateUnknownProgram(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.goals.Create(context.Background(), &model.Goal{ProgramID: 404, Subject: "Orphan"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalUpdatePopulatesProgram(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	program := env.program(t)
	goal := env.goal(t, program.ID, "Read", false)
	env.goal(t, program.ID, "Write", true)

	updated, err := env.goals.Update(ctx, goal.ID, &model.Goal{ID: goal.ID, Subject: "Read twice", Completed: true})
	require.NoError(t, err)

	assert.Equal(t, "Read twice", updated.Subject)
	assert.Equal(t, program.ID, updated.ProgramID)
	require.NotNil(t, updated.Program)
	assert.Equal(t, program.ID, updated.Program.ID)
	assert.Len(t, updated.Program.Goals, 2)

	// GoalService alone does not propagate completion
	assert.False(t, env.reload(t, program.ID).Completed)
}

func TestGoalUpdateCannotMovePrograms(t *testing.T) {
	env := newTestEnv(t)
	program := env.program(t)
	other := env.program(t)
	goal := env.goal(t, program.ID, "Read", false)

	_, err := env.goals.Update(context.Background(), goal.ID, &model.Goal{ID: goal.ID, ProgramID: other.ID, Subject: "Read"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGoalSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	program := env.program(t)
	env.goal(t, program.ID, "Read", false)
	env.goal(t, program.ID, "Write", true)
	env.goal(t, program.ID, "Speak", false)

	result, err := env.goals.Search(ctx, model.GoalSearchCriteria{ProgramID: program.ID}, model.Paging{PageNumber: 0, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.TotalPages)
	assert.Len(t, result.Entities, 2)

	_, err = env.goals.Search(ctx, model.GoalSearchCriteria{}, model.Paging{PageNumber: -1, PageSize: 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
