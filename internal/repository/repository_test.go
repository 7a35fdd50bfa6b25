package repository_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/db"
	"github.com/livingprogress/mentorme/internal/db/dbtest"
	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seq atomic.Int64

type fixture struct {
	db       *sqlx.DB
	mentors  repository.MentorRepository
	mentees  repository.MenteeRepository
	programs repository.ProgramRepository
	goals    repository.GoalRepository
	docs     repository.DocumentRepository
}

func newFixture(t *testing.T) *fixture {
	database := dbtest.New(t)
	return &fixture{
		db:       database,
		mentors:  repository.NewMentorRepository(database),
		mentees:  repository.NewMenteeRepository(database),
		programs: repository.NewProgramRepository(database),
		goals:    repository.NewGoalRepository(database),
		docs:     repository.NewDocumentRepository(database),
	}
}

func (f *fixture) program(t *testing.T) *model.Program {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	n := seq.Add(1)

	mentor := &model.Mentor{FirstName: "Grace", LastName: "Hopper", Email: fmt.Sprintf("grace%d@example.com", n), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.mentors.Create(ctx, mentor))

	mentee := &model.Mentee{FirstName: "Ada", LastName: "Lovelace", Email: fmt.Sprintf("ada%d@example.com", n), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.mentees.Create(ctx, mentee))

	program := &model.Program{MentorID: mentor.ID, MenteeID: mentee.ID, Title: "Spring cohort", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.programs.Create(ctx, program))
	return program
}

func (f *fixture) goal(t *testing.T, programID int64, subject string, completed bool) *model.Goal {
	t.Helper()
	now := time.Now()
	goal := &model.Goal{ProgramID: programID, Subject: subject, Completed: completed, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.goals.Create(context.Background(), goal))
	return goal
}

func TestGoalCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.program(t)

	goal := f.goal(t, program.ID, "Read a book", false)
	assert.Positive(t, goal.ID)

	found, err := f.goals.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read a book", found.Subject)
	assert.False(t, found.Completed)

	found.Completed = true
	found.UpdatedAt = time.Now()
	require.NoError(t, f.goals.Update(ctx, found))

	found, err = f.goals.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, found.Completed)

	require.NoError(t, f.goals.Delete(ctx, goal.ID))

	_, err = f.goals.ByID(ctx, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
	assert.ErrorIs(t, f.goals.Delete(ctx, goal.ID), repository.ErrGoalNotFound)
	assert.ErrorIs(t, f.goals.Update(ctx, found), repository.ErrGoalNotFound)
}

func TestGoalCreateUnknownProgram(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	err := f.goals.Create(context.Background(), &model.Goal{ProgramID: 999, Subject: "Orphan", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, repository.ErrProgramNotFound)
}

func TestGoalSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.program(t)
	other := f.program(t)

	f.goal(t, program.ID, "Read a book", true)
	f.goal(t, program.ID, "Write an essay", false)
	f.goal(t, program.ID, "Read 100% of notes", false)
	f.goal(t, other.ID, "Read the news", false)

	goals, total, err := f.goals.Search(ctx, model.GoalSearchCriteria{ProgramID: program.ID}, model.Paging{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, goals, 3)

	completed := false
	goals, total, err = f.goals.Search(ctx, model.GoalSearchCriteria{ProgramID: program.ID, Completed: &completed}, model.Paging{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, goals, 2)

	goals, total, err = f.goals.Search(ctx, model.GoalSearchCriteria{Subject: "READ"}, model.Paging{PageNumber: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, goals, 1)
	assert.Equal(t, "Read the news", goals[0].Subject)

	goals, total, err = f.goals.Search(ctx, model.GoalSearchCriteria{Subject: "100%"}, model.Paging{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, goals, 1)
	assert.Equal(t, "Read 100% of notes", goals[0].Subject)

	goals, total, err = f.goals.Search(ctx, model.GoalSearchCriteria{Subject: "nothing"}, model.Paging{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, goals)
}

func TestGoalsByProgram(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.program(t)

	goals, err := f.goals.ByProgram(ctx, program.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
	assert.NotNil(t, goals)

	first := f.goal(t, program.ID, "First", false)
	second := f.goal(t, program.ID, "Second", true)

	goals, err = f.goals.ByProgram(ctx, program.ID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, first.ID, goals[0].ID)
	assert.Equal(t, second.ID, goals[1].ID)
}

func TestProgramUpdateCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.program(t)

	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.programs.UpdateCompletion(ctx, program.ID, true, &stamp))

	found, err := f.programs.ByID(ctx, program.ID)
	require.NoError(t, err)
	assert.True(t, found.Completed)
	require.NotNil(t, found.CompletedOn)
	assert.True(t, stamp.Equal(*found.CompletedOn))

	require.NoError(t, f.programs.UpdateCompletion(ctx, program.ID, false, nil))

	found, err = f.programs.ByIDForUpdate(ctx, program.ID)
	require.NoError(t, err)
	assert.False(t, found.Completed)
	assert.Nil(t, found.CompletedOn)

	assert.ErrorIs(t, f.programs.UpdateCompletion(ctx, 999, false, nil), repository.ErrProgramNotFound)
}

func TestProgramUpdateLeavesCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.program(t)

	stamp := time.Now()
	require.NoError(t, f.programs.UpdateCompletion(ctx, program.ID, true, &stamp))

	program.Title = "Renamed"
	program.Completed = false
	program.CompletedOn = nil
	program.UpdatedAt = time.Now()
	require.NoError(t, f.programs.Update(ctx, program))

	found, err := f.programs.ByID(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.Title)
	assert.True(t, found.Completed)
	assert.NotNil(t, found.CompletedOn)
}

func TestProgramDeleteCascadesGoals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.program(t)
	goal := f.goal(t, program.ID, "Read", false)

	require.NoError(t, f.programs.Delete(ctx, program.ID))

	_, err := f.goals.ByID(ctx, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestProgramSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.program(t)
	f.program(t)

	programs, total, err := f.programs.Search(ctx, model.ProgramSearchCriteria{MentorID: first.MentorID}, model.Paging{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, programs, 1)
	assert.Equal(t, first.ID, programs[0].ID)

	completed := true
	_, total, err = f.programs.Search(ctx, model.ProgramSearchCriteria{Completed: &completed}, model.Paging{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMentorConstraints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.program(t)

	mentor, err := f.mentors.ByID(ctx, program.MentorID)
	require.NoError(t, err)

	duplicate := *mentor
	duplicate.ID = 0
	assert.ErrorIs(t, f.mentors.Create(ctx, &duplicate), repository.ErrDuplicateEmail)

	assert.ErrorIs(t, f.mentors.Delete(ctx, mentor.ID), repository.ErrInUse)
	assert.ErrorIs(t, f.mentees.Delete(ctx, program.MenteeID), repository.ErrInUse)

	mentors, total, err := f.mentors.Search(ctx, model.MentorSearchCriteria{Name: "grace hop"}, model.Paging{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, mentors, 1)

	require.NoError(t, f.programs.Delete(ctx, program.ID))
	require.NoError(t, f.mentors.Delete(ctx, mentor.ID))
	assert.ErrorIs(t, f.mentors.Delete(ctx, mentor.ID), repository.ErrMentorNotFound)
}

func TestDocuments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.program(t)
	goal := f.goal(t, program.ID, "Read", false)

	document := &model.Document{GoalID: goal.ID, OriginalName: "plan.pdf", MimeType: "application/pdf", Size: 10, StoragePath: "goals/1/a.pdf", CreatedAt: time.Now()}
	require.NoError(t, f.docs.Create(ctx, document))

	documents, err := f.docs.ByGoal(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, "plan.pdf", documents[0].OriginalName)

	orphan := &model.Document{GoalID: 999, OriginalName: "x.pdf", MimeType: "application/pdf", Size: 1, StoragePath: "goals/999/x.pdf", CreatedAt: time.Now()}
	assert.ErrorIs(t, f.docs.Create(ctx, orphan), repository.ErrGoalNotFound)

	require.NoError(t, f.goals.Delete(ctx, goal.ID))
	_, err = f.docs.ByID(ctx, document.ID)
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
}

func TestDocumentsByProgram(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.program(t)
	other := f.program(t)

	for i, goal := range []*model.Goal{
		f.goal(t, program.ID, "Read", false),
		f.goal(t, program.ID, "Write", false),
		f.goal(t, other.ID, "Practice", false),
	} {
		document := &model.Document{GoalID: goal.ID, OriginalName: "notes.txt", MimeType: "text/plain; charset=utf-8", Size: 5, StoragePath: fmt.Sprintf("goals/%d/%d.txt", goal.ID, i), CreatedAt: time.Now()}
		require.NoError(t, f.docs.Create(ctx, document))
	}

	documents, err := f.docs.ByProgram(ctx, program.ID)
	require.NoError(t, err)
	assert.Len(t, documents, 2)

	require.NoError(t, f.goals.LockByProgram(ctx, program.ID))

	err = db.WithTx(ctx, f.db, func(tx *sqlx.Tx) error {
		locked, err := f.goals.WithTx(tx).ByIDForUpdate(ctx, documents[0].GoalID)
		require.NoError(t, err)
		assert.Equal(t, program.ID, locked.ProgramID)

		inTx, err := f.docs.WithTx(tx).ByProgram(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, inTx, 1)
		return nil
	})
	require.NoError(t, err)

	_, err = f.goals.ByIDForUpdate(ctx, 999999)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}
