package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/db/dbtest"
	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/repository"
	"github.com/stretchr/testify/require"
)

var seq atomic.Int64

type recordingNotifier struct {
	mu        sync.Mutex
	completed []int64
}

func (n *recordingNotifier) ProgramCompleted(_ context.Context, program *model.Program) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, program.ID)
	return nil
}

func (n *recordingNotifier) calls() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int64{}, n.completed...)
}

type testEnv struct {
	db       *sqlx.DB
	goals    *GoalService
	programs *ProgramService
	mentors  *MentorService
	mentees  *MenteeService
	workflow  *GoalWorkflow
	notifier  *recordingNotifier
	documents *DocumentService
	storage   *memoryStorage

	goalRepo    repository.GoalRepository
	programRepo repository.ProgramRepository
	mentorRepo  repository.MentorRepository
	menteeRepo  repository.MenteeRepository
	docRepo     repository.DocumentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := dbtest.New(t)
	goalRepo := repository.NewGoalRepository(database)
	programRepo := repository.NewProgramRepository(database)
	mentorRepo := repository.NewMentorRepository(database)
	menteeRepo := repository.NewMenteeRepository(database)

	docRepo := repository.NewDocumentRepository(database)

	goals := NewGoalService(goalRepo, programRepo)
	notifier := &recordingNotifier{}
	store := newMemoryStorage()
	documents := NewDocumentService(docRepo, goalRepo, store, 0)

	return &testEnv{
		db:          database,
		goals:       goals,
		programs:    NewProgramService(programRepo, goalRepo, mentorRepo, menteeRepo),
		mentors:     NewMentorService(mentorRepo),
		mentees:     NewMenteeService(menteeRepo),
		workflow:    NewGoalWorkflow(database, goals, programRepo, NewProgramLocks(), notifier, documents),
		notifier:    notifier,
		documents:   documents,
		storage:     store,
		goalRepo:    goalRepo,
		programRepo: programRepo,
		mentorRepo:  mentorRepo,
		menteeRepo:  menteeRepo,
		docRepo:     docRepo,
	}
}

func (e *testEnv) program(t *testing.T) *model.Program {
	t.Helper()
	ctx := context.Background()
	n := seq.Add(1)

	mentor, err := e.mentors.Create(ctx, &model.Mentor{FirstName: "Grace", LastName: "Hopper", Email: fmt.Sprintf("grace%d@example.com", n)})
	require.NoError(t, err)

	mentee, err := e.mentees.Create(ctx, &model.Mentee{FirstName: "Ada", LastName: "Lovelace", Email: fmt.Sprintf("ada%d@example.com", n)})
	require.NoError(t, err)

	program, err := e.programs.Create(ctx, &model.Program{MentorID: mentor.ID, MenteeID: mentee.ID, Title: "Spring cohort"})
	require.NoError(t, err)
	return program
}

func (e *testEnv) goal(t *testing.T, programID int64, subject string, completed bool) *model.Goal {
	t.Helper()
	goal, err := e.workflow.CreateGoal(context.Background(), &model.Goal{ProgramID: programID, Subject: subject, Completed: completed})
	require.NoError(t, err)
	return goal
}

func (e *testEnv) reload(t *testing.T, programID int64) *model.Program {
	t.Helper()
	program, err := e.programs.Get(context.Background(), programID)
	require.NoError(t, err)
	return program
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
