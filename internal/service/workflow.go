package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/db"
	"github.com/livingprogress/mentorme/internal/metrics"
	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/repository"
)

// CompletionNotifier is told when a program moves from incomplete to completed.
type CompletionNotifier interface {
	ProgramCompleted(ctx context.Context, program *model.Program) error
}

// GoalWorkflow runs goal mutations together with completion propagation.
//
// Each mutation holds the program's in-process lock and runs the goal write
// and the program read-modify-write in one transaction. On Postgres the
// program row is also locked (SELECT ... FOR UPDATE) so replicas serialize.
type GoalWorkflow struct {
	db          *sqlx.DB
	goals       *GoalService
	programRepo repository.ProgramRepository
	locks       *ProgramLocks
	notifier    CompletionNotifier
	documents   *DocumentService
	now         func() time.Time
}

func NewGoalWorkflow(
	database *sqlx.DB,
	goals *GoalService,
	programRepo repository.ProgramRepository,
	locks *ProgramLocks,
	notifier CompletionNotifier,
	documents *DocumentService,
) *GoalWorkflow {
	return &GoalWorkflow{
		db:          database,
		goals:       goals,
		programRepo: programRepo,
		locks:       locks,
		notifier:    notifier,
		documents:   documents,
		now:         time.Now,
	}
}

func (w *GoalWorkflow) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	err := w.goals.ValidateCreate(goal)
	if err != nil {
		return nil, err
	}

	unlock := w.locks.Lock(goal.ProgramID)
	defer unlock()

	var created *model.Goal
	var transition Transition
	err = db.WithTx(ctx, w.db, func(tx *sqlx.Tx) error {
		var err error
		created, err = w.goals.WithTx(tx).Create(ctx, goal)
		if err != nil {
			return err
		}

		created.Program, transition, err = w.propagate(ctx, tx, created.ProgramID)
		return err
	})
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	metrics.RecordGoalMutation("create")
	w.afterCommit(ctx, created.Program, transition)
	return created, nil
}

// UpdateGoal persists the goal, then recomputes and persists its program.
// The returned goal carries the program with its refreshed completion state.
func (w *GoalWorkflow) UpdateGoal(ctx context.Context, id int64, goal *model.Goal) (*model.Goal, error) {
	err := w.goals.ValidateUpdate(id, goal)
	if err != nil {
		return nil, err
	}

	existing, err := w.goals.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := w.locks.Lock(existing.ProgramID)
	defer unlock()

	var updated *model.Goal
	var transition Transition
	err = db.WithTx(ctx, w.db, func(tx *sqlx.Tx) error {
		var err error
		updated, err = w.goals.WithTx(tx).Update(ctx, id, goal)
		if err != nil {
			return err
		}

		updated.Program, transition, err = w.propagate(ctx, tx, updated.ProgramID)
		return err
	})
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	metrics.RecordGoalMutation("update")
	w.afterCommit(ctx, updated.Program, transition)
	return updated, nil
}

// DeleteGoal removes the goal and recomputes its program. It returns the
// deleted goal with the refreshed program attached. Stored objects of the
// goal's documents are removed once the delete has committed.
func (w *GoalWorkflow) DeleteGoal(ctx context.Context, id int64) (*model.Goal, error) {
	existing, err := w.goals.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := w.locks.Lock(existing.ProgramID)
	defer unlock()

	var deleted *model.Goal
	var documents []*model.Document
	var transition Transition
	err = db.WithTx(ctx, w.db, func(tx *sqlx.Tx) error {
		goals := w.goals.WithTx(tx)

		// The goal row lock holds back new documents until the cascade has run
		_, err := goals.getForUpdate(ctx, id)
		if err != nil {
			return err
		}

		documents, err = w.documents.WithTx(tx).Stored(ctx, id)
		if err != nil {
			return err
		}

		deleted, err = goals.Delete(ctx, id)
		if err != nil {
			return err
		}

		deleted.Program, transition, err = w.propagate(ctx, tx, deleted.ProgramID)
		return err
	})
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	w.documents.RemoveObjects(ctx, documents)
	metrics.RecordGoalMutation("delete")
	w.afterCommit(ctx, deleted.Program, transition)
	return deleted, nil
}

// DeleteProgram removes a program with its goals and documents, then removes
// the documents' stored objects.
func (w *GoalWorkflow) DeleteProgram(ctx context.Context, id int64) error {
	err := validateID(id, "id")
	if err != nil {
		return err
	}

	unlock := w.locks.Lock(id)
	defer unlock()

	var documents []*model.Document
	err = db.WithTx(ctx, w.db, func(tx *sqlx.Tx) error {
		programRepo := w.programRepo.WithTx(tx)

		_, err := programRepo.ByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		err = w.goals.WithTx(tx).lockProgramGoals(ctx, id)
		if err != nil {
			return err
		}

		documents, err = w.documents.WithTx(tx).StoredForProgram(ctx, id)
		if err != nil {
			return err
		}

		return programRepo.Delete(ctx, id)
	})
	if err != nil {
		return wrapRepoErr(err)
	}

	w.documents.RemoveObjects(ctx, documents)
	return nil
}

// Recompute re-runs propagation for a program without touching its goals.
func (w *GoalWorkflow) Recompute(ctx context.Context, programID int64) (*model.Program, error) {
	err := validateID(programID, "id")
	if err != nil {
		return nil, err
	}

	unlock := w.locks.Lock(programID)
	defer unlock()

	var program *model.Program
	var transition Transition
	err = db.WithTx(ctx, w.db, func(tx *sqlx.Tx) error {
		var err error
		program, transition, err = w.propagate(ctx, tx, programID)
		return err
	})
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	w.afterCommit(ctx, program, transition)
	return program, nil
}

// propagate reloads the program's goal set inside tx, evaluates completion
// and persists the result.
func (w *GoalWorkflow) propagate(ctx context.Context, tx *sqlx.Tx, programID int64) (*model.Program, Transition, error) {
	programRepo := w.programRepo.WithTx(tx)

	program, err := programRepo.ByIDForUpdate(ctx, programID)
	if err != nil {
		return nil, TransitionNone, wrapRepoErr(err)
	}

	program.Goals, err = w.goals.WithTx(tx).ProgramGoals(ctx, programID)
	if err != nil {
		return nil, TransitionNone, err
	}

	evaluated, transition := EvaluateCompletion(*program, w.now())

	err = programRepo.UpdateCompletion(ctx, programID, evaluated.Completed, evaluated.CompletedOn)
	if err != nil {
		return nil, TransitionNone, wrapRepoErr(err)
	}

	return &evaluated, transition, nil
}

func (w *GoalWorkflow) afterCommit(ctx context.Context, program *model.Program, transition Transition) {
	if transition == TransitionNone {
		return
	}

	metrics.RecordProgramTransition(transition.String())
	slog.Info("program completion changed", "program_id", program.ID, "transition", transition.String())

	if transition != TransitionCompleted || w.notifier == nil {
		return
	}

	// Notification failures never undo a committed propagation
	err := w.notifier.ProgramCompleted(ctx, program)
	if err != nil {
		slog.Error("failed to send program completion notification", "error", err, "program_id", program.ID)
	}
}
