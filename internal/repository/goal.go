package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	WithTx(tx *sqlx.Tx) GoalRepository
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, id int64) (*model.Goal, error)
	ByIDForUpdate(ctx context.Context, id int64) (*model.Goal, error)
	LockByProgram(ctx context.Context, programID int64) error
	ByProgram(ctx context.Context, programID int64) ([]*model.Goal, error)
	Search(ctx context.Context, criteria model.GoalSearchCriteria, paging model.Paging) ([]*model.Goal, int, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, id int64) error
}

type goalRepository struct {
	db sqlx.ExtContext
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) WithTx(tx *sqlx.Tx) GoalRepository {
	return &goalRepository{db: tx}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (program_id, subject, description, completed, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		goal.ProgramID,
		goal.Subject,
		goal.Description,
		goal.Completed,
		goal.CreatedAt,
		goal.UpdatedAt,
	).Scan(&goal.ID)
	if err != nil && isForeignKeyViolation(err) {
		return ErrProgramNotFound
	}

	return err
}

func (r *goalRepository) ByID(ctx context.Context, id int64) (*model.Goal, error) {
	return r.byID(ctx, `SELECT * FROM goals WHERE id = $1`, id)
}

// ByIDForUpdate reads a goal and, on Postgres, row-locks it until the
// surrounding transaction ends. New documents for the goal wait for the lock.
func (r *goalRepository) ByIDForUpdate(ctx context.Context, id int64) (*model.Goal, error) {
	query := `SELECT * FROM goals WHERE id = $1`
	if r.db.DriverName() == "pgx" {
		query += ` FOR UPDATE`
	}
	return r.byID(ctx, query, id)
}

// LockByProgram row-locks every goal of a program on Postgres. SQLite
// serializes writers on its own.
func (r *goalRepository) LockByProgram(ctx context.Context, programID int64) error {
	if r.db.DriverName() != "pgx" {
		return nil
	}

	var ids []int64
	query := `SELECT id FROM goals WHERE program_id = $1 FOR UPDATE`
	return sqlx.SelectContext(ctx, r.db, &ids, query, programID)
}

func (r *goalRepository) byID(ctx context.Context, query string, id int64) (*model.Goal, error) {
	goal := &model.Goal{}

	err := sqlx.GetContext(ctx, r.db, goal, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) ByProgram(ctx context.Context, programID int64) ([]*model.Goal, error) {
	goals := []*model.Goal{}
	query := `SELECT * FROM goals WHERE program_id = $1 ORDER BY id ASC`

	err := sqlx.SelectContext(ctx, r.db, &goals, query, programID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Search(ctx context.Context, criteria model.GoalSearchCriteria, paging model.Paging) ([]*model.Goal, int, error) {
	conds := &conditions{}
	if criteria.ProgramID > 0 {
		conds.add("program_id = $%d", criteria.ProgramID)
	}
	if criteria.Completed != nil {
		conds.add("completed = $%d", *criteria.Completed)
	}
	if criteria.Subject != "" {
		conds.addLike("subject", criteria.Subject)
	}

	return search[*model.Goal](ctx, r.db, "goals", conds, "id ASC", paging)
}

func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	query := `UPDATE goals
	          SET subject = $1, description = $2, completed = $3, updated_at = $4
	          WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		goal.Subject,
		goal.Description,
		goal.Completed,
		goal.UpdatedAt,
		goal.ID,
	)
	if err != nil {
		return err
	}

	return rowsAffected(result, ErrGoalNotFound)
}

func (r *goalRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM goals WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return rowsAffected(result, ErrGoalNotFound)
}
