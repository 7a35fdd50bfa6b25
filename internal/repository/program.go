package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/model"
)

var (
	ErrProgramNotFound = errors.New("program not found")
)

type ProgramRepository interface {
	WithTx(tx *sqlx.Tx) ProgramRepository
	Create(ctx context.Context, program *model.Program) error
	ByID(ctx context.Context, id int64) (*model.Program, error)
	ByIDForUpdate(ctx context.Context, id int64) (*model.Program, error)
	Search(ctx context.Context, criteria model.ProgramSearchCriteria, paging model.Paging) ([]*model.Program, int, error)
	Update(ctx context.Context, program *model.Program) error
	UpdateCompletion(ctx context.Context, id int64, completed bool, completedOn *time.Time) error
	Delete(ctx context.Context, id int64) error
}

type programRepository struct {
	db sqlx.ExtContext
}

func NewProgramRepository(db *sqlx.DB) ProgramRepository {
	return &programRepository{db: db}
}

func (r *programRepository) WithTx(tx *sqlx.Tx) ProgramRepository {
	return &programRepository{db: tx}
}

func (r *programRepository) Create(ctx context.Context, program *model.Program) error {
	query := `INSERT INTO programs (mentor_id, mentee_id, title, description, start_date, end_date, completed, completed_on, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		program.MentorID,
		program.MenteeID,
		program.Title,
		program.Description,
		program.StartDate,
		program.EndDate,
		program.Completed,
		program.CompletedOn,
		program.CreatedAt,
		program.UpdatedAt,
	).Scan(&program.ID)

	return err
}

func (r *programRepository) ByID(ctx context.Context, id int64) (*model.Program, error) {
	return r.byID(ctx, `SELECT * FROM programs WHERE id = $1`, id)
}

// ByIDForUpdate reads a program and, on Postgres, row-locks it until the
// surrounding transaction ends. SQLite serializes writers on its own.
func (r *programRepository) ByIDForUpdate(ctx context.Context, id int64) (*model.Program, error) {
	query := `SELECT * FROM programs WHERE id = $1`
	if r.db.DriverName() == "pgx" {
		query += ` FOR UPDATE`
	}
	return r.byID(ctx, query, id)
}

func (r *programRepository) byID(ctx context.Context, query string, id int64) (*model.Program, error) {
	program := &model.Program{}

	err := sqlx.GetContext(ctx, r.db, program, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, err
	}

	return program, nil
}

func (r *programRepository) Search(ctx context.Context, criteria model.ProgramSearchCriteria, paging model.Paging) ([]*model.Program, int, error) {
	conds := &conditions{}
	if criteria.MentorID > 0 {
		conds.add("mentor_id = $%d", criteria.MentorID)
	}
	if criteria.MenteeID > 0 {
		conds.add("mentee_id = $%d", criteria.MenteeID)
	}
	if criteria.Completed != nil {
		conds.add("completed = $%d", *criteria.Completed)
	}

	return search[*model.Program](ctx, r.db, "programs", conds, "id ASC", paging)
}

// Update writes the client-owned fields. Completion is written only by UpdateCompletion.
func (r *programRepository) Update(ctx context.Context, program *model.Program) error {
	query := `UPDATE programs
	          SET mentor_id = $1, mentee_id = $2, title = $3, description = $4, start_date = $5, end_date = $6, updated_at = $7
	          WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		program.MentorID,
		program.MenteeID,
		program.Title,
		program.Description,
		program.StartDate,
		program.EndDate,
		program.UpdatedAt,
		program.ID,
	)
	if err != nil {
		return err
	}

	return rowsAffected(result, ErrProgramNotFound)
}

func (r *programRepository) UpdateCompletion(ctx context.Context, id int64, completed bool, completedOn *time.Time) error {
	query := `UPDATE programs
	          SET completed = $1, completed_on = $2, updated_at = $3
	          WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, completed, completedOn, time.Now(), id)
	if err != nil {
		return err
	}

	return rowsAffected(result, ErrProgramNotFound)
}

func (r *programRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM programs WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return rowsAffected(result, ErrProgramNotFound)
}
