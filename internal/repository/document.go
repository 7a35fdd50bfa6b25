package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/model"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
)

type DocumentRepository interface {
	WithTx(tx *sqlx.Tx) DocumentRepository
	Create(ctx context.Context, document *model.Document) error
	ByID(ctx context.Context, id int64) (*model.Document, error)
	ByGoal(ctx context.Context, goalID int64) ([]*model.Document, error)
	ByProgram(ctx context.Context, programID int64) ([]*model.Document, error)
	Delete(ctx context.Context, id int64) error
}

type documentRepository struct {
	db sqlx.ExtContext
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) WithTx(tx *sqlx.Tx) DocumentRepository {
	return &documentRepository{db: tx}
}

func (r *documentRepository) Create(ctx context.Context, document *model.Document) error {
	query := `INSERT INTO documents (goal_id, original_name, mime_type, size, storage_path, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		document.GoalID,
		document.OriginalName,
		document.MimeType,
		document.Size,
		document.StoragePath,
		document.CreatedAt,
	).Scan(&document.ID)
	if err != nil && isForeignKeyViolation(err) {
		return ErrGoalNotFound
	}

	return err
}

func (r *documentRepository) ByID(ctx context.Context, id int64) (*model.Document, error) {
	document := &model.Document{}
	query := `SELECT * FROM documents WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, document, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	return document, nil
}

func (r *documentRepository) ByGoal(ctx context.Context, goalID int64) ([]*model.Document, error) {
	documents := []*model.Document{}
	query := `SELECT * FROM documents WHERE goal_id = $1 ORDER BY created_at ASC, id ASC`

	err := sqlx.SelectContext(ctx, r.db, &documents, query, goalID)
	if err != nil {
		return nil, err
	}

	return documents, nil
}

// ByProgram returns the documents of every goal in a program.
func (r *documentRepository) ByProgram(ctx context.Context, programID int64) ([]*model.Document, error) {
	documents := []*model.Document{}
	query := `SELECT d.* FROM documents d
	          JOIN goals g ON g.id = d.goal_id
	          WHERE g.program_id = $1
	          ORDER BY d.id ASC`

	err := sqlx.SelectContext(ctx, r.db, &documents, query, programID)
	if err != nil {
		return nil, err
	}

	return documents, nil
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM documents WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return rowsAffected(result, ErrDocumentNotFound)
}
