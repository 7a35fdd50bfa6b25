package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/model"
)

var (
	ErrMenteeNotFound = errors.New("mentee not found")
)

type MenteeRepository interface {
	Create(ctx context.Context, mentee *model.Mentee) error
	ByID(ctx context.Context, id int64) (*model.Mentee, error)
	Search(ctx context.Context, criteria model.MenteeSearchCriteria, paging model.Paging) ([]*model.Mentee, int, error)
	Update(ctx context.Context, mentee *model.Mentee) error
	Delete(ctx context.Context, id int64) error
}

type menteeRepository struct {
	db *sqlx.DB
}

func NewMenteeRepository(db *sqlx.DB) MenteeRepository {
	return &menteeRepository{db: db}
}

func (r *menteeRepository) Create(ctx context.Context, mentee *model.Mentee) error {
	query := `INSERT INTO mentees (first_name, last_name, email, school, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		mentee.FirstName,
		mentee.LastName,
		mentee.Email,
		mentee.School,
		mentee.CreatedAt,
		mentee.UpdatedAt,
	).Scan(&mentee.ID)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateEmail
	}

	return err
}

func (r *menteeRepository) ByID(ctx context.Context, id int64) (*model.Mentee, error) {
	mentee := &model.Mentee{}
	query := `SELECT * FROM mentees WHERE id = $1`

	err := r.db.GetContext(ctx, mentee, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrMenteeNotFound
	}
	if err != nil {
		return nil, err
	}

	return mentee, nil
}

func (r *menteeRepository) Search(ctx context.Context, criteria model.MenteeSearchCriteria, paging model.Paging) ([]*model.Mentee, int, error) {
	conds := &conditions{}
	if criteria.Name != "" {
		conds.addLike("first_name || ' ' || last_name", criteria.Name)
	}

	return search[*model.Mentee](ctx, r.db, "mentees", conds, "last_name ASC, first_name ASC, id ASC", paging)
}

func (r *menteeRepository) Update(ctx context.Context, mentee *model.Mentee) error {
	query := `UPDATE mentees
	          SET first_name = $1, last_name = $2, email = $3, school = $4, updated_at = $5
	          WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		mentee.FirstName,
		mentee.LastName,
		mentee.Email,
		mentee.School,
		mentee.UpdatedAt,
		mentee.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return rowsAffected(result, ErrMenteeNotFound)
}

func (r *menteeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM mentees WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrInUse
		}
		return err
	}

	return rowsAffected(result, ErrMenteeNotFound)
}
