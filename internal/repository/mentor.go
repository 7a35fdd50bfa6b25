package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/model"
)

var (
	ErrMentorNotFound = errors.New("mentor not found")
)

type MentorRepository interface {
	Create(ctx context.Context, mentor *model.Mentor) error
	ByID(ctx context.Context, id int64) (*model.Mentor, error)
	Search(ctx context.Context, criteria model.MentorSearchCriteria, paging model.Paging) ([]*model.Mentor, int, error)
	Update(ctx context.Context, mentor *model.Mentor) error
	Delete(ctx context.Context, id int64) error
}

type mentorRepository struct {
	db *sqlx.DB
}

func NewMentorRepository(db *sqlx.DB) MentorRepository {
	return &mentorRepository{db: db}
}

func (r *mentorRepository) Create(ctx context.Context, mentor *model.Mentor) error {
	query := `INSERT INTO mentors (first_name, last_name, email, company_name, linked_in_url, mentor_type, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		mentor.FirstName,
		mentor.LastName,
		mentor.Email,
		mentor.CompanyName,
		mentor.LinkedInURL,
		mentor.MentorType,
		mentor.CreatedAt,
		mentor.UpdatedAt,
	).Scan(&mentor.ID)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateEmail
	}

	return err
}

func (r *mentorRepository) ByID(ctx context.Context, id int64) (*model.Mentor, error) {
	mentor := &model.Mentor{}
	query := `SELECT * FROM mentors WHERE id = $1`

	err := r.db.GetContext(ctx, mentor, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrMentorNotFound
	}
	if err != nil {
		return nil, err
	}

	return mentor, nil
}

func (r *mentorRepository) Search(ctx context.Context, criteria model.MentorSearchCriteria, paging model.Paging) ([]*model.Mentor, int, error) {
	conds := &conditions{}
	if criteria.Name != "" {
		conds.addLike("first_name || ' ' || last_name", criteria.Name)
	}

	return search[*model.Mentor](ctx, r.db, "mentors", conds, "last_name ASC, first_name ASC, id ASC", paging)
}

func (r *mentorRepository) Update(ctx context.Context, mentor *model.Mentor) error {
	query := `UPDATE mentors
	          SET first_name = $1, last_name = $2, email = $3, company_name = $4, linked_in_url = $5, mentor_type = $6, updated_at = $7
	          WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		mentor.FirstName,
		mentor.LastName,
		mentor.Email,
		mentor.CompanyName,
		mentor.LinkedInURL,
		mentor.MentorType,
		mentor.UpdatedAt,
		mentor.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return rowsAffected(result, ErrMentorNotFound)
}

func (r *mentorRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM mentors WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrInUse
		}
		return err
	}

	return rowsAffected(result, ErrMentorNotFound)
}
