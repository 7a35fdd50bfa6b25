package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/model"
)

var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrInUse          = errors.New("entity is still referenced")
)

// conditions accumulates WHERE clauses with positional $N placeholders.
type conditions struct {
	clauses []string
	args    []any
}

// add appends a clause; clause must contain a single %d for the placeholder index.
func (c *conditions) add(clause string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(clause, len(c.args)))
}

// addLike matches column case-insensitively against a substring.
func (c *conditions) addLike(column, substring string) {
	pattern := "%" + escapeLike(strings.ToLower(substring)) + "%"
	c.add("LOWER("+column+`) LIKE $%d ESCAPE '\'`, pattern)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// page returns the LIMIT/OFFSET suffix and its arguments.
func (c *conditions) page(paging model.Paging) (string, []any) {
	if paging.Unpaged() {
		return "", c.args
	}
	n := len(c.args)
	args := append(append([]any{}, c.args...), paging.PageSize, paging.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// search runs a count and a paged select against table.
func search[T any](ctx context.Context, q sqlx.QueryerContext, table string, conds *conditions, orderBy string, paging model.Paging) ([]T, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM ` + table + conds.where()
	err := sqlx.GetContext(ctx, q, &total, countQuery, conds.args...)
	if err != nil {
		return nil, 0, err
	}

	var entities []T
	if total == 0 {
		return entities, 0, nil
	}

	suffix, args := conds.page(paging)
	query := `SELECT * FROM ` + table + conds.where() + ` ORDER BY ` + orderBy + suffix
	err = sqlx.SelectContext(ctx, q, &entities, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// rowsAffected returns notFound when a write matched no rows.
func rowsAffected(result interface{ RowsAffected() (int64, error) }, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return notFound
	}

	return nil
}

// Constraint checks work for both SQLite and PostgreSQL
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
