package model

import (
	"time"
)

type Goal struct {
	ID          int64     `db:"id" json:"id"`
	ProgramID   int64     `db:"program_id" json:"programId" validate:"gt=0"`
	Subject     string    `db:"subject" json:"subject" validate:"required,max=255"`
	Description string    `db:"description" json:"description" validate:"max=2000"`
	Completed   bool      `db:"completed" json:"completed"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	// Program is the owning program; populated after updates so callers can
	// run completion propagation.
	Program *Program `db:"-" json:"program,omitempty" validate:"-"`
}

type GoalSearchCriteria struct {
	ProgramID int64
	Completed *bool
	Subject   string
}
