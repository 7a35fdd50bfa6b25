package model

import (
	"time"
)

// Program is a mentee-mentor pairing that aggregates goals. Completed and
// CompletedOn are derived from the goal set and never taken from clients.
type Program struct {
	ID          int64      `db:"id" json:"id"`
	MentorID    int64      `db:"mentor_id" json:"mentorId" validate:"gt=0"`
	MenteeID    int64      `db:"mentee_id" json:"menteeId" validate:"gt=0"`
	Title       string     `db:"title" json:"title" validate:"required,max=255"`
	Description string     `db:"description" json:"description" validate:"max=2000"`
	StartDate   *time.Time `db:"start_date" json:"startDate,omitempty"`
	EndDate     *time.Time `db:"end_date" json:"endDate,omitempty"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedOn *time.Time `db:"completed_on" json:"completedOn"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`

	Goals []*Goal `db:"-" json:"goals,omitempty" validate:"-"`
}

type ProgramSearchCriteria struct {
	MentorID  int64
	MenteeID  int64
	Completed *bool
}
