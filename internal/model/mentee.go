package model

import (
	"time"
)

type Mentee struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"firstName" validate:"required,max=100"`
	LastName  string    `db:"last_name" json:"lastName" validate:"required,max=100"`
	Email     string    `db:"email" json:"email" validate:"required,email,max=254"`
	School    string    `db:"school" json:"school" validate:"max=255"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type MenteeSearchCriteria struct {
	Name string
}
