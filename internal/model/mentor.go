package model

import (
	"time"
)

const (
	MentorTypeMale   = "male_mentor"
	MentorTypeFemale = "female_mentor"
	MentorTypeOther  = "other"
)

type Mentor struct {
	ID          int64     `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"firstName" validate:"required,max=100"`
	LastName    string    `db:"last_name" json:"lastName" validate:"required,max=100"`
	Email       string    `db:"email" json:"email" validate:"required,email,max=254"`
	CompanyName string    `db:"company_name" json:"companyName" validate:"max=255"`
	LinkedInURL string    `db:"linked_in_url" json:"linkedInUrl" validate:"omitempty,url,max=2048"`
	MentorType  string    `db:"mentor_type" json:"mentorType" validate:"omitempty,oneof=male_mentor female_mentor other"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type MentorSearchCriteria struct {
	Name string
}
