package model

import (
	"time"
)

type Document struct {
	ID           int64     `db:"id" json:"id"`
	GoalID       int64     `db:"goal_id" json:"goalId"`
	OriginalName string    `db:"original_name" json:"originalName"`
	MimeType     string    `db:"mime_type" json:"mimeType"`
	Size         int64     `db:"size" json:"size"`
	StoragePath  string    `db:"storage_path" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`

	// Computed fields (not in database)
	URL string `db:"-" json:"url,omitempty"`
}
