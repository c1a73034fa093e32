package models

import (
	"encoding/json"
	"time"
)

// Submission status values. Transitions between them are enforced by
// services.CanTransition.
const (
	StatusSubmitted         = "submitted"
	StatusUnderReview       = "under_review"
	StatusRevisionsRequired = "revisions_required"
	StatusAccepted          = "accepted"
	StatusRejected          = "rejected"
	StatusPublished         = "published"
)

type Submission struct {
	SubmissionID   int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	Title          string     `gorm:"column:title" json:"title"`
	Abstract       string     `gorm:"column:abstract;type:text" json:"abstract"`
	Keywords       string     `gorm:"column:keywords" json:"-"`   // JSON array
	CoAuthors      string     `gorm:"column:co_authors" json:"-"` // JSON array
	AuthorID       int        `gorm:"column:author_id" json:"author_id"`
	FileID         int        `gorm:"column:file_id" json:"file_id"`
	Status         string     `gorm:"column:status" json:"status"`
	EditorComments *string    `gorm:"column:editor_comments" json:"editor_comments,omitempty"`
	SubmittedAt    time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Author     *User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Manuscript *FileUpload `gorm:"foreignKey:FileID" json:"manuscript,omitempty"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

// KeywordList decodes the stored keywords JSON array.
func (s *Submission) KeywordList() []string {
	return decodeStringList(s.Keywords)
}

// CoAuthorList decodes the stored co-authors JSON array.
func (s *Submission) CoAuthorList() []string {
	return decodeStringList(s.CoAuthors)
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	return items
}

// EncodeStringList stores a string slice as a JSON array column value.
func EncodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// MarshalJSON exposes keywords and co_authors as arrays instead of the raw
// JSON column text.
func (s Submission) MarshalJSON() ([]byte, error) {
	type alias Submission
	return json.Marshal(struct {
		alias
		Keywords  []string `json:"keywords"`
		CoAuthors []string `json:"co_authors"`
	}{
		alias:     alias(s),
		Keywords:  s.KeywordList(),
		CoAuthors: s.CoAuthorList(),
	})
}
