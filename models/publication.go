package models

import (
	"encoding/json"
	"time"
)

// Volume groups the issues published in one year.
type Volume struct {
	VolumeID     int        `gorm:"primaryKey;column:volume_id" json:"volume_id"`
	VolumeNumber int        `gorm:"column:volume_number;unique" json:"volume_number"`
	Year         int        `gorm:"column:year" json:"year"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`

	Issues []Issue `gorm:"foreignKey:VolumeID" json:"issues,omitempty"`
}

type Issue struct {
	IssueID     int        `gorm:"primaryKey;column:issue_id" json:"issue_id"`
	VolumeID    int        `gorm:"column:volume_id;uniqueIndex:idx_volume_issue" json:"volume_id"`
	IssueNumber int        `gorm:"column:issue_number;uniqueIndex:idx_volume_issue" json:"issue_number"`
	Description string     `gorm:"column:description" json:"description"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`

	Volume   *Volume   `gorm:"foreignKey:VolumeID" json:"volume,omitempty"`
	Articles []Article `gorm:"foreignKey:IssueID" json:"articles,omitempty"`
}

// Article is the published form of an accepted submission. Bibliographic
// fields are copied at publish time so later edits to the submission do not
// change the public record.
type Article struct {
	ArticleID      int       `gorm:"primaryKey;column:article_id" json:"article_id"`
	IssueID        int       `gorm:"column:issue_id" json:"issue_id"`
	SubmissionID   int       `gorm:"column:submission_id;unique" json:"submission_id"`
	Title          string    `gorm:"column:title" json:"title"`
	Abstract       string    `gorm:"column:abstract;type:text" json:"abstract"`
	Authors        string    `gorm:"column:authors" json:"-"`  // JSON array
	Keywords       string    `gorm:"column:keywords" json:"-"` // JSON array
	ManuscriptPath string    `gorm:"column:manuscript_path" json:"manuscript_path"`
	PublishedAt    time.Time `gorm:"column:published_at" json:"published_at"`
	CreateAt       time.Time `gorm:"column:create_at" json:"create_at"`

	Issue *Issue `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
}

// TableName overrides
func (Volume) TableName() string {
	return "volumes"
}

func (Issue) TableName() string {
	return "issues"
}

func (Article) TableName() string {
	return "articles"
}

// AuthorList decodes the stored authors JSON array.
func (a *Article) AuthorList() []string {
	return decodeStringList(a.Authors)
}

// KeywordList decodes the stored keywords JSON array.
func (a *Article) KeywordList() []string {
	return decodeStringList(a.Keywords)
}

// MarshalJSON exposes authors and keywords as arrays instead of the raw JSON
// column text.
func (a Article) MarshalJSON() ([]byte, error) {
	type alias Article
	return json.Marshal(struct {
		alias
		Authors  []string `json:"authors"`
		Keywords []string `json:"keywords"`
	}{
		alias:    alias(a),
		Authors:  a.AuthorList(),
		Keywords: a.KeywordList(),
	})
}
