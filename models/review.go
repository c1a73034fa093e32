package models

import (
	"time"
)

// Recommendation values a completed review may carry.
const (
	RecommendationAccept         = "accept"
	RecommendationMinorRevisions = "minor_revisions"
	RecommendationMajorRevisions = "major_revisions"
	RecommendationReject         = "reject"
)

// ValidRecommendation reports whether rec is one of the four verdicts.
func ValidRecommendation(rec string) bool {
	switch rec {
	case RecommendationAccept, RecommendationMinorRevisions,
		RecommendationMajorRevisions, RecommendationReject:
		return true
	}
	return false
}

// Review is one reviewer's assessment of one submission. At most one row may
// exist per (submission_id, reviewer_id) pair.
type Review struct {
	ReviewID             int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	SubmissionID         int        `gorm:"column:submission_id;uniqueIndex:idx_submission_reviewer" json:"submission_id"`
	ReviewerID           int        `gorm:"column:reviewer_id;uniqueIndex:idx_submission_reviewer" json:"reviewer_id"`
	Comments             string     `gorm:"column:comments;type:text" json:"comments"`
	ConfidentialComments *string    `gorm:"column:confidential_comments;type:text" json:"confidential_comments,omitempty"`
	Recommendation       *string    `gorm:"column:recommendation" json:"recommendation,omitempty"`
	Rating               *int       `gorm:"column:rating" json:"rating,omitempty"`
	IsCompleted          bool       `gorm:"column:is_completed" json:"is_completed"`
	AssignedAt           time.Time  `gorm:"column:assigned_at" json:"assigned_at"`
	CompletedAt          *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	// Relations
	Reviewer   *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Submission *Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"`
}

// TableName specifies the table name for Review.
func (Review) TableName() string {
	return "reviews"
}

// Redacted returns a copy safe to show outside the editorial office:
// confidential comments stripped.
func (r Review) Redacted() Review {
	r.ConfidentialComments = nil
	return r
}
