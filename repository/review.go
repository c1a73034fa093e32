package repository

import (
	"journal-review-api/models"

	"gorm.io/gorm"
)

// RecommendationCount is one row of the per-submission recommendation
// histogram.
type RecommendationCount struct {
	Recommendation string `json:"recommendation"`
	Count          int64  `json:"count"`
}

type ReviewRepository interface {
	Create(review *models.Review) error
	Save(review *models.Review) error
	FindByID(id int) (*models.Review, error)
	FindBySubmissionAndReviewer(submissionID, reviewerID int) (*models.Review, error)
	Exists(submissionID, reviewerID int) (bool, error)
	ListBySubmission(submissionID int) ([]models.Review, error)
	ListCompletedByReviewer(reviewerID int) ([]models.Review, error)
	ListPendingByReviewer(reviewerID int) ([]models.Review, error)
	PendingSubmissions(reviewerID int) ([]models.Submission, error)
	CountBySubmission(submissionID int) (int64, error)
	RecommendationCounts(submissionID int) ([]RecommendationCount, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) Save(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) FindByID(id int) (*models.Review, error) {
	var review models.Review
	if err := r.db.Where("review_id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindBySubmissionAndReviewer(submissionID, reviewerID int) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Exists(submissionID, reviewerID int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepository) ListBySubmission(submissionID int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Reviewer").
		Where("submission_id = ?", submissionID).
		Order("assigned_at ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListCompletedByReviewer(reviewerID int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Submission").
		Where("reviewer_id = ? AND is_completed = ?", reviewerID, true).
		Order("completed_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListPendingByReviewer(reviewerID int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Submission").
		Where("reviewer_id = ? AND is_completed = ?", reviewerID, false).
		Order("assigned_at ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// PendingSubmissions returns submissions open for review that this reviewer
// has not touched yet, as a single set-difference query instead of one
// existence check per candidate row.
func (r *reviewRepository) PendingSubmissions(reviewerID int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.
		Where("status IN ? AND delete_at IS NULL", []string{models.StatusSubmitted, models.StatusUnderReview}).
		Where("NOT EXISTS (SELECT 1 FROM reviews WHERE reviews.submission_id = submissions.submission_id AND reviews.reviewer_id = ?)", reviewerID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *reviewRepository) CountBySubmission(submissionID int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reviewRepository) RecommendationCounts(submissionID int) ([]RecommendationCount, error) {
	var counts []RecommendationCount
	err := r.db.Model(&models.Review{}).
		Select("recommendation, COUNT(*) AS count").
		Where("submission_id = ? AND is_completed = ? AND recommendation IS NOT NULL", submissionID, true).
		Group("recommendation").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
