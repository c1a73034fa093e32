package services

import (
	"errors"
	"time"

	"journal-review-api/models"
	"journal-review-api/repository"

	"gorm.io/gorm"
)

// ReviewInput carries a reviewer's recommendation payload.
type ReviewInput struct {
	SubmissionID         int
	Comments             string
	ConfidentialComments string
	Recommendation       string
	Rating               *int
}

// ReviewStats is the dashboard counter block.
type ReviewStats struct {
	TotalReviews int `json:"totalReviews"`
	PendingCount int `json:"pendingCount"`
}

// Dashboard aggregates a reviewer's workload: assignments awaiting a
// recommendation, finished reviews, and open submissions nobody asked them
// to review yet.
type Dashboard struct {
	PendingReviews       []models.Review     `json:"pendingReviews"`
	CompletedReviews     []models.Review     `json:"completedReviews"`
	AvailableSubmissions []models.Submission `json:"availableSubmissions"`
	ReviewStats          ReviewStats         `json:"reviewStats"`
}

// ReviewSummary is the per-submission aggregation: total review count plus a
// recommendation histogram.
type ReviewSummary struct {
	TotalReviews    int64            `json:"totalReviews"`
	Recommendations map[string]int64 `json:"recommendations"`
}

type ReviewService struct {
	reviews     repository.ReviewRepository
	submissions repository.SubmissionRepository
	users       repository.UserRepository
	notifier    *NotificationService
}

func NewReviewService(
	reviews repository.ReviewRepository,
	submissions repository.SubmissionRepository,
	users repository.UserRepository,
	notifier *NotificationService,
) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		submissions: submissions,
		users:       users,
		notifier:    notifier,
	}
}

// Assign creates a pending review assignment for a reviewer. Editors and
// admins only; duplicate (submission, reviewer) pairs are rejected.
func (s *ReviewService) Assign(actorRole string, submissionID, reviewerID int) (*models.Review, error) {
	if actorRole != models.RoleEditor && actorRole != models.RoleAdmin {
		return nil, ForbiddenError("Only editors can assign reviewers")
	}

	submission, err := s.findSubmission(submissionID)
	if err != nil {
		return nil, err
	}
	if !IsOpenForReview(submission.Status) {
		return nil, ValidationError("Submission is not open for review")
	}

	reviewer, err := s.users.FindByID(reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Reviewer not found")
		}
		return nil, InternalError("Failed to fetch reviewer", err)
	}
	if reviewer.Role != models.RoleReviewer {
		return nil, ValidationError("Assigned user is not a reviewer")
	}
	if !reviewer.IsActive {
		return nil, ValidationError("Assigned reviewer is deactivated")
	}

	exists, err := s.reviews.Exists(submissionID, reviewerID)
	if err != nil {
		return nil, InternalError("Failed to check existing reviews", err)
	}
	if exists {
		return nil, ConflictError("Reviewer has already reviewed this submission")
	}

	review := &models.Review{
		SubmissionID: submissionID,
		ReviewerID:   reviewerID,
		AssignedAt:   time.Now(),
	}

	// Concurrent duplicate assignments fail on the unique index.
	if err := s.reviews.Create(review); err != nil {
		return nil, InternalError("Failed to create review assignment", err)
	}

	if submission.Status == models.StatusSubmitted {
		if err := s.submissions.UpdateStatus(submissionID, models.StatusUnderReview, nil, time.Now()); err != nil {
			return nil, InternalError("Failed to move submission under review", err)
		}
		submission.Status = models.StatusUnderReview
	}

	s.notifier.ReviewerAssigned(reviewer, submission)

	return review, nil
}

// Submit records a reviewer's recommendation. A pending assignment is
// completed in place; without one, the reviewer self-submits against an open
// submission. Completed reviews are immutable.
func (s *ReviewService) Submit(reviewerID int, input ReviewInput) (*models.Review, error) {
	details := make([]FieldError, 0, 2)
	if input.Comments == "" {
		details = append(details, FieldError{Field: "comments", Message: "Comments are required"})
	}
	if !models.ValidRecommendation(input.Recommendation) {
		details = append(details, FieldError{Field: "recommendation", Message: "Recommendation must be one of accept, minor_revisions, major_revisions, reject"})
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		details = append(details, FieldError{Field: "rating", Message: "Rating must be between 1 and 5"})
	}
	if len(details) > 0 {
		return nil, ValidationError("Invalid review fields", details...)
	}

	submission, err := s.findSubmission(input.SubmissionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	recommendation := input.Recommendation

	existing, err := s.reviews.FindBySubmissionAndReviewer(input.SubmissionID, reviewerID)
	switch {
	case err == nil:
		if existing.IsCompleted {
			return nil, ConflictError("Reviewer has already reviewed this submission")
		}
		existing.Comments = input.Comments
		existing.Recommendation = &recommendation
		existing.Rating = input.Rating
		existing.IsCompleted = true
		existing.CompletedAt = &now
		if input.ConfidentialComments != "" {
			existing.ConfidentialComments = &input.ConfidentialComments
		}
		if err := s.reviews.Save(existing); err != nil {
			return nil, InternalError("Failed to save review", err)
		}
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if !IsOpenForReview(submission.Status) {
			return nil, ValidationError("Submission is not open for review")
		}

		review := &models.Review{
			SubmissionID:   input.SubmissionID,
			ReviewerID:     reviewerID,
			Comments:       input.Comments,
			Recommendation: &recommendation,
			Rating:         input.Rating,
			IsCompleted:    true,
			AssignedAt:     now,
			CompletedAt:    &now,
		}
		if input.ConfidentialComments != "" {
			review.ConfidentialComments = &input.ConfidentialComments
		}

		if err := s.reviews.Create(review); err != nil {
			return nil, InternalError("Failed to create review", err)
		}

		if submission.Status == models.StatusSubmitted {
			if err := s.submissions.UpdateStatus(input.SubmissionID, models.StatusUnderReview, nil, now); err != nil {
				return nil, InternalError("Failed to move submission under review", err)
			}
		}

		return review, nil

	default:
		return nil, InternalError("Failed to check existing reviews", err)
	}
}

// GetDashboard builds the reviewer's dashboard. Available submissions come
// from a single set-difference query rather than a per-row existence loop.
func (s *ReviewService) GetDashboard(reviewerID int) (*Dashboard, error) {
	pending, err := s.reviews.ListPendingByReviewer(reviewerID)
	if err != nil {
		return nil, InternalError("Failed to fetch pending reviews", err)
	}

	completed, err := s.reviews.ListCompletedByReviewer(reviewerID)
	if err != nil {
		return nil, InternalError("Failed to fetch completed reviews", err)
	}

	available, err := s.reviews.PendingSubmissions(reviewerID)
	if err != nil {
		return nil, InternalError("Failed to fetch open submissions", err)
	}

	for i := range pending {
		pending[i] = pending[i].Redacted()
	}

	return &Dashboard{
		PendingReviews:       pending,
		CompletedReviews:     completed,
		AvailableSubmissions: available,
		ReviewStats: ReviewStats{
			TotalReviews: len(completed),
			PendingCount: len(pending),
		},
	}, nil
}

// ListForSubmission returns every review of a submission, confidential
// comments included (editorial view only).
func (s *ReviewService) ListForSubmission(submissionID int) ([]models.Review, *ReviewSummary, error) {
	if _, err := s.findSubmission(submissionID); err != nil {
		return nil, nil, err
	}

	reviews, err := s.reviews.ListBySubmission(submissionID)
	if err != nil {
		return nil, nil, InternalError("Failed to fetch reviews", err)
	}

	summary, err := s.Summary(submissionID)
	if err != nil {
		return nil, nil, err
	}

	return reviews, summary, nil
}

// Summary aggregates review counts for a submission. Pure read, idempotent.
func (s *ReviewService) Summary(submissionID int) (*ReviewSummary, error) {
	total, err := s.reviews.CountBySubmission(submissionID)
	if err != nil {
		return nil, InternalError("Failed to count reviews", err)
	}

	counts, err := s.reviews.RecommendationCounts(submissionID)
	if err != nil {
		return nil, InternalError("Failed to aggregate recommendations", err)
	}

	histogram := make(map[string]int64, len(counts))
	for _, row := range counts {
		histogram[row.Recommendation] = row.Count
	}

	return &ReviewSummary{
		TotalReviews:    total,
		Recommendations: histogram,
	}, nil
}

func (s *ReviewService) findSubmission(id int) (*models.Submission, error) {
	submission, err := s.submissions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Submission not found")
		}
		return nil, InternalError("Failed to fetch submission", err)
	}
	return submission, nil
}
