package services

import (
	"time"

	"journal-review-api/models"
	"journal-review-api/repository"

	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the gorm implementations' contract,
// including gorm.ErrRecordNotFound for missing rows.

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) addUser(user models.User) *models.User {
	if user.UserID == 0 {
		user.UserID = r.nextID
	}
	if user.UserID >= r.nextID {
		r.nextID = user.UserID + 1
	}
	stored := user
	r.users[stored.UserID] = &stored
	return &stored
}

func (r *fakeUserRepo) FindByID(id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok || user.DeleteAt != nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.DeleteAt == nil {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	created := r.addUser(*user)
	user.UserID = created.UserID
	return nil
}

func (r *fakeUserRepo) Save(user *models.User) error {
	stored := *user
	r.users[user.UserID] = &stored
	return nil
}

func (r *fakeUserRepo) List(filter repository.UserFilter) ([]models.User, int64, error) {
	var result []models.User
	for _, user := range r.users {
		if user.DeleteAt != nil {
			continue
		}
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		result = append(result, *user)
	}
	return result, int64(len(result)), nil
}

func (r *fakeUserRepo) UpdateRole(id int, role string, now time.Time) error {
	if user, ok := r.users[id]; ok {
		user.Role = role
		user.UpdateAt = &now
	}
	return nil
}

func (r *fakeUserRepo) SetActive(id int, active bool, now time.Time) error {
	if user, ok := r.users[id]; ok {
		user.IsActive = active
		user.UpdateAt = &now
	}
	return nil
}

func (r *fakeUserRepo) ListActiveReviewers() ([]models.User, error) {
	var reviewers []models.User
	for _, user := range r.users {
		if user.Role == models.RoleReviewer && user.IsActive && user.DeleteAt == nil {
			reviewers = append(reviewers, *user)
		}
	}
	return reviewers, nil
}

func (r *fakeUserRepo) ListEditorialStaff() ([]models.User, error) {
	var staff []models.User
	for _, user := range r.users {
		if (user.Role == models.RoleEditor || user.Role == models.RoleAdmin) && user.IsActive && user.DeleteAt == nil {
			staff = append(staff, *user)
		}
	}
	return staff, nil
}

type fakeSubmissionRepo struct {
	submissions map[int]*models.Submission
	nextID      int
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: map[int]*models.Submission{}, nextID: 1}
}

func (r *fakeSubmissionRepo) addSubmission(submission models.Submission) *models.Submission {
	if submission.SubmissionID == 0 {
		submission.SubmissionID = r.nextID
	}
	if submission.SubmissionID >= r.nextID {
		r.nextID = submission.SubmissionID + 1
	}
	stored := submission
	r.submissions[stored.SubmissionID] = &stored
	return &stored
}

func (r *fakeSubmissionRepo) FindByID(id int) (*models.Submission, error) {
	submission, ok := r.submissions[id]
	if !ok || submission.DeleteAt != nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *submission
	return &copied, nil
}

func (r *fakeSubmissionRepo) Create(submission *models.Submission) error {
	created := r.addSubmission(*submission)
	submission.SubmissionID = created.SubmissionID
	return nil
}

func (r *fakeSubmissionRepo) Save(submission *models.Submission) error {
	stored := *submission
	r.submissions[submission.SubmissionID] = &stored
	return nil
}

func (r *fakeSubmissionRepo) SoftDelete(id int, now time.Time) error {
	if submission, ok := r.submissions[id]; ok {
		submission.DeleteAt = &now
	}
	return nil
}

func (r *fakeSubmissionRepo) ListByAuthor(authorID int) ([]models.Submission, error) {
	var result []models.Submission
	for _, submission := range r.submissions {
		if submission.AuthorID == authorID && submission.DeleteAt == nil {
			result = append(result, *submission)
		}
	}
	return result, nil
}

func (r *fakeSubmissionRepo) List(filter repository.SubmissionFilter) ([]models.Submission, int64, error) {
	var result []models.Submission
	for _, submission := range r.submissions {
		if submission.DeleteAt != nil {
			continue
		}
		if filter.Status != "" && submission.Status != filter.Status {
			continue
		}
		result = append(result, *submission)
	}
	return result, int64(len(result)), nil
}

func (r *fakeSubmissionRepo) UpdateStatus(id int, status string, editorComments *string, now time.Time) error {
	if submission, ok := r.submissions[id]; ok {
		submission.Status = status
		submission.UpdatedAt = now
		if editorComments != nil {
			submission.EditorComments = editorComments
		}
	}
	return nil
}

type fakeReviewRepo struct {
	reviews     []*models.Review
	submissions *fakeSubmissionRepo
	nextID      int
}

func newFakeReviewRepo(submissions *fakeSubmissionRepo) *fakeReviewRepo {
	return &fakeReviewRepo{submissions: submissions, nextID: 1}
}

func (r *fakeReviewRepo) Create(review *models.Review) error {
	review.ReviewID = r.nextID
	r.nextID++
	stored := *review
	r.reviews = append(r.reviews, &stored)
	return nil
}

func (r *fakeReviewRepo) Save(review *models.Review) error {
	for i, existing := range r.reviews {
		if existing.ReviewID == review.ReviewID {
			stored := *review
			r.reviews[i] = &stored
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) FindByID(id int) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.ReviewID == id {
			copied := *review
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) FindBySubmissionAndReviewer(submissionID, reviewerID int) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.SubmissionID == submissionID && review.ReviewerID == reviewerID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) Exists(submissionID, reviewerID int) (bool, error) {
	_, err := r.FindBySubmissionAndReviewer(submissionID, reviewerID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeReviewRepo) ListBySubmission(submissionID int) ([]models.Review, error) {
	var result []models.Review
	for _, review := range r.reviews {
		if review.SubmissionID == submissionID {
			result = append(result, *review)
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) ListCompletedByReviewer(reviewerID int) ([]models.Review, error) {
	var result []models.Review
	for _, review := range r.reviews {
		if review.ReviewerID == reviewerID && review.IsCompleted {
			result = append(result, *review)
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) ListPendingByReviewer(reviewerID int) ([]models.Review, error) {
	var result []models.Review
	for _, review := range r.reviews {
		if review.ReviewerID == reviewerID && !review.IsCompleted {
			result = append(result, *review)
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) PendingSubmissions(reviewerID int) ([]models.Submission, error) {
	var result []models.Submission
	for _, submission := range r.submissions.submissions {
		if submission.DeleteAt != nil {
			continue
		}
		if submission.Status != models.StatusSubmitted && submission.Status != models.StatusUnderReview {
			continue
		}
		if reviewed, _ := r.Exists(submission.SubmissionID, reviewerID); reviewed {
			continue
		}
		result = append(result, *submission)
	}
	return result, nil
}

func (r *fakeReviewRepo) CountBySubmission(submissionID int) (int64, error) {
	var count int64
	for _, review := range r.reviews {
		if review.SubmissionID == submissionID {
			count++
		}
	}
	return count, nil
}

func (r *fakeReviewRepo) RecommendationCounts(submissionID int) ([]repository.RecommendationCount, error) {
	counts := map[string]int64{}
	for _, review := range r.reviews {
		if review.SubmissionID == submissionID && review.IsCompleted && review.Recommendation != nil {
			counts[*review.Recommendation]++
		}
	}
	var result []repository.RecommendationCount
	for rec, count := range counts {
		result = append(result, repository.RecommendationCount{Recommendation: rec, Count: count})
	}
	return result, nil
}

type fakeFileRepo struct {
	files  map[int]*models.FileUpload
	nextID int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[int]*models.FileUpload{}, nextID: 1}
}

func (r *fakeFileRepo) Create(file *models.FileUpload) error {
	file.FileID = r.nextID
	r.nextID++
	stored := *file
	r.files[file.FileID] = &stored
	return nil
}

func (r *fakeFileRepo) FindByID(id int) (*models.FileUpload, error) {
	file, ok := r.files[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *file
	return &copied, nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	notification.NotificationID = r.nextID
	r.nextID++
	stored := *notification
	r.notifications = append(r.notifications, &stored)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(userID int, page, limit int) ([]models.Notification, int64, error) {
	var result []models.Notification
	for _, notification := range r.notifications {
		if notification.UserID == uint(userID) {
			result = append(result, *notification)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeNotificationRepo) MarkRead(notificationID uint, userID int, now time.Time) error {
	for _, notification := range r.notifications {
		if notification.NotificationID == notificationID && notification.UserID == uint(userID) {
			notification.IsRead = true
			notification.UpdateAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(userID int, now time.Time) error {
	for _, notification := range r.notifications {
		if notification.UserID == uint(userID) {
			notification.IsRead = true
			notification.UpdateAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(userID int) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.UserID == uint(userID) && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

// noMail drops every email; service tests care about state, not SMTP.
func noMail([]string, string, string) error { return nil }

func newTestNotifier(repo repository.NotificationRepository) *NotificationService {
	return NewNotificationService(repo, noMail)
}
