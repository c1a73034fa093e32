package repository

import (
	"time"

	"journal-review-api/models"

	"gorm.io/gorm"
)

// SubmissionFilter narrows paginated submission listings.
type SubmissionFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

type SubmissionRepository interface {
	FindByID(id int) (*models.Submission, error)
	Create(submission *models.Submission) error
	Save(submission *models.Submission) error
	SoftDelete(id int, now time.Time) error
	ListByAuthor(authorID int) ([]models.Submission, error)
	List(filter SubmissionFilter) ([]models.Submission, int64, error)
	UpdateStatus(id int, status string, editorComments *string, now time.Time) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) FindByID(id int) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.Preload("Author").Preload("Manuscript").
		Where("submission_id = ? AND delete_at IS NULL", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) Save(submission *models.Submission) error {
	return r.db.Save(submission).Error
}

func (r *submissionRepository) SoftDelete(id int, now time.Time) error {
	return r.db.Model(&models.Submission{}).
		Where("submission_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{
			"delete_at":  now,
			"updated_at": now,
		}).Error
}

func (r *submissionRepository) ListByAuthor(authorID int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.Preload("Manuscript").
		Where("author_id = ? AND delete_at IS NULL", authorID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) List(filter SubmissionFilter) ([]models.Submission, int64, error) {
	query := r.db.Model(&models.Submission{}).Where("delete_at IS NULL")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []models.Submission
	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Author").
		Order("submitted_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *submissionRepository) UpdateStatus(id int, status string, editorComments *string, now time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if editorComments != nil {
		updates["editor_comments"] = *editorComments
	}

	return r.db.Model(&models.Submission{}).
		Where("submission_id = ? AND delete_at IS NULL", id).
		Updates(updates).Error
}
