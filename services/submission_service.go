package services

import (
	"errors"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"journal-review-api/models"
	"journal-review-api/repository"
	"journal-review-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaveFileFunc persists an uploaded file to the given destination path.
// Controllers pass gin's SaveUploadedFile bound to the request file.
type SaveFileFunc func(dst string) error

// SubmissionInput carries the author-editable manuscript fields.
type SubmissionInput struct {
	Title     string
	Abstract  string
	Keywords  []string
	CoAuthors []string
}

type SubmissionService struct {
	submissions repository.SubmissionRepository
	files       repository.FileRepository
	users       repository.UserRepository
	reviews     repository.ReviewRepository
	notifier    *NotificationService
	uploadRoot  string
}

func NewSubmissionService(
	submissions repository.SubmissionRepository,
	files repository.FileRepository,
	users repository.UserRepository,
	reviews repository.ReviewRepository,
	notifier *NotificationService,
	uploadRoot string,
) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		files:       files,
		users:       users,
		reviews:     reviews,
		notifier:    notifier,
		uploadRoot:  uploadRoot,
	}
}

// validateInput checks the manuscript fields and normalizes the keyword list.
// All checks run before any persistence call.
func validateInput(input *SubmissionInput) error {
	details := make([]FieldError, 0, 3)

	if ok, msg := utils.ValidateTitle(input.Title); !ok {
		details = append(details, FieldError{Field: "title", Message: msg})
	}
	if ok, msg := utils.ValidateAbstract(input.Abstract); !ok {
		details = append(details, FieldError{Field: "abstract", Message: msg})
	}
	cleaned, ok, msg := utils.ValidateKeywords(input.Keywords)
	if !ok {
		details = append(details, FieldError{Field: "keywords", Message: msg})
	}
	input.Keywords = cleaned

	if len(details) > 0 {
		return ValidationError("Invalid submission fields", details...)
	}
	return nil
}

// storeManuscript validates the upload and writes it under the upload root
// with a generated filename. Validation failures happen before the write.
func (s *SubmissionService) storeManuscript(authorID int, file *multipart.FileHeader, save SaveFileFunc) (*models.FileUpload, error) {
	if ok, msg := utils.ValidateManuscriptFile(file); !ok {
		return nil, ValidationError(msg)
	}

	storedName := uuid.NewString() + ".pdf"
	storedPath := filepath.Join(s.uploadRoot, storedName)

	if err := save(storedPath); err != nil {
		return nil, InternalError("Failed to save manuscript file", err)
	}

	now := time.Now()
	upload := &models.FileUpload{
		OriginalName: file.Filename,
		StoredPath:   storedPath,
		FileSize:     file.Size,
		MimeType:     file.Header.Get("Content-Type"),
		UploadedBy:   authorID,
		UploadedAt:   now,
		CreateAt:     now,
		UpdateAt:     now,
	}

	if err := s.files.Create(upload); err != nil {
		return nil, InternalError("Failed to record manuscript file", err)
	}

	return upload, nil
}

// Create validates the fields and the manuscript file, stores both, and
// notifies the editorial staff.
func (s *SubmissionService) Create(authorID int, input SubmissionInput, file *multipart.FileHeader, save SaveFileFunc) (*models.Submission, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	upload, err := s.storeManuscript(authorID, file, save)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission := &models.Submission{
		Title:       utils.SanitizeInput(input.Title),
		Abstract:    utils.SanitizeInput(input.Abstract),
		Keywords:    models.EncodeStringList(input.Keywords),
		CoAuthors:   models.EncodeStringList(input.CoAuthors),
		AuthorID:    authorID,
		FileID:      upload.FileID,
		Status:      models.StatusSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	if err := s.submissions.Create(submission); err != nil {
		return nil, InternalError("Failed to create submission", err)
	}

	author, err := s.users.FindByID(authorID)
	if err != nil {
		log.Printf("Submission %d created but author %d lookup failed: %v", submission.SubmissionID, authorID, err)
		return submission, nil
	}

	if editors, err := s.users.ListEditorialStaff(); err == nil {
		s.notifier.SubmissionReceived(editors, submission, author)
	} else {
		log.Printf("Failed to list editorial staff for notification: %v", err)
	}

	return submission, nil
}

// Get fetches one submission with ownership enforcement: authors see only
// their own, assigned reviewers and editorial staff see any.
func (s *SubmissionService) Get(actorID int, actorRole string, id int) (*models.Submission, error) {
	submission, err := s.findSubmission(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(actorID, actorRole, submission); err != nil {
		return nil, err
	}

	return submission, nil
}

func (s *SubmissionService) checkReadAccess(actorID int, actorRole string, submission *models.Submission) error {
	switch actorRole {
	case models.RoleAdmin, models.RoleEditor:
		return nil
	case models.RoleReviewer:
		assigned, err := s.reviews.Exists(submission.SubmissionID, actorID)
		if err != nil {
			return InternalError("Failed to check review assignment", err)
		}
		if assigned {
			return nil
		}
	}

	if submission.AuthorID == actorID {
		return nil
	}
	return ForbiddenError("You do not have access to this submission")
}

// ListMine returns the author's own submissions.
func (s *SubmissionService) ListMine(authorID int) ([]models.Submission, error) {
	submissions, err := s.submissions.ListByAuthor(authorID)
	if err != nil {
		return nil, InternalError("Failed to fetch submissions", err)
	}
	return submissions, nil
}

// List returns a filtered, paginated page of all submissions (editorial view).
func (s *SubmissionService) List(filter repository.SubmissionFilter) ([]models.Submission, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, 0, ValidationError("Unknown status filter")
	}

	submissions, total, err := s.submissions.List(filter)
	if err != nil {
		return nil, 0, InternalError("Failed to fetch submissions", err)
	}
	return submissions, total, nil
}

// UpdateStatus applies an editorial decision. The edge is validated against
// the workflow graph before any write, and the author is notified.
func (s *SubmissionService) UpdateStatus(id int, status string, editorComments *string) (*models.Submission, error) {
	submission, err := s.findSubmission(id)
	if err != nil {
		return nil, err
	}

	if err := CheckEditorDecision(submission.Status, status); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.submissions.UpdateStatus(id, status, editorComments, now); err != nil {
		return nil, InternalError("Failed to update submission status", err)
	}

	submission.Status = status
	submission.UpdatedAt = now
	if editorComments != nil {
		submission.EditorComments = editorComments
	}

	if author, err := s.users.FindByID(submission.AuthorID); err == nil {
		comments := ""
		if editorComments != nil {
			comments = *editorComments
		}
		s.notifier.StatusChanged(author, submission, status, comments)
	}

	return submission, nil
}

// Resubmit lets the owning author re-upload the manuscript after a
// revisions_required decision; the submission returns to under_review.
func (s *SubmissionService) Resubmit(actorID, id int, file *multipart.FileHeader, save SaveFileFunc) (*models.Submission, error) {
	submission, err := s.findSubmission(id)
	if err != nil {
		return nil, err
	}

	if submission.AuthorID != actorID {
		return nil, ForbiddenError("Only the submitting author can resubmit")
	}
	if submission.Status != models.StatusRevisionsRequired {
		return nil, ValidationError("Submission is not awaiting revisions")
	}

	upload, err := s.storeManuscript(actorID, file, save)
	if err != nil {
		return nil, err
	}

	submission.FileID = upload.FileID
	submission.Status = models.StatusUnderReview
	submission.UpdatedAt = time.Now()

	if err := s.submissions.Save(submission); err != nil {
		return nil, InternalError("Failed to update submission", err)
	}

	return submission, nil
}

// UpdateContent lets the owning author edit the manuscript fields while the
// submission is still editable.
func (s *SubmissionService) UpdateContent(actorID, id int, input SubmissionInput) (*models.Submission, error) {
	submission, err := s.findSubmission(id)
	if err != nil {
		return nil, err
	}

	if submission.AuthorID != actorID {
		return nil, ForbiddenError("Only the submitting author can edit this submission")
	}
	if !IsEditable(submission.Status) {
		return nil, ValidationError("Submission can no longer be edited")
	}

	if err := validateInput(&input); err != nil {
		return nil, err
	}

	submission.Title = utils.SanitizeInput(input.Title)
	submission.Abstract = utils.SanitizeInput(input.Abstract)
	submission.Keywords = models.EncodeStringList(input.Keywords)
	submission.CoAuthors = models.EncodeStringList(input.CoAuthors)
	submission.UpdatedAt = time.Now()

	if err := s.submissions.Save(submission); err != nil {
		return nil, InternalError("Failed to update submission", err)
	}

	return submission, nil
}

// Delete soft-deletes a submission: the owning author while still submitted,
// or an admin at any point.
func (s *SubmissionService) Delete(actorID int, actorRole string, id int) error {
	submission, err := s.findSubmission(id)
	if err != nil {
		return err
	}

	if actorRole != models.RoleAdmin {
		if submission.AuthorID != actorID {
			return ForbiddenError("Only the submitting author can withdraw this submission")
		}
		if submission.Status != models.StatusSubmitted {
			return ValidationError("Submission can no longer be withdrawn")
		}
	}

	if err := s.submissions.SoftDelete(id, time.Now()); err != nil {
		return InternalError("Failed to delete submission", err)
	}
	return nil
}

// ManuscriptFile resolves the stored manuscript for download, with the same
// read access rules as Get.
func (s *SubmissionService) ManuscriptFile(actorID int, actorRole string, id int) (*models.FileUpload, error) {
	submission, err := s.findSubmission(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(actorID, actorRole, submission); err != nil {
		return nil, err
	}

	file, err := s.files.FindByID(submission.FileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Manuscript file not found")
		}
		return nil, InternalError("Failed to fetch manuscript file", err)
	}
	return file, nil
}

func (s *SubmissionService) findSubmission(id int) (*models.Submission, error) {
	submission, err := s.submissions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Submission not found")
		}
		return nil, InternalError("Failed to fetch submission", err)
	}
	return submission, nil
}
