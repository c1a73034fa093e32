package services

import (
	"errors"
	"time"

	"journal-review-api/models"
	"journal-review-api/repository"

	"gorm.io/gorm"
)

type PublicationService struct {
	volumes     repository.VolumeRepository
	issues      repository.IssueRepository
	articles    repository.ArticleRepository
	submissions repository.SubmissionRepository
	users       repository.UserRepository
	notifier    *NotificationService
}

func NewPublicationService(
	volumes repository.VolumeRepository,
	issues repository.IssueRepository,
	articles repository.ArticleRepository,
	submissions repository.SubmissionRepository,
	users repository.UserRepository,
	notifier *NotificationService,
) *PublicationService {
	return &PublicationService{
		volumes:     volumes,
		issues:      issues,
		articles:    articles,
		submissions: submissions,
		users:       users,
		notifier:    notifier,
	}
}

// CreateVolume adds a new volume; volume numbers are unique.
func (s *PublicationService) CreateVolume(number, year int) (*models.Volume, error) {
	if number < 1 {
		return nil, ValidationError("Volume number must be positive")
	}
	if year < 1900 {
		return nil, ValidationError("Invalid publication year")
	}

	if _, err := s.volumes.FindByNumber(number); err == nil {
		return nil, ConflictError("Volume already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, InternalError("Failed to check existing volumes", err)
	}

	volume := &models.Volume{
		VolumeNumber: number,
		Year:         year,
		CreateAt:     time.Now(),
	}
	if err := s.volumes.Create(volume); err != nil {
		return nil, InternalError("Failed to create volume", err)
	}
	return volume, nil
}

// ListVolumes returns all volumes, newest first.
func (s *PublicationService) ListVolumes() ([]models.Volume, error) {
	volumes, err := s.volumes.List()
	if err != nil {
		return nil, InternalError("Failed to fetch volumes", err)
	}
	return volumes, nil
}

// CreateIssue adds an issue to a volume; issue numbers are unique per volume.
func (s *PublicationService) CreateIssue(volumeID, issueNumber int, description string) (*models.Issue, error) {
	if issueNumber < 1 {
		return nil, ValidationError("Issue number must be positive")
	}

	if _, err := s.volumes.FindByID(volumeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Volume not found")
		}
		return nil, InternalError("Failed to fetch volume", err)
	}

	if _, err := s.issues.FindByVolumeAndNumber(volumeID, issueNumber); err == nil {
		return nil, ConflictError("Issue already exists in this volume")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, InternalError("Failed to check existing issues", err)
	}

	issue := &models.Issue{
		VolumeID:    volumeID,
		IssueNumber: issueNumber,
		Description: description,
		CreateAt:    time.Now(),
	}
	if err := s.issues.Create(issue); err != nil {
		return nil, InternalError("Failed to create issue", err)
	}
	return issue, nil
}

// ListIssues returns the issues of one volume.
func (s *PublicationService) ListIssues(volumeID int) ([]models.Issue, error) {
	if _, err := s.volumes.FindByID(volumeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Volume not found")
		}
		return nil, InternalError("Failed to fetch volume", err)
	}

	issues, err := s.issues.ListByVolume(volumeID)
	if err != nil {
		return nil, InternalError("Failed to fetch issues", err)
	}
	return issues, nil
}

// PublishArticle turns an accepted submission into a published article inside
// an issue. This is the administrative accepted -> published step:
// bibliographic fields are copied so the public record is frozen at publish
// time.
func (s *PublicationService) PublishArticle(issueID, submissionID int) (*models.Article, error) {
	issue, err := s.issues.FindByID(issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Issue not found")
		}
		return nil, InternalError("Failed to fetch issue", err)
	}

	submission, err := s.submissions.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Submission not found")
		}
		return nil, InternalError("Failed to fetch submission", err)
	}

	if err := CheckTransition(submission.Status, models.StatusPublished); err != nil {
		return nil, err
	}

	if _, err := s.articles.FindBySubmission(submissionID); err == nil {
		return nil, ConflictError("Submission has already been published")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, InternalError("Failed to check existing articles", err)
	}

	author, err := s.users.FindByID(submission.AuthorID)
	if err != nil {
		return nil, InternalError("Failed to fetch submission author", err)
	}

	authors := append([]string{author.FullName()}, submission.CoAuthorList()...)

	manuscriptPath := ""
	if submission.Manuscript != nil {
		manuscriptPath = submission.Manuscript.StoredPath
	}

	now := time.Now()
	article := &models.Article{
		IssueID:        issue.IssueID,
		SubmissionID:   submissionID,
		Title:          submission.Title,
		Abstract:       submission.Abstract,
		Authors:        models.EncodeStringList(authors),
		Keywords:       submission.Keywords,
		ManuscriptPath: manuscriptPath,
		PublishedAt:    now,
		CreateAt:       now,
	}

	if err := s.articles.Create(article); err != nil {
		return nil, InternalError("Failed to create article", err)
	}

	if err := s.submissions.UpdateStatus(submissionID, models.StatusPublished, nil, now); err != nil {
		return nil, InternalError("Failed to mark submission published", err)
	}
	submission.Status = models.StatusPublished

	s.notifier.ArticlePublished(author, submission, article)

	return article, nil
}

// ListArticles returns the published articles of one issue.
func (s *PublicationService) ListArticles(issueID int) ([]models.Article, error) {
	if _, err := s.issues.FindByID(issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Issue not found")
		}
		return nil, InternalError("Failed to fetch issue", err)
	}

	articles, err := s.articles.ListByIssue(issueID)
	if err != nil {
		return nil, InternalError("Failed to fetch articles", err)
	}
	return articles, nil
}

// GetArticle returns one published article.
func (s *PublicationService) GetArticle(id int) (*models.Article, error) {
	article, err := s.articles.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Article not found")
		}
		return nil, InternalError("Failed to fetch article", err)
	}
	return article, nil
}
