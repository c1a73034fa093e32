package repository

import (
	"journal-review-api/models"

	"gorm.io/gorm"
)

type VolumeRepository interface {
	Create(volume *models.Volume) error
	FindByID(id int) (*models.Volume, error)
	FindByNumber(number int) (*models.Volume, error)
	List() ([]models.Volume, error)
}

type IssueRepository interface {
	Create(issue *models.Issue) error
	FindByID(id int) (*models.Issue, error)
	FindByVolumeAndNumber(volumeID, issueNumber int) (*models.Issue, error)
	ListByVolume(volumeID int) ([]models.Issue, error)
}

type ArticleRepository interface {
	Create(article *models.Article) error
	FindByID(id int) (*models.Article, error)
	FindBySubmission(submissionID int) (*models.Article, error)
	ListByIssue(issueID int) ([]models.Article, error)
}

type volumeRepository struct {
	db *gorm.DB
}

func NewVolumeRepository(db *gorm.DB) VolumeRepository {
	return &volumeRepository{db: db}
}

func (r *volumeRepository) Create(volume *models.Volume) error {
	return r.db.Create(volume).Error
}

func (r *volumeRepository) FindByID(id int) (*models.Volume, error) {
	var volume models.Volume
	if err := r.db.Where("volume_id = ?", id).First(&volume).Error; err != nil {
		return nil, err
	}
	return &volume, nil
}

func (r *volumeRepository) FindByNumber(number int) (*models.Volume, error) {
	var volume models.Volume
	if err := r.db.Where("volume_number = ?", number).First(&volume).Error; err != nil {
		return nil, err
	}
	return &volume, nil
}

func (r *volumeRepository) List() ([]models.Volume, error) {
	var volumes []models.Volume
	if err := r.db.Order("volume_number DESC").Find(&volumes).Error; err != nil {
		return nil, err
	}
	return volumes, nil
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(issue *models.Issue) error {
	return r.db.Create(issue).Error
}

func (r *issueRepository) FindByID(id int) (*models.Issue, error) {
	var issue models.Issue
	if err := r.db.Preload("Volume").Where("issue_id = ?", id).First(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) FindByVolumeAndNumber(volumeID, issueNumber int) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.Where("volume_id = ? AND issue_number = ?", volumeID, issueNumber).
		First(&issue).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) ListByVolume(volumeID int) ([]models.Issue, error) {
	var issues []models.Issue
	err := r.db.Where("volume_id = ?", volumeID).
		Order("issue_number ASC").
		Find(&issues).Error
	if err != nil {
		return nil, err
	}
	return issues, nil
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) FindByID(id int) (*models.Article, error) {
	var article models.Article
	if err := r.db.Preload("Issue").Where("article_id = ?", id).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindBySubmission(submissionID int) (*models.Article, error) {
	var article models.Article
	if err := r.db.Where("submission_id = ?", submissionID).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListByIssue(issueID int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Where("issue_id = ?", issueID).
		Order("published_at ASC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}
