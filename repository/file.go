package repository

import (
	"journal-review-api/models"

	"gorm.io/gorm"
)

type FileRepository interface {
	Create(file *models.FileUpload) error
	FindByID(id int) (*models.FileUpload, error)
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *models.FileUpload) error {
	return r.db.Create(file).Error
}

func (r *fileRepository) FindByID(id int) (*models.FileUpload, error) {
	var file models.FileUpload
	if err := r.db.Where("file_id = ? AND delete_at IS NULL", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}
