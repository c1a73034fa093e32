package repository

import (
	"time"

	"journal-review-api/models"

	"gorm.io/gorm"
)

// UserFilter narrows paginated user listings.
type UserFilter struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

type UserRepository interface {
	FindByID(id int) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	List(filter UserFilter) ([]models.User, int64, error)
	UpdateRole(id int, role string, now time.Time) error
	SetActive(id int, active bool, now time.Time) error
	ListActiveReviewers() ([]models.User, error)
	ListEditorialStaff() ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id int) (*models.User, error) {
	var user models.User
	if err := r.db.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ? AND delete_at IS NULL", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) List(filter UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Where("delete_at IS NULL")

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("create_at DESC").Limit(filter.Limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) UpdateRole(id int, role string, now time.Time) error {
	return r.db.Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{
			"role":      role,
			"update_at": now,
		}).Error
}

func (r *userRepository) SetActive(id int, active bool, now time.Time) error {
	return r.db.Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{
			"is_active": active,
			"update_at": now,
		}).Error
}

func (r *userRepository) ListActiveReviewers() ([]models.User, error) {
	var reviewers []models.User
	err := r.db.Where("role = ? AND is_active = ? AND delete_at IS NULL", models.RoleReviewer, true).
		Order("last_name ASC, first_name ASC").
		Find(&reviewers).Error
	if err != nil {
		return nil, err
	}
	return reviewers, nil
}

func (r *userRepository) ListEditorialStaff() ([]models.User, error) {
	var staff []models.User
	err := r.db.Where("role IN ? AND is_active = ? AND delete_at IS NULL",
		[]string{models.RoleEditor, models.RoleAdmin}, true).
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}
