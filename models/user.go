package models

import (
	"time"
)

// Role values stored on users.role. Every authorization decision keys off this.
const (
	RoleAdmin    = "admin"
	RoleEditor   = "editor"
	RoleReviewer = "reviewer"
	RoleAuthor   = "author"
)

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleReviewer, RoleAuthor:
		return true
	}
	return false
}

type User struct {
	UserID      int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	FirstName   string     `gorm:"column:first_name" json:"first_name"`
	LastName    string     `gorm:"column:last_name" json:"last_name"`
	Affiliation string     `gorm:"column:affiliation" json:"affiliation"`
	Role        string     `gorm:"column:role" json:"role"`
	IsActive    bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// UserToken stores hashed refresh and password reset tokens.
type UserToken struct {
	TokenID   int        `gorm:"primaryKey;column:token_id" json:"token_id"`
	UserID    int        `gorm:"column:user_id" json:"user_id"`
	TokenHash string     `gorm:"column:token_hash" json:"-"`
	TokenType string     `gorm:"column:token_type" json:"token_type"` // refresh|password_reset
	ExpiresAt time.Time  `gorm:"column:expires_at" json:"expires_at"`
	IsRevoked bool       `gorm:"column:is_revoked" json:"is_revoked"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (UserToken) TableName() string {
	return "user_tokens"
}

// FullName joins the user's name parts for display and email salutations.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
