package models

import "time"

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered SmartLink account.
type User struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"size:100" json:"name"`
	Email        string            `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string            `gorm:"size:100;not null" json:"-"`
	Bio          string            `gorm:"type:text" json:"bio,omitempty"`
	SocialLinks  map[string]string `gorm:"serializer:json" json:"socialLinks,omitempty"`
	Role         string            `gorm:"size:10;default:user" json:"role"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
