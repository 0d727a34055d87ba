package models

import "time"

// Link represents a shortened link in the database. When a custom alias is
// supplied at creation time it doubles as the short code, so both columns
// carry a uniqueness constraint.
type Link struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"userId"`
	OriginalURL string     `gorm:"type:text;not null" json:"originalUrl"`
	ShortCode   string     `gorm:"uniqueIndex;size:32;not null" json:"shortCode"`
	CustomAlias *string    `gorm:"uniqueIndex;size:32" json:"customAlias,omitempty"`
	Title       string     `gorm:"size:255" json:"title,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Clicks      int64      `gorm:"default:0;not null" json:"clicks"`
	IsActive    bool       `gorm:"default:true;not null" json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Expired reports whether the link has an expiry timestamp at or before now.
func (l *Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}
