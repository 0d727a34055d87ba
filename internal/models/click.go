package models

import "time"

// Click represents one recorded redirect of a shortened link.
// Exactly one row is written per successful, non-expired, active redirect;
// rows are never updated afterwards.
type Click struct {
	// ID is the primary key with auto-increment functionality.
	ID uint `gorm:"primaryKey" json:"id"`

	// LinkID references the Link that was resolved. Indexed because
	// every analytics aggregation filters on it.
	LinkID uint `gorm:"index;not null" json:"linkId"`

	// Link establishes the GORM relationship to the Link model.
	Link Link `gorm:"foreignKey:LinkID" json:"-"`

	// UserID is the owner of the link at the time of the click. Kept
	// denormalized so dashboard queries avoid a join.
	UserID uint `gorm:"index" json:"userId"`

	// IPAddress of the visitor; sized for IPv6.
	IPAddress string `gorm:"size:50" json:"ipAddress"`

	// UserAgent is the raw header value; Device and Browser are the
	// coarse classes derived from it at record time.
	UserAgent string `gorm:"size:512" json:"userAgent"`
	Device    string `gorm:"size:10" json:"device"`
	Browser   string `gorm:"size:20" json:"browser"`

	// Country and City come from geolocation, which is not wired up yet,
	// so they stay empty and aggregate under "Unknown".
	Country string `gorm:"size:100" json:"country,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`

	// Referer header value, empty for direct visits.
	Referer string `gorm:"size:512" json:"referer,omitempty"`

	// Timestamp records the exact moment when the click occurred.
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}
