package models

import "time"

// Embedding stores one ingested text document together with its embedding
// vector. Vectors for a given embedding model share a fixed dimension; the
// dot-product comparison in the chat retrieval relies on that.
type Embedding struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Vector    []float32 `gorm:"serializer:json;type:text;not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
