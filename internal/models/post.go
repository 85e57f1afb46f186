// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxPostTextLength is the maximum number of characters (runes) a post may hold.
const MaxPostTextLength = 255

// Post represents a short text post owned by a single user.
type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Text   string `gorm:"size:255;not null" json:"text"`
	// LikesCount is not persisted; computed at query time
	LikesCount int64     `gorm:"->;-:migration" json:"likes_count"`
	Likes      []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OwnedBy reports whether userID owns the post.
func (p *Post) OwnedBy(userID uint) bool {
	return p != nil && userID != 0 && p.UserID == userID
}
