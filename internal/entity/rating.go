package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingType is a vote direction on a post.
type RatingType string

const (
	RatingLike    RatingType = "LIKE"
	RatingDislike RatingType = "DISLIKE"
)

// ParseRatingType validates a raw rating type string.
func ParseRatingType(raw string) (RatingType, bool) {
	switch RatingType(raw) {
	case RatingLike, RatingDislike:
		return RatingType(raw), true
	}
	return "", false
}

// Rating is a single user's vote on a post. The composite unique index
// backs the one-vote-per-user-per-post invariant at the database level,
// closing the race the application-level check leaves open.
type Rating struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_post_user,priority:1" json:"post_id"`
	Post      Post       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_post_user,priority:2" json:"user_id"`
	User      User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type      RatingType `gorm:"size:10;not null" json:"type"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

func (r *Rating) TableName() string {
	return "ratings"
}
