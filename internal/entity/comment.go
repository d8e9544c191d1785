package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Text      string     `gorm:"size:280;not null" json:"text"`
	PostID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	Post      Post       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

func (c *Comment) TableName() string {
	return "comments"
}
