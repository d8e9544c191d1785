package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of authorization levels a user can hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleUser, RoleModerator, RoleAdmin, RoleSuperuser:
		return Role(raw), true
	}
	return "", false
}

// In reports whether the role is a member of the allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	Role           Role      `gorm:"size:20;not null;default:user" json:"role"`
	Confirmed      bool      `gorm:"not null;default:false" json:"confirmed"`
	RefreshToken   *string   `gorm:"size:512" json:"-"`
	Description    *string   `gorm:"size:500" json:"description,omitempty"`
	AvatarURL      *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	AvatarThumbURL *string   `gorm:"type:text" json:"avatar_thumb_url,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) TableName() string {
	return "users"
}
