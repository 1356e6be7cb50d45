package models

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
	"gorm.io/gorm"
)

const KindUser = "user"

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	FirstName string         `gorm:"size:150" json:"first_name"`
	LastName  string         `gorm:"size:150" json:"last_name"`
	Avatar    string         `gorm:"size:255" json:"avatar,omitempty"`
	Role      string         `gorm:"size:20;default:'user'" json:"role"`
	IsActive  bool           `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) ContentKind() string { return KindUser }
func (u *User) ContentID() uint     { return u.ID }
func (u *User) String() string      { return u.Email }

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) FullNameOrUsername() string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}

func (u *User) ImageFields() []content.ImageField {
	return []content.ImageField{{Name: "avatar", File: u.Avatar}}
}
