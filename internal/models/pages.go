package models

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
)

const (
	KindFAQ             = "faq"
	KindSocialMediaLink = "socialmedialink"
)

type TermsAndConditions struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Terms     string    `gorm:"type:text;not null" json:"terms"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

type PrivacyPolicy struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Policy    string    `gorm:"type:text;not null" json:"policy"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

type FAQ struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`
}

func (FAQ) TableName() string {
	return "faqs"
}

func (f *FAQ) ContentKind() string { return KindFAQ }
func (f *FAQ) ContentID() uint     { return f.ID }
func (f *FAQ) String() string      { return f.Question }

type SocialMediaLink struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PlatformName string    `gorm:"size:100;not null" json:"platform_name"`
	ProfileURL   string    `gorm:"size:2048;not null" json:"profile_url"`
	Image        string    `gorm:"size:255" json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (l *SocialMediaLink) ContentKind() string { return KindSocialMediaLink }
func (l *SocialMediaLink) ContentID() uint     { return l.ID }
func (l *SocialMediaLink) String() string      { return l.PlatformName + " link" }

func (l *SocialMediaLink) ImageFields() []content.ImageField {
	return []content.ImageField{{Name: "image", File: l.Image}}
}
