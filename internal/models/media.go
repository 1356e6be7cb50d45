package models

import (
	"path"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
)

// MediaEntry mirrors one stored image of some entity into the media library.
type MediaEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	File       string    `gorm:"size:255;not null;index" json:"file"`
	TargetKind string    `gorm:"size:50;not null;index:idx_media_target,priority:1" json:"target_kind"`
	TargetID   uint      `gorm:"not null;index:idx_media_target,priority:2" json:"target_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (MediaEntry) TableName() string {
	return "media_library"
}

func (m *MediaEntry) String() string {
	return path.Base(m.File)
}

func (m *MediaEntry) Target() content.Ref {
	return content.Ref{Kind: m.TargetKind, ID: m.TargetID}
}
