package models

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
)

// Report flags any registered entity as inappropriate. Reports are never
// edited and outlive their targets.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReporterID uint      `gorm:"not null;index" json:"reporter_id"`
	TargetKind string    `gorm:"size:50;not null;index:idx_reports_target,priority:1" json:"target_kind"`
	TargetID   uint      `gorm:"not null;index:idx_reports_target,priority:2" json:"target_id"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	Reporter   User      `gorm:"foreignKey:ReporterID" json:"-"`
}

func (r *Report) Target() content.Ref {
	return content.Ref{Kind: r.TargetKind, ID: r.TargetID}
}
