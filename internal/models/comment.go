package models

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
)

const (
	KindComment = "comment"

	CommentMaxLength = 1000
)

type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	TargetKind string    `gorm:"size:50;not null;index:idx_comments_target,priority:1" json:"target_kind"`
	TargetID   uint      `gorm:"not null;index:idx_comments_target,priority:2" json:"target_id"`
	Content    string    `gorm:"size:1000;not null;default:''" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (c *Comment) ContentKind() string { return KindComment }
func (c *Comment) ContentID() uint     { return c.ID }

func (c *Comment) String() string {
	if c.Author.Username == "" {
		return fmt.Sprintf("Comment %d", c.ID)
	}
	return fmt.Sprintf("Comment %d by %s", c.ID, c.Author.Username)
}

func (c *Comment) Target() content.Ref {
	return content.Ref{Kind: c.TargetKind, ID: c.TargetID}
}
