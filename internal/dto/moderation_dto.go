package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
)

type CreateReportRequest struct {
	Reason string `json:"reason" form:"reason"`
}

type CreateCommentRequest struct {
	Content string `json:"content" form:"content"`
}

type CommentResponse struct {
	ID         uint      `json:"id"`
	AuthorID   uint      `json:"author_id"`
	Author     string    `json:"author"`
	TargetKind string    `json:"target_kind"`
	TargetID   uint      `json:"target_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		AuthorID:   c.AuthorID,
		Author:     c.Author.Username,
		TargetKind: c.TargetKind,
		TargetID:   c.TargetID,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

// ContentResponse is the admin view of any registered entity.
type ContentResponse struct {
	Kind   string      `json:"kind"`
	ID     uint        `json:"id"`
	Label  string      `json:"label"`
	Object interface{} `json:"object"`
}
