package models

import (
	"time"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/validation"
)

// Comment is a note a profile leaves on a report.
type Comment struct {
	ID        identity.ID `json:"commentId" gorm:"column:comment_id;primaryKey"`
	ProfileID identity.ID `json:"commentProfileId" gorm:"column:profile_id;index;not null"`
	ReportID  identity.ID `json:"commentReportId" gorm:"column:report_id;index;not null"`
	Content   string      `json:"commentContent" gorm:"column:content;size:3000;not null"`
	PostedAt  time.Time   `json:"commentDateTime" gorm:"column:posted_at;not null"`
}

func (Comment) TableName() string {
	return "comment"
}

type CommentInput struct {
	ID        any
	ProfileID any
	ReportID  any
	Content   string
	PostedAt  any
}

func NewComment(in CommentInput) (*Comment, error) {
	id := identity.New()
	if in.ID != nil {
		var err error
		if id, err = validation.Identifier("commentId", in.ID); err != nil {
			return nil, err
		}
	}
	profileID, err := validation.Identifier("commentProfileId", in.ProfileID)
	if err != nil {
		return nil, err
	}
	reportID, err := validation.Identifier("commentReportId", in.ReportID)
	if err != nil {
		return nil, err
	}
	content, err := validation.Text("commentContent", in.Content, MaxContentLen)
	if err != nil {
		return nil, err
	}
	postedAt, err := validation.Timestamp("commentDateTime", in.PostedAt)
	if err != nil {
		return nil, err
	}

	return &Comment{
		ID:        id,
		ProfileID: profileID,
		ReportID:  reportID,
		Content:   content,
		PostedAt:  postedAt,
	}, nil
}

func (c *Comment) SetContent(raw string) error {
	content, err := validation.Text("commentContent", raw, MaxContentLen)
	if err != nil {
		return err
	}
	c.Content = content
	return nil
}
