package models

import (
	"time"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/validation"
)

const (
	MaxContentLen   = 3000
	MaxStatusLen    = 15
	MaxUserAgentLen = 255
	MinUrgency      = 1
	MaxUrgency      = 5
)

// Report statuses used by the triage workflow. Status is free text bounded by
// MaxStatusLen; these are the values the clients send.
const (
	StatusReported   = "reported"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// Report is a citizen's geotagged infrastructure report.
type Report struct {
	ID         identity.ID `json:"reportId" gorm:"column:report_id;primaryKey"`
	CategoryID identity.ID `json:"reportCategoryId" gorm:"column:category_id;index;not null"`
	Content    string      `json:"reportContent" gorm:"column:content;size:3000;not null"`
	CreatedAt  time.Time   `json:"reportDateTime" gorm:"column:created_at;index;not null"`
	IPAddress  IPAddress   `json:"reportIpAddress" gorm:"column:ip_address;not null"`
	Lat        float64     `json:"reportLat" gorm:"column:lat;not null"`
	Long       float64     `json:"reportLong" gorm:"column:long;not null"`
	Status     string      `json:"reportStatus" gorm:"column:status;size:15;index;not null"`
	Urgency    int         `json:"reportUrgency" gorm:"column:urgency;index;not null"`
	UserAgent  string      `json:"reportUserAgent" gorm:"column:user_agent;size:255;not null"`
}

func (Report) TableName() string {
	return "report"
}

// ReportInput carries unvalidated report fields. A nil ID means a new one is
// generated; a nil CreatedAt means now.
type ReportInput struct {
	ID         any
	CategoryID any
	Content    string
	CreatedAt  any
	IPAddress  string
	Lat        float64
	Long       float64
	Status     string
	Urgency    int
	UserAgent  string
}

// NewReport validates every field and returns a fully built Report, or the
// first field error and nothing.
func NewReport(in ReportInput) (*Report, error) {
	id := identity.New()
	if in.ID != nil {
		var err error
		if id, err = validation.Identifier("reportId", in.ID); err != nil {
			return nil, err
		}
	}
	categoryID, err := validation.Identifier("reportCategoryId", in.CategoryID)
	if err != nil {
		return nil, err
	}
	content, err := validation.Text("reportContent", in.Content, MaxContentLen)
	if err != nil {
		return nil, err
	}
	createdAt, err := validation.Timestamp("reportDateTime", in.CreatedAt)
	if err != nil {
		return nil, err
	}
	ip, err := validation.Address("reportIpAddress", in.IPAddress)
	if err != nil {
		return nil, err
	}
	lat, err := validation.Latitude("reportLat", in.Lat)
	if err != nil {
		return nil, err
	}
	long, err := validation.Longitude("reportLong", in.Long)
	if err != nil {
		return nil, err
	}
	status, err := validation.Text("reportStatus", in.Status, MaxStatusLen)
	if err != nil {
		return nil, err
	}
	urgency, err := validation.Int("reportUrgency", in.Urgency, MinUrgency, MaxUrgency)
	if err != nil {
		return nil, err
	}
	userAgent, err := validation.Text("reportUserAgent", in.UserAgent, MaxUserAgentLen)
	if err != nil {
		return nil, err
	}

	return &Report{
		ID:         id,
		CategoryID: categoryID,
		Content:    content,
		CreatedAt:  createdAt,
		IPAddress:  ip,
		Lat:        lat,
		Long:       long,
		Status:     status,
		Urgency:    urgency,
		UserAgent:  userAgent,
	}, nil
}

// ReportUpdate holds the mutable fields. Nil fields are left as they are.
type ReportUpdate struct {
	CategoryID any
	Content    *string
	CreatedAt  any
	Status     *string
	Urgency    *int
}

// Apply validates every supplied field first and only then assigns them, so
// a failing update leaves the report untouched.
func (r *Report) Apply(u ReportUpdate) error {
	next := *r

	if u.CategoryID != nil {
		id, err := validation.Identifier("reportCategoryId", u.CategoryID)
		if err != nil {
			return err
		}
		next.CategoryID = id
	}
	if u.Content != nil {
		content, err := validation.Text("reportContent", *u.Content, MaxContentLen)
		if err != nil {
			return err
		}
		next.Content = content
	}
	if u.CreatedAt != nil {
		createdAt, err := validation.Timestamp("reportDateTime", u.CreatedAt)
		if err != nil {
			return err
		}
		next.CreatedAt = createdAt
	}
	if u.Status != nil {
		status, err := validation.Text("reportStatus", *u.Status, MaxStatusLen)
		if err != nil {
			return err
		}
		next.Status = status
	}
	if u.Urgency != nil {
		urgency, err := validation.Int("reportUrgency", *u.Urgency, MinUrgency, MaxUrgency)
		if err != nil {
			return err
		}
		next.Urgency = urgency
	}

	*r = next
	return nil
}

func (r *Report) SetStatus(raw string) error {
	return r.Apply(ReportUpdate{Status: &raw})
}

func (r *Report) SetUrgency(raw int) error {
	return r.Apply(ReportUpdate{Urgency: &raw})
}

func (r *Report) SetContent(raw string) error {
	return r.Apply(ReportUpdate{Content: &raw})
}
