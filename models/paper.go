package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaperStatus is the overall decision set by an admin.
type PaperStatus string

const (
	PaperPending  PaperStatus = "Pending"
	PaperAccepted PaperStatus = "Accepted"
	PaperRejected PaperStatus = "Rejected"
)

func ParsePaperStatus(raw string) (PaperStatus, bool) {
	switch s := PaperStatus(strings.TrimSpace(raw)); s {
	case PaperPending, PaperAccepted, PaperRejected:
		return s, true
	}
	return "", false
}

// ReviewStatus is a single reviewer's decision.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending"
	ReviewApproved ReviewStatus = "Approved"
	ReviewRejected ReviewStatus = "Rejected"
)

// ParseDecision accepts only the two terminal review states.
func ParseDecision(raw string) (ReviewStatus, bool) {
	switch s := ReviewStatus(strings.TrimSpace(raw)); s {
	case ReviewApproved, ReviewRejected:
		return s, true
	}
	return "", false
}

type Paper struct {
	ID          string                      `gorm:"primaryKey;column:id;size:36" json:"_id"`
	Title       string                      `gorm:"column:title;not null" json:"title"`
	AuthorName  string                      `gorm:"column:author_name;not null" json:"authorName"`
	AuthorEmail string                      `gorm:"column:author_email;not null" json:"authorEmail"`
	Affiliation string                      `gorm:"column:affiliation;not null" json:"affiliation"`
	Abstract    string                      `gorm:"column:abstract;type:text;not null" json:"abstract"`
	Keywords    datatypes.JSONSlice[string] `gorm:"column:keywords" json:"keywords"`
	FilePath    string                      `gorm:"column:file_path;not null" json:"filePath"`
	Status      PaperStatus                 `gorm:"column:status;size:16;not null;default:Pending;index" json:"status"`
	SubmittedAt time.Time                   `gorm:"column:submitted_at;index" json:"submittedAt"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at" json:"updatedAt"`

	// Relations
	Reviews []Review `gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE" json:"reviews"`
}

func (Paper) TableName() string {
	return "papers"
}

func (p *Paper) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PaperPending
	}
	if p.SubmittedAt.IsZero() {
		p.SubmittedAt = time.Now()
	}
	p.AuthorEmail = NormalizeEmail(p.AuthorEmail)
	return nil
}

// ReviewBy returns the review owned by reviewerID, or nil.
func (p *Paper) ReviewBy(reviewerID string) *Review {
	for i := range p.Reviews {
		if p.Reviews[i].ReviewerID == reviewerID {
			return &p.Reviews[i]
		}
	}
	return nil
}

// Review is owned by its Paper; one row per (paper, reviewer).
type Review struct {
	ID          string       `gorm:"primaryKey;column:id;size:36" json:"_id"`
	PaperID     string       `gorm:"column:paper_id;size:36;not null;uniqueIndex:idx_paper_reviewer" json:"-"`
	ReviewerID  string       `gorm:"column:reviewer_id;size:36;not null;uniqueIndex:idx_paper_reviewer;index" json:"reviewerId"`
	Position    int          `gorm:"column:position;not null" json:"-"`
	Status      ReviewStatus `gorm:"column:status;size:16;not null;default:Pending" json:"status"`
	Remarks     *string      `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	SubmittedAt *time.Time   `gorm:"column:submitted_at" json:"submittedAt,omitempty"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"-"`
}

func (Review) TableName() string {
	return "paper_reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReviewPending
	}
	return nil
}
