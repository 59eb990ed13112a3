package services

import (
	"time"

	"paper-review-api/models"
)

// AuthorDetails are the fields hidden from reviewers under blind review.
type AuthorDetails struct {
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Affiliation string `json:"affiliation"`
}

// PaperView is the serialized form of a paper. A nil AuthorDetails drops
// the author keys from the JSON entirely.
type PaperView struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	*AuthorDetails
	Abstract    string             `json:"abstract"`
	Keywords    []string           `json:"keywords"`
	FilePath    string             `json:"filePath"`
	Status      models.PaperStatus `json:"status"`
	SubmittedAt time.Time          `json:"submittedAt"`
	Reviews     []ReviewView       `json:"reviews"`
	Aggregate   Aggregate          `json:"aggregate"`
}

type ReviewView struct {
	ID          string              `json:"_id"`
	Reviewer    models.ReviewerRef  `json:"reviewer"`
	Status      models.ReviewStatus `json:"status"`
	Remarks     *string             `json:"remarks,omitempty"`
	SubmittedAt *time.Time          `json:"submittedAt,omitempty"`
}

// NewReviewView resolves the reviewer to name and email only.
func NewReviewView(review models.Review) ReviewView {
	view := ReviewView{
		ID:          review.ID,
		Reviewer:    models.ReviewerRef{ID: review.ReviewerID},
		Status:      review.Status,
		Remarks:     review.Remarks,
		SubmittedAt: review.SubmittedAt,
	}
	if review.Reviewer != nil {
		view.Reviewer.Name = review.Reviewer.Name
		view.Reviewer.Email = review.Reviewer.Email
	}
	return view
}

// FilterForRole shapes a paper for the caller. Admins get the full record.
// Reviewers lose the author fields and see only their own review entries,
// with the aggregate computed over those entries alone.
func FilterForRole(paper models.Paper, caller Caller) PaperView {
	view := PaperView{
		ID:          paper.ID,
		Title:       paper.Title,
		Abstract:    paper.Abstract,
		Keywords:    []string(paper.Keywords),
		FilePath:    paper.FilePath,
		Status:      paper.Status,
		SubmittedAt: paper.SubmittedAt,
		Reviews:     make([]ReviewView, 0, len(paper.Reviews)),
	}
	if view.Keywords == nil {
		view.Keywords = []string{}
	}

	if caller.Role == models.RoleAdmin {
		view.AuthorDetails = &AuthorDetails{
			AuthorName:  paper.AuthorName,
			AuthorEmail: paper.AuthorEmail,
			Affiliation: paper.Affiliation,
		}
	}

	visible := make([]models.Review, 0, len(paper.Reviews))
	for _, review := range paper.Reviews {
		if caller.Role != models.RoleAdmin && review.ReviewerID != caller.ID {
			continue
		}
		visible = append(visible, review)
		view.Reviews = append(view.Reviews, NewReviewView(review))
	}
	view.Aggregate = AggregateStatus(visible)
	return view
}

// FilterListForRole applies FilterForRole to every paper of a list response.
func FilterListForRole(papers []models.Paper, caller Caller) []PaperView {
	views := make([]PaperView, 0, len(papers))
	for _, paper := range papers {
		views = append(views, FilterForRole(paper, caller))
	}
	return views
}

// FullView is the unfiltered representation used for admins and for the
// submitter's own confirmation.
func FullView(paper models.Paper) PaperView {
	return FilterForRole(paper, Caller{Role: models.RoleAdmin})
}
