package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"paper-review-api/models"

	"gorm.io/gorm"
)

// ReportService builds admin dashboards and exports over all papers.
type ReportService struct {
	papers *PaperStore
	users  *UserService
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		papers: NewPaperStore(db),
		users:  NewUserService(db),
	}
}

// DashboardStats counts papers by overall status and by review aggregate.
type DashboardStats struct {
	Total       int                    `json:"total"`
	Pending     int                    `json:"pending"`
	Accepted    int                    `json:"accepted"`
	Rejected    int                    `json:"rejected"`
	Users       int64                  `json:"users"`
	ByAggregate map[AggregateLabel]int `json:"byAggregate"`
	Recent      []PaperView            `json:"recent"`
}

const recentPaperCount = 5

func (s *ReportService) Stats(ctx context.Context) (*DashboardStats, error) {
	papers, err := s.papers.List(ctx, "")
	if err != nil {
		return nil, err
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Total: len(papers),
		Users: users,
		ByAggregate: map[AggregateLabel]int{
			AggregateNotAssigned:    0,
			AggregatePendingReviews: 0,
			AggregateAllApproved:    0,
			AggregateAllRejected:    0,
			AggregateConflict:       0,
		},
	}
	for _, paper := range papers {
		switch paper.Status {
		case models.PaperPending:
			stats.Pending++
		case models.PaperAccepted:
			stats.Accepted++
		case models.PaperRejected:
			stats.Rejected++
		}
		stats.ByAggregate[AggregateStatus(paper.Reviews).Label]++
	}

	// papers are already newest first
	recent := papers
	if len(recent) > recentPaperCount {
		recent = recent[:recentPaperCount]
	}
	stats.Recent = make([]PaperView, 0, len(recent))
	for _, paper := range recent {
		stats.Recent = append(stats.Recent, FullView(paper))
	}
	return stats, nil
}

var exportHeader = []string{
	"id", "title", "author_name", "author_email", "affiliation", "keywords",
	"status", "review_aggregate", "reviews_completed", "reviews_total", "reviewers", "submitted_at",
}

// ExportCSV writes one row per paper to w.
func (s *ReportService) ExportCSV(ctx context.Context, w io.Writer) error {
	papers, err := s.papers.List(ctx, "")
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, paper := range papers {
		agg := AggregateStatus(paper.Reviews)
		reviewers := make([]string, 0, len(paper.Reviews))
		for _, review := range paper.Reviews {
			name := review.ReviewerID
			if review.Reviewer != nil && review.Reviewer.Name != "" {
				name = review.Reviewer.Name
			}
			reviewers = append(reviewers, fmt.Sprintf("%s (%s)", name, review.Status))
		}

		row := []string{
			paper.ID,
			csvCell(paper.Title),
			csvCell(paper.AuthorName),
			csvCell(paper.AuthorEmail),
			csvCell(paper.Affiliation),
			csvCell(strings.Join(paper.Keywords, "; ")),
			string(paper.Status),
			string(agg.Label),
			strconv.Itoa(agg.Completed),
			strconv.Itoa(agg.Total),
			csvCell(strings.Join(reviewers, "; ")),
			paper.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// csvCell prefixes values a spreadsheet would evaluate as a formula.
func csvCell(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + value
	}
	return value
}
