package services

import "paper-review-api/models"

// AggregateLabel summarizes the decisions of every review on a paper.
type AggregateLabel string

const (
	AggregateNotAssigned    AggregateLabel = "Not Assigned"
	AggregatePendingReviews AggregateLabel = "Pending Reviews"
	AggregateAllApproved    AggregateLabel = "All Approved"
	AggregateAllRejected    AggregateLabel = "All Rejected"
	AggregateConflict       AggregateLabel = "Conflict"
)

// Aggregate is derived at read time and never persisted.
type Aggregate struct {
	Label     AggregateLabel `json:"label"`
	Completed int            `json:"completed"`
	Total     int            `json:"total"`
}

// AggregateStatus derives the label from the multiset of review statuses.
// It is independent of the admin-set paper status.
func AggregateStatus(reviews []models.Review) Aggregate {
	agg := Aggregate{Total: len(reviews)}
	if agg.Total == 0 {
		agg.Label = AggregateNotAssigned
		return agg
	}

	var approved, rejected int
	for _, review := range reviews {
		switch review.Status {
		case models.ReviewApproved:
			approved++
		case models.ReviewRejected:
			rejected++
		}
	}
	agg.Completed = approved + rejected

	switch {
	case agg.Completed < agg.Total:
		agg.Label = AggregatePendingReviews
	case approved == agg.Total:
		agg.Label = AggregateAllApproved
	case rejected == agg.Total:
		agg.Label = AggregateAllRejected
	default:
		agg.Label = AggregateConflict
	}
	return agg
}
