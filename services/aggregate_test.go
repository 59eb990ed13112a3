package services

import (
	"testing"

	"paper-review-api/models"

	"github.com/stretchr/testify/assert"
)

func reviewsWith(statuses ...models.ReviewStatus) []models.Review {
	reviews := make([]models.Review, 0, len(statuses))
	for _, status := range statuses {
		reviews = append(reviews, models.Review{Status: status})
	}
	return reviews
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name    string
		reviews []models.Review
		want    Aggregate
	}{
		{"no reviews", nil, Aggregate{Label: AggregateNotAssigned}},
		{"single pending", reviewsWith(models.ReviewPending), Aggregate{AggregatePendingReviews, 0, 1}},
		{"pending wins over decisions", reviewsWith(models.ReviewApproved, models.ReviewPending, models.ReviewRejected), Aggregate{AggregatePendingReviews, 2, 3}},
		{"all approved", reviewsWith(models.ReviewApproved, models.ReviewApproved), Aggregate{AggregateAllApproved, 2, 2}},
		{"all rejected", reviewsWith(models.ReviewRejected), Aggregate{AggregateAllRejected, 1, 1}},
		{"mixed decisions", reviewsWith(models.ReviewApproved, models.ReviewRejected), Aggregate{AggregateConflict, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateStatus(tt.reviews))
		})
	}
}

func TestAggregateStatusIgnoresOrder(t *testing.T) {
	a := AggregateStatus(reviewsWith(models.ReviewRejected, models.ReviewApproved, models.ReviewApproved))
	b := AggregateStatus(reviewsWith(models.ReviewApproved, models.ReviewApproved, models.ReviewRejected))
	assert.Equal(t, a, b)
}
