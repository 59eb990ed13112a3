package services

import (
	"context"
	"testing"
	"time"

	"paper-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReviewService(t *testing.T) (*ReviewService, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	svc := NewReviewService(newTestDB(t))
	svc.notifier = notifier
	svc.activity = NewActivityHub()
	return svc, notifier
}

func TestAssignReviewer(t *testing.T) {
	svc, notifier := newTestReviewService(t)
	db := svc.papers.db
	ctx := context.Background()

	paper := seedPaper(t, db, "assign")
	reviewer := seedUser(t, db, "Rita", "rita@example.org", models.RoleReviewer)

	updated, err := svc.AssignReviewer(ctx, paper.ID, reviewer.ID)
	require.NoError(t, err)
	require.Len(t, updated.Reviews, 1)

	review := updated.Reviews[0]
	assert.Equal(t, reviewer.ID, review.ReviewerID)
	assert.Equal(t, models.ReviewPending, review.Status)
	assert.Nil(t, review.Remarks)
	assert.Nil(t, review.SubmittedAt)
	require.NotNil(t, review.Reviewer)
	assert.Equal(t, "Rita", review.Reviewer.Name)
	assert.Equal(t, "rita@example.org", review.Reviewer.Email)
	assert.Empty(t, review.Reviewer.PasswordHash)

	assert.Equal(t, []string{"rita@example.org"}, notifier.assigned)
}

func TestAssignReviewerTwiceConflicts(t *testing.T) {
	svc, _ := newTestReviewService(t)
	db := svc.papers.db
	ctx := context.Background()

	paper := seedPaper(t, db, "dup")
	reviewer := seedUser(t, db, "Rita", "rita@example.org", models.RoleReviewer)

	_, err := svc.AssignReviewer(ctx, paper.ID, reviewer.ID)
	require.NoError(t, err)

	_, err = svc.AssignReviewer(ctx, paper.ID, reviewer.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))
	assert.Equal(t, int64(1), countReviews(t, db, paper.ID))
}

func TestAssignReviewerKeepsAssignmentOrder(t *testing.T) {
	svc, _ := newTestReviewService(t)
	db := svc.papers.db
	ctx := context.Background()

	paper := seedPaper(t, db, "order")
	first := seedUser(t, db, "Zed", "zed@example.org", models.RoleReviewer)
	second := seedUser(t, db, "Amy", "amy@example.org", models.RoleReviewer)

	_, err := svc.AssignReviewer(ctx, paper.ID, first.ID)
	require.NoError(t, err)
	updated, err := svc.AssignReviewer(ctx, paper.ID, second.ID)
	require.NoError(t, err)

	require.Len(t, updated.Reviews, 2)
	assert.Equal(t, first.ID, updated.Reviews[0].ReviewerID)
	assert.Equal(t, second.ID, updated.Reviews[1].ReviewerID)
}

func TestAssignReviewerRejectsInvalidTargets(t *testing.T) {
	svc, notifier := newTestReviewService(t)
	db := svc.papers.db
	ctx := context.Background()

	paper := seedPaper(t, db, "invalid")
	admin := seedUser(t, db, "Chair", "chair@example.org", models.RoleAdmin)
	reviewer := seedUser(t, db, "Rita", "rita@example.org", models.RoleReviewer)

	tests := []struct {
		name       string
		paperID    string
		reviewerID string
		kind       ErrorKind
	}{
		{"missing paper", "no-such-paper", reviewer.ID, KindNotFound},
		{"missing reviewer", paper.ID, "no-such-user", KindNotFound},
		{"admin is not a reviewer", paper.ID, admin.ID, KindNotFound},
		{"empty reviewer id", paper.ID, "", KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AssignReviewer(ctx, tt.paperID, tt.reviewerID)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}

	assert.Equal(t, int64(0), countReviews(t, db, paper.ID))
	assert.Empty(t, notifier.assigned)
}

func TestSubmitReviewByUnassignedReviewerIsForbidden(t *testing.T) {
	svc, _ := newTestReviewService(t)
	db := svc.papers.db
	ctx := context.Background()

	paper := seedPaper(t, db, "forbidden")
	assigned := seedUser(t, db, "Rita", "rita@example.org", models.RoleReviewer)
	outsider := seedUser(t, db, "Otto", "otto@example.org", models.RoleReviewer)
	_, err := svc.AssignReviewer(ctx, paper.ID, assigned.ID)
	require.NoError(t, err)

	_, err = svc.SubmitReview(ctx, paper.ID, outsider.ID, SubmitReviewInput{Status: "Approved"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindForbidden))

	_, err = svc.SubmitReview(ctx, "no-such-paper", assigned.ID, SubmitReviewInput{Status: "Approved"})
	assert.True(t, IsKind(err, KindNotFound))
}

func TestSubmitReviewUpdatesOnlyCallersEntry(t *testing.T) {
	svc, _ := newTestReviewService(t)
	db := svc.papers.db
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	paper := seedPaper(t, db, "isolation")
	rita := seedUser(t, db, "Rita", "rita@example.org", models.RoleReviewer)
	ravi := seedUser(t, db, "Ravi", "ravi@example.org", models.RoleReviewer)
	_, err := svc.AssignReviewer(ctx, paper.ID, rita.ID)
	require.NoError(t, err)
	_, err = svc.AssignReviewer(ctx, paper.ID, ravi.ID)
	require.NoError(t, err)

	review, err := svc.SubmitReview(ctx, paper.ID, rita.ID, SubmitReviewInput{Status: "Approved", Remarks: " well argued "})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, review.Status)
	require.NotNil(t, review.Remarks)
	assert.Equal(t, "well argued", *review.Remarks)

	stored, err := svc.papers.FindByID(ctx, paper.ID)
	require.NoError(t, err)

	mine := stored.ReviewBy(rita.ID)
	require.NotNil(t, mine)
	assert.Equal(t, models.ReviewApproved, mine.Status)
	require.NotNil(t, mine.SubmittedAt)
	assert.True(t, fixed.Equal(*mine.SubmittedAt))

	other := stored.ReviewBy(ravi.ID)
	require.NotNil(t, other)
	assert.Equal(t, models.ReviewPending, other.Status)
	assert.Nil(t, other.Remarks)
	assert.Nil(t, other.SubmittedAt)

	assert.Equal(t, Aggregate{AggregatePendingReviews, 1, 2}, AggregateStatus(stored.Reviews))
}

func TestSubmitReviewResubmissionOverwrites(t *testing.T) {
	svc, _ := newTestReviewService(t)
	db := svc.papers.db
	ctx := context.Background()

	paper := seedPaper(t, db, "resubmit")
	rita := seedUser(t, db, "Rita", "rita@example.org", models.RoleReviewer)
	_, err := svc.AssignReviewer(ctx, paper.ID, rita.ID)
	require.NoError(t, err)

	_, err = svc.SubmitReview(ctx, paper.ID, rita.ID, SubmitReviewInput{Status: "Rejected", Remarks: "weak evaluation"})
	require.NoError(t, err)
	// empty remarks keep the earlier text
	_, err = svc.SubmitReview(ctx, paper.ID, rita.ID, SubmitReviewInput{Status: "Approved"})
	require.NoError(t, err)

	stored, err := svc.papers.FindByID(ctx, paper.ID)
	require.NoError(t, err)
	require.Len(t, stored.Reviews, 1)
	assert.Equal(t, models.ReviewApproved, stored.Reviews[0].Status)
	require.NotNil(t, stored.Reviews[0].Remarks)
	assert.Equal(t, "weak evaluation", *stored.Reviews[0].Remarks)
	assert.Equal(t, AggregateAllApproved, AggregateStatus(stored.Reviews).Label)
}

func TestSubmitReviewRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestReviewService(t)
	db := svc.papers.db
	ctx := context.Background()

	paper := seedPaper(t, db, "bad-status")
	rita := seedUser(t, db, "Rita", "rita@example.org", models.RoleReviewer)
	_, err := svc.AssignReviewer(ctx, paper.ID, rita.ID)
	require.NoError(t, err)

	for _, status := range []string{"", "Pending", "approved", "Maybe"} {
		_, err = svc.SubmitReview(ctx, paper.ID, rita.ID, SubmitReviewInput{Status: status})
		assert.True(t, IsKind(err, KindValidation), status)
	}
}

func TestReviewDecisionsDoNotChangePaperStatus(t *testing.T) {
	svc, _ := newTestReviewService(t)
	db := svc.papers.db
	ctx := context.Background()

	paper := seedPaper(t, db, "decoupled")
	rita := seedUser(t, db, "Rita", "rita@example.org", models.RoleReviewer)
	_, err := svc.AssignReviewer(ctx, paper.ID, rita.ID)
	require.NoError(t, err)
	_, err = svc.SubmitReview(ctx, paper.ID, rita.ID, SubmitReviewInput{Status: "Approved"})
	require.NoError(t, err)

	stored, err := svc.papers.FindByID(ctx, paper.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaperPending, stored.Status)
	assert.Equal(t, AggregateAllApproved, AggregateStatus(stored.Reviews).Label)
}
