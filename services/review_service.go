package services

import (
	"context"
	"fmt"
	"time"

	"paper-review-api/models"
	"paper-review-api/utils"

	"gorm.io/gorm"
)

// ReviewService runs the assignment workflow: reviewers are attached to
// papers by admins and record their own decisions.
type ReviewService struct {
	papers   *PaperStore
	users    *UserService
	notifier Notifier
	activity *ActivityHub
	now      func() time.Time
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		papers:   NewPaperStore(db),
		users:    NewUserService(db),
		notifier: DefaultNotifier,
		activity: Activity,
		now:      time.Now,
	}
}

// AssignReviewer appends a Pending review for reviewerID. Assigning the same
// reviewer twice is a Conflict; the duplicate check is a read followed by a
// write, backed by the unique index on (paper_id, reviewer_id).
func (s *ReviewService) AssignReviewer(ctx context.Context, paperID, reviewerID string) (*models.Paper, error) {
	if reviewerID == "" {
		return nil, ValidationError("Please provide a reviewerId.")
	}

	paper, err := s.papers.FindByID(ctx, paperID)
	if err != nil && !IsKind(err, KindNotFound) {
		return nil, err
	}
	reviewer, userErr := s.users.FindByID(ctx, reviewerID)
	if userErr != nil && !IsKind(userErr, KindNotFound) {
		return nil, userErr
	}
	if paper == nil || reviewer == nil || reviewer.Role != models.RoleReviewer {
		return nil, NotFoundError("Paper or valid reviewer not found.")
	}

	if paper.ReviewBy(reviewerID) != nil {
		return nil, ConflictError("Reviewer already assigned.")
	}

	review := models.Review{ReviewerID: reviewerID, Status: models.ReviewPending}
	if err := s.papers.AddReview(ctx, paper.ID, &review); err != nil {
		return nil, err
	}

	updated, err := s.papers.FindByID(ctx, paper.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.ReviewerAssigned(*updated, *reviewer)
	s.activity.Publish(ActivityEvent{
		Type:      EventReviewerAssigned,
		PaperID:   updated.ID,
		Title:     updated.Title,
		Detail:    reviewer.Name,
		Aggregate: AggregateStatus(updated.Reviews),
	})
	return updated, nil
}

// SubmitReviewInput is the reviewer's decision payload.
type SubmitReviewInput struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

// SubmitReview records the caller's decision on their own review entry.
// Re-submission overwrites the previous decision; concurrent submissions
// from the same reviewer are last-write-wins.
func (s *ReviewService) SubmitReview(ctx context.Context, paperID, callerID string, in SubmitReviewInput) (*models.Review, error) {
	status, ok := models.ParseDecision(in.Status)
	if !ok {
		return nil, ValidationError("Status must be either 'Approved' or 'Rejected'.")
	}

	paper, err := s.papers.FindByID(ctx, paperID)
	if err != nil {
		return nil, err
	}

	review := paper.ReviewBy(callerID)
	if review == nil {
		return nil, ForbiddenError("You are not assigned to review this paper.")
	}

	now := s.now()
	review.Status = status
	if remarks := utils.SanitizeInput(in.Remarks); remarks != "" {
		review.Remarks = &remarks
	}
	review.SubmittedAt = &now

	if err := s.papers.SaveDecision(ctx, review); err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	s.activity.Publish(ActivityEvent{
		Type:      EventReviewSubmitted,
		PaperID:   paper.ID,
		Title:     paper.Title,
		Detail:    string(status),
		Aggregate: AggregateStatus(paper.Reviews),
	})
	return review, nil
}
