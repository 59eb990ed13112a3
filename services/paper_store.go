package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paper-review-api/config"
	"paper-review-api/models"

	"gorm.io/gorm"
)

// PaperStore persists Paper aggregates together with their review rows.
type PaperStore struct {
	db *gorm.DB
}

func NewPaperStore(db *gorm.DB) *PaperStore {
	if db == nil {
		db = config.DB
	}
	return &PaperStore{db: db}
}

// withReviews preloads reviews in assignment order with reviewers reduced to name and email.
func withReviews(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Reviews", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Preload("Reviews.Reviewer", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email")
		})
}

func (s *PaperStore) Create(ctx context.Context, paper *models.Paper) error {
	if err := s.db.WithContext(ctx).Omit("Reviews").Create(paper).Error; err != nil {
		return fmt.Errorf("create paper: %w", err)
	}
	return nil
}

// FindByID loads a paper with its reviews. A missing row is a NotFound error.
func (s *PaperStore) FindByID(ctx context.Context, id string) (*models.Paper, error) {
	var paper models.Paper
	err := withReviews(s.db.WithContext(ctx)).Where("id = ?", id).First(&paper).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Paper not found.")
		}
		return nil, fmt.Errorf("load paper %s: %w", id, err)
	}
	return &paper, nil
}

// List returns papers newest first. A non-empty reviewerID restricts the
// query to papers holding a review by that reviewer.
func (s *PaperStore) List(ctx context.Context, reviewerID string) ([]models.Paper, error) {
	query := withReviews(s.db.WithContext(ctx)).Model(&models.Paper{})
	if reviewerID != "" {
		assigned := s.db.Model(&models.Review{}).Select("paper_id").Where("reviewer_id = ?", reviewerID)
		query = query.Where("id IN (?)", assigned)
	}

	var papers []models.Paper
	if err := query.Order("submitted_at DESC").Find(&papers).Error; err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	return papers, nil
}

// AddReview appends review to the paper's review list.
func (s *PaperStore) AddReview(ctx context.Context, paperID string, review *models.Review) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Review{}).Where("paper_id = ?", paperID).Count(&count).Error; err != nil {
			return fmt.Errorf("count reviews: %w", err)
		}

		review.PaperID = paperID
		review.Position = int(count)
		if err := tx.Omit("Reviewer").Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ConflictError("Reviewer already assigned.")
			}
			return fmt.Errorf("create review: %w", err)
		}

		return tx.Model(&models.Paper{}).Where("id = ?", paperID).Update("updated_at", time.Now()).Error
	})
}

// SaveDecision overwrites the decision fields of one review row.
func (s *PaperStore) SaveDecision(ctx context.Context, review *models.Review) error {
	updates := map[string]interface{}{
		"status":       review.Status,
		"remarks":      review.Remarks,
		"submitted_at": review.SubmittedAt,
	}
	if err := s.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", review.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("save review %s: %w", review.ID, err)
	}
	return nil
}

func (s *PaperStore) UpdateStatus(ctx context.Context, id string, status models.PaperStatus) error {
	result := s.db.WithContext(ctx).Model(&models.Paper{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("update paper status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFoundError("No paper found with that ID.")
	}
	return nil
}

// Delete removes the paper and every review it owns.
func (s *PaperStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("paper_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Paper{})
		if result.Error != nil {
			return fmt.Errorf("delete paper: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return NotFoundError("No paper found with that ID.")
		}
		return nil
	})
}
