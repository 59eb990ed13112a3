package services

import (
	"context"
	"mime/multipart"
	"strings"

	"paper-review-api/config"
	"paper-review-api/models"
	"paper-review-api/utils"

	"gorm.io/gorm"
)

const pdfMimeType = "application/pdf"

type PaperService struct {
	papers   *PaperStore
	files    *FileStore
	notifier Notifier
	activity *ActivityHub
	maxSize  int64
}

func NewPaperService(db *gorm.DB, files *FileStore) *PaperService {
	if files == nil {
		files = NewFileStore("")
	}
	return &PaperService{
		papers:   NewPaperStore(db),
		files:    files,
		notifier: DefaultNotifier,
		activity: Activity,
		maxSize:  config.App.MaxUploadSize,
	}
}

// SubmitInput holds the text fields of a paper submission form.
type SubmitInput struct {
	Title       string `form:"title"`
	AuthorName  string `form:"authorName"`
	AuthorEmail string `form:"authorEmail"`
	Affiliation string `form:"affiliation"`
	Abstract    string `form:"abstract"`
	Keywords    string `form:"keywords"`
}

func (in SubmitInput) validate() error {
	missing := make([]string, 0)
	for _, field := range []struct{ name, value string }{
		{"title", in.Title},
		{"authorName", in.AuthorName},
		{"authorEmail", in.AuthorEmail},
		{"affiliation", in.Affiliation},
		{"abstract", in.Abstract},
	} {
		if utils.SanitizeInput(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return ValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	if !utils.ValidateEmail(models.NormalizeEmail(in.AuthorEmail)) {
		return ValidationError("Please provide a valid author email address.")
	}
	return nil
}

// Submit stores the PDF and then creates the paper. Nothing is persisted
// when the file is missing, is not a PDF, or cannot be written.
func (s *PaperService) Submit(ctx context.Context, in SubmitInput, file *multipart.FileHeader) (*models.Paper, error) {
	if file == nil {
		return nil, ValidationError("A PDF file for the paper is required.")
	}
	if mime := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type"))); mime != pdfMimeType {
		return nil, ValidationError("Invalid file type. Only PDFs are allowed.")
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return nil, ValidationError("File size exceeds the upload limit.")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	ref, err := s.files.Save(file)
	if err != nil {
		return nil, ServerError("Server error while submitting paper.", err)
	}

	paper := models.Paper{
		Title:       utils.SanitizeInput(in.Title),
		AuthorName:  utils.SanitizeInput(in.AuthorName),
		AuthorEmail: models.NormalizeEmail(in.AuthorEmail),
		Affiliation: utils.SanitizeInput(in.Affiliation),
		Abstract:    utils.SanitizeInput(in.Abstract),
		Keywords:    utils.ParseKeywords(in.Keywords),
		FilePath:    ref,
		Status:      models.PaperPending,
	}
	if err := s.papers.Create(ctx, &paper); err != nil {
		if rmErr := s.files.Remove(ref); rmErr != nil {
			config.Logger.Warn().Err(rmErr).Str("file", ref).Msg("failed to remove orphaned upload")
		}
		return nil, ServerError("Server error while submitting paper.", err)
	}
	paper.Reviews = []models.Review{}

	s.activity.Publish(ActivityEvent{
		Type:      EventPaperSubmitted,
		PaperID:   paper.ID,
		Title:     paper.Title,
		Aggregate: AggregateStatus(nil),
	})
	return &paper, nil
}

// List returns every paper for admins and only assigned, anonymized papers for reviewers.
func (s *PaperService) List(ctx context.Context, caller Caller) ([]PaperView, error) {
	reviewerID := ""
	if !caller.IsAdmin() {
		reviewerID = caller.ID
		if reviewerID == "" {
			return nil, ForbiddenError("You do not have permission to perform this action.")
		}
	}

	papers, err := s.papers.List(ctx, reviewerID)
	if err != nil {
		return nil, ServerError("Server error while fetching papers.", err)
	}
	return FilterListForRole(papers, caller), nil
}

// Get fetches one paper shaped for the caller. Reviewers may only open
// papers they are assigned to.
func (s *PaperService) Get(ctx context.Context, id string, caller Caller) (*PaperView, error) {
	paper, err := s.papers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && paper.ReviewBy(caller.ID) == nil {
		return nil, ForbiddenError("You are not assigned to review this paper.")
	}
	view := FilterForRole(*paper, caller)
	return &view, nil
}

// UpdateStatus sets the admin-controlled overall status. It does not look at
// the review aggregate.
func (s *PaperService) UpdateStatus(ctx context.Context, id, rawStatus string) (*models.Paper, error) {
	status, ok := models.ParsePaperStatus(rawStatus)
	if !ok {
		return nil, ValidationError("Status must be one of 'Pending', 'Accepted' or 'Rejected'.")
	}
	if err := s.papers.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	paper, err := s.papers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.PaperDecided(*paper)
	s.activity.Publish(ActivityEvent{
		Type:      EventStatusChanged,
		PaperID:   paper.ID,
		Title:     paper.Title,
		Detail:    string(paper.Status),
		Aggregate: AggregateStatus(paper.Reviews),
	})
	return paper, nil
}

// Delete removes the paper, its reviews and its stored file.
func (s *PaperService) Delete(ctx context.Context, id string) error {
	paper, err := s.papers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.papers.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.files.Remove(paper.FilePath); err != nil {
		config.Logger.Warn().Err(err).Str("file", paper.FilePath).Msg("failed to remove stored paper file")
	}
	return nil
}
