package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"docinsight/internal/insight"
	"docinsight/internal/model"
	"docinsight/internal/repository"
	"docinsight/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("document not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrUnsupportedType = errors.New("only PDF files are allowed")
	ErrFileTooLarge    = errors.New("file size exceeds the allowed maximum")
)

// AnalysisFailedMessage is the static message stored on records whose
// analysis step rejected.
const AnalysisFailedMessage = "Analysis failed. Please try again."

// ContentTypePDF is the only accepted upload MIME type.
const ContentTypePDF = "application/pdf"

// DefaultListLimit bounds history listings when the caller does not ask
// for a specific page size.
const DefaultListLimit = 50

// DocumentListResult is the service-level DTO for paginated history.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases of the insight workflow.
type DocumentService interface {
	// Upload validates the file by type and size, discards its content,
	// runs the mock analysis and stores the resulting record. A failed
	// analysis is recorded too, with status "failed" and a static error
	// message; Upload does not return an error for it.
	Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.Document, error)

	// List returns a newest-first page of history records matching the
	// optional search term, plus the total match count.
	List(ctx context.Context, limit, offset int, search string) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document from the history.
	Delete(ctx context.Context, id string) error
}

// documentService is the concrete implementation of DocumentService.
type documentService struct {
	sink     storage.Sink
	analyzer insight.Analyzer
	repo     repository.DocumentRepository
	maxBytes int64
	now      func() time.Time
}

// NewDocumentService constructs a DocumentService. maxBytes caps accepted
// upload sizes.
func NewDocumentService(sink storage.Sink, analyzer insight.Analyzer, repo repository.DocumentRepository, maxBytes int64) DocumentService {
	return &documentService{
		sink:     sink,
		analyzer: analyzer,
		repo:     repo,
		maxBytes: maxBytes,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if contentType != ContentTypePDF {
		return nil, ErrUnsupportedType
	}
	if size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	// Consume and discard the stream. The declared multipart size was
	// checked above; the drain cap re-checks what actually arrives.
	n, err := s.sink.Drain(ctx, r, s.maxBytes)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, ErrFileTooLarge
		}
		return nil, fmt.Errorf("consume upload: %w", err)
	}

	doc := &model.Document{
		ID:               uuid.New().String(),
		Filename:         filename,
		ContentType:      contentType,
		Size:             n,
		SizeLabel:        model.HumanSize(n),
		UploadedAt:       s.now(),
		ProcessingStatus: model.StatusCompleted,
	}

	ins, err := s.analyzer.Analyze(ctx, filename, n)
	switch {
	case err == nil:
		doc.Insights = ins
	case errors.Is(err, insight.ErrUnavailable):
		// Keep the record: a failed analysis is part of the history.
		doc.ProcessingStatus = model.StatusFailed
		doc.ErrorMessage = AnalysisFailedMessage
	default:
		return nil, fmt.Errorf("analyze document: %w", err)
	}

	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return stored, nil
}

// List returns paginated history without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int, search string) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.ListQuery{Limit: limit, Offset: offset, Search: search})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes a document record from the history.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
