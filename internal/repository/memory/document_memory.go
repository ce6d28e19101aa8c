package memory

import (
	"context"
	"strings"
	"sync"

	"docinsight/internal/model"
	"docinsight/internal/repository"
)

// DocumentMemory is the in-memory implementation of
// repository.DocumentRepository. The history is a newest-first slice with
// an ID index; it is safe for concurrent use. Nothing is persisted.
type DocumentMemory struct {
	mu   sync.RWMutex
	docs []model.Document // newest first
	byID map[string]struct{}
}

// NewDocumentMemory creates an empty in-memory repository.
func NewDocumentMemory() *DocumentMemory {
	return &DocumentMemory{byID: make(map[string]struct{})}
}

var _ repository.DocumentRepository = (*DocumentMemory)(nil)

// Create inserts the document at its position in upload-time order.
// Records are typically appended newest-first; seed records carrying
// older timestamps are placed where they belong.
func (r *DocumentMemory) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[doc.ID]; ok {
		return nil, repository.ErrDuplicateID
	}

	stored := *doc
	pos := 0
	for pos < len(r.docs) && r.docs[pos].UploadedAt.After(stored.UploadedAt) {
		pos++
	}
	r.docs = append(r.docs, model.Document{})
	copy(r.docs[pos+1:], r.docs[pos:])
	r.docs[pos] = stored
	r.byID[stored.ID] = struct{}{}

	out := stored
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentMemory) FindByID(ctx context.Context, id string) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.docs {
		if r.docs[i].ID == id {
			out := r.docs[i]
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

// List returns a newest-first page of matching documents plus the total
// match count.
func (r *DocumentMemory) List(ctx context.Context, q repository.ListQuery) (*repository.PageResult[model.Document], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	matched := make([]model.Document, 0, len(r.docs))
	for _, d := range r.docs {
		if needle == "" || matches(d, needle) {
			matched = append(matched, d)
		}
	}

	total := len(matched)
	start := q.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	items := make([]model.Document, end-start)
	copy(items, matched[start:end])

	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// Delete removes a document by ID.
func (r *DocumentMemory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	for i := range r.docs {
		if r.docs[i].ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			break
		}
	}
	delete(r.byID, id)
	return nil
}

func matches(d model.Document, needle string) bool {
	if strings.Contains(strings.ToLower(d.Filename), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(d.Insights.Summary), needle) {
		return true
	}
	for _, s := range d.Insights.KeySkills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
