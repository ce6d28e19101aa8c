package repository

import (
	"context"

	"docinsight/internal/model"
)

// DocumentRepository defines data access for the document history.
// No business logic here — strictly list bookkeeping.
type DocumentRepository interface {
	// Create inserts a new document record. IDs must be unique within
	// the history; inserting an existing ID returns ErrDuplicateID.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a newest-first page of documents and the total count
	// for the given filter.
	List(ctx context.Context, q ListQuery) (*PageResult[model.Document], error)

	// Delete removes a document by ID. It returns ErrNotFound if no such
	// record exists.
	Delete(ctx context.Context, id string) error
}
