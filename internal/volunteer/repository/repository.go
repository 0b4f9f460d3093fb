package repository

import (
	"context"

	"github.com/volunteerhub/volunteer-server/internal/volunteer"
)

// InsertResult acknowledges a single insert.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult acknowledges an upsert. UpsertedID is set only when the
// update created the document.
type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

// DeleteResult acknowledges a delete. Deleting a missing id yields DeletedCount 0.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Repository is one collection of schema-less documents.
type Repository interface {
	Find(ctx context.Context, f volunteer.Filter, opts volunteer.FindOptions) ([]volunteer.Document, error)
	// FindByID returns (nil, nil) when no document has the id.
	FindByID(ctx context.Context, id string) (volunteer.Document, error)
	Insert(ctx context.Context, d volunteer.Document) (InsertResult, error)
	Upsert(ctx context.Context, id string, d volunteer.Document) (UpdateResult, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
	Count(ctx context.Context, f volunteer.Filter) (int64, error)
}
