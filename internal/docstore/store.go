// Package docstore defines the document-store contract the data layer is written against,
// together with in-memory, MongoDB and SQL (gorm) implementations of it.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document id does not exist in the collection.
var ErrNotFound = errors.New("document not found")

// Fields is the field map of a single document.
type Fields map[string]any

// Document is a stored document together with its store-assigned id.
type Document struct {
	ID     string
	Fields Fields
}

type serverTimestamp struct{}

// ServerTimestamp is a field value placeholder. The store replaces it with its own clock
// when the document is written, so ordering never depends on a caller's clock.
var ServerTimestamp = serverTimestamp{}

// OpKind enumerates the field update primitives a store supports.
type OpKind int

const (
	OpSet OpKind = iota
	OpIncrement
	OpAppendUnique
)

// FieldOp is a single-field mutation.
type FieldOp struct {
	Kind  OpKind
	Value any
}

// Set overwrites the field.
func Set(v any) FieldOp { return FieldOp{Kind: OpSet, Value: v} }

// Increment atomically adds n to an integer field. A missing field counts as zero.
func Increment(n int64) FieldOp { return FieldOp{Kind: OpIncrement, Value: n} }

// AppendUnique atomically adds v to an array field unless an equal element is already present.
func AppendUnique(v any) FieldOp { return FieldOp{Kind: OpAppendUnique, Value: v} }

// UpdateOptions tune UpdateField.
type UpdateOptions struct {
	// Upsert creates the document when it does not exist instead of failing with ErrNotFound.
	Upsert bool
}

// UpdateOption configures an UpdateField call.
type UpdateOption func(*UpdateOptions)

// Upsert makes UpdateField create a missing document.
func Upsert() UpdateOption {
	return func(o *UpdateOptions) { o.Upsert = true }
}

func resolveUpdateOptions(opts []UpdateOption) UpdateOptions {
	var o UpdateOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Store is the remote document store. Increment and AppendUnique must be atomic with
// respect to concurrent callers.
type Store interface {
	// CreateDocument writes a new document with a store-assigned id and returns that id.
	CreateDocument(ctx context.Context, collectionPath string, fields Fields) (string, error)
	// GetDocuments runs q against the collection.
	GetDocuments(ctx context.Context, collectionPath string, q Query) ([]Document, error)
	// UpdateField applies op to one field of one document.
	UpdateField(ctx context.Context, collectionPath, id, field string, op FieldOp, opts ...UpdateOption) error
	// GetDocument reads one document, or returns ErrNotFound.
	GetDocument(ctx context.Context, collectionPath, id string) (Fields, error)
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}
