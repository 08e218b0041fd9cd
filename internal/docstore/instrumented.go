package docstore

import (
	"context"
	"errors"

	"github.com/jamiebhpark/MentalHealthApp/internal/observability"
)

type instrumentedStore struct {
	next    Store
	system  string
	metrics *observability.StoreMetrics
}

// Instrument wraps s so every call records latency and errors in Prometheus and opens a
// client span tagged with system ("memory", "mongodb", "postgresql", "sqlite").
func Instrument(s Store, system string) Store {
	return &instrumentedStore{next: s, system: system, metrics: observability.NewStoreMetrics(system)}
}

func (s *instrumentedStore) observe(ctx context.Context, operation, collectionPath string) (context.Context, func(error)) {
	_, collection, _ := splitPath(collectionPath)
	ctx, span := observability.GetTraceLayer().TraceStoreOperation(ctx, s.system, operation, collection)
	done := s.metrics.TrackOperation(operation, collection)
	return ctx, func(err error) {
		// A missing document is an answer, not a failure.
		if errors.Is(err, ErrNotFound) {
			err = nil
		}
		if err != nil {
			observability.RecordErrorInContext(ctx, err)
		}
		done(err)
		span.End()
	}
}

func (s *instrumentedStore) CreateDocument(ctx context.Context, collectionPath string, fields Fields) (id string, err error) {
	ctx, done := s.observe(ctx, "create", collectionPath)
	defer func() { done(err) }()
	return s.next.CreateDocument(ctx, collectionPath, fields)
}

func (s *instrumentedStore) GetDocuments(ctx context.Context, collectionPath string, q Query) (docs []Document, err error) {
	ctx, done := s.observe(ctx, "query", collectionPath)
	defer func() { done(err) }()
	return s.next.GetDocuments(ctx, collectionPath, q)
}

func (s *instrumentedStore) UpdateField(ctx context.Context, collectionPath, id, field string, op FieldOp, opts ...UpdateOption) (err error) {
	ctx, done := s.observe(ctx, "update", collectionPath)
	defer func() { done(err) }()
	return s.next.UpdateField(ctx, collectionPath, id, field, op, opts...)
}

func (s *instrumentedStore) GetDocument(ctx context.Context, collectionPath, id string) (fields Fields, err error) {
	ctx, done := s.observe(ctx, "get", collectionPath)
	defer func() { done(err) }()
	return s.next.GetDocument(ctx, collectionPath, id)
}

func (s *instrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *instrumentedStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
