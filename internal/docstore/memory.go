package docstore

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process. It backs development runs and tests, and honors
// the same atomicity guarantees as the remote stores by serializing all access.
type MemoryStore struct {
	settings
	mu          sync.Mutex
	collections map[string]map[string]Fields
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		settings:    newSettings(opts),
		collections: make(map[string]map[string]Fields),
	}
}

func (s *MemoryStore) CreateDocument(ctx context.Context, collectionPath string, fields Fields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, _, err := splitPath(collectionPath); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.collection(collectionPath)[id] = normalizeFields(fields, s.now())
	return id, nil
}

func (s *MemoryStore) GetDocuments(ctx context.Context, collectionPath string, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, _, err := splitPath(collectionPath); err != nil {
		return nil, err
	}

	s.mu.Lock()
	docs := make([]Document, 0, len(s.collections[collectionPath]))
	for id, fields := range s.collections[collectionPath] {
		docs = append(docs, Document{ID: id, Fields: copyFields(fields)})
	}
	s.mu.Unlock()

	return applyQuery(docs, q), nil
}

func (s *MemoryStore) UpdateField(ctx context.Context, collectionPath, id, field string, op FieldOp, opts ...UpdateOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := splitPath(collectionPath); err != nil {
		return err
	}
	o := resolveUpdateOptions(opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(collectionPath)
	fields, ok := coll[id]
	if !ok {
		if !o.Upsert {
			return ErrNotFound
		}
		fields = Fields{}
		coll[id] = fields
	}
	applyOp(fields, field, op)
	return nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, collectionPath, id string) (Fields, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.collections[collectionPath][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyFields(fields), nil
}

// Put stores fields under a caller-chosen id, replacing any existing document.
// Seeders and tests use it to plant documents with fixed timestamps.
func (s *MemoryStore) Put(collectionPath, id string, fields Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collectionPath)[id] = normalizeFields(fields, s.now())
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}

// collection must be called with mu held.
func (s *MemoryStore) collection(path string) map[string]Fields {
	coll, ok := s.collections[path]
	if !ok {
		coll = make(map[string]Fields)
		s.collections[path] = coll
	}
	return coll
}
