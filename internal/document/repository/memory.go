package repository

import (
	"context"
	"sync"

	"github.com/gogotex/usergroups/internal/document"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used for unit tests and for running
// the service without MongoDB. Identifiers follow the ObjectID format so id
// validation behaves the same as the Mongo-backed repository.
type MemoryRepo struct {
	mu     sync.RWMutex
	store  map[string]document.Document
	order  []string
	unique []string
}

// NewMemoryRepo creates a repository enforcing uniqueness of the given fields.
func NewMemoryRepo(uniqueFields ...string) *MemoryRepo {
	return &MemoryRepo{store: make(map[string]document.Document), unique: uniqueFields}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// conflicts returns the unique fields of d already taken by another document.
// Caller must hold the lock.
func (m *MemoryRepo) conflicts(d document.Document, selfID string) []string {
	var fields []string
	for _, f := range m.unique {
		v, ok := d[f]
		if !ok {
			continue
		}
		for id, other := range m.store {
			if id != selfID && other[f] == v {
				fields = append(fields, f)
				break
			}
		}
	}
	return fields
}

func (m *MemoryRepo) Insert(_ context.Context, fields document.Document) (document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := fields.Fields()
	if dup := m.conflicts(d, ""); len(dup) > 0 {
		return nil, &DuplicateError{Fields: dup}
	}
	id := primitive.NewObjectID().Hex()
	d[document.IDField] = id
	m.store[id] = d
	m.order = append(m.order, id)
	return d.Clone(), nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (document.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	id = oid.Hex()
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return d.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(_ context.Context) ([]document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]document.Document, 0, len(m.store))
	for _, id := range m.order {
		out = append(out, m.store[id].Clone())
	}
	return out, nil
}

func (m *MemoryRepo) Update(_ context.Context, id string, fields document.Document) (document.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	id = oid.Hex()
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	merged := d.Merge(fields)
	if dup := m.conflicts(merged, id); len(dup) > 0 {
		return nil, &DuplicateError{Fields: dup}
	}
	m.store[id] = merged
	return merged.Clone(), nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	id = oid.Hex()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, cur := range m.order {
		if cur == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
