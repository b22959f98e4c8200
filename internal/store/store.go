// Package store persists diagram snapshots by document id.
package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/inamate/flowdraw/internal/document"
)

var ErrNotFound = errors.New("document not found")

// Meta describes a stored document without its entities.
type Meta struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	Entities  int       `json:"entities"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is the persistence collaborator of the editing engine. Save
// overwrites the previous snapshot and bumps the stored version.
type Store interface {
	Load(ctx context.Context, docID string) (document.Snapshot, error)
	Save(ctx context.Context, docID string, snap document.Snapshot) (Meta, error)
	List(ctx context.Context) ([]Meta, error)
	Delete(ctx context.Context, docID string) error
}

type memoryEntry struct {
	snap document.Snapshot
	meta Meta
}

// MemoryStore keeps snapshots in process. It backs tests and DB-less runs.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, docID string) (document.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.docs[docID]
	if !ok {
		return document.Snapshot{}, ErrNotFound
	}
	return cloneSnapshot(e.snap), nil
}

func (m *MemoryStore) Save(_ context.Context, docID string, snap document.Snapshot) (Meta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.docs[docID]
	meta := Meta{
		ID:        docID,
		Version:   prev.meta.Version + 1,
		Entities:  len(snap.Entities),
		UpdatedAt: m.now().UTC(),
	}
	m.docs[docID] = memoryEntry{snap: cloneSnapshot(snap), meta: meta}
	return meta, nil
}

func (m *MemoryStore) List(_ context.Context) ([]Meta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Meta, 0, len(m.docs))
	for _, e := range m.docs {
		out = append(out, e.meta)
	}
	slices.SortFunc(out, func(a, b Meta) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[docID]; !ok {
		return ErrNotFound
	}
	delete(m.docs, docID)
	return nil
}

// cloneSnapshot copies the record slice so callers can't mutate stored state.
// Geometry payloads are copied too since RawMessage is a byte slice.
func cloneSnapshot(s document.Snapshot) document.Snapshot {
	out := document.Snapshot{Version: s.Version, Entities: make([]document.Record, len(s.Entities))}
	for i, r := range s.Entities {
		r.Geometry = slices.Clone(r.Geometry)
		out.Entities[i] = r
	}
	return out
}
