package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/typeid"
)

var ErrInvalid = errors.New("invalid snapshot")

// Service validates snapshots before they reach a Store and seeds new
// documents.
type Service struct {
	store   Store
	factory *document.Factory
}

func NewService(store Store, factory *document.Factory) *Service {
	return &Service{store: store, factory: factory}
}

// Create stores a new document, either empty or seeded with the sample flow.
func (s *Service) Create(ctx context.Context, sample bool) (Meta, error) {
	d := document.NewDiagram()
	if sample {
		var err error
		if d, err = document.NewSampleDiagram(s.factory); err != nil {
			return Meta{}, fmt.Errorf("build sample: %w", err)
		}
	}
	snap, err := d.Snapshot()
	if err != nil {
		return Meta{}, fmt.Errorf("snapshot new document: %w", err)
	}
	return s.store.Save(ctx, typeid.NewDocumentID(), snap)
}

func (s *Service) Get(ctx context.Context, docID string) (document.Snapshot, error) {
	if err := typeid.Validate(docID, typeid.PrefixDocument); err != nil {
		return document.Snapshot{}, ErrNotFound
	}
	return s.store.Load(ctx, docID)
}

// Put replaces a document's snapshot. The snapshot is rebuilt into a diagram
// first so a malformed record never reaches storage.
func (s *Service) Put(ctx context.Context, docID string, snap document.Snapshot) (Meta, error) {
	if err := typeid.Validate(docID, typeid.PrefixDocument); err != nil {
		return Meta{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	d, err := document.DiagramFromSnapshot(snap)
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	canonical, err := d.Snapshot()
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return s.store.Save(ctx, docID, canonical)
}

func (s *Service) List(ctx context.Context) ([]Meta, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, docID string) error {
	return s.store.Delete(ctx, docID)
}
