package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/typeid"
)

type noImages struct{}

func (noImages) Stat(path string) (document.ImageInfo, error) {
	return document.ImageInfo{}, errors.New("no images in tests")
}

func sampleSnapshot(t *testing.T) document.Snapshot {
	t.Helper()
	d, err := document.NewSampleDiagram(document.NewFactory(noImages{}, "glyphs"))
	if err != nil {
		t.Fatalf("NewSampleDiagram: %v", err)
	}
	snap, err := d.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	return snap
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	snap := sampleSnapshot(t)

	if _, err := s.Load(ctx, "doc_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load missing: got %v, want ErrNotFound", err)
	}

	meta, err := s.Save(ctx, "doc_a", snap)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if meta.Version != 1 || meta.Entities != len(snap.Entities) {
		t.Errorf("meta = %+v", meta)
	}

	got, err := s.Load(ctx, "doc_a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Entities) != len(snap.Entities) {
		t.Fatalf("loaded %d entities, want %d", len(got.Entities), len(snap.Entities))
	}

	meta, err = s.Save(ctx, "doc_a", document.Snapshot{Version: document.SnapshotVersion})
	if err != nil {
		t.Fatalf("Save again: %v", err)
	}
	if meta.Version != 2 || meta.Entities != 0 {
		t.Errorf("second save meta = %+v", meta)
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	snap := sampleSnapshot(t)
	if _, err := s.Save(ctx, "doc_a", snap); err != nil {
		t.Fatal(err)
	}

	snap.Entities[0].Geometry[0] = 'X'
	snap.Entities[0].ID = "changed"

	got, _ := s.Load(ctx, "doc_a")
	if got.Entities[0].ID == "changed" || got.Entities[0].Geometry[0] == 'X' {
		t.Fatal("store shares memory with the caller's snapshot")
	}
}

func TestMemoryStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, id := range []string{"doc_b", "doc_a", "doc_c"} {
		if _, err := s.Save(ctx, id, document.Snapshot{Version: 1}); err != nil {
			t.Fatal(err)
		}
	}
	list, _ := s.List(ctx)
	if len(list) != 3 || list[0].ID != "doc_a" || list[2].ID != "doc_c" {
		t.Fatalf("List = %+v", list)
	}

	if err := s.Delete(ctx, "doc_b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "doc_b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete: got %v, want ErrNotFound", err)
	}
}

func TestServicePutRejectsInvalidSnapshot(t *testing.T) {
	svc := NewService(NewMemoryStore(), document.NewFactory(noImages{}, "glyphs"))
	bad := document.Snapshot{
		Version: 1,
		Entities: []document.Record{{
			ID:       "ent_bad",
			Kind:     document.KindLine,
			Shape:    document.ShapeConnector,
			Geometry: []byte(`{"points":[{"x":0,"y":0}]}`),
		}},
	}
	_, err := svc.Put(context.Background(), typeid.NewDocumentID(), bad)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v, want ErrInvalid", err)
	}

	_, err = svc.Put(context.Background(), "not-a-doc-id", document.Snapshot{Version: 1})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("bad id: got %v, want ErrInvalid", err)
	}
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	h := NewHandler(NewService(NewMemoryStore(), document.NewFactory(noImages{}, "glyphs")))
	r := mux.NewRouter()
	r.HandleFunc("/documents", h.List).Methods("GET")
	r.HandleFunc("/documents", h.Create).Methods("POST")
	r.HandleFunc("/documents/{docId}", h.Get).Methods("GET")
	r.HandleFunc("/documents/{docId}", h.Put).Methods("PUT")
	r.HandleFunc("/documents/{docId}", h.Delete).Methods("DELETE")
	return r
}

func TestHandlerLifecycle(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/documents", bytes.NewBufferString(`{"sample":true}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	var meta Meta
	if err := json.NewDecoder(rec.Body).Decode(&meta); err != nil {
		t.Fatal(err)
	}
	if meta.Entities == 0 {
		t.Fatal("sample document has no entities")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/documents/"+meta.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var snap document.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Entities) != meta.Entities {
		t.Errorf("got %d entities, want %d", len(snap.Entities), meta.Entities)
	}

	body, _ := json.Marshal(document.Snapshot{Version: 1, Entities: snap.Entities[:1]})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("PUT", "/documents/"+meta.ID, bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("DELETE", "/documents/"+meta.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/documents/"+meta.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestHandlerRejectsMalformedBody(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("PUT", "/documents/"+typeid.NewDocumentID(), bytes.NewBufferString("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
