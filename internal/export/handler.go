package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/store"
	"github.com/inamate/flowdraw/internal/typeid"
)

const maxUploadSize = 10 << 20 // 10MB

type Handler struct {
	renderer *Renderer
	store    store.Store
}

func NewHandler(renderer *Renderer, st store.Store) *Handler {
	return &Handler{renderer: renderer, store: st}
}

// ExportSnapshot handles POST /export/png with a snapshot body.
func (h *Handler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	var snap document.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		http.Error(w, "invalid snapshot body", http.StatusBadRequest)
		return
	}
	h.export(w, r, snap, typeid.NewExportID())
}

// ExportDocument handles GET /export/{docId}.png for a stored document.
func (h *Handler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	docID := mux.Vars(r)["docId"]

	snap, err := h.store.Load(r.Context(), docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		slog.Error("load document for export", "error", err, "document", docID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.export(w, r, snap, docID)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, snap document.Snapshot, name string) {
	opts, err := parseOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := document.DiagramFromSnapshot(snap)
	if err != nil {
		http.Error(w, "invalid snapshot: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.WritePNG(&buf, d, opts); err != nil {
		slog.Error("render png", "error", err, "name", name)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	slog.Info("export complete", "name", name, "entities", d.Len(), "size", buf.Len())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.png"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func parseOptions(r *http.Request) (Options, error) {
	opts := Options{Scale: 1, Padding: DefaultPadding}
	q := r.URL.Query()
	if v := q.Get("scale"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Options{}, fmt.Errorf("invalid scale %q", v)
		}
		opts.Scale = s
	}
	if v := q.Get("padding"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Options{}, fmt.Errorf("invalid padding %q", v)
		}
		opts.Padding = p
	}
	return opts, opts.validate()
}
