package asset

import (
	"bytes"
	"encoding/json"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gorilla/mux"

	"github.com/inamate/flowdraw/internal/imageres"
)

func uploadRequest(t *testing.T, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="shape.png"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest("POST", "/assets/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, color.Black), imaging.PNG); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/assets/upload", h.Upload).Methods("POST")
	r.HandleFunc("/assets/{assetId}", h.Remove).Methods("DELETE")
	r.PathPrefix("/assets/").Handler(h.Serve()).Methods("GET")
	return r
}

func TestUploadServeDelete(t *testing.T) {
	loader := imageres.NewLoader()
	h := NewHandler(t.TempDir(), loader)
	r := newRouter(h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "image/png", pngBytes(t, 32, 16)))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body)
	}
	var resp UploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Width != 32 || resp.Height != 16 || resp.Name != "shape.png" {
		t.Errorf("response = %+v", resp)
	}

	info, err := loader.Stat(resp.Path)
	if err != nil {
		t.Fatalf("stored asset not loadable: %v", err)
	}
	if info.Width != 32 {
		t.Errorf("stored width = %d", info.Width)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", resp.URL, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("serve status = %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Error("missing Cache-Control")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("DELETE", "/assets/"+resp.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d: %s", rec.Code, rec.Body)
	}
	if _, err := os.Stat(resp.Path); !os.IsNotExist(err) {
		t.Errorf("file still present: %v", err)
	}
	if loader.Len() != 0 {
		t.Errorf("loader still caches %d images", loader.Len())
	}
}

func TestUploadRejects(t *testing.T) {
	r := newRouter(NewHandler(t.TempDir(), nil))
	tests := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{"wrong type", "text/plain", []byte("hello")},
		{"corrupt png", "image/png", []byte("not a png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, uploadRequest(t, tt.contentType, tt.data))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRemoveRejectsBadID(t *testing.T) {
	r := newRouter(NewHandler(t.TempDir(), nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("DELETE", "/assets/not-an-id", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
