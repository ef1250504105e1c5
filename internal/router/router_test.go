package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"badge-verifier/internal/store"

	"github.com/gin-gonic/gin"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "employees.json"))
	r := gin.New()
	Setup(r, fs, fs)
	return r
}

func TestHealth(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["backend"] != "file" {
		t.Errorf("body = %v", body)
	}
}

func TestIndexServesUI(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("status = %d, content-type = %q", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "/generate_qr") {
		t.Error("page does not reference /generate_qr")
	}
}

func TestRoutesRegistered(t *testing.T) {
	r := newRouter(t)
	want := map[string]bool{
		"GET /": true, "GET /health": true, "POST /generate_qr": true, "POST /scan_data": true,
		"GET /get_records": true, "GET /search_employee": true, "GET /export_records": true,
	}
	for _, ri := range r.Routes() {
		delete(want, ri.Method+" "+ri.Path)
	}
	if len(want) != 0 {
		t.Errorf("missing routes: %v", want)
	}
}
