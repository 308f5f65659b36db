package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-raycast-tracer/pkg/bmp"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

const targetScene = `{
  "name": "Target",
  "group": "Test Scenes",
  "primitives": [
    {"type": "sphere", "name": "target", "center": [0, 5, 2], "radius": 1, "material": {"color": [1, 0, 0], "specular": 0.5}}
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "target.json"), []byte(targetScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewServer(0, dir, 1)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body scene.ScenesResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	ids := map[string]bool{}
	for _, group := range body.Groups {
		for _, info := range group.Scenes {
			ids[info.ID] = true
		}
	}
	for _, id := range []string{"default", "cornell-box", "file:target"} {
		if !ids[id] {
			t.Errorf("Expected scene %q in listing, got %v", id, ids)
		}
	}
}

func TestHandleRender_Formats(t *testing.T) {
	srv := newTestServer(t)

	t.Run("bmp", func(t *testing.T) {
		rec := get(t, srv, "/api/render?scene=default&width=16&height=8&format=bmp")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/bmp" {
			t.Errorf("Expected image/bmp, got %s", ct)
		}
		buf, err := bmp.Decode(rec.Body)
		if err != nil {
			t.Fatalf("Expected valid BMP, got %v", err)
		}
		if buf.Width != 16 || buf.Height != 8 {
			t.Errorf("Expected 16x8, got %dx%d", buf.Width, buf.Height)
		}
	})

	t.Run("png", func(t *testing.T) {
		rec := get(t, srv, "/api/render?scene=cornell-box&renderer=path&width=8&height=8&samples=2&bounces=3")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		img, err := png.Decode(rec.Body)
		if err != nil {
			t.Fatalf("Expected valid PNG, got %v", err)
		}
		if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
			t.Errorf("Expected 8x8, got %v", img.Bounds())
		}
	})

	t.Run("json", func(t *testing.T) {
		rec := get(t, srv, "/api/render?scene=file:target&width=10&height=6&format=json")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body RenderResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if body.Scene != "Target" || body.Width != 10 || body.Height != 6 {
			t.Errorf("Unexpected response header fields %+v", body)
		}
		if body.Stats.TotalPixels != 60 || body.Stats.TotalSamples != 60 {
			t.Errorf("Expected 60 pixels and samples, got %+v", body.Stats)
		}
		if len(body.Console) == 0 {
			t.Error("Expected console messages from the render")
		}
		data, err := base64.StdEncoding.DecodeString(body.ImageData)
		if err != nil {
			t.Fatalf("Invalid base64: %v", err)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("Expected embedded PNG, got %v", err)
		}
	})
}

func TestHandleRender_BadRequests(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"width too large", "width=5000", http.StatusBadRequest},
		{"width not a number", "width=wide", http.StatusBadRequest},
		{"unknown renderer", "renderer=bdpt", http.StatusBadRequest},
		{"unknown format", "format=gif", http.StatusBadRequest},
		{"gamma out of range", "gamma=9", http.StatusBadRequest},
		{"unknown scene", "scene=nope", http.StatusNotFound},
		{"missing scene file", "scene=file:missing", http.StatusBadRequest},
		{"raw json path", "scene=" + url.QueryEscape("/etc/app/secret.json"), http.StatusBadRequest},
		{"relative json path", "scene=target.json", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, "/api/render?"+tt.query)
			if rec.Code != tt.expected {
				t.Errorf("Expected %d, got %d: %s", tt.expected, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleRender_Busy(t *testing.T) {
	srv := newTestServer(t)
	if !srv.renderSlots.TryAcquire(1) {
		t.Fatal("Expected a free render slot")
	}
	defer srv.renderSlots.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=sky&width=4&height=4", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 while every slot is taken, got %d", rec.Code)
	}
}

func TestHandleInspect(t *testing.T) {
	srv := newTestServer(t)

	t.Run("hit", func(t *testing.T) {
		rec := get(t, srv, "/api/inspect?scene=file:target&width=400&height=200&x=200&y=100")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body InspectResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if !body.Hit || body.Index != 0 || body.Name != "target" {
			t.Fatalf("Expected hit on target, got %+v", body)
		}
		if body.GeometryType != "sphere" || body.MaterialType != "mixed" {
			t.Errorf("Expected mixed sphere, got %s %s", body.MaterialType, body.GeometryType)
		}
		if math.Abs(body.Distance-9) > 1e-9 || math.Abs(body.FarDistance-11) > 1e-9 {
			t.Errorf("Expected distances 9 and 11, got %f and %f", body.Distance, body.FarDistance)
		}
		if math.Abs(body.Normal[1]+1) > 1e-9 {
			t.Errorf("Expected normal facing the camera, got %v", body.Normal)
		}
	})

	t.Run("miss", func(t *testing.T) {
		rec := get(t, srv, "/api/inspect?scene=sky&x=1&y=1")
		var body InspectResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if body.Hit || body.Index != scene.NoHit {
			t.Errorf("Expected miss, got %+v", body)
		}
	})

	t.Run("raw path scene", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "private.json")
		if err := os.WriteFile(path, []byte(`{"apiToken": "x"}`), 0o644); err != nil {
			t.Fatal(err)
		}
		rec := get(t, srv, "/api/inspect?x=1&y=1&scene="+url.QueryEscape(path))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "apiToken") {
			t.Errorf("Expected file contents to stay private, got %s", rec.Body.String())
		}
	})

	t.Run("bad coordinates", func(t *testing.T) {
		for _, q := range []string{"x=a&y=1", "x=1", "x=400&y=0", "x=0&y=-1"} {
			rec := get(t, srv, "/api/inspect?scene=sky&"+q)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 for %q, got %d", q, rec.Code)
			}
		}
	})
}

func TestParseIntParam(t *testing.T) {
	values := url.Values{"n": {"5"}, "bad": {"x"}, "big": {"99"}}
	if v, err := parseIntParam(values, "n", 1, 0, 10); err != nil || v != 5 {
		t.Errorf("Expected 5, got %d (%v)", v, err)
	}
	if v, err := parseIntParam(values, "missing", 7, 0, 10); err != nil || v != 7 {
		t.Errorf("Expected default 7, got %d (%v)", v, err)
	}
	if _, err := parseIntParam(values, "bad", 1, 0, 10); err == nil {
		t.Error("Expected error for non-numeric value")
	}
	if _, err := parseIntParam(values, "big", 1, 0, 10); err == nil {
		t.Error("Expected error for out of range value")
	}
}

func TestParseFloatParam(t *testing.T) {
	values := url.Values{"g": {"0.5"}, "bad": {"x"}}
	if v, err := parseFloatParam(values, "g", 1, 0, 1); err != nil || v != 0.5 {
		t.Errorf("Expected 0.5, got %f (%v)", v, err)
	}
	if v, err := parseFloatParam(values, "missing", 0.45, 0, 1); err != nil || v != 0.45 {
		t.Errorf("Expected default 0.45, got %f (%v)", v, err)
	}
	if _, err := parseFloatParam(values, "bad", 1, 0, 1); err == nil {
		t.Error("Expected error for non-numeric value")
	}
}
