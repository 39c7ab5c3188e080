package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeSilhouette(t *testing.T, dir, code string) {
	t.Helper()
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0L1 1"/></svg>`
	if err := os.WriteFile(filepath.Join(dir, code+".svg"), []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirectoryAsset(t *testing.T) {
	dir := t.TempDir()
	writeSilhouette(t, dir, "PE")
	d := NewDirectory(dir, "/assets/silhouettes/", "https://flagsapi.com/%s/shiny/64.png")

	a, err := d.Asset(context.Background(), "pe")
	if err != nil {
		t.Fatalf("Asset: %v", err)
	}
	if a.Code != "PE" {
		t.Errorf("code = %q, want PE", a.Code)
	}
	if a.SilhouetteURL != "/assets/silhouettes/PE.svg" {
		t.Errorf("silhouette = %q", a.SilhouetteURL)
	}
	if a.FlagURL != "https://flagsapi.com/PE/shiny/64.png" {
		t.Errorf("flag = %q", a.FlagURL)
	}
}

func TestDirectoryAssetMissing(t *testing.T) {
	d := NewDirectory(t.TempDir(), "/assets/silhouettes", "")

	for _, code := range []string{"CL", "", "../etc"} {
		if _, err := d.Asset(context.Background(), code); !errors.Is(err, ErrNotFound) {
			t.Errorf("Asset(%q) err = %v, want %v", code, err, ErrNotFound)
		}
	}
}

func TestDirectoryWithoutSilhouettes(t *testing.T) {
	d := NewDirectory("", "/assets/silhouettes", "https://flags.example/%s.png")

	a, err := d.Asset(context.Background(), "JP")
	if err != nil {
		t.Fatalf("Asset: %v", err)
	}
	if a.SilhouetteURL != "" || a.FlagURL != "https://flags.example/JP.png" {
		t.Fatalf("asset = %+v", a)
	}
}

func TestDirectoryHandler(t *testing.T) {
	dir := t.TempDir()
	writeSilhouette(t, dir, "PE")
	h := NewDirectory(dir, "/assets/silhouettes", "").Handler()

	tests := []struct {
		path string
		want int
	}{
		{"/PE.svg", http.StatusOK},
		{"/CL.svg", http.StatusNotFound},
		{"/", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}
