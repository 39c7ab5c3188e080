// Package assets resolves the per-round visuals for a country code.
package assets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/playperu/geoguess/internal/geoguess"
)

var ErrNotFound = errors.New("asset not found")

// Directory serves silhouettes stored as <CODE>.svg in a local directory
// and builds flag URLs from a template containing one %s for the code.
type Directory struct {
	dir       string
	urlPrefix string
	flagURL   string
}

// NewDirectory returns a Directory over dir whose silhouettes are served
// under urlPrefix. An empty dir disables silhouettes; an empty flagURL
// disables flags.
func NewDirectory(dir, urlPrefix, flagURL string) *Directory {
	return &Directory{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		flagURL:   flagURL,
	}
}

// Asset returns the visuals for code. It fails with ErrNotFound when a
// silhouette directory is configured but holds no file for code.
func (d *Directory) Asset(ctx context.Context, code string) (geoguess.Asset, error) {
	if err := ctx.Err(); err != nil {
		return geoguess.Asset{}, err
	}
	code = strings.ToUpper(code)
	if code == "" || strings.ContainsAny(code, `/\.`) {
		return geoguess.Asset{}, fmt.Errorf("%w: invalid code %q", ErrNotFound, code)
	}

	a := geoguess.Asset{Code: code}
	if d.flagURL != "" {
		a.FlagURL = fmt.Sprintf(d.flagURL, code)
	}
	if d.dir == "" {
		return a, nil
	}

	name := code + ".svg"
	info, err := os.Stat(filepath.Join(d.dir, name))
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return a, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return a, fmt.Errorf("checking %s: %w", name, err)
	}
	a.SilhouetteURL = path.Join(d.urlPrefix, name)
	return a, nil
}

// Handler serves the silhouette directory. It answers 404 for anything
// that is not a regular file inside it.
func (d *Directory) Handler() http.Handler {
	if d.dir == "" {
		return http.NotFoundHandler()
	}
	fileServer := http.FileServer(http.Dir(d.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := filepath.Join(d.dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(p); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fileServer.ServeHTTP(w, r)
	})
}
