package main

import (
	"bytes"
	"compress/gzip"
	"embed"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

//go:embed static/*
var staticFS embed.FS

// asset is a minified static file and its gzipped form.
type asset struct {
	content     []byte
	gzipped     []byte
	contentType string
}

// assetSet serves preprocessed assets keyed by path relative to the root.
// It is read-only after loadAssets returns.
type assetSet map[string]*asset

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	return m
}

// loadAssets minifies and gzips every file under root in fsys.
func loadAssets(fsys fs.FS, root string) (assetSet, error) {
	m := newMinifier()
	set := make(assetSet)

	err := fs.WalkDir(fsys, root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return err
		}

		contentType := mime.TypeByExtension(filepath.Ext(filePath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		servePath := strings.TrimPrefix(filePath, root+"/")

		minified := data
		mediaType, _, _ := strings.Cut(contentType, ";")
		if _, _, fn := m.Match(mediaType); fn != nil && len(data) > 0 {
			var buf bytes.Buffer
			if err := m.Minify(mediaType, &buf, bytes.NewReader(data)); err != nil {
				log.Printf("[static] failed to minify %s: %v (using original)", servePath, err)
			} else {
				minified = buf.Bytes()
				log.Printf("[static] minified %s: %d -> %d bytes", servePath, len(data), len(minified))
			}
		}

		var gzBuf bytes.Buffer
		gz, err := gzip.NewWriterLevel(&gzBuf, gzip.BestCompression)
		if err != nil {
			return err
		}
		if _, err := gz.Write(minified); err != nil {
			return err
		}
		if err := gz.Close(); err != nil {
			return err
		}

		set[servePath] = &asset{
			content:     minified,
			gzipped:     gzBuf.Bytes(),
			contentType: contentType,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[static] initialized %d embedded assets", len(set))
	return set, nil
}

func (s assetSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	urlPath := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if urlPath == "" {
		urlPath = "index.html"
	}

	a, ok := s[urlPath]
	if !ok {
		// Unknown paths fall back to the single-page UI.
		a, ok = s["index.html"]
		if !ok {
			http.NotFound(w, r)
			return
		}
	}

	w.Header().Set("Content-Type", a.contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("Vary", "Accept-Encoding")

	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") && len(a.gzipped) > 0 {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(a.gzipped)
		return
	}
	w.Write(a.content)
}

// staticHandler serves the web UI. In development mode files are read from
// disk on every request; otherwise the embedded, minified assets are used.
func staticHandler(dev bool) (http.Handler, error) {
	if dev {
		log.Println("[static] development mode: serving from disk")
		return http.FileServer(http.Dir("static")), nil
	}
	return loadAssets(staticFS, "static")
}
