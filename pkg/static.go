package tonic

import (
	"bytes"
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/TomasBorquez/logger"
)

// serveStatic maps a URL path onto the document root and serves the file or
// directory it lands on. urlPath is the decoded request path including the
// leading slash.
func (s *Server) serveStatic(urlPath string) []byte {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}

	// Join cleans the path, which already folds "..", but the prefix check
	// below is the actual defense and runs on the canonical form.
	fsPath := filepath.Join(s.root, rel)
	if resolved, err := filepath.EvalSymlinks(fsPath); err == nil {
		fsPath = resolved
	}

	// Traversal defense. Must hold after canonicalization; on failure the
	// file system is not touched again.
	if !withinRoot(fsPath, s.root) {
		return BuildResponse(403, StatusText(403), nil, nil)
	}

	info, err := os.Stat(fsPath)
	switch {
	case err == nil && info.Mode().IsRegular():
		return s.serveFile(fsPath)
	case err == nil && info.IsDir():
		return s.listDirectory(rel, fsPath)
	case err == nil || os.IsNotExist(err):
		return BuildResponse(404, StatusText(404), nil, nil)
	case os.IsPermission(err):
		return BuildResponse(403, StatusText(403), nil, nil)
	default:
		logger.Error("[TONIC]: File serving error: %v", err)
		return BuildResponse(500, StatusText(500), nil, nil)
	}
}

func (s *Server) serveFile(fsPath string) []byte {
	content, err := os.ReadFile(fsPath)
	if err != nil {
		if os.IsPermission(err) {
			return BuildResponse(403, StatusText(403), nil, nil)
		}
		logger.Error("[TONIC]: File serving error: %v", err)
		return BuildResponse(500, StatusText(500), nil, nil)
	}

	contentType := mime.TypeByExtension(filepath.Ext(fsPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return BuildResponse(200, "OK", content, map[string]string{"Content-Type": contentType})
}

func (s *Server) listDirectory(urlPath, fsPath string) []byte {
	// ReadDir returns entries sorted by name.
	entries, err := os.ReadDir(fsPath)
	if err != nil {
		if os.IsPermission(err) {
			return BuildResponse(403, StatusText(403), nil, nil)
		}
		logger.Error("[TONIC]: Directory listing error: %v", err)
		return BuildResponse(500, StatusText(500), nil, nil)
	}

	var buf bytes.Buffer
	if err := listingPage(urlPath, entries).Render(context.Background(), &buf); err != nil {
		logger.Error("[TONIC]: Directory listing error: %v", err)
		return BuildResponse(500, StatusText(500), nil, nil)
	}

	return BuildResponse(200, "OK", buf.Bytes(), map[string]string{"Content-Type": "text/html"})
}

// withinRoot reports whether path is root itself or lies below it. Both
// arguments must already be canonical.
func withinRoot(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
