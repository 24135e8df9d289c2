package tonic

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticServer(t *testing.T) *Server {
	t.Helper()

	server, err := New(Configuration{DocumentRoot: t.TempDir()})
	require.NoError(t, err)
	return server
}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func TestServeStaticFiles(t *testing.T) {
	t.Run("serves file bytes with guessed content type", func(t *testing.T) {
		server := newStaticServer(t)
		writeFile(t, filepath.Join(server.root, "hello.html"), []byte("<p>hi</p>"))

		status, headers, body := splitResponse(t, server.serveStatic("/hello.html"))

		assert.Equal(t, "HTTP/1.1 200 OK", status)
		assert.True(t, strings.HasPrefix(headers["Content-Type"], "text/html"))
		assert.Equal(t, []byte("<p>hi</p>"), body)
	})

	t.Run("unknown extension falls back to octet-stream", func(t *testing.T) {
		server := newStaticServer(t)
		writeFile(t, filepath.Join(server.root, "blob.qqq"), []byte{0x00, 0x01})

		_, headers, body := splitResponse(t, server.serveStatic("/blob.qqq"))

		assert.Equal(t, "application/octet-stream", headers["Content-Type"])
		assert.Equal(t, []byte{0x00, 0x01}, body)
	})

	t.Run("root and trailing slash get index.html", func(t *testing.T) {
		server := newStaticServer(t)
		writeFile(t, filepath.Join(server.root, "index.html"), []byte("root index"))
		writeFile(t, filepath.Join(server.root, "sub", "index.html"), []byte("sub index"))

		_, _, rootBody := splitResponse(t, server.serveStatic("/"))
		_, _, subBody := splitResponse(t, server.serveStatic("/sub/"))

		assert.Equal(t, "root index", string(rootBody))
		assert.Equal(t, "sub index", string(subBody))
	})

	t.Run("missing file is 404", func(t *testing.T) {
		server := newStaticServer(t)

		status, _, body := splitResponse(t, server.serveStatic("/nope.txt"))

		assert.Equal(t, "HTTP/1.1 404 Not Found", status)
		assert.Equal(t, "<h1>404 Not Found</h1>", string(body))
	})

	t.Run("resolution is idempotent", func(t *testing.T) {
		server := newStaticServer(t)
		writeFile(t, filepath.Join(server.root, "a.txt"), []byte("stable"))

		status1, headers1, body1 := splitResponse(t, server.serveStatic("/a.txt"))
		status2, headers2, body2 := splitResponse(t, server.serveStatic("/a.txt"))

		assert.Equal(t, status1, status2)
		assert.Equal(t, headers1["Content-Type"], headers2["Content-Type"])
		assert.Equal(t, body1, body2)
	})
}

func TestServeStaticTraversalDefense(t *testing.T) {
	server := newStaticServer(t)
	writeFile(t, filepath.Join(server.root, "ok.txt"), []byte("inside"))

	t.Run("dot dot paths are rejected", func(t *testing.T) {
		for _, path := range []string{
			"/../../etc/passwd",
			"/a/../../b",
			"/..",
			"/../" + filepath.Base(server.root) + "-sibling/x",
		} {
			status, _, body := splitResponse(t, server.serveStatic(path))

			assert.Equal(t, "HTTP/1.1 403 Forbidden", status, "path: %s", path)
			assert.Equal(t, "<h1>403 Forbidden</h1>", string(body), "path: %s", path)
		}
	})

	t.Run("symlink escaping the root is rejected", func(t *testing.T) {
		outside := filepath.Join(t.TempDir(), "secret.txt")
		writeFile(t, outside, []byte("secret"))
		require.NoError(t, os.Symlink(outside, filepath.Join(server.root, "leak.txt")))

		status, _, body := splitResponse(t, server.serveStatic("/leak.txt"))

		assert.Equal(t, "HTTP/1.1 403 Forbidden", status)
		assert.NotContains(t, string(body), "secret")
	})

	t.Run("dot dot inside the root is fine", func(t *testing.T) {
		writeFile(t, filepath.Join(server.root, "sub", "x.txt"), []byte("x"))

		status, _, body := splitResponse(t, server.serveStatic("/sub/../ok.txt"))

		assert.Equal(t, "HTTP/1.1 200 OK", status)
		assert.Equal(t, "inside", string(body))
	})
}

func TestDirectoryListing(t *testing.T) {
	server := newStaticServer(t)
	writeFile(t, filepath.Join(server.root, "sub", "b.txt"), []byte("b"))
	writeFile(t, filepath.Join(server.root, "sub", "a.txt"), []byte("a"))
	require.NoError(t, os.MkdirAll(filepath.Join(server.root, "sub", "c"), 0o755))

	status, headers, body := splitResponse(t, server.serveStatic("/sub"))
	html := string(body)

	t.Run("is an html page titled with the url path", func(t *testing.T) {
		assert.Equal(t, "HTTP/1.1 200 OK", status)
		assert.Equal(t, "text/html", headers["Content-Type"])
		assert.Contains(t, html, "<title>Directory listing for /sub</title>")
	})

	t.Run("parent link comes first", func(t *testing.T) {
		parent := strings.Index(html, `href="../"`)
		require.GreaterOrEqual(t, parent, 0)
		assert.Less(t, parent, strings.Index(html, "a.txt"))
	})

	t.Run("entries are sorted lexicographically", func(t *testing.T) {
		a := strings.Index(html, ">a.txt<")
		b := strings.Index(html, ">b.txt<")
		c := strings.Index(html, ">c/<")

		require.GreaterOrEqual(t, a, 0)
		require.GreaterOrEqual(t, b, 0)
		require.GreaterOrEqual(t, c, 0)
		assert.Less(t, a, b)
		assert.Less(t, b, c)
	})

	t.Run("directories are linked with a trailing slash", func(t *testing.T) {
		assert.Contains(t, html, `<a href="c/" class="dir">c/</a>`)
		assert.Contains(t, html, `class="file">a.txt</a>`)
	})

	t.Run("entry names are escaped", func(t *testing.T) {
		server := newStaticServer(t)
		writeFile(t, filepath.Join(server.root, "d", "<img>.txt"), []byte("x"))

		_, _, body := splitResponse(t, server.serveStatic("/d"))

		assert.Contains(t, string(body), "&lt;img&gt;.txt")
		assert.NotContains(t, string(body), "<img>")
	})
}
