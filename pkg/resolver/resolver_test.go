package resolver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/snapserve/internal/bytesize"
)

// newSite lays out files under a fresh "site" directory inside a temp dir
// and returns the site root. The parent holds secret.txt for escape tests.
func newSite(t *testing.T, files map[string]string) string {
	t.Helper()
	parent := t.TempDir()
	root := filepath.Join(parent, "site")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("top secret"), 0644))

	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}
	return root
}

func newResolver(t *testing.T, opts Options) *Resolver {
	t.Helper()
	r, err := New(opts)
	require.NoError(t, err)
	return r
}

func TestResolve_RootServesIndex(t *testing.T) {
	root := newSite(t, map[string]string{"index.html": "<h1>Hi</h1>"})
	r := newResolver(t, Options{Root: root})

	res, err := r.Resolve(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>", string(res.Content))
	assert.Equal(t, "text/html", res.ContentType)
	assert.Equal(t, filepath.Join(root, "index.html"), res.Path)
}

func TestResolve_CustomIndex(t *testing.T) {
	root := newSite(t, map[string]string{"home.html": "home"})
	r := newResolver(t, Options{Root: root, Index: "home.html"})

	res, err := r.Resolve(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, "home", string(res.Content))
}

func TestResolve_ContentTypes(t *testing.T) {
	root := newSite(t, map[string]string{
		"data.json":      `{"a":1}`,
		"app.js":         "console.log(1)",
		"style.css":      "body{}",
		"page.html":      "not really html",
		"notes.txt":      "plain",
		"README":         "no extension",
		"img/logo.png":   "png-bytes",
		"UPPER.HTML":     "case matters",
		"archive.tar.gz": "gz",
	})
	r := newResolver(t, Options{Root: root})

	tests := []struct {
		path string
		want string
		body string
	}{
		{"/data.json", "application/json", `{"a":1}`},
		{"/app.js", "text/javascript", "console.log(1)"},
		{"/style.css", "text/css", "body{}"},
		{"/page.html", "text/html", "not really html"},
		{"/notes.txt", "text/plain", "plain"},
		{"/README", "text/plain", "no extension"},
		{"/img/logo.png", "text/plain", "png-bytes"},
		{"/UPPER.HTML", "text/plain", "case matters"},
		{"/archive.tar.gz", "text/plain", "gz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := r.Resolve(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.ContentType)
			assert.Equal(t, tt.body, string(res.Content))
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	root := newSite(t, map[string]string{"sub/page.html": "x"})
	r := newResolver(t, Options{Root: root})

	for _, p := range []string{"/missing.txt", "/sub", "/sub/", "/", "/sub/page.html/extra"} {
		t.Run(p, func(t *testing.T) {
			res, err := r.Resolve(context.Background(), p)
			assert.Nil(t, res)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestResolve_NotFoundKeepsCause(t *testing.T) {
	root := newSite(t, nil)
	r := newResolver(t, Options{Root: root})

	_, err := r.Resolve(context.Background(), "/missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "/missing.txt", nf.RequestPath)
}

func TestResolve_Unreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	root := newSite(t, map[string]string{"locked.html": "x"})
	require.NoError(t, os.Chmod(filepath.Join(root, "locked.html"), 0))

	r := newResolver(t, Options{Root: root})
	_, err := r.Resolve(context.Background(), "/locked.html")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_Containment(t *testing.T) {
	root := newSite(t, map[string]string{"index.html": "in"})

	t.Run("strict rejects escape", func(t *testing.T) {
		r := newResolver(t, Options{Root: root})
		assert.Equal(t, ContainmentStrict, r.Containment())

		for _, p := range []string{"/../secret.txt", "/sub/../../secret.txt", "/.."} {
			_, err := r.Resolve(context.Background(), p)
			assert.ErrorIs(t, err, ErrNotFound, p)
		}
	})

	t.Run("strict allows inner dot segments", func(t *testing.T) {
		r := newResolver(t, Options{Root: root})
		res, err := r.Resolve(context.Background(), "/a/../index.html")
		require.NoError(t, err)
		assert.Equal(t, "in", string(res.Content))
	})

	t.Run("legacy serves escape", func(t *testing.T) {
		r := newResolver(t, Options{Root: root, Containment: ContainmentLegacy})
		res, err := r.Resolve(context.Background(), "/../secret.txt")
		require.NoError(t, err)
		assert.Equal(t, "top secret", string(res.Content))
		assert.Equal(t, "text/plain", res.ContentType)
	})
}

func TestResolve_MaxFileSize(t *testing.T) {
	root := newSite(t, map[string]string{
		"small.json": "{}",
		"big.json":   string(make([]byte, 2048)),
	})
	r := newResolver(t, Options{Root: root, MaxFileSize: bytesize.KiB})

	_, err := r.Resolve(context.Background(), "/small.json")
	assert.NoError(t, err)

	_, err = r.Resolve(context.Background(), "/big.json")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "exceeds limit 1Ki")
}

func TestResolve_NoCaching(t *testing.T) {
	root := newSite(t, map[string]string{"data.json": `{"v":1}`})
	r := newResolver(t, Options{Root: root})

	res, err := r.Resolve(context.Background(), "/data.json")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(res.Content))

	require.NoError(t, os.WriteFile(filepath.Join(root, "data.json"), []byte(`{"v":2}`), 0644))
	res, err = r.Resolve(context.Background(), "/data.json")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(res.Content))
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{Root: ".", Containment: "loose"})
	assert.Error(t, err)

	r, err := New(Options{Root: "."})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(r.Root()))
}
