package embed

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBundle(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("/* bundle */"), 0o644))
	}
}

func TestLocatePicksFirstLexicalMatch(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir,
		"static/css/main.bbb.css",
		"static/css/main.aaa.css",
		"static/css/other.css",
		"static/js/main.123.js",
		"static/js/main.123.js.map",
	)

	assets, err := Locate(dir)
	require.NoError(t, err)
	assert.Equal(t, "static/css/main.aaa.css", assets.CSS)
	assert.Equal(t, "static/js/main.123.js", assets.JS)
	assert.False(t, assets.Empty())
}

func TestLocateToleratesMissingBundle(t *testing.T) {
	assets, err := Locate(t.TempDir())
	require.NoError(t, err)
	assert.True(t, assets.Empty())
}

func TestSanitizeHeight(t *testing.T) {
	cases := map[string]string{
		"800px":                      "800px",
		" 100VH ":                    "100vh",
		"75%":                        "75%",
		"12.5rem":                    "12.5rem",
		"":                           "600px",
		"calc(100% - 10px)":          "600px",
		"800px;background:url(x.js)": "600px",
	}
	for input, want := range cases {
		assert.Equal(t, want, SanitizeHeight(input, "600px"), "input %q", input)
	}
	assert.Equal(t, "800px", SanitizeHeight("bad", "also bad"))
}

func newTestRenderer() *Renderer {
	return NewRenderer(Options{
		APIURL:         "https://beats.example.com/wp-json/rarebeats/v1",
		AssetURLPrefix: "/player/",
		DefaultHeight:  "800px",
		MountRetry:     250 * time.Millisecond,
	}, Assets{CSS: "static/css/main.aaa.css", JS: "static/js/main.123.js"})
}

func TestRenderMarkerInjectsAssetsOnce(t *testing.T) {
	page := newTestRenderer().NewPage("nonce-token")
	var out bytes.Buffer

	require.NoError(t, page.RenderMarker(&out, "500px"))
	require.NoError(t, page.RenderMarker(&out, ""))
	html := out.String()

	assert.Equal(t, 2, strings.Count(html, `id="rarebeats-player-root"`))
	assert.Contains(t, html, "height: 500px")
	assert.Contains(t, html, "height: 800px")
	assert.Contains(t, html, "Loading RareBeats Player...")
	assert.Equal(t, 1, strings.Count(html, "window.rarebeatsConfig"))
	assert.Equal(t, 1, strings.Count(html, `src="/player/static/js/main.123.js"`))
	assert.Equal(t, 1, strings.Count(html, `href="/player/static/css/main.aaa.css"`))
	assert.Contains(t, html, "nonce-token")
	assert.Contains(t, html, "window.REACT_APP_BACKEND_URL")
	assert.Regexp(t, `var delay = \s*250\s*;`, html)
}

func TestConfigPrecedesBundle(t *testing.T) {
	page := newTestRenderer().NewPage("n")
	var out bytes.Buffer
	require.NoError(t, page.RenderMarker(&out, "800px"))
	html := out.String()

	configAt := strings.Index(html, "window.rarebeatsConfig")
	bundleAt := strings.Index(html, "main.123.js")
	mountAt := strings.Index(html, "setTimeout(mount")
	require.True(t, configAt >= 0 && bundleAt >= 0 && mountAt >= 0)
	assert.Less(t, configAt, bundleAt)
	assert.Less(t, bundleAt, mountAt)
}

func TestPagesAreIndependent(t *testing.T) {
	renderer := newTestRenderer()
	var first, second bytes.Buffer
	require.NoError(t, renderer.NewPage("a").RenderMarker(&first, ""))
	require.NoError(t, renderer.NewPage("b").RenderMarker(&second, ""))
	assert.Contains(t, first.String(), "window.rarebeatsConfig")
	assert.Contains(t, second.String(), "window.rarebeatsConfig")
}

func TestRenderWithoutBundleOmitsTags(t *testing.T) {
	renderer := NewRenderer(Options{APIURL: "http://localhost:8080/wp-json/rarebeats/v1"}, Assets{})
	var out bytes.Buffer
	require.NoError(t, renderer.NewPage("n").RenderMarker(&out, ""))
	html := out.String()
	assert.NotContains(t, html, "<link")
	assert.NotContains(t, html, "<script src=")
	assert.Contains(t, html, "setTimeout(mount, delay)")
	assert.Regexp(t, `var delay = \s*500\s*;`, html)
}

func TestRenderDocument(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newTestRenderer().NewPage("n").RenderDocument(&out, "100vh"))
	html := out.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "height: 100vh")
	assert.Contains(t, html, "</body>")
}
