package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicekit/pkg/assets"
)

func stylesheets(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		name := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
		require.NoError(t, os.WriteFile(name, []byte("body{}"), 0o600))
	}
	return dir
}

func TestLinkTags(t *testing.T) {
	t.Parallel()

	css := assets.LinkTags("/stylesheets/")
	assert.Equal(t,
		`<link rel="stylesheet" href="/stylesheets/app.css" media="screen">`+"\n"+
			`<link rel="stylesheet" href="/vendor/reset.css" media="screen">`,
		string(css("app", "/vendor/reset.css")),
	)
	assert.Empty(t, css())
	assert.Contains(t, string(assets.LinkTags("")("https://cdn.example.com/x.css")), `href="https://cdn.example.com/x.css"`)
}

func TestVariants(t *testing.T) {
	t.Parallel()

	dir := stylesheets(t, "app_iphone.css", "admin/main_iphone.css")

	tests := []struct {
		name    string
		device  string
		sources []string
		want    []string
	}{
		{name: "variant exists", device: "iphone", sources: []string{"app"}, want: []string{"app", "app_iphone.css"}},
		{name: "explicit extension", device: "iphone", sources: []string{"app.css"}, want: []string{"app.css", "app_iphone.css"}},
		{name: "nested source", device: "iphone", sources: []string{"admin/main"}, want: []string{"admin/main", "admin/main_iphone.css"}},
		{name: "missing variant", device: "android", sources: []string{"app"}, want: []string{"app"}},
		{name: "empty device", device: "", sources: []string{"app"}, want: []string{"app"}},
		{name: "mixed", device: "iphone", sources: []string{"reset", "app"}, want: []string{"reset", "app", "app_iphone.css"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, assets.Variants(dir, tt.device, tt.sources...))
		})
	}
}

func TestVariants_RejectsPathDevices(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "stylesheets")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app_x"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "iphone.css"), nil, 0o600))

	for _, device := range []string{"x/../../iphone", `x\..\..\iphone`, "/etc/passwd", ".."} {
		t.Run(device, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, []string{"app"}, assets.Variants(dir, device, "app"))
		})
	}
}

func TestMobilize(t *testing.T) {
	t.Parallel()

	dir := stylesheets(t, "app_android.css")
	device := "android"
	css := assets.Mobilize(assets.LinkTags("/css"), dir, func() string { return device })

	assert.Contains(t, string(css("app")), `href="/css/app_android.css"`)

	device = ""
	assert.NotContains(t, string(css("app")), "_android")

	device = "iphone"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_iphone.css"), nil, 0o600))
	assert.Contains(t, string(css("app")), `href="/css/app_iphone.css"`, "checked on every call")

	assert.Panics(t, func() { assets.Mobilize(nil, dir, func() string { return "" }) })
	assert.Panics(t, func() { assets.Mobilize(assets.LinkTags(""), dir, nil) })
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	dir := stylesheets(t, "site_blackberry.css")
	css := assets.NewFromConfig(assets.Config{StylesheetsDir: dir, StylesheetsURL: "/assets"}, func() string { return "blackberry" })
	assert.Contains(t, string(css("site")), `href="/assets/site_blackberry.css"`)
}
