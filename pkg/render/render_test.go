package render_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicekit/pkg/assets"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
	"github.com/dmitrymomot/devicekit/pkg/render"
	"github.com/dmitrymomot/devicekit/pkg/views"
)

const (
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148"
	ipadUA    = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) Mobile/15E148"
	desktopUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) Safari/605.1.15"
)

type noStore struct{}

func (noStore) Load(*http.Request) negotiate.Preferences { return negotiate.Preferences{} }
func (noStore) Save(http.ResponseWriter, *http.Request, negotiate.Preferences) error {
	return nil
}

func file(src string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(src), ModTime: time.Now()}
}

func newRenderer(t *testing.T, files fstest.MapFS, opts ...render.Option) *render.Renderer {
	t.Helper()
	lookup := views.NewFSLookup(files, views.WithFuncs(render.FuncStubs()))
	return render.New(views.NewResolver(lookup), opts...)
}

// serve renders v for a client with the given user agent and mobile device header.
func serve(t *testing.T, rnd *render.Renderer, ua, deviceHeader string, v render.View) (*httptest.ResponseRecorder, error) {
	t.Helper()
	n := negotiate.MustRegister(nil, noStore{})

	var renderErr error
	h := n.Action("index")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		renderErr = rnd.HTML(w, r, http.StatusOK, v)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", ua)
	if deviceHeader != "" {
		req.Header.Set("X-Mobile-Device", deviceHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, renderErr
}

func TestRenderer_HTML(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"home/index.html.tmpl":            file(`desktop {{.}}`),
		"home/index.mobile.tmpl":          file(`mobile {{.}}`),
		"layouts/application.html.tmpl":   file(`<html>{{yield}}</html>`),
		"layouts/application.mobile.tmpl": file(`<m>{{yield}}</m>`),
	}
	rnd := newRenderer(t, files)
	view := render.View{Name: "index", Prefix: "home", Layout: "application", Data: "page"}

	tests := []struct {
		name   string
		ua     string
		header string
		want   string
	}{
		{name: "desktop", ua: desktopUA, want: "<html>desktop page</html>"},
		{name: "mobile", ua: iphoneUA, header: "iphone", want: "<m>mobile page</m>"},
		{name: "tablet falls back to html view without layout", ua: ipadUA, want: "desktop page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, err := serve(t, rnd, tt.ua, tt.header, view)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.ElementsMatch(t, []string{"User-Agent", "X-Mobile-Device"}, rec.Header().Values("Vary"))
		})
	}
}

func TestRenderer_Helpers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_iphone.css"), nil, 0o600))

	files := fstest.MapFS{
		"home/show.html.tmpl": file(strings.Join([]string{
			`{{if in_mobile_view}}mobile-view{{end}}`,
			`{{if in_tablet_view}}tablet-view{{end}}`,
			`{{if is_mobile_device}}mobile-device{{end}}`,
			`{{if is_tablet_device}}tablet-device{{end}}`,
			`{{if is_device "iphone"}}iphone{{end}}`,
			`{{if js_enabled_mobile_device}}js{{end}}`,
			`[{{mobile_device}}]`,
			`{{current_format}}`,
			`{{stylesheet_link_tag "app"}}`,
		}, "|")),
	}
	rnd := newRenderer(t, files, render.WithStylesheets(assets.LinkTags("/css"), dir))

	rec, err := serve(t, rnd, iphoneUA, "iphone", render.View{Name: "show", Prefix: "home"})
	require.NoError(t, err)
	parts := strings.Split(rec.Body.String(), "|")
	require.Len(t, parts, 9)
	assert.Equal(t, "mobile-view", parts[0], "mobile falls back to the html view but stays in mobile format")
	assert.Empty(t, parts[1])
	assert.Equal(t, "mobile-device", parts[2])
	assert.Empty(t, parts[3])
	assert.Equal(t, "iphone", parts[4])
	assert.Equal(t, "js", parts[5])
	assert.Equal(t, "[iphone]", parts[6])
	assert.Equal(t, "mobile", parts[7])
	assert.Contains(t, parts[8], `href="/css/app.css"`)
	assert.Contains(t, parts[8], `href="/css/app_iphone.css"`)

	rec, err = serve(t, rnd, desktopUA, "", render.View{Name: "show", Prefix: "home"})
	require.NoError(t, err)
	parts = strings.Split(rec.Body.String(), "|")
	assert.Equal(t, "[]", parts[6])
	assert.Equal(t, "html", parts[7])
	assert.NotContains(t, parts[8], "app_iphone.css")
}

func TestRenderer_Partials(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"items/index.html.tmpl":    file(`{{range .}}{{render_partial "item" .}}{{end}}{{render_partial "shared/footer"}}`),
		"items/_item.html.tmpl":    file(`<li>{{.}}</li>`),
		"items/_item.tablet.tmpl":  file(`<td>{{.}}</td>`),
		"shared/_footer.html.tmpl": file(`<footer/>`),
	}
	rnd := newRenderer(t, files)
	view := render.View{Name: "index", Prefix: "items", Data: []string{"a", "b"}}

	rec, err := serve(t, rnd, desktopUA, "", view)
	require.NoError(t, err)
	assert.Equal(t, "<li>a</li><li>b</li><footer/>", rec.Body.String())

	rec, err = serve(t, rnd, ipadUA, "", view)
	require.NoError(t, err)
	assert.Equal(t, "<td>a</td><td>b</td><footer/>", rec.Body.String())
}

func TestRenderer_Errors(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"home/broken.html.tmpl": file(`{{render_partial "missing"}}`),
		"home/bad.html.tmpl":    file(`{{.Nope.Field}}`),
		"layouts/x.mobile.tmpl": file(`{{yield}}`),
	}
	rnd := newRenderer(t, files)

	rec, err := serve(t, rnd, iphoneUA, "iphone", render.View{Name: "missing", Prefix: "home"})
	assert.ErrorIs(t, err, views.ErrNotFound)
	assert.Zero(t, rec.Body.Len())

	_, err = serve(t, rnd, desktopUA, "", render.View{Name: "broken", Prefix: "home"})
	assert.ErrorIs(t, err, render.ErrExecute)
	assert.ErrorIs(t, err, views.ErrNotFound)

	_, err = serve(t, rnd, desktopUA, "", render.View{Name: "bad", Prefix: "home", Data: 42})
	assert.ErrorIs(t, err, render.ErrExecute)

	assert.Panics(t, func() { render.New(nil) })
}

func TestRenderer_Templ(t *testing.T) {
	t.Parallel()

	registry := views.NewRegistry()
	registry.Register("home", "index", "mobile", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title, _ := render.Data[string](ctx)
		_, err := fmt.Fprintf(w, "templ %s %s", negotiate.FromContext(ctx).Format(), title)
		return err
	}))
	registry.Register(views.LayoutsPrefix, "application", "mobile", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<body>"); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body>")
		return err
	}))
	rnd := render.New(views.NewResolver(registry))

	rec, err := serve(t, rnd, iphoneUA, "iphone", render.View{Name: "index", Prefix: "home", Layout: "application", Data: "home"})
	require.NoError(t, err)
	assert.Equal(t, "<body>templ mobile home</body>", rec.Body.String())

	_, ok := render.Data[string](context.Background())
	assert.False(t, ok)
}

func TestRenderer_OutsideNegotiation(t *testing.T) {
	t.Parallel()

	rnd := newRenderer(t, fstest.MapFS{"home/index.html.tmpl": file(`{{current_format}}`)})
	var b strings.Builder
	require.NoError(t, rnd.Render(context.Background(), &b, render.View{Name: "index", Prefix: "home"}))
	assert.Equal(t, "html", b.String())
}
