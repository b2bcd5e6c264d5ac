package views_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicekit/pkg/views"
)

func textComponent(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("find and decorate", func(t *testing.T) {
		t.Parallel()
		reg := views.NewRegistry()
		reg.Register("home", "index", "mobile", textComponent("mobile home"))

		found, err := reg.Find(ctx, views.Search{Name: "index", Prefix: "home", Formats: []string{"mobile"}})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.False(t, found[0].UpdatedAt.IsZero())

		tpl, err := reg.Decorate(ctx, found[0])
		require.NoError(t, err)
		require.NotNil(t, tpl.Component)

		var buf bytes.Buffer
		require.NoError(t, tpl.Component.Render(ctx, &buf))
		assert.Equal(t, "mobile home", buf.String())
	})

	t.Run("partials are separate", func(t *testing.T) {
		t.Parallel()
		reg := views.NewRegistry()
		reg.RegisterPartial("home", "nav", "html", textComponent("nav"))

		_, err := reg.Find(ctx, views.Search{Name: "nav", Prefix: "home", Formats: []string{"html"}})
		assert.ErrorIs(t, err, views.ErrNotFound)

		found, err := reg.Find(ctx, views.Search{Name: "nav", Prefix: "home", Partial: true, Formats: []string{"html"}})
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("re-registration invalidates cached resolution", func(t *testing.T) {
		t.Parallel()
		reg := views.NewRegistry()
		reg.Register("home", "index", "html", textComponent("v1"))
		r := views.NewResolver(reg)
		q := views.Query{Name: "index", Prefix: "home", Format: "tablet", CacheKey: "default"}

		first, err := r.ResolveOne(ctx, q)
		require.NoError(t, err)

		reg.Register("home", "index", "html", textComponent("v2"))
		second, err := r.ResolveOne(ctx, q)
		require.NoError(t, err)
		assert.NotSame(t, first, second)
		assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

		var buf bytes.Buffer
		require.NoError(t, second.Component.Render(ctx, &buf))
		assert.Equal(t, "v2", buf.String())
	})

	t.Run("unregister", func(t *testing.T) {
		t.Parallel()
		reg := views.NewRegistry()
		reg.Register("home", "index", "html", textComponent("x"))
		reg.Unregister("home", "index", "html", false)

		_, err := reg.Find(ctx, views.Search{Name: "index", Prefix: "home", Formats: []string{"html"}})
		assert.ErrorIs(t, err, views.ErrNotFound)
	})

	t.Run("invalid registrations panic", func(t *testing.T) {
		t.Parallel()
		reg := views.NewRegistry()
		assert.Panics(t, func() { reg.Register("home", "", "html", textComponent("x")) })
		assert.Panics(t, func() { reg.Register("home", "index", "", textComponent("x")) })
		assert.Panics(t, func() { reg.Register("home", "index", "html", nil) })
	})
}
