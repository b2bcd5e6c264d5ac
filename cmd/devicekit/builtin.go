package main

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/devicekit/handler"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
	"github.com/dmitrymomot/devicekit/pkg/render"
	"github.com/dmitrymomot/devicekit/pkg/views"
)

// builtinViews holds the components served when no template source
// provides them. Files on disk or in S3 take precedence.
func builtinViews() *views.Registry {
	r := views.NewRegistry()
	r.Register(views.LayoutsPrefix, "application", "html", layout())
	r.Register("errors", "error", "html", errorPage())
	r.Register("home", "index", "html", homePage())
	r.RegisterPartial("shared", "view_switch", "html", viewSwitch())
	return r
}

func layout() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		neg := negotiate.FromContext(ctx)
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>devicekit</title></head><body data-format="%s">`,
			templ.EscapeString(neg.Format().String()),
		); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		if err := viewSwitch().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func homePage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		neg := negotiate.FromContext(ctx)
		device, _ := neg.DeviceIdentifier()
		_, err := fmt.Fprintf(w, `<main><h1>devicekit</h1><p>Format: %s</p><p>Device: %s</p></main>`,
			templ.EscapeString(neg.Format().String()),
			templ.EscapeString(device),
		)
		return err
	})
}

func errorPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p, _ := render.Data[handler.ErrorPageParams](ctx)
		_, err := fmt.Fprintf(w, `<main class="error %s"><h1>%d</h1><p>%s</p><small>%s</small></main>`,
			templ.EscapeString(p.Type),
			p.StatusCode,
			templ.EscapeString(p.Message),
			templ.EscapeString(p.RequestID),
		)
		return err
	})
}

// viewSwitch offers to leave or enter the device view the client qualifies for.
func viewSwitch() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		neg := negotiate.FromContext(ctx)

		var format negotiate.Format
		switch {
		case neg.IsTabletDevice():
			format = negotiate.FormatTablet
		case neg.IsMobileDevice():
			format = negotiate.FormatMobile
		default:
			return nil
		}

		on, label := "true", "Switch to "+format.String()+" view"
		if neg.InFormat(format) {
			on, label = "false", "Switch to standard view"
		}
		_, err := fmt.Fprintf(w,
			`<form class="view-switch" method="post" action="/view/%s"><input type="hidden" name="on" value="%s"><button type="submit">%s</button></form>`,
			format, on, templ.EscapeString(label),
		)
		return err
	})
}
