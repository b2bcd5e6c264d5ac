package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/devicekit/pkg/negotiate"
)

// Context wraps the request and response writer. It embeds the request's
// context.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Negotiation returns the format negotiation of the request, or a
	// detached html negotiation outside negotiate middleware.
	Negotiation() *negotiate.Negotiation
	// SSE returns the DataStar event generator, or nil for other requests.
	SSE() *datastar.ServerSentEventGenerator
}

// NewContext creates a Context from a request and response writer.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: w, r: r}
}

type httpContext struct {
	w   http.ResponseWriter
	r   *http.Request
	sse *datastar.ServerSentEventGenerator
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }
// SSE starts the event stream on first use.
func (c *httpContext) SSE() *datastar.ServerSentEventGenerator {
	if c.sse == nil && IsDataStar(c.r) {
		c.sse = datastar.NewSSE(c.w, c.r)
	}
	return c.sse
}

func (c *httpContext) Negotiation() *negotiate.Negotiation {
	return negotiate.FromContext(c.r.Context())
}

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *httpContext) Err() error                  { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any           { return c.r.Context().Value(key) }
