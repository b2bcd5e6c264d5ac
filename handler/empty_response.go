package handler

import (
	"net/http"
	"net/url"

	"github.com/starfederation/datastar-go/datastar"
)

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty responds 204 No Content.
func Empty() Response { return emptyResponse{status: http.StatusNoContent} }

// EmptyWithStatus responds with status and no body.
func EmptyWithStatus(status int) Response { return emptyResponse{status: status} }

type redirectResponse struct {
	url    string
	status int
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(rr.url)
	}
	http.Redirect(w, r, rr.url, rr.status)
	return nil
}

// Redirect responds 303 See Other. DataStar requests are redirected through
// the event stream.
func Redirect(url string) Response { return redirectResponse{url: url, status: http.StatusSeeOther} }

// RedirectBack redirects to the Referer when it points at the same host,
// otherwise to fallback.
func RedirectBack(r *http.Request, fallback string) Response {
	ref, err := url.Parse(r.Referer())
	if err != nil || r.Referer() == "" || (ref.Host != "" && ref.Host != r.Host) {
		return Redirect(fallback)
	}
	return Redirect(ref.RequestURI())
}
