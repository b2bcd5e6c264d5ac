package negotiate

import (
	"net/http"
	"strings"
)

// IsXHR reports whether r was issued programmatically: XMLHttpRequest,
// HTMX (except boosted navigations) or DataStar.
func IsXHR(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	if r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true" {
		return true
	}
	return isDataStar(r)
}

func isDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	if r.URL != nil && r.URL.Query().Has("datastar") {
		return true
	}
	return r.Header.Get("Datastar-Request") == "true"
}
