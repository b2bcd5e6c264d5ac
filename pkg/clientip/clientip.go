package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted in order before the TCP peer address.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// FromRequest returns the client address of r. headers are checked in order
// and the first valid address wins; for comma separated values the leftmost
// valid entry is used. RemoteAddr is the fallback. It returns "" when no
// valid address is found.
func FromRequest(r *http.Request, headers ...string) string {
	for _, h := range headers {
		for v := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip := parse(v); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parse(r.RemoteAddr)
	}
	return parse(host)
}

func parse(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
