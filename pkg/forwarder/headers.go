package forwarder

import (
	"net/http"
	"strings"
)

// hopByHopHeaders are meaningful only for a single transport-level
// connection and are never forwarded (RFC 9110 section 7.6.1).
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// RemoveHopByHop deletes hop-by-hop headers from h, including any header
// named in a Connection header.
func RemoveHopByHop(h http.Header) {
	for _, v := range h.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopByHopHeaders {
		h.Del(name)
	}
}

// CloneForForwarding returns a copy of src suitable for an outbound request:
// hop-by-hop headers are removed, and so are Host and Content-Length, which
// the client sets from the outbound URL and body.
func CloneForForwarding(src http.Header) http.Header {
	dst := src.Clone()
	if dst == nil {
		dst = make(http.Header)
	}
	RemoveHopByHop(dst)
	dst.Del("Host")
	dst.Del("Content-Length")
	return dst
}
