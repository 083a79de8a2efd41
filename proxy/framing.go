package proxy

import (
	"net/http"
	"strconv"

	"github.com/trongate/trongate/util"
)

// CorrectFraming relays the upstream headers downstream. When the body was
// rewritten the upstream Content-Length no longer holds, so it is replaced
// with the exact byte length of the new body; otherwise headers pass through
// as received. Hop-by-hop headers never survive the proxy hop.
func CorrectFraming(src http.Header, bodyLen int, modified bool) http.Header {
	dst := make(http.Header, len(src))
	if modified {
		util.CopyHeaders(dst, src, "Content-Length", "Connection", "Transfer-Encoding")
		dst.Set("Content-Length", strconv.Itoa(bodyLen))
	} else {
		util.CopyHeaders(dst, src, "Connection", "Transfer-Encoding")
	}
	return dst
}
