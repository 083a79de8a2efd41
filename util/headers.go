package util

import "net/http"

// CopyHeaders copies all values of src into dst, skipping the given header
// names. Names are compared in canonical form.
func CopyHeaders(dst, src http.Header, skip ...string) {
	for name, values := range src {
		if headerInList(name, skip) {
			continue
		}
		for _, v := range values {
			dst.Add(name, v)
		}
	}
}

func headerInList(name string, list []string) bool {
	for _, s := range list {
		if http.CanonicalHeaderKey(s) == http.CanonicalHeaderKey(name) {
			return true
		}
	}
	return false
}
