// Package htmx detects htmx-initiated requests.
package htmx

import (
	"net/http"
	"strings"
)

// RequestHeaderKey is the header htmx sets on every request it issues.
const RequestHeaderKey = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}
