package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes caps write bodies at 256 KiB. An aggregated schedule
// payload is a few dozen entries, so anything near the cap is garbage.
const DefaultMaxBodyBytes = 256 << 10

// MaxBytes limits the request body size on routes that accept one. Oversized
// bodies fail the read with 413 instead of being buffered.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
