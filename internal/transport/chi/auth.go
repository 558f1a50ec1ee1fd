package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// apiKeyHeader carries a key for clients that cannot set Authorization (e.g. OCR workers behind proxies).
const apiKeyHeader = "X-API-Key"

// publicPaths skip authentication so probes and scrapers need no key.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware accepts "Authorization: Bearer <key>" or an X-API-Key
// header. With no non-empty keys configured, authentication is off.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	var keys [][]byte
	for _, k := range apiKeys {
		if k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, msg := credentials(r)
			if msg == "" && !matchesAny(keys, token) {
				msg = "invalid api key"
			}
			if msg != "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="docfind"`)
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// credentials extracts the presented key. A non-empty msg explains why none was usable.
func credentials(r *http.Request) (token []byte, msg string) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, value, ok := strings.Cut(auth, " ")
		// auth schemes are case-insensitive (RFC 7235)
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return nil, "authorization header must use Bearer scheme"
		}
		return []byte(strings.TrimSpace(value)), ""
	}
	if key := r.Header.Get(apiKeyHeader); key != "" {
		return []byte(key), ""
	}
	return nil, "missing api key"
}

// matchesAny compares against every key in constant time.
func matchesAny(keys [][]byte, token []byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, token)
	}
	return found == 1
}
