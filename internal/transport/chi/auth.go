package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// publicPaths are served without a token so probes and scrapers need no credentials.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

const bearerScheme = "bearer"

// BearerAuthMiddleware accepts requests carrying "Authorization: Bearer <key>" for one of apiKeys.
// Empty keys are ignored; with no keys left, authentication is off.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(apiKeys))
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

			token, msg := bearerToken(r.Header.Get("Authorization"))
			if msg == "" && !knownKey(keys, token) {
				msg = "invalid api key"
			}
			if msg != "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="recipedex"`)
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, msg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token; msg is non-empty when the header is unusable.
// The scheme name is matched case-insensitively.
func bearerToken(header string) (token []byte, msg string) {
	if header == "" {
		return nil, "missing authorization header"
	}
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return nil, "authorization header must use Bearer scheme"
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, "empty bearer token"
	}
	return []byte(rest), ""
}

func knownKey(keys [][]byte, token []byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, token)
	}
	return found == 1
}
