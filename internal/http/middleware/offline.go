package middleware

import "net/http"

// OfflineGate answers 503 while offline() is true, except for the given paths.
func OfflineGate(offline func() bool, allow ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allow))
	for _, p := range allow {
		allowed[p] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allowed[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if offline() {
				http.Error(w, "service temporarily offline", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
