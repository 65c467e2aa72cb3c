package handler

import (
	"log"
	"net/http"

	"github.com/google/uuid"
)

// RequestID tags every request with an id for log correlation, reusing
// the caller's X-Request-ID when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", rid)
		log.Printf("request_id=%s method=%s path=%s", rid, r.Method, r.URL.Path)

		next.ServeHTTP(w, r)
	})
}
