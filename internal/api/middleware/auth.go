package middleware

import (
	"net/http"

	"github.com/mymy770/activelaser/internal/api/handlers"
)

// StaffIDHeader identifies the staff member behind a mutating request. The
// dashboard gateway injects it after its own session check; this service
// only requires its presence.
const StaffIDHeader = "X-Staff-ID"

// Auth rejects requests without a staff identity header.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(StaffIDHeader) == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "identification du personnel requise")
			return
		}
		next.ServeHTTP(w, r)
	})
}
