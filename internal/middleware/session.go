package middleware

import (
	"net/http"

	"qualifaize-web/internal/session"
)

// SessionMiddleware binds the browser session to the request context
// and gates pages on authentication and roles.
type SessionMiddleware struct {
	store *session.Store
}

func NewSessionMiddleware(store *session.Store) *SessionMiddleware {
	return &SessionMiddleware{store: store}
}

// Load resolves (or creates) the session for the request cookie and
// injects it into the context. Runs on every route.
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.store.GetOrCreate(w, r)
		ctx := session.WithSession(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth redirects unauthenticated visitors to the sign-in page.
func (m *SessionMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.Authenticated() {
			if ok {
				sess.AddFlash("error", "You must be signed in to view that page")
			}
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRoles hides pages from identities lacking all of the allowed
// roles: the visitor is bounced home, mirroring the navigation tree
// which never links these pages for them.
func (m *SessionMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok || !sess.Authenticated() {
				http.Redirect(w, r, "/signin", http.StatusSeeOther)
				return
			}

			identity := sess.Identity()
			for _, role := range allowedRoles {
				if identity.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			sess.AddFlash("error", "You don't have access to that page")
			http.Redirect(w, r, "/", http.StatusSeeOther)
		})
	}
}
