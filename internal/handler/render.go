package handler

import (
	"errors"
	"net/http"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/nav"
	"qualifaize-web/internal/session"
	"qualifaize-web/internal/view"
)

func newPage(sess *session.Session, title string, activePath string, content any) view.Page {
	p := view.Page{
		Title:      title,
		ActivePath: activePath,
		Flashes:    sess.PopFlashes(),
		Content:    content,
	}

	if identity := sess.Identity(); identity != nil {
		p.Authenticated = true
		p.Username = identity.Username
		p.Nav = nav.ForRoles(true, identity.Roles)
	} else {
		p.Nav = nav.ForRoles(false, nil)
	}

	return p
}

func currentSession(r *http.Request) *session.Session {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		// The session middleware wraps every route; a missing session is
		// a programming error, not a user condition.
		panic("handler called without session middleware")
	}
	return sess
}

// flashFailure converts either failure mode of a backend call into one
// user-visible flash: transport errors carry their own message,
// completed-but-failed responses carry the backend's.
func flashFailure(sess *session.Session, action string, resp apiclient.Response, err error) {
	if err != nil {
		var transportErr *apiclient.TransportError
		if errors.As(err, &transportErr) {
			sess.AddFlash("error", "Error "+action+": "+transportErr.Error())
			return
		}
		sess.AddFlash("error", "Error "+action+": "+err.Error())
		return
	}
	sess.AddFlash("error", "Failed "+action+": "+resp.Error)
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
