package handler

import (
	"net/http"
	"strings"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/interview"
	"qualifaize-web/internal/session"
	"qualifaize-web/internal/view"
)

type AuthHandler struct {
	auth  *session.Manager
	users *apiclient.UserService
	views *view.Renderer
}

func NewAuthHandler(auth *session.Manager, users *apiclient.UserService, views *view.Renderer) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, views: views}
}

type signInForm struct {
	Username string
	Errors   map[string]string
}

type signUpForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	BirthDate string
	Errors    map[string]string
}

func (h *AuthHandler) SignInPage(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if sess.Authenticated() {
		redirect(w, r, "/")
		return
	}

	h.views.Render(w, http.StatusOK, "signin", newPage(sess, "Sign In", "/signin", signInForm{}))
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	if err := r.ParseForm(); err != nil {
		sess.AddFlash("error", "Invalid form submission")
		redirect(w, r, "/signin")
		return
	}

	form := signInForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Errors:   map[string]string{},
	}
	password := r.PostFormValue("password")

	// Local validation happens before any network round-trip.
	if form.Username == "" {
		form.Errors["username"] = "Username is required"
	}
	if password == "" {
		form.Errors["password"] = "Password is required"
	}
	if len(form.Errors) > 0 {
		h.views.Render(w, http.StatusBadRequest, "signin", newPage(sess, "Sign In", "/signin", form))
		return
	}

	if err := h.auth.Login(r.Context(), sess, form.Username, password); err != nil {
		sess.AddFlash("error", err.Error())
		h.views.Render(w, http.StatusUnauthorized, "signin", newPage(sess, "Sign In", "/signin", form))
		return
	}

	sess.AddFlash("success", "Signed in successfully")
	redirect(w, r, "/")
}

func (h *AuthHandler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if sess.Authenticated() {
		redirect(w, r, "/")
		return
	}

	h.views.Render(w, http.StatusOK, "signup", newPage(sess, "Sign Up", "/signup", signUpForm{}))
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	if err := r.ParseForm(); err != nil {
		sess.AddFlash("error", "Invalid form submission")
		redirect(w, r, "/signup")
		return
	}

	form := signUpForm{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		BirthDate: strings.TrimSpace(r.PostFormValue("birth_date")),
		Errors:    map[string]string{},
	}
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("password_confirm")

	if form.Username == "" {
		form.Errors["username"] = "Username is required"
	}
	if form.FirstName == "" {
		form.Errors["first_name"] = "First name is required"
	}
	if form.LastName == "" {
		form.Errors["last_name"] = "Last name is required"
	}
	if form.Email == "" {
		form.Errors["email"] = "Email is required"
	}
	if password == "" {
		form.Errors["password"] = "Password is required"
	}
	if password != confirm {
		form.Errors["password_confirm"] = "Passwords do not match"
	}
	if len(form.Errors) > 0 {
		h.views.Render(w, http.StatusBadRequest, "signup", newPage(sess, "Sign Up", "/signup", form))
		return
	}

	resp, err := h.users.Register(r.Context(), apiclient.Registration{
		Username:  form.Username,
		Password:  password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		BirthDate: form.BirthDate,
	})
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "creating account", resp, err)
		h.views.Render(w, http.StatusBadRequest, "signup", newPage(sess, "Sign Up", "/signup", form))
		return
	}

	sess.AddFlash("success", "Account created. You can sign in now.")
	redirect(w, r, "/signin")
}

// SignOut clears the identity and all per-identity state. Idempotent:
// signing out twice is fine.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	sess.Lock()
	sess.Interview = interview.State{}
	sess.Summary = nil
	sess.Unlock()

	h.auth.Logout(sess)
	sess.AddFlash("info", "You have been signed out")
	redirect(w, r, "/")
}
