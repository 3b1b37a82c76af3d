package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/model"
	"qualifaize-web/internal/view"
)

type UserHandler struct {
	users *apiclient.UserService
	views *view.Renderer
}

func NewUserHandler(users *apiclient.UserService, views *view.Renderer) *UserHandler {
	return &UserHandler{users: users, views: views}
}

type usersContent struct {
	Users []model.UserAccount
}

func (h *UserHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	content := usersContent{}

	resp, err := h.users.ListUsers(r.Context())
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "loading users", resp, err)
	} else if decodeErr := resp.Decode(&content.Users); decodeErr != nil {
		sess.AddFlash("error", "Could not read user list")
	}

	h.views.Render(w, http.StatusOK, "users", newPage(sess, "User Management", "/users", content))
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	reg := apiclient.Registration{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Password:  r.PostFormValue("password"),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		BirthDate: strings.TrimSpace(r.PostFormValue("birth_date")),
	}
	if role := strings.TrimSpace(r.PostFormValue("role")); role != "" {
		reg.Roles = []string{role}
	}

	if reg.Username == "" || reg.Password == "" || reg.Email == "" {
		sess.AddFlash("error", "Username, password and email are required")
		redirect(w, r, "/users")
		return
	}

	resp, err := h.users.Register(r.Context(), reg)
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "creating user", resp, err)
	} else {
		sess.AddFlash("success", "User \""+reg.Username+"\" created")
	}

	redirect(w, r, "/users")
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	userID := chi.URLParam(r, "userID")

	update := apiclient.UserUpdate{}
	changed := false

	if v := strings.TrimSpace(r.PostFormValue("username")); v != "" {
		update.Username = &v
		changed = true
	}
	if v := strings.TrimSpace(r.PostFormValue("email")); v != "" {
		update.Email = &v
		changed = true
	}
	if v := strings.TrimSpace(r.PostFormValue("first_name")); v != "" {
		update.FirstName = &v
		changed = true
	}
	if v := strings.TrimSpace(r.PostFormValue("last_name")); v != "" {
		update.LastName = &v
		changed = true
	}
	if v := strings.TrimSpace(r.PostFormValue("birth_date")); v != "" {
		update.BirthDate = &v
		changed = true
	}

	if !changed {
		sess.AddFlash("error", "Nothing to update")
		redirect(w, r, "/users")
		return
	}

	resp, err := h.users.UpdateUser(r.Context(), userID, update)
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "updating user", resp, err)
	} else {
		sess.AddFlash("success", "User updated")
	}

	redirect(w, r, "/users")
}

func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	userID := chi.URLParam(r, "userID")

	role := strings.TrimSpace(r.PostFormValue("role"))
	if role == "" {
		sess.AddFlash("error", "Role is required")
		redirect(w, r, "/users")
		return
	}

	resp, err := h.users.PromoteUser(r.Context(), userID, role)
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "promoting user", resp, err)
	} else {
		sess.AddFlash("success", "User promoted to "+role)
	}

	redirect(w, r, "/users")
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	userID := chi.URLParam(r, "userID")

	resp, err := h.users.DeleteUser(r.Context(), userID)
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "deleting user", resp, err)
	} else {
		sess.AddFlash("success", "User deleted")
	}

	redirect(w, r, "/users")
}
