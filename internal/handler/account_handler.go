package handler

import (
	"net/http"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/model"
	"qualifaize-web/internal/util"
	"qualifaize-web/internal/view"
)

type AccountHandler struct {
	users *apiclient.UserService
	views *view.Renderer
}

func NewAccountHandler(users *apiclient.UserService, views *view.Renderer) *AccountHandler {
	return &AccountHandler{users: users, views: views}
}

type rolePermissions struct {
	Role  string
	Items []string
}

var permissionCatalog = []rolePermissions{
	{Role: model.RoleAdmin, Items: []string{
		"Full system administration",
		"User management",
		"Document management",
		"Interview creation and management",
	}},
	{Role: model.RoleUser, Items: []string{
		"Participate in interviews",
		"View interview history",
	}},
	{Role: model.RoleGuest, Items: []string{
		"Limited system access",
		"Basic profile management",
	}},
}

type accountContent struct {
	Roles       []string
	HasAccount  bool
	Account     model.UserAccount
	IssuedAt    string
	ExpiresAt   string
	Remaining   string
	Expired     bool
	Permissions []rolePermissions
}

func (h *AccountHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	identity := sess.Identity()

	content := accountContent{
		Roles:     identity.Roles,
		IssuedAt:  identity.IssuedAt.Format("2006-01-02 15:04:05"),
		ExpiresAt: identity.ExpiresAt.Format("2006-01-02 15:04:05"),
		Remaining: util.FormatRemaining(identity.ExpiresAt),
		Expired:   identity.Expired(),
	}

	for _, perms := range permissionCatalog {
		if identity.HasRole(perms.Role) {
			content.Permissions = append(content.Permissions, perms)
		}
	}

	// Profile details are best-effort; the page renders from the token
	// alone when the backend is unreachable.
	resp, err := h.users.CurrentUser(r.Context())
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "loading account details", resp, err)
	} else if decodeErr := resp.Decode(&content.Account); decodeErr == nil {
		content.HasAccount = true
	}

	h.views.Render(w, http.StatusOK, "account", newPage(sess, "Account Details", "/account", content))
}
