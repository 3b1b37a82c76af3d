package handler

import (
	"net/http"

	"qualifaize-web/internal/model"
	"qualifaize-web/internal/view"
)

type DashboardHandler struct {
	views *view.Renderer
}

func NewDashboardHandler(views *view.Renderer) *DashboardHandler {
	return &DashboardHandler{views: views}
}

type dashboardContent struct {
	Roles        []string
	CanInterview bool
	IsAdmin      bool
}

func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	content := dashboardContent{}
	if identity := sess.Identity(); identity != nil {
		content.Roles = identity.Roles
		content.CanInterview = identity.HasRole(model.RoleUser) || identity.HasRole(model.RoleAdmin)
		content.IsAdmin = identity.HasRole(model.RoleAdmin)
	}

	h.views.Render(w, http.StatusOK, "dashboard", newPage(sess, "Home", "/", content))
}
