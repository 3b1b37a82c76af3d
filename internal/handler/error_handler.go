package handler

import (
	"net/http"

	"qualifaize-web/internal/view"
)

type ErrorHandler struct {
	views *view.Renderer
}

func NewErrorHandler(views *view.Renderer) *ErrorHandler {
	return &ErrorHandler{views: views}
}

type errorContent struct {
	Status  int
	Title   string
	Message string
}

func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	h.views.Render(w, http.StatusNotFound, "error", newPage(sess, "Not Found", "", errorContent{
		Status:  http.StatusNotFound,
		Title:   "Page not found",
		Message: "The page you are looking for does not exist.",
	}))
}

func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	h.views.Render(w, http.StatusMethodNotAllowed, "error", newPage(sess, "Method Not Allowed", "", errorContent{
		Status:  http.StatusMethodNotAllowed,
		Title:   "Method not allowed",
		Message: "That request method is not supported here.",
	}))
}
