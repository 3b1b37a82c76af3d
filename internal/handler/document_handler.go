package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/model"
	"qualifaize-web/internal/util"
	"qualifaize-web/internal/view"
)

type DocumentHandler struct {
	documents     *apiclient.DocumentService
	views         *view.Renderer
	maxUploadSize int64
}

func NewDocumentHandler(documents *apiclient.DocumentService, views *view.Renderer, maxUploadSize int64) *DocumentHandler {
	return &DocumentHandler{documents: documents, views: views, maxUploadSize: maxUploadSize}
}

type documentsContent struct {
	Documents []model.Document
	MaxUpload string
}

func (h *DocumentHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	content := documentsContent{MaxUpload: util.FormatBytes(h.maxUploadSize)}

	resp, err := h.documents.ListDocuments(r.Context())
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "loading documents", resp, err)
	} else if decodeErr := resp.Decode(&content.Documents); decodeErr != nil {
		sess.AddFlash("error", "Could not read document list")
	}

	h.views.Render(w, http.StatusOK, "documents", newPage(sess, "Document Management", "/documents", content))
}

// Upload streams the browser's multipart upload through to the backend.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		sess.AddFlash("error", "Upload too large or malformed")
		redirect(w, r, "/documents")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sess.AddFlash("error", "Choose a PDF file to upload")
		redirect(w, r, "/documents")
		return
	}
	defer file.Close()

	title := strings.TrimSpace(r.FormValue("display_title"))
	if title == "" {
		title = header.Filename
	}

	resp, err := h.documents.Upload(r.Context(), header.Filename, file, title)
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "uploading document", resp, err)
	} else {
		sess.AddFlash("success", "Document \""+title+"\" uploaded")
	}

	redirect(w, r, "/documents")
}

func (h *DocumentHandler) Rename(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	documentID := chi.URLParam(r, "documentID")

	title := strings.TrimSpace(r.PostFormValue("title"))
	if title == "" {
		sess.AddFlash("error", "New title is required")
		redirect(w, r, "/documents")
		return
	}

	resp, err := h.documents.UpdateTitle(r.Context(), documentID, title)
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "renaming document", resp, err)
	} else {
		sess.AddFlash("success", "Document renamed")
	}

	redirect(w, r, "/documents")
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	documentID := chi.URLParam(r, "documentID")

	resp, err := h.documents.DeleteDocument(r.Context(), documentID)
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "deleting document", resp, err)
	} else {
		sess.AddFlash("success", "Document deleted")
	}

	redirect(w, r, "/documents")
}
