package handler

import (
	"net/http"
	"strings"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/interview"
	"qualifaize-web/internal/model"
	"qualifaize-web/internal/view"
)

type InterviewHandler struct {
	interviews *apiclient.InterviewService
	documents  *apiclient.DocumentService
	users      *apiclient.UserService
	runner     *interview.Runner
	views      *view.Renderer
}

func NewInterviewHandler(
	interviews *apiclient.InterviewService,
	documents *apiclient.DocumentService,
	users *apiclient.UserService,
	runner *interview.Runner,
	views *view.Renderer,
) *InterviewHandler {
	return &InterviewHandler{
		interviews: interviews,
		documents:  documents,
		users:      users,
		runner:     runner,
		views:      views,
	}
}

type interviewContent struct {
	// Active interview view.
	Active         bool
	InterviewName  string
	Progress       int
	QuestionNumber int
	Question       *model.Question
	AwaitingNext   bool
	LastResult     *model.AnswerResult

	// Assignment view.
	Summary  *interview.Summary
	Assigned []model.Interview
	IsAdmin  bool

	// Assign-form sources (admin only).
	Documents []model.Document
	Users     []model.UserAccount
}

func (h *InterviewHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	sess.Lock()
	defer sess.Unlock()

	content := interviewContent{}

	if sess.Interview.Active {
		st := sess.Interview
		content.Active = true
		content.InterviewName = st.InterviewName
		content.Progress = st.Progress
		content.QuestionNumber = st.QuestionNumber()
		content.Question = st.CurrentQuestion
		content.AwaitingNext = st.AwaitingNext
		content.LastResult = st.LastResult

		h.views.Render(w, http.StatusOK, "interview", newPage(sess, "Interview", "/interview", content))
		return
	}

	// The completion summary is shown exactly once.
	content.Summary = sess.Summary
	sess.Summary = nil

	content.IsAdmin = sess.Identity().HasRole(model.RoleAdmin)

	resp, err := h.interviews.AssignedInterviews(r.Context(), model.StatusScheduled)
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "loading interviews", resp, err)
	} else if decodeErr := resp.Decode(&content.Assigned); decodeErr != nil {
		sess.AddFlash("error", "Could not read interview list")
	}

	if content.IsAdmin {
		h.loadAssignSources(r, &content)
	}

	h.views.Render(w, http.StatusOK, "interview", newPage(sess, "Interview", "/interview", content))
}

// loadAssignSources fills the assign form's document and user pickers.
// Best-effort: a failure leaves the picker empty without blocking the
// page.
func (h *InterviewHandler) loadAssignSources(r *http.Request, content *interviewContent) {
	if resp, err := h.documents.ListDocuments(r.Context()); err == nil && resp.IsSuccess() {
		_ = resp.Decode(&content.Documents)
	}
	if resp, err := h.users.ListUsers(r.Context()); err == nil && resp.IsSuccess() {
		_ = resp.Decode(&content.Users)
	}
}

func (h *InterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	interviewID := strings.TrimSpace(r.PostFormValue("interview_id"))
	name := strings.TrimSpace(r.PostFormValue("interview_name"))
	if interviewID == "" {
		sess.AddFlash("error", "Missing interview id")
		redirect(w, r, "/interview")
		return
	}

	sess.Lock()
	summary, err := h.runner.Start(r.Context(), &sess.Interview, interviewID, name)
	if summary != nil {
		sess.Summary = summary
	}
	sess.Unlock()

	if err != nil {
		flashFailure(sess, "starting interview", apiclient.Response{}, err)
	} else {
		sess.AddFlash("success", "Interview started")
	}

	redirect(w, r, "/interview")
}

func (h *InterviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	choice := strings.TrimSpace(r.PostFormValue("choice"))
	if choice == "" {
		sess.AddFlash("error", "Select an answer before submitting")
		redirect(w, r, "/interview")
		return
	}

	sess.Lock()
	summary, err := h.runner.Submit(r.Context(), &sess.Interview, choice)
	if summary != nil {
		sess.Summary = summary
	}
	sess.Unlock()

	if err != nil {
		flashFailure(sess, "submitting answer", apiclient.Response{}, err)
	}

	redirect(w, r, "/interview")
}

func (h *InterviewHandler) Next(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	sess.Lock()
	summary, err := h.runner.FetchNext(r.Context(), &sess.Interview)
	if summary != nil {
		sess.Summary = summary
	}
	sess.Unlock()

	if err != nil {
		flashFailure(sess, "loading question", apiclient.Response{}, err)
	}

	redirect(w, r, "/interview")
}

func (h *InterviewHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	sess.Lock()
	warning := h.runner.Cancel(r.Context(), &sess.Interview)
	sess.Unlock()

	if warning != "" {
		sess.AddFlash("warning", warning)
	}
	sess.AddFlash("info", "Interview cancelled")

	redirect(w, r, "/interview")
}

func (h *InterviewHandler) Assign(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	draft := apiclient.InterviewDraft{
		Name:             strings.TrimSpace(r.PostFormValue("name")),
		DocumentID:       strings.TrimSpace(r.PostFormValue("document_id")),
		Description:      strings.TrimSpace(r.PostFormValue("description")),
		Difficulty:       strings.TrimSpace(r.PostFormValue("difficulty")),
		AssignedToUserID: strings.TrimSpace(r.PostFormValue("assigned_to")),
		ScheduledDate:    strings.TrimSpace(r.PostFormValue("scheduled_date")),
	}
	if draft.Difficulty == "" {
		draft.Difficulty = model.DifficultyMedium
	}

	if draft.Name == "" || draft.DocumentID == "" {
		sess.AddFlash("error", "Interview name and document are required")
		redirect(w, r, "/interview")
		return
	}

	resp, err := h.interviews.CreateInterview(r.Context(), draft)
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "creating interview", resp, err)
	} else {
		sess.AddFlash("success", "Interview \""+draft.Name+"\" created")
	}

	redirect(w, r, "/interview")
}
