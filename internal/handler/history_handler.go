package handler

import (
	"net/http"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/model"
	"qualifaize-web/internal/util"
	"qualifaize-web/internal/view"
)

type HistoryHandler struct {
	interviews *apiclient.InterviewService
	views      *view.Renderer
}

func NewHistoryHandler(interviews *apiclient.InterviewService, views *view.Renderer) *HistoryHandler {
	return &HistoryHandler{interviews: interviews, views: views}
}

type historyQuestion struct {
	Text          string
	Answered      bool
	Correct       bool
	Submitted     string
	CorrectOption string
}

type historyEntry struct {
	Interview model.Interview
	Stats     model.PerformanceStats
	Questions []historyQuestion
	Duration  string
}

type historyContent struct {
	Entries []historyEntry
}

func (h *HistoryHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	content := historyContent{}

	resp, err := h.interviews.AssignedInterviews(r.Context(), "")
	if err != nil || !resp.IsSuccess() {
		flashFailure(sess, "loading interview history", resp, err)
	} else {
		var interviews []model.Interview
		if decodeErr := resp.Decode(&interviews); decodeErr != nil {
			sess.AddFlash("error", "Could not read interview history")
		} else {
			for _, iv := range interviews {
				content.Entries = append(content.Entries, buildEntry(iv))
			}
		}
	}

	h.views.Render(w, http.StatusOK, "history", newPage(sess, "History", "/history", content))
}

func buildEntry(iv model.Interview) historyEntry {
	entry := historyEntry{
		Interview: iv,
		Stats:     model.CalculateStats(iv.Questions),
	}

	if iv.DurationInSeconds != nil {
		entry.Duration = util.FormatDuration(*iv.DurationInSeconds)
	}

	for _, q := range iv.Questions {
		hq := historyQuestion{
			Text:          q.QuestionText,
			CorrectOption: q.CorrectOption,
		}
		if q.SubmittedAnswer != nil {
			hq.Answered = true
			hq.Submitted = *q.SubmittedAnswer
		}
		if q.IsCorrect != nil {
			hq.Correct = *q.IsCorrect
		}
		entry.Questions = append(entry.Questions, hq)
	}

	return entry
}
