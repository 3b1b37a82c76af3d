// Package interview tracks the client side of an in-progress interview:
// current question, progress, answer feedback, and the history of
// submitted answers. The backend stays authoritative for grading and
// progress; this state is re-derived from its responses.
package interview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/model"
)

// State is the mutable per-session interview record.
//
// Lifecycle: idle -> loading question -> awaiting answer -> feedback
// shown -> loading question ... until completion or cancellation resets
// it back to idle.
type State struct {
	Active          bool
	InterviewID     string
	InterviewName   string
	CurrentQuestion *model.Question
	SelectedAnswer  string
	Progress        int
	History         []model.AnsweredQuestion
	AwaitingNext    bool
	LastResult      *model.AnswerResult
}

func (s *State) reset() {
	*s = State{}
}

func (s *State) activate(interviewID string, name string) {
	*s = State{
		Active:        true,
		InterviewID:   interviewID,
		InterviewName: name,
	}
}

// QuestionNumber is the 1-based ordinal of the question currently shown.
func (s *State) QuestionNumber() int {
	return len(s.History) + 1
}

// Summary is the final tally surfaced once when an interview completes.
type Summary struct {
	InterviewName  string
	TotalQuestions int
	CorrectAnswers int
	Accuracy       float64

	// Warning carries a non-fatal failure from the final backend status
	// update; the local reset happens regardless.
	Warning string
}

// Runner drives State transitions through the interview facade.
type Runner struct {
	api *apiclient.InterviewService
}

func NewRunner(api *apiclient.InterviewService) *Runner {
	return &Runner{api: api}
}

// Start flips the backend status to IN_PROGRESS, resets the state to
// active defaults and fetches the first question. A completion on the
// very first fetch (empty interview) is surfaced like any other.
func (r *Runner) Start(ctx context.Context, st *State, interviewID string, name string) (*Summary, error) {
	resp, err := r.api.ChangeStatus(ctx, interviewID, model.StatusInProgress)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to start interview: %s", resp.Error)
	}

	st.activate(interviewID, name)

	return r.FetchNext(ctx, st)
}

// FetchNext loads the next question, clearing the previous selection
// and feedback. When the backend reports it has no more questions, the
// interview completes instead and the summary is returned.
func (r *Runner) FetchNext(ctx context.Context, st *State) (*Summary, error) {
	if !st.Active {
		return nil, model.ErrNoActiveInterview
	}

	resp, err := r.api.NextQuestion(ctx, st.InterviewID)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		if strings.Contains(strings.ToLower(resp.Error), "no more questions") {
			return r.Complete(ctx, st), nil
		}
		return nil, fmt.Errorf("failed to load question: %s", resp.Error)
	}

	var question model.Question
	if err := resp.Decode(&question); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}

	st.CurrentQuestion = &question
	st.SelectedAnswer = ""
	st.AwaitingNext = false
	st.LastResult = nil

	return nil, nil
}

// Submit grades the chosen answer, appends the merged record to the
// history and adopts the backend's reported progress. Reaching 100
// completes the interview exactly once; otherwise the feedback is kept
// for the awaiting-next view.
func (r *Runner) Submit(ctx context.Context, st *State, choice string) (*Summary, error) {
	if !st.Active {
		return nil, model.ErrNoActiveInterview
	}
	if st.CurrentQuestion == nil {
		return nil, model.ErrNoCurrentQuestion
	}

	resp, err := r.api.SubmitAnswer(ctx, st.CurrentQuestion.ID, choice)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to submit answer: %s", resp.Error)
	}

	var result model.AnswerResult
	if err := resp.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode answer result: %w", err)
	}

	st.History = append(st.History, model.AnsweredQuestion{
		Question:        *st.CurrentQuestion,
		SubmittedAnswer: strings.ToUpper(choice),
		Correct:         result.Correct,
		CorrectAnswer:   result.CorrectAnswer,
		Explanation:     result.Explanation,
	})

	// Progress never moves backwards within one interview.
	if result.Progress > st.Progress {
		st.Progress = result.Progress
	}

	if st.Progress >= 100 {
		return r.Complete(ctx, st), nil
	}

	st.SelectedAnswer = strings.ToUpper(choice)
	st.AwaitingNext = true
	st.LastResult = &result

	return nil, nil
}

// Complete flips the backend status to COMPLETED, computes the final
// tally and resets the state to idle. A failed status update degrades
// to a warning on the summary; the reset happens either way.
func (r *Runner) Complete(ctx context.Context, st *State) *Summary {
	summary := &Summary{
		InterviewName:  st.InterviewName,
		TotalQuestions: len(st.History),
	}

	for _, answered := range st.History {
		if answered.Correct {
			summary.CorrectAnswers++
		}
	}
	if summary.TotalQuestions > 0 {
		summary.Accuracy = float64(summary.CorrectAnswers) / float64(summary.TotalQuestions) * 100
	}

	if warning := r.changeStatus(ctx, st.InterviewID, model.StatusCompleted); warning != "" {
		summary.Warning = warning
	}

	st.reset()

	return summary
}

// Cancel flips the backend status to CANCELLED and resets the state
// without producing a summary. Status-update failures are non-fatal.
func (r *Runner) Cancel(ctx context.Context, st *State) string {
	warning := r.changeStatus(ctx, st.InterviewID, model.StatusCancelled)
	st.reset()
	return warning
}

func (r *Runner) changeStatus(ctx context.Context, interviewID string, status string) string {
	resp, err := r.api.ChangeStatus(ctx, interviewID, status)
	if err != nil {
		slog.Warn("interview status update failed", "interview_id", interviewID, "status", status, "error", err)
		return fmt.Sprintf("could not update interview status: %v", err)
	}
	if !resp.IsSuccess() {
		slog.Warn("interview status update rejected", "interview_id", interviewID, "status", status, "error", resp.Error)
		return fmt.Sprintf("could not update interview status: %s", resp.Error)
	}
	return ""
}
