package apiclient

import (
	"context"
	"net/url"
	"strings"
)

const interviewEndpoint = "interview"

// InterviewService exposes the backend's interview resource. Endpoint
// shapes mirror the backend contract exactly, including the
// query-parameter GETs it uses for status changes and answers.
type InterviewService struct {
	client *Client
}

func NewInterviewService(client *Client) *InterviewService {
	return &InterviewService{client: client}
}

type InterviewDraft struct {
	Name             string
	DocumentID       string
	Description      string
	Difficulty       string
	AssignedToUserID string
	ScheduledDate    string
}

func (s *InterviewService) CreateInterview(ctx context.Context, draft InterviewDraft) (Response, error) {
	body := map[string]any{
		"name":       draft.Name,
		"documentId": draft.DocumentID,
		"difficulty": draft.Difficulty,
	}
	if draft.Description != "" {
		body["description"] = draft.Description
	}
	if draft.AssignedToUserID != "" {
		body["assignedToUserId"] = draft.AssignedToUserID
	}
	if draft.ScheduledDate != "" {
		body["scheduledDate"] = draft.ScheduledDate
	}

	return s.client.Post(ctx, interviewEndpoint, body)
}

func (s *InterviewService) ChangeStatus(ctx context.Context, interviewID string, newStatus string) (Response, error) {
	params := url.Values{"newStatus": {newStatus}}
	return s.client.Get(ctx, interviewEndpoint+"/"+interviewID, params)
}

func (s *InterviewService) NextQuestion(ctx context.Context, interviewID string) (Response, error) {
	return s.client.Get(ctx, interviewEndpoint+"/next/"+interviewID, nil)
}

// AssignedInterviews lists interviews assigned to the current user,
// optionally filtered by status.
func (s *InterviewService) AssignedInterviews(ctx context.Context, status string) (Response, error) {
	var params url.Values
	if status != "" {
		params = url.Values{"status": {status}}
	}
	return s.client.Get(ctx, interviewEndpoint+"/assigned", params)
}

func (s *InterviewService) SubmitAnswer(ctx context.Context, questionID string, answer string) (Response, error) {
	params := url.Values{"correctAnswer": {strings.ToUpper(answer)}}
	return s.client.Get(ctx, interviewEndpoint+"/answer/"+questionID, params)
}
