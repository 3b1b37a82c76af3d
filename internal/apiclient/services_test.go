package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qualifaize-web/internal/model"
)

// recorder captures the last backend request a facade produced.
type recorder struct {
	method string
	path   string
	query  url.Values
	body   map[string]any
}

func newRecordingClient(t *testing.T, status int, responseBody string) (*Client, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.body = nil

		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(srv.Close)

	return New(testConfig(srv.URL), nil), rec
}

func TestLoginRequestShape(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusOK, `{"token":"abc"}`)
	users := NewUserService(client)

	resp, err := users.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	require.True(t, resp.IsSuccess())

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/user/auth/login", rec.path)
	assert.Equal(t, "alice", rec.body["username"])
	assert.Equal(t, "s3cret", rec.body["password"])
}

func TestRegisterDefaultsToGuestRole(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusCreated, `{}`)
	users := NewUserService(client)

	_, err := users.Register(context.Background(), Registration{
		Username:  "bob",
		Password:  "pw",
		Email:     "bob@example.com",
		FirstName: "Bob",
		LastName:  "Builder",
		BirthDate: "1990-04-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/user/auth/register", rec.path)
	assert.Equal(t, "Bob", rec.body["firstName"])
	assert.Equal(t, "Builder", rec.body["lastName"])
	assert.Equal(t, "1990-04-01", rec.body["birthDate"])
	assert.Equal(t, []any{model.RoleGuest}, rec.body["roles"])
}

func TestRegisterKeepsExplicitRoles(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusCreated, `{}`)
	users := NewUserService(client)

	_, err := users.Register(context.Background(), Registration{
		Username: "carol",
		Password: "pw",
		Roles:    []string{model.RoleUser},
	})
	require.NoError(t, err)

	assert.Equal(t, []any{model.RoleUser}, rec.body["roles"])
}

func TestUpdateUserOmitsUnchangedFields(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusOK, `{}`)
	users := NewUserService(client)

	email := "new@example.com"
	_, err := users.UpdateUser(context.Background(), "u-42", UserUpdate{Email: &email})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/user/u-42", rec.path)
	assert.Equal(t, map[string]any{"email": "new@example.com"}, rec.body)
}

func TestPromoteUser(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusOK, `{}`)
	users := NewUserService(client)

	_, err := users.PromoteUser(context.Background(), "u-42", model.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/user/promote/u-42", rec.path)
	assert.Equal(t, "USER", rec.query.Get("role"))
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusOK, `{}`)
	users := NewUserService(client)

	_, err := users.DeleteUser(context.Background(), "u-42")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/user/u-42", rec.path)
}

func TestCreateInterviewOmitsEmptyOptionals(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusCreated, `{}`)
	interviews := NewInterviewService(client)

	_, err := interviews.CreateInterview(context.Background(), InterviewDraft{
		Name:       "Backend basics",
		DocumentID: "doc-1",
		Difficulty: model.DifficultyMedium,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/interview", rec.path)
	assert.Equal(t, "doc-1", rec.body["documentId"])
	assert.NotContains(t, rec.body, "description")
	assert.NotContains(t, rec.body, "assignedToUserId")
	assert.NotContains(t, rec.body, "scheduledDate")
}

func TestCreateInterviewWithAssignment(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusCreated, `{}`)
	interviews := NewInterviewService(client)

	_, err := interviews.CreateInterview(context.Background(), InterviewDraft{
		Name:             "Backend basics",
		DocumentID:       "doc-1",
		Difficulty:       model.DifficultyHard,
		AssignedToUserID: "u-7",
		ScheduledDate:    "2026-09-01T10:00:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "u-7", rec.body["assignedToUserId"])
	assert.Equal(t, "2026-09-01T10:00:00", rec.body["scheduledDate"])
}

func TestChangeStatusUsesQueryParam(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusOK, `{}`)
	interviews := NewInterviewService(client)

	_, err := interviews.ChangeStatus(context.Background(), "iv-1", model.StatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/interview/iv-1", rec.path)
	assert.Equal(t, "IN_PROGRESS", rec.query.Get("newStatus"))
}

func TestAssignedInterviewsStatusFilter(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusOK, `[]`)
	interviews := NewInterviewService(client)

	_, err := interviews.AssignedInterviews(context.Background(), model.StatusScheduled)
	require.NoError(t, err)
	assert.Equal(t, "/api/interview/assigned", rec.path)
	assert.Equal(t, "SCHEDULED", rec.query.Get("status"))

	_, err = interviews.AssignedInterviews(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, rec.query.Get("status"))
}

func TestSubmitAnswerUppercases(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusOK, `{"isCorrect":true}`)
	interviews := NewInterviewService(client)

	_, err := interviews.SubmitAnswer(context.Background(), "q-9", "b")
	require.NoError(t, err)

	assert.Equal(t, "/api/interview/answer/q-9", rec.path)
	assert.Equal(t, "B", rec.query.Get("correctAnswer"))
}

func TestDocumentEndpoints(t *testing.T) {
	t.Parallel()

	client, rec := newRecordingClient(t, http.StatusOK, `{}`)
	documents := NewDocumentService(client)

	_, err := documents.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/pdf", rec.path)

	_, err = documents.Document(context.Background(), "doc-3")
	require.NoError(t, err)
	assert.Equal(t, "/api/pdf/doc-3", rec.path)

	_, err = documents.DocumentContent(context.Background(), "doc-3", "2.1")
	require.NoError(t, err)
	assert.Equal(t, "/api/pdf/doc-3/2.1", rec.path)

	_, err = documents.UpdateTitle(context.Background(), "doc-3", "New Title")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/api/pdf/doc-3", rec.path)
	assert.Equal(t, "New Title", rec.query.Get("title"))

	_, err = documents.DeleteDocument(context.Background(), "doc-3")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/pdf/doc-3", rec.path)
}
