package session

import (
	"context"
	"fmt"
	"log/slog"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/model"
)

// Manager owns the identity lifecycle: it exchanges credentials for a
// token through the user facade and installs or clears the decoded
// identity on the session.
type Manager struct {
	users *apiclient.UserService
}

func NewManager(users *apiclient.UserService) *Manager {
	return &Manager{users: users}
}

// Login authenticates against the backend and stores the decoded
// identity on success. A failure status comes back as an error carrying
// the backend's message; transport errors propagate unchanged.
func (m *Manager) Login(ctx context.Context, sess *Session, username string, password string) error {
	resp, err := m.users.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		slog.Warn("login rejected", "username", username, "status", resp.StatusCode)
		return fmt.Errorf("login failed: %s", resp.Error)
	}

	var result model.LoginResult
	if err := resp.Decode(&result); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}

	identity, err := DecodeIdentity(result.Token)
	if err != nil {
		return err
	}

	sess.SetIdentity(identity)
	slog.Info("user logged in", "username", identity.Username, "roles", identity.Roles)

	return nil
}

// Logout clears the identity unconditionally; calling it on a
// logged-out session is a no-op.
func (m *Manager) Logout(sess *Session) {
	sess.ClearIdentity()
	slog.Info("user logged out", "session_id", sess.ID)
}
