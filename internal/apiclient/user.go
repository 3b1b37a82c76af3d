package apiclient

import (
	"context"
	"net/url"

	"qualifaize-web/internal/model"
)

const userEndpoint = "user"

// UserService exposes the backend's user resource. Local snake_case
// parameters are translated to the wire's camelCase field names here;
// nothing else validates or transforms.
type UserService struct {
	client *Client
}

func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) Login(ctx context.Context, username string, password string) (Response, error) {
	return s.client.Post(ctx, userEndpoint+"/auth/login", map[string]any{
		"username": username,
		"password": password,
	})
}

type Registration struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	BirthDate string
	Roles     []string
}

func (s *UserService) Register(ctx context.Context, reg Registration) (Response, error) {
	roles := reg.Roles
	if len(roles) == 0 {
		roles = []string{model.RoleGuest}
	}

	return s.client.Post(ctx, userEndpoint+"/auth/register", map[string]any{
		"username":  reg.Username,
		"password":  reg.Password,
		"email":     reg.Email,
		"firstName": reg.FirstName,
		"lastName":  reg.LastName,
		"birthDate": reg.BirthDate,
		"roles":     roles,
	})
}

func (s *UserService) ListUsers(ctx context.Context) (Response, error) {
	return s.client.Get(ctx, userEndpoint, nil)
}

func (s *UserService) CurrentUser(ctx context.Context) (Response, error) {
	return s.client.Get(ctx, userEndpoint+"/me", nil)
}

// UserUpdate carries the editable account fields; nil means "leave
// unchanged" and is omitted from the request body.
type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	BirthDate *string
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, update UserUpdate) (Response, error) {
	body := map[string]any{}
	if update.Username != nil {
		body["username"] = *update.Username
	}
	if update.Email != nil {
		body["email"] = *update.Email
	}
	if update.FirstName != nil {
		body["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		body["lastName"] = *update.LastName
	}
	if update.BirthDate != nil {
		body["birthDate"] = *update.BirthDate
	}

	return s.client.Put(ctx, userEndpoint+"/"+userID, body)
}

func (s *UserService) PromoteUser(ctx context.Context, userID string, role string) (Response, error) {
	params := url.Values{"role": {role}}
	return s.client.Get(ctx, userEndpoint+"/promote/"+userID, params)
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) (Response, error) {
	return s.client.Delete(ctx, userEndpoint+"/"+userID)
}
