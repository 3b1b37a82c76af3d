package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"qualifaize-web/internal/config"
	"qualifaize-web/internal/handler"
	"qualifaize-web/internal/middleware"
	"qualifaize-web/internal/model"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Account   *handler.AccountHandler
	Interview *handler.InterviewHandler
	History   *handler.HistoryHandler
	Document  *handler.DocumentHandler
	User      *handler.UserHandler
	Error     *handler.ErrorHandler
}

func New(cfg *config.Config, sessions *middleware.SessionMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimit.Handler)
	r.Use(sessions.Load)

	r.NotFound(h.Error.NotFound)
	r.MethodNotAllowed(h.Error.MethodNotAllowed)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", h.Dashboard.Page)
	r.Get("/signin", h.Auth.SignInPage)
	r.Post("/signin", h.Auth.SignIn)
	r.Get("/signup", h.Auth.SignUpPage)
	r.Post("/signup", h.Auth.SignUp)
	r.Post("/signout", h.Auth.SignOut)

	r.Group(func(authed chi.Router) {
		authed.Use(sessions.RequireAuth)

		authed.Get("/account", h.Account.Page)

		authed.Group(func(users chi.Router) {
			users.Use(sessions.RequireRoles(model.RoleUser, model.RoleAdmin))

			users.Get("/interview", h.Interview.Page)
			users.Post("/interview/start", h.Interview.Start)
			users.Post("/interview/answer", h.Interview.Answer)
			users.Post("/interview/next", h.Interview.Next)
			users.Post("/interview/cancel", h.Interview.Cancel)
			users.Get("/history", h.History.Page)
		})

		authed.Group(func(admin chi.Router) {
			admin.Use(sessions.RequireRoles(model.RoleAdmin))

			admin.Post("/interview/assign", h.Interview.Assign)

			admin.Get("/documents", h.Document.Page)
			admin.Post("/documents/upload", h.Document.Upload)
			admin.Post("/documents/{documentID}/title", h.Document.Rename)
			admin.Post("/documents/{documentID}/delete", h.Document.Delete)

			admin.Get("/users", h.User.Page)
			admin.Post("/users", h.User.Create)
			admin.Post("/users/{userID}/update", h.User.Update)
			admin.Post("/users/{userID}/promote", h.User.Promote)
			admin.Post("/users/{userID}/delete", h.User.Delete)
		})
	})

	return r
}
