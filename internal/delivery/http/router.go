package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/controllers"
	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/middleware"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	AI       *controllers.AIController
	Auth     *controllers.AuthController
	Projects *controllers.ProjectController
	Tasks    *controllers.TaskController
	RSVPs    *controllers.RSVPController
	Sponsors *controllers.SponsorController
	Teams    *controllers.TeamController
	Members  *controllers.MemberController
	Search   *controllers.SearchController
}

// NewRouter initializes the HTTP router with all application routes.
// Everything except /, /health, /auth/* and /swagger/ requires a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Public
	mux.HandleFunc("GET /{$}", root)
	mux.HandleFunc("GET /health", health)
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// AI
	mux.HandleFunc("GET /ai/events/risks", auth(c.AI.ListEventRisks))
	mux.HandleFunc("GET /ai/events/{eventID}/risks", auth(c.AI.GetEventRisks))
	mux.HandleFunc("POST /ai/email/generate", auth(c.AI.GenerateEmail))

	// Projects (events)
	mux.HandleFunc("GET /projects", auth(c.Projects.ListProjects))
	mux.HandleFunc("POST /projects", auth(c.Projects.CreateProject))

	// Tasks
	mux.HandleFunc("GET /tasks", auth(c.Tasks.ListTasks))
	mux.HandleFunc("GET /tasks/all", auth(c.Tasks.ListAllTasks))
	mux.HandleFunc("POST /tasks", auth(c.Tasks.CreateTask))
	mux.HandleFunc("PATCH /tasks/{taskID}/status", auth(c.Tasks.UpdateTaskStatus))
	mux.HandleFunc("GET /tasks/user/{memberID}", auth(c.Tasks.ListMemberTasks))

	// RSVPs
	mux.HandleFunc("GET /rsvps", auth(c.RSVPs.ListRSVPs))
	mux.HandleFunc("GET /rsvps/all", auth(c.RSVPs.ListAllRSVPs))

	// Sponsors
	mux.HandleFunc("GET /sponsors", auth(c.Sponsors.ListSponsors))
	mux.HandleFunc("GET /sponsors/all", auth(c.Sponsors.ListAllSponsors))

	// Directory
	mux.HandleFunc("GET /teams", auth(c.Teams.ListTeams))
	mux.HandleFunc("GET /users", auth(c.Members.ListMembers))
	mux.HandleFunc("GET /users/{memberID}", auth(c.Members.GetMember))
	mux.HandleFunc("POST /users", auth(c.Members.CreateMember))

	// Search
	mux.HandleFunc("GET /search", auth(c.Search.Search))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func root(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "ClubOps CRM API"})
}

func health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
