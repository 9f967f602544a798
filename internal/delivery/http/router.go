package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// Controllers groups the handlers served by the router.
type Controllers struct {
	Auth  *controllers.AuthController
	User  *controllers.UserController
	Event *controllers.EventController
	Tag   *controllers.TagController
	RSVP  *controllers.RSVPController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, auth domain.Authenticator, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(auth, logger)
	requireRefresh := middleware.RequireRefresh(auth, logger)
	requireAdmin := func(next http.HandlerFunc) http.HandlerFunc {
		return requireAuth(middleware.RequireAdmin(next))
	}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Hello World!"))
	})

	// Auth
	mux.HandleFunc("POST /register", c.Auth.Register)
	mux.HandleFunc("POST /login", c.Auth.Login)
	mux.HandleFunc("POST /refresh", requireRefresh(c.Auth.Refresh))
	mux.HandleFunc("POST /logout", requireAuth(c.Auth.Logout))

	// Users
	mux.HandleFunc("GET /user/{user_id}", requireAuth(c.User.Get))
	mux.HandleFunc("DELETE /user/{user_id}", requireAdmin(c.User.Delete))

	// Events
	mux.HandleFunc("GET /event", c.Event.List)
	mux.HandleFunc("POST /event", requireAuth(c.Event.Create))
	mux.HandleFunc("GET /event/{event_id}", c.Event.Get)
	mux.HandleFunc("DELETE /event/{event_id}", requireAdmin(c.Event.Delete))

	// Tags
	mux.HandleFunc("GET /event/{event_id}/tag", c.Tag.ListForEvent)
	mux.HandleFunc("POST /event/{event_id}/tag", requireAuth(c.Tag.Add))
	mux.HandleFunc("POST /event/{event_id}/tag/{tag_id}", requireAuth(c.Tag.Link))
	mux.HandleFunc("DELETE /event/{event_id}/tag/{tag_id}", requireAuth(c.Tag.Unlink))
	mux.HandleFunc("GET /tag/{tag_id}", c.Tag.Get)
	mux.HandleFunc("DELETE /tag/{tag_id}", requireAuth(c.Tag.Delete))

	// RSVPs
	mux.HandleFunc("GET /rsvp", requireAuth(c.RSVP.ListMine))
	mux.HandleFunc("POST /rsvp/{event_id}", requireAuth(c.RSVP.Create))
	mux.HandleFunc("GET /rsvp/{rsvp_id}", requireAuth(c.RSVP.Get))
	mux.HandleFunc("PUT /rsvp/{rsvp_id}", requireAuth(c.RSVP.Update))
	mux.HandleFunc("GET /event/{event_id}/rsvp", requireAuth(c.RSVP.ListForEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
