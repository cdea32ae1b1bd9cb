package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/pixelgram/internal/api/handlers"
	"github.com/isdelr/pixelgram/internal/forms"
	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/isdelr/pixelgram/internal/services"
	"github.com/isdelr/pixelgram/internal/websocket"
)

// Actions is everything the view server dispatches.
type Actions interface {
	forms.Authenticator
	handlers.PostActions
}

// NewRouter creates and configures a new Chi router for the view server.
func NewRouter(hub *websocket.Hub, store *outcome.Store, acts Actions, sessionService services.SessionServiceProvider, activityService services.ActivityServiceProvider, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	nav := handlers.PageNavigator{}
	// The view server fronts the single local session, so one form of each
	// kind serves every browser tab and a second concurrent submit gets 409.
	authHandler := handlers.NewAuthHandler(
		forms.NewLoginForm(acts, nav),
		forms.NewSignUpForm(acts, nav),
		sessionService, activityService, store,
	)
	postHandler := handlers.NewPostHandler(acts)
	outcomeHandler := handlers.NewOutcomeHandler(store, activityService)
	wsHandler := handlers.NewWebSocketHandler(hub, allowedOrigins)

	// Pages
	r.Get("/", authHandler.Home)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterPage)
	r.Post("/register", authHandler.Register)
	r.Post("/logout", authHandler.Logout)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// WebSocket connection endpoint
		r.Get("/ws", wsHandler.Serve)

		r.Get("/outcomes", outcomeHandler.Latest)
		r.Get("/activity", outcomeHandler.GetRecent)

		r.Route("/posts", func(r chi.Router) {
			r.Post("/", postHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", postHandler.Update)
				r.Delete("/", postHandler.Delete)
				r.Post("/like", postHandler.Like)
				r.Put("/comments", postHandler.AddComment)
				r.Delete("/comments/{commentId}", postHandler.DeleteComment)
			})
		})
	})

	return r
}
