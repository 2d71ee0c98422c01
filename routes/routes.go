package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/padel-tournament/handlers"
	"github.com/Dosada05/padel-tournament/middleware"
	"github.com/Dosada05/padel-tournament/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.StructuredLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", healthHandler.Check)
	router.Get("/swagger/doc.json", handlers.OpenAPIHandler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.JWTSecret))
			r.Use(middleware.Authorize(services.RoleOrganizer))
			r.Post("/", tournamentHandler.CreateHandler)
		})

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Get("/stats", tournamentHandler.StatsHandler)
			r.Get("/groups/stats", tournamentHandler.GroupStatsHandler)
			r.Get("/groups/{groupID}/matches", tournamentHandler.GroupMatchesHandler)
			r.Get("/next-round", tournamentHandler.NextRoundStatusHandler)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(opts.JWTSecret))
				r.Use(middleware.Authorize(services.RoleOrganizer))

				r.Delete("/", tournamentHandler.DeleteHandler)
				r.Post("/start", tournamentHandler.StartHandler)
				r.Post("/start/manual", tournamentHandler.StartManualHandler)
				r.Post("/next-round", tournamentHandler.GenerateNextRoundHandler)
				r.Post("/random-results", tournamentHandler.RandomResultsHandler)
				r.Post("/archive", tournamentHandler.ArchiveHandler)

				r.Post("/matches", tournamentHandler.AddMatchHandler)
				r.Put("/matches/{matchID}/result", tournamentHandler.SubmitResultHandler)
				r.Delete("/matches/{matchID}", tournamentHandler.DeleteMatchHandler)
			})
		})
	})
}
