package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mgi25/chess/docs"
	"github.com/mgi25/chess/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	leagueHandler *handlers.LeagueHandler,
	exportHandler *handlers.ExportHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/rules", leagueHandler.GetRulesHandler)

		r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
			r.Get("/state", leagueHandler.GetStateHandler)
			r.Get("/players", leagueHandler.GetPlayersHandler)
			r.Get("/rounds", leagueHandler.GetRoundsHandler)
			r.Get("/standings", leagueHandler.GetStandingsHandler)

			r.Put("/matches/{matchID}", leagueHandler.SetMatchResultHandler)
			r.Put("/players/{playerID}/adjustment", leagueHandler.SetAdjustmentHandler)

			r.Post("/rounds", leagueHandler.GenerateNextRoundHandler)
			r.Post("/reset", leagueHandler.ResetHandler)

			r.Get("/export", exportHandler.DownloadHandler)
			r.Post("/export/upload", exportHandler.UploadHandler)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Get("/swagger/doc.json", docs.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
