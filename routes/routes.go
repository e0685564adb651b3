package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/Dosada05/ticket-tournament/docs"
	"github.com/Dosada05/ticket-tournament/handlers"
	"github.com/Dosada05/ticket-tournament/middleware"
)

// Лимит на вход и регистрацию админов: 5 попыток подряд, потом одна каждые 12 секунд.
const (
	adminAuthBurst    = 5
	adminAuthInterval = 12 * time.Second
)

func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	ticketHandler *handlers.TicketHandler,
	scoreHandler *handlers.ScoreHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	prizeHandler *handlers.PrizeHandler,
	dashboardHandler *handlers.DashboardHandler,
	webhookHandler *handlers.WebhookHandler,
	tokens middleware.TokenParser,
	allowedOrigins []string,
	gatherer prometheus.Gatherer,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true, // cookie admin_token
		MaxAge:           300,
	}))

	requireAdmin := middleware.RequireAdmin(tokens)
	requirePlayer := middleware.RequirePlayer(tokens)
	adminAuthLimiter := middleware.NewIPRateLimiter(rate.Every(adminAuthInterval), adminAuthBurst)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/player/register", authHandler.RegisterPlayer)
			r.Post("/player/login", authHandler.LoginPlayer)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(adminAuthLimiter))
				r.Post("/admin/register", authHandler.RegisterAdmin)
				r.Post("/admin/login", authHandler.LoginAdmin)
			})
			r.Post("/admin/logout", authHandler.LogoutAdmin)
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)
			r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
			r.Get("/teams/list", tournamentHandler.ListTeamsHandler)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", tournamentHandler.CreateHandler)
				r.Put("/{tournamentID}", tournamentHandler.UpdateHandler)
				r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)
				r.Post("/teams", tournamentHandler.CreateTeamsHandler)
				r.Put("/teams/{teamID}", tournamentHandler.UpdateTeamHandler)
			})
		})

		r.Route("/tickets", func(r chi.Router) {
			r.With(requirePlayer).Get("/{ticketID}", ticketHandler.GetOwnHandler)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", ticketHandler.ListHandler)
				r.Post("/create", ticketHandler.IssueHandler)
				r.Get("/export/csv", ticketHandler.ExportCSVHandler)
				r.Get("/export/xlsx", ticketHandler.ExportXLSXHandler)
				r.Post("/export/archive", ticketHandler.ArchiveHandler)
			})
		})

		r.Route("/scores", func(r chi.Router) {
			r.Get("/", scoreHandler.ListHandler)
			r.With(requireAdmin).Post("/", scoreHandler.RecordHandler)
		})

		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", leaderboardHandler.GetHandler)
			r.Get("/tickets", leaderboardHandler.TicketsHandler)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/rebuild", leaderboardHandler.RebuildHandler)
				r.Post("/recompute", leaderboardHandler.RecomputeHandler)
			})
		})

		r.Route("/prizes", func(r chi.Router) {
			r.Get("/", prizeHandler.ListHandler)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", prizeHandler.CreateHandler)
				r.Post("/compute", prizeHandler.ComputeHandler)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/recent", dashboardHandler.Recent)
			r.Get("/players/recent", dashboardHandler.RecentPlayers)
			r.Get("/tickets/recent", dashboardHandler.RecentTickets)
			r.Get("/tournaments/recent", dashboardHandler.RecentTournaments)
		})

		// Stripe подписывает тело сам, токен не нужен
		r.Post("/webhooks/stripe", webhookHandler.StripeHandler)
	})
}
