package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rachapay/platform/internal/auth"
	"github.com/rachapay/platform/internal/handler"
	"github.com/rachapay/platform/internal/infra"
	"github.com/rachapay/platform/internal/repository"
	"github.com/rachapay/platform/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool     *pgxpool.Pool
	JWTMgr   *auth.JWTManager
	Producer *infra.KafkaProducer
	Logger   *slog.Logger

	GateUser           string
	GatePassword       string
	DBName             string
	FeeCents           int64
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	logger := deps.Logger

	// Repositories
	gameRepo := repository.NewGameRepository()
	paymentRepo := repository.NewPaymentRepository()
	debtRepo := repository.NewDebtRepository()

	// Services
	gameSvc := service.NewGameService(pool, gameRepo, paymentRepo, deps.Producer, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(deps.JWTMgr, deps.GateUser, deps.GatePassword)
	gameHandler := handler.NewGameHandler(gameRepo, paymentRepo, gameSvc, pool)
	playerHandler := handler.NewPlayerHandler(gameSvc)
	debtHandler := handler.NewDebtHandler(debtRepo, pool, deps.FeeCents)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool, deps.DBName))

	// Login gate for the SPA; data endpoints below stay open
	r.Post("/auth/login", authHandler.Login)

	r.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.List)
		r.Post("/", gameHandler.Create)
		r.Get("/{gameID}", gameHandler.Get)
		r.Delete("/{gameID}", gameHandler.Delete)

		r.Route("/{gameID}/players", func(r chi.Router) {
			r.Post("/", playerHandler.Add)
			r.Put("/{playerName}", playerHandler.UpdateStatus)
			r.Delete("/{playerName}", playerHandler.Remove)
		})
	})

	r.Route("/debts", func(r chi.Router) {
		r.Get("/", debtHandler.List)
		r.Get("/{playerName}", debtHandler.Detail)
	})

	return r
}
