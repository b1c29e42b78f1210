package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ma-nadeau/FRED/internal/adapter/handler"
	"github.com/ma-nadeau/FRED/internal/adapter/middleware"
	"github.com/ma-nadeau/FRED/internal/adapter/storage/memory"
	"github.com/ma-nadeau/FRED/internal/adapter/storage/postgres"
	"github.com/ma-nadeau/FRED/internal/core/config"
	"github.com/ma-nadeau/FRED/internal/core/security"
	"github.com/ma-nadeau/FRED/internal/core/service"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// One shared storage handle for the whole process, closed on shutdown.
	var (
		pool         *pgxpool.Pool
		userStore    service.UserStore
		accountStore service.AccountStore
		txStore      service.TransactionStore
		tradeStore   service.TradeStore
	)
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = postgres.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := postgres.Migrate(context.Background(), pool); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		userStore = postgres.NewUserRepository(pool)
		accountStore = postgres.NewAccountRepository(pool)
		txStore = postgres.NewTransactionRepository(pool)
		tradeStore = postgres.NewTradeRepository(pool)
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory store")
		mem := memory.NewStore()
		userStore, accountStore, txStore, tradeStore = mem, mem, mem, mem
	}

	tokens := security.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	guard := service.NewGuard(service.NewHierarchy(accountStore))

	authHandler := &handler.AuthHandler{Auth: service.NewAuth(userStore, tokens)}
	accounts := service.NewAccounts(accountStore, guard)
	bankHandler := &handler.BankAccountHandler{Accounts: accounts}
	tradingHandler := &handler.TradingAccountHandler{Accounts: accounts}
	txHandler := &handler.TransactionHandler{Ledger: service.NewTransactions(txStore, guard)}
	tradeHandler := &handler.TradeHandler{Ledger: service.NewTrades(tradeStore, guard)}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/v1")

	// Public
	api.Post("/auth/signup", authHandler.Signup)
	api.Post("/auth/login", authHandler.Login)

	// Protected
	private := api.Use(middleware.Protected(tokens))
	if pool != nil {
		private.Use(middleware.Idempotency(pool))
	}

	private.Post("/bank-accounts", bankHandler.Create)
	private.Get("/bank-accounts", bankHandler.List)
	private.Get("/bank-accounts/:id", bankHandler.Get)
	private.Patch("/bank-accounts/:id", bankHandler.Update)
	private.Delete("/bank-accounts/:id", bankHandler.Delete)
	private.Put("/bank-accounts/:id/balance", bankHandler.SetBalance)
	private.Put("/bank-accounts/:id/interest-rate", bankHandler.SetInterestRate)

	private.Post("/trading-accounts", tradingHandler.Create)
	private.Get("/trading-accounts", tradingHandler.List)
	private.Get("/trading-accounts/:id", tradingHandler.Get)
	private.Patch("/trading-accounts/:id", tradingHandler.Update)
	private.Delete("/trading-accounts/:id", tradingHandler.Delete)
	private.Put("/trading-accounts/:id/balance", tradingHandler.SetBalance)
	private.Get("/trading-accounts/:id/trades", tradeHandler.ListForAccount)

	private.Post("/transactions", txHandler.Create)
	private.Get("/transactions", txHandler.List)
	private.Get("/transactions/:id", txHandler.Get)
	private.Patch("/transactions/:id", txHandler.Update)
	private.Delete("/transactions/:id", txHandler.Delete)

	private.Post("/trades", tradeHandler.Create)
	private.Get("/trades/:id", tradeHandler.Get)
	private.Patch("/trades/:id", tradeHandler.Update)
	private.Delete("/trades/:id", tradeHandler.Delete)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	if pool != nil {
		pool.Close()
		slog.Info("database connection closed")
	}
	slog.Info("server exited")
}
