package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/shelftrack/shelftrack-api/internal/application/auth"
	"github.com/shelftrack/shelftrack-api/internal/application/borrowing"
	"github.com/shelftrack/shelftrack-api/internal/application/catalog"
	"github.com/shelftrack/shelftrack-api/internal/application/notification"
	infraamqp "github.com/shelftrack/shelftrack-api/internal/infrastructure/amqp"
	infrapdf "github.com/shelftrack/shelftrack-api/internal/infrastructure/pdf"
	"github.com/shelftrack/shelftrack-api/internal/infrastructure/postgres"
	"github.com/shelftrack/shelftrack-api/internal/infrastructure/scheduler"
	"github.com/shelftrack/shelftrack-api/internal/infrastructure/verify"
	httpRouter "github.com/shelftrack/shelftrack-api/internal/interfaces/http"
	"github.com/shelftrack/shelftrack-api/pkg/config"
	"github.com/shelftrack/shelftrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	bookRepo := postgres.NewBookRepository(pool)
	libraryRepo := postgres.NewLibraryRepository(pool)
	copyRepo := postgres.NewBookCopyRepository(pool)
	recordRepo := postgres.NewBorrowRecordRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Librarian verification: external endpoint when configured, otherwise
	// the local ID-prefix predicate.
	var verifier auth.LibrarianVerifier = auth.PrefixVerifier{}
	if cfg.Verify.URL != "" {
		verifier = verify.NewHTTPVerifier(cfg.Verify.URL, cfg.Verify.Token)
		log.Info().Str("url", cfg.Verify.URL).Msg("using external librarian verification")
	}

	authUC := auth.New(userRepo, roleRepo, verifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	bookUC := catalog.NewBookUseCase(bookRepo)
	libraryUC := catalog.NewLibraryUseCase(libraryRepo, copyRepo)
	copyUC := catalog.NewCopyUseCase(copyRepo, bookRepo, libraryRepo)

	finePerDay, err := decimal.NewFromString(cfg.Loan.FinePerDay)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Loan.FinePerDay).Msg("invalid LOAN_FINE_PER_DAY")
	}

	receipts := infrapdf.NewMarotoReceiptGenerator()
	borrowUC := borrowing.New(
		txRunner, userRepo, bookRepo, copyRepo, recordRepo, libraryRepo,
		receipts, borrowing.LoanPolicy{
			PeriodDays: cfg.Loan.PeriodDays,
			FinePerDay: finePerDay,
		},
	)

	// Reminder delivery: AMQP queue when configured, otherwise log-only.
	var sender notification.Sender = &notification.LogSender{Log: log}
	if cfg.AMQP.URL != "" {
		publisher, err := infraamqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("AMQP connection")
		}
		defer publisher.Close()
		sender = publisher
		log.Info().Str("queue", cfg.AMQP.Queue).Msg("publishing reminders to AMQP")
	}

	notifyUC := notification.New(recordRepo, userRepo, copyRepo, bookRepo, notifRepo, sender, log)

	schedCtx, stopScheduler := context.WithCancel(ctx)
	sched := scheduler.New(cfg.Notify.Interval, notifyUC.CheckOverdueNotifications, log)
	sched.Start(schedCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ShelfTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		BookUC:    bookUC,
		LibraryUC: libraryUC,
		CopyUC:    copyUC,
		BorrowUC:  borrowUC,
		NotifyUC:  notifyUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	stopScheduler()
	sched.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
