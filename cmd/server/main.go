// @title         rirekisho API
// @version       1.0
// @description   Сервис пошагового интервью, который собирает японское резюме (履歴書) из ответов кандидата в чате.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	// internal imports
	"github.com/artem13815/rirekisho/api/http"
	"github.com/artem13815/rirekisho/api/http/handlers"
	_ "github.com/artem13815/rirekisho/docs"
	"github.com/artem13815/rirekisho/pkg/auth"
	"github.com/artem13815/rirekisho/pkg/config"
	"github.com/artem13815/rirekisho/pkg/health"
	healthpg "github.com/artem13815/rirekisho/pkg/health/checkers"
	"github.com/artem13815/rirekisho/pkg/interview"
	"github.com/artem13815/rirekisho/pkg/llm"
	"github.com/artem13815/rirekisho/pkg/llm/openai"
	"github.com/artem13815/rirekisho/pkg/logger"
	"github.com/artem13815/rirekisho/pkg/repository/memory"
	pgrepo "github.com/artem13815/rirekisho/pkg/repository/postgres"
	"github.com/artem13815/rirekisho/pkg/resume"
	"github.com/artem13815/rirekisho/pkg/security/jwt"
	"github.com/artem13815/rirekisho/pkg/session"
	"github.com/artem13815/rirekisho/pkg/storage/postgres"
)

type repositories struct {
	users    auth.UserRepository
	sessions session.Repository
	drafts   resume.Repository
	usage    llm.UsageRecorder
	checkers []health.Checker
	close    func()
}

func main() {
	// Load configuration from env/.env
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}
	pricing, err := cfg.Pricing()
	if err != nil {
		log.Fatal("load pricing", "error", err)
	}

	ctx := context.Background()
	repos := openRepositories(ctx, cfg, log)
	defer repos.close()

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authUC := auth.NewAuthService(repos.users, jwtGen)

	// Interview: session store, draft aggregator and extractor
	sessions := session.NewStore(repos.sessions)
	drafts := resume.NewAggregator(repos.drafts, log.With("component", "resume"))

	var model llm.ChatModel
	if cfg.LLMAPIKey != "" {
		model = openai.New(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMAppTitle, cfg.LLMReferer)
	}
	extractor := interview.NewExtractor(interview.Config{
		APIKey:        cfg.LLMAPIKey,
		Model:         cfg.LLMModel,
		Pricing:       pricing,
		HistoryWindow: cfg.HistoryWindow,
	}, model, repos.usage, interview.NewKeywordClassifier(), log.With("component", "extractor"))
	interviewSvc := interview.NewService(sessions, drafts, extractor, cfg.HistoryWindow, log.With("component", "interview"))

	app := fiber.New(fiber.Config{BodyLimit: cfg.UploadMaxBytes + 1<<20})
	http.Register(app, http.Handlers{
		Auth:   handlers.NewAuthHandler(authUC),
		Health: handlers.NewHealthHandler(health.NewService(repos.checkers...)),
		Chat:   handlers.NewChatHandler(sessions, interviewSvc, log),
		Resume: handlers.NewResumeHandler(interviewSvc, int64(cfg.UploadMaxBytes), log),
	}, jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	log.Info("HTTP server listening", "port", cfg.Port, "llm", cfg.LLMAPIKey != "", "postgres", cfg.DatabaseURL != "")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

// openRepositories uses PostgreSQL when DATABASE_URL is set and in-memory
// stores otherwise.
func openRepositories(ctx context.Context, cfg config.Config, log *logger.Logger) repositories {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL не задан: данные хранятся в памяти процесса")
		return repositories{
			users:    memory.NewUserRepository(),
			sessions: memory.NewSessionRepository(),
			drafts:   memory.NewResumeRepository(),
			usage:    memory.NewUsageRepository(),
			close:    func() {},
		}
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("postgres connect", "error", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Fatal("postgres migrate", "error", err)
	}
	return repositories{
		users:    pgrepo.NewUserRepository(pool),
		sessions: pgrepo.NewSessionRepository(pool),
		drafts:   pgrepo.NewResumeRepository(pool),
		usage:    pgrepo.NewUsageRepository(pool),
		checkers: []health.Checker{healthpg.NewPostgresChecker(pool)},
		close:    pool.Close,
	}
}
