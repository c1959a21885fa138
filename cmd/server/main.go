package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/ielts-scorer/internal/config"
	"github.com/fadilmartias/ielts-scorer/internal/database"
	"github.com/fadilmartias/ielts-scorer/internal/domain/fiber/handler"
	"github.com/fadilmartias/ielts-scorer/internal/gateway"
	"github.com/fadilmartias/ielts-scorer/internal/logger"
	"github.com/fadilmartias/ielts-scorer/internal/middleware"
	"github.com/fadilmartias/ielts-scorer/internal/repository"
	"github.com/fadilmartias/ielts-scorer/internal/service"
	"github.com/fadilmartias/ielts-scorer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	scoringConfig := config.LoadScoringConfig()

	zl, err := logger.Setup(appConfig.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(config.LoadDBConfig(), appConfig)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}
	essayRepo, err := repository.NewEssayRepository(db, scoringConfig.VectorStoreTable)
	if err != nil {
		zl.Fatal("vector store", zap.Error(err))
	}
	if err := essayRepo.Migrate(); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		zl.Fatal("gemini", zap.Error(err))
	}
	llm, err := selectLLM(scoringConfig.Provider, gemini)
	if err != nil {
		zl.Fatal("scoring provider", zap.Error(err))
	}

	// The engine is built once and shared by every request.
	metrics := service.NewEvaluationMetrics()
	engine := usecase.NewScoringUsecase(
		essayRepo,
		service.NewEssayPreprocessor(),
		gemini,
		llm,
		metrics,
		usecase.ScoringOptions{
			TopK:                scoringConfig.TopK,
			SimilarityThreshold: scoringConfig.SimilarityThreshold,
		},
	)
	gw := gateway.NewGateway(engine)

	app := newApp(appConfig)
	handler.NewScoreHandler(gw, scoringConfig.RateLimitMax, scoringConfig.RateLimitWindow).RegisterRoutes(app)
	handler.NewMetricsHandler(metrics).RegisterRoutes(app)
	handler.NewEssayHandler(essayRepo).RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				zl.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		zl.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zl.Error("server shutdown error", zap.Error(err))
		}
	}()

	zl.Info("server running",
		zap.String("port", appConfig.Port),
		zap.String("provider", llm.Name()),
		zap.String("vector_store", essayRepo.Table()))
	if err := app.Listen(appConfig.Port); err != nil {
		zl.Fatal("listen", zap.Error(err))
	}
}

func selectLLM(provider string, gemini *service.GeminiService) (service.LLMServiceInterface, error) {
	switch provider {
	case config.ProviderGemini:
		return gemini, nil
	case config.ProviderOpenRouter:
		return service.NewOpenRouterService(), nil
	default:
		return nil, errors.New("unknown SCORING_PROVIDER " + provider)
	}
}

func newApp(appConfig *config.AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 8 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"detail": message})
		},
	})
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:request_id} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	return app
}
