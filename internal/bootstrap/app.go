// Package bootstrap assembles the application: capabilities, storage,
// repositories, services, handlers, and the router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/analysis"
	googleauth "resume-quality/internal/auth"
	"resume-quality/internal/config"
	"resume-quality/internal/extract"
	"resume-quality/internal/grammar"
	"resume-quality/internal/llm/gemini"
	"resume-quality/internal/quickscore"
	"resume-quality/internal/reviews"
	"resume-quality/internal/server"
	"resume-quality/internal/services/health"
	"resume-quality/internal/shared/storage/db"
	"resume-quality/internal/shared/storage/object"
	localstore "resume-quality/internal/shared/storage/object/local"
	"resume-quality/internal/shared/telemetry"
	"resume-quality/internal/submissions"
	"resume-quality/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Pipeline *analysis.Pipeline
	Scorer   *quickscore.Scorer

	UsersRepo       users.Repo
	SubmissionsRepo submissions.SubmissionsRepo

	UsersService       *users.Service
	SubmissionsService *submissions.Service
	ReviewsService     *reviews.Service

	UsersHandler       *users.Handler
	SubmissionsHandler *submissions.Handler
	ReviewsHandler     *reviews.Handler
	GoogleAuth         *googleauth.GoogleService
	Health             *health.Service
}

// Build prepares shared dependencies and the router. Optional analysis
// capabilities that fail to initialize are logged and left nil; the pipeline
// degrades instead of the process crashing.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  localstore.New(cfg.LocalStoreDir),
	}

	capabilities := buildPipeline(ctx, cfg, app)
	buildServices(app)

	app.Health = health.NewService(capabilities)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		Health:             app.Health,
		UsersHandler:       app.UsersHandler,
		SubmissionsHandler: app.SubmissionsHandler,
		ReviewsHandler:     app.ReviewsHandler,
		GoogleAuth:         app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// buildPipeline initializes the analysis capabilities once for the process
// lifetime and reports which of them loaded.
func buildPipeline(ctx context.Context, cfg config.Config, app *App) map[string]bool {
	capabilities := map[string]bool{
		"ocr":       false,
		"grammar":   false,
		"embedding": false,
		"generator": false,
	}

	pipeline := &analysis.Pipeline{Timeout: cfg.CapabilityTimeout}

	if ocr := extract.NewCommandOCR(cfg.PdftoppmPath, cfg.TesseractPath); ocr != nil {
		pipeline.OCR = ocr
		capabilities["ocr"] = true
	} else {
		telemetry.Warn("bootstrap.capability_unavailable", map[string]any{"capability": "ocr"})
	}

	if checker, err := grammar.NewClient(cfg.GrammarServerURL, cfg.GrammarLocale, cfg.CapabilityTimeout); err != nil {
		telemetry.Warn("bootstrap.capability_unavailable", map[string]any{"capability": "grammar", "reason": err.Error()})
	} else {
		pipeline.Grammar = checker
		capabilities["grammar"] = true
	}

	if client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EmbeddingModel); err != nil {
		telemetry.Warn("bootstrap.capability_unavailable", map[string]any{"capability": "gemini", "reason": err.Error()})
	} else {
		pipeline.Embedder = client
		pipeline.Generator = client
		capabilities["embedding"] = true
		capabilities["generator"] = true
	}

	app.Pipeline = pipeline
	app.Scorer = quickscore.NewScorer(cfg.ScorerEndpointURL, cfg.ScorerAPIKey, cfg.CapabilityTimeout)
	return capabilities
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.SubmissionsRepo = &submissions.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.SubmissionsRepo = submissions.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.SubmissionsService = &submissions.Service{
		Repo:        app.SubmissionsRepo,
		Store:       app.Store,
		Scorer:      app.Scorer,
		ExtractText: extractTextFn(app.Pipeline),
	}
	app.ReviewsService = &reviews.Service{
		Store:    app.Store,
		Pipeline: app.Pipeline,
	}

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.SubmissionsHandler = submissions.NewHandler(app.SubmissionsService)
	app.ReviewsHandler = reviews.NewHandler(app.ReviewsService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}

// extractTextFn converts a stored file into plain text for the quick-score
// path, reusing the pipeline's OCR capability.
func extractTextFn(pipeline *analysis.Pipeline) func(ctx context.Context, path string) (string, error) {
	return func(ctx context.Context, path string) (string, error) {
		doc, err := extract.Extract(ctx, path, pipeline.OCR)
		if err != nil {
			return "", err
		}
		return extract.Clean(doc.RawText), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
