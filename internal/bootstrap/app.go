package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/llm"
	"resume-screener/internal/llm/cohere"
	"resume-screener/internal/llm/openai"
	"resume-screener/internal/resumes"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shares"
	"resume-screener/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo   users.Repo
	ResumesRepo resumes.Repo
	SharesRepo  shares.Repo

	UsersService  *users.Service
	ResumeService *resumes.Service
	ShareService  *shares.Service

	UsersHandler  *users.Handler
	ResumeHandler *resumes.Handler
	ShareHandler  *shares.Handler
}

// Build prepares shared dependencies and wires the router.
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
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		UsersHandler:  app.UsersHandler,
		ResumeHandler: app.ResumeHandler,
		ShareHandler:  app.ShareHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildServices(app *App) error {
	var userRepo users.Repo
	var resumeRepo resumes.Repo
	var shareRepo shares.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		shareRepo = &shares.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		shareRepo = shares.NewMemoryRepo()
	}

	aiClient, err := buildAIClient(app.Config)
	if err != nil {
		return err
	}

	userSvc := users.NewService(userRepo)
	resumeSvc := &resumes.Service{Repo: resumeRepo, AI: aiClient}
	shareSvc := &shares.Service{
		Repo:    shareRepo,
		Resumes: resumeRepo,
		BaseURL: app.Config.ShareBaseURL,
	}

	app.UsersRepo = userRepo
	app.ResumesRepo = resumeRepo
	app.SharesRepo = shareRepo
	app.UsersService = userSvc
	app.ResumeService = resumeSvc
	app.ShareService = shareSvc
	app.UsersHandler = users.NewHandler(userSvc)
	app.ResumeHandler = resumes.NewHandler(resumeSvc)
	app.ShareHandler = shares.NewHandler(shareSvc)

	return nil
}

func buildAIClient(cfg config.Config) (llm.Client, error) {
	switch cfg.AIProvider {
	case "openai":
		return openai.NewClient(cfg.AIAPIKey, cfg.AIModel)
	case "none":
		return llm.PlaceholderClient{}, nil
	default:
		if strings.TrimSpace(cfg.AIAPIKey) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: AI_API_KEY empty; AI calls will fail until configured")
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("AI_API_KEY is required")
		}
		return cohere.NewClient(cfg.AIAPIKey, cfg.AIModel)
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
