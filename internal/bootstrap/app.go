package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/swot-auditor/swot-backend/config"
	httpapi "github.com/swot-auditor/swot-backend/internal/api/http"
	"github.com/swot-auditor/swot-backend/internal/api/http/routes"
	"github.com/swot-auditor/swot-backend/internal/auth"
	authhttp "github.com/swot-auditor/swot-backend/internal/auth/http"
	authmw "github.com/swot-auditor/swot-backend/internal/auth/middleware"
	authrepo "github.com/swot-auditor/swot-backend/internal/auth/repository"
	authsvc "github.com/swot-auditor/swot-backend/internal/auth/service"
	"github.com/swot-auditor/swot-backend/internal/chat"
	chathttp "github.com/swot-auditor/swot-backend/internal/chat/http"
	"github.com/swot-auditor/swot-backend/internal/oracle"
	"github.com/swot-auditor/swot-backend/internal/platform/logger"
	"github.com/swot-auditor/swot-backend/internal/projects/events"
	projectshttp "github.com/swot-auditor/swot-backend/internal/projects/http"
	"github.com/swot-auditor/swot-backend/internal/projects/inflight"
	"github.com/swot-auditor/swot-backend/internal/projects/repository"
	"github.com/swot-auditor/swot-backend/internal/projects/service"
	"github.com/swot-auditor/swot-backend/internal/projects/workflow"
	"github.com/swot-auditor/swot-backend/internal/prompts"
	"github.com/swot-auditor/swot-backend/internal/retention"
)

const ServiceName = "swot-backend"

// App is the wired process shared by the api and worker commands.
type App struct {
	Engine    *workflow.Engine
	Retention *retention.Job
	Router    *gin.Engine

	pool      *pgxpool.Pool
	db        *sql.DB
	redis     *redis.Client
	firestore *firestore.Client
	log       *logger.Logger
}

// Build connects the configured backends. Missing optional backends fall
// back to in-process implementations, which config validation forbids in production.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{log: log}

	var (
		projectRepo repository.Repository = repository.NewMemoryRepository()
		userRepo    authsvc.UserStore     = authrepo.NewMemoryUserRepository()
		guard       inflight.Guard        = inflight.NewMemoryGuard(cfg.Workflow.InFlightTTL)
		publisher   events.Publisher      = events.Nop{}
		promptStore prompts.Store         = prompts.NewMemoryStore()
		aiOracle    oracle.Oracle         = oracle.Unavailable{}
		authn       gin.HandlerFunc       = auth.OptionalUser()
		dbPing      httpapi.Pinger
		redisPing   httpapi.Pinger
	)

	if cfg.Database.DSN != "" {
		pool, err := OpenDB(ctx, DBOptions{
			DSN:      cfg.Database.DSN,
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			return nil, err
		}
		a.pool, a.db = pool, SQLDB(pool)
		projectRepo = repository.NewProjectRepository(a.db)
		userRepo = authrepo.NewUserRepository(a.db)
		dbPing = pool
		log.Info("database connected")
	} else {
		log.Warn("DB_DSN not set, using in-memory repositories")
	}

	if cfg.Redis.Addr != "" {
		client, err := OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		guard = inflight.NewRedisGuard(client, cfg.Workflow.InFlightTTL)
		publisher = events.NewRedisPublisher(client)
		redisPing = httpapi.RedisPinger(client)
		log.Info("redis connected", "addr", cfg.Redis.Addr)
	} else {
		log.Warn("REDIS_ADDR not set, in-flight guard is process local")
	}

	if cfg.Firebase.CredentialsPath != "" {
		app, authClient, err := auth.InitializeFirebase(ctx, cfg.Firebase)
		if err != nil {
			a.Close()
			return nil, err
		}
		authn = authmw.FirebaseAuthMiddleware(authClient)

		fs, err := app.Firestore(ctx)
		if err != nil {
			log.Warn("firestore unavailable, prompts served from built-in defaults", "error", err)
		} else {
			a.firestore = fs
			promptStore = prompts.NewFirestoreStore(fs, log)
		}
	} else {
		log.Warn("FIREBASE_CREDENTIALS_PATH not set, trusting X-User-Id header")
	}

	if cfg.Gemini.APIKey != "" {
		g, err := oracle.NewGemini(ctx, oracle.GeminiConfig{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model}, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("gemini: %w", err)
		}
		aiOracle = oracle.NewLimited(g, cfg.Gemini.RateLimit, cfg.Gemini.Burst)
	} else {
		log.Warn("GEMINI_API_KEY not set, generation calls will fail")
	}

	a.Engine = workflow.New(workflow.Deps{
		Repo:    projectRepo,
		Oracle:  aiOracle,
		Prompts: promptStore,
		Guard:   guard,
		Events:  publisher,
		Signer:  prompts.NewSigner(cfg.Workflow.SignOperator, cfg.Workflow.SignTitle),
		Log:     log,
	}, workflow.Config{
		OracleTimeout:    cfg.Workflow.OracleTimeout,
		StrictExtraction: cfg.Workflow.StrictExtraction,
	})

	a.Retention = retention.NewJob(projectRepo, a.Engine, retention.Config{
		Spec:  cfg.Retention.Cron,
		Days:  cfg.Retention.Days,
		Batch: cfg.Retention.Batch,
	}, log)

	authService := authsvc.NewAuthService(userRepo, cfg.Admin.Emails, log)
	projectService := service.NewProjectService(projectRepo, a.Engine)
	chatService := chat.NewService(aiOracle, promptStore, log, cfg.Workflow.OracleTimeout)

	a.Router = BuildRouter(RouterDeps{
		ServiceName: ServiceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		DB:          dbPing,
		Redis:       redisPing,
		Log:         log,
		V1: routes.V1Deps{
			Authenticate: authn,
			AuthService:  authService,
			Users:        authhttp.New(authService, promptStore),
			Projects:     projectshttp.New(projectService),
			Chat:         chathttp.New(chatService),
		},
	})

	return a, nil
}

// Close releases every backend connection.
func (a *App) Close() {
	if a.firestore != nil {
		_ = a.firestore.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
