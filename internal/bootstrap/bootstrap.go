package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/registrar/internal/app/controllers"
	appMigrations "github.com/yigit/registrar/internal/app/migrations"
	appRepos "github.com/yigit/registrar/internal/app/repositories"
	appRoutes "github.com/yigit/registrar/internal/app/routes"
	appServices "github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/db"
	appMiddleware "github.com/yigit/registrar/internal/middleware"
	pkgAuth "github.com/yigit/registrar/internal/pkg/auth"
	"github.com/yigit/registrar/internal/pkg/filestorage"
	"github.com/yigit/registrar/internal/pkg/logger"
	"github.com/yigit/registrar/internal/pkg/transcript"
	"github.com/yigit/registrar/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	StudentService       *appServices.StudentService
	RegistrationService  *appServices.RegistrationService
	GradeService         *appServices.GradeService
	TranscriptService    *appServices.TranscriptService
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	DepartmentController *appControllers.DepartmentController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Assets               *filestorage.LocalStorage
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, applies migrations,
// loads the reference catalog and purges expired token revocations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Database.Seed {
		transactor := db.NewTransactor(dbPool, cfg.TxTimeout())
		if err := seed.CreateDefaultData(ctx, transactor, seed.DefaultCatalog(), lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	purged, err := appRepos.NewTokenRepository(dbPool).PurgeExpired(ctx, time.Now())
	if err != nil {
		lgr.Warn().Err(err).Msg("Failed to purge expired token revocations")
	} else if purged > 0 {
		lgr.Info().Int64("purged", purged).Msg("Expired token revocations removed")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.Assets, err = filestorage.NewLocalStorage(cfg.Server.AssetsPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize asset storage")
		return nil, fmt.Errorf("failed to initialize asset storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	hasher := pkgAuth.NewPasswordHasher(cfg.Security.BcryptCost)
	transactor := db.NewTransactor(dbPool, cfg.TxTimeout())
	terms := appServices.FixedTerm(cfg.Academic.CurrentTerm)

	repos := deps.Repos
	deps.AuthService = appServices.NewAuthService(
		appServices.NewCredentialStore(repos.StudentRepository, hasher),
		repos.StudentRepository,
		repos.DepartmentRepository,
		repos.TokenRepository,
		deps.JWTService,
		lgr.With().Str("component", "auth").Logger(),
	)
	deps.StudentService = appServices.NewStudentService(
		repos.StudentRepository,
		repos.DepartmentRepository,
		repos.CatalogRepository,
		terms,
		lgr.With().Str("component", "student").Logger(),
	)
	deps.RegistrationService = appServices.NewRegistrationService(
		repos.StudentRepository,
		repos.CatalogRepository,
		appServices.NewRegistrationUnit(transactor, repos.RegistrationRepository),
		repos.RegistrationRepository,
		terms,
		lgr.With().Str("component", "registration").Logger(),
	)
	deps.GradeService = appServices.NewGradeService(
		repos.GradeRepository,
		lgr.With().Str("component", "grades").Logger(),
	)

	renderer := transcript.NewPDFRenderer(deps.Assets, transcript.PDFConfig{
		SignatureAsset: cfg.Transcript.SignatureImage,
	}, lgr.With().Str("component", "pdf").Logger())
	deps.TranscriptService = appServices.NewTranscriptService(
		repos.StudentRepository,
		repos.GradeRepository,
		renderer,
		appServices.TranscriptSettings{
			Institution:   cfg.Academic.Institution,
			RegistrarName: cfg.Academic.RegistrarName,
			Disclaimer:    cfg.Transcript.Disclaimer,
			TermOrder:     cfg.Academic.TermOrder,
		},
		lgr.With().Str("component", "transcript").Logger(),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService, cfg.Cookie.Name)

	deps.AuthController = appControllers.NewAuthController(
		deps.AuthService,
		appControllers.CookieConfig{
			Name:     cfg.Cookie.Name,
			Domain:   cfg.Cookie.Domain,
			Secure:   cfg.Cookie.Secure,
			SameSite: cfg.CookieSameSite(),
		},
		lgr,
	)
	deps.StudentController = appControllers.NewStudentController(
		deps.StudentService,
		deps.RegistrationService,
		deps.GradeService,
		deps.TranscriptService,
		lgr,
	)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.StudentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	// Credentialed requests need explicit origins; "*" is rejected by browsers.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.DepartmentController,
		deps.AuthMiddleware,
	)

	return router
}
