package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tprm-backend/internal/analysis"
	"tprm-backend/internal/documents"
	"tprm-backend/internal/llm"
	"tprm-backend/internal/llm/openai"
	"tprm-backend/internal/shared/config"
	"tprm-backend/internal/shared/metrics"
	"tprm-backend/internal/shared/server/middleware"
	"tprm-backend/internal/shared/server/respond"
	"tprm-backend/internal/shared/storage/db"
	"tprm-backend/internal/shared/storage/object"
	localstore "tprm-backend/internal/shared/storage/object/local"
	s3store "tprm-backend/internal/shared/storage/object/s3"
	"tprm-backend/internal/vendors"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	store := newObjectStore(cfg)
	sqlDB := connectDB(cfg)

	var vendorRepo vendors.Repo
	var docRepo documents.Repo
	var assessmentRepo analysis.AssessmentRepo
	if sqlDB != nil {
		vendorRepo = &vendors.PGRepo{DB: sqlDB}
		docRepo = &documents.PGRepo{DB: sqlDB}
		assessmentRepo = &analysis.PGAssessmentRepo{DB: sqlDB}
	} else {
		vendorRepo = vendors.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
		assessmentRepo = analysis.NewMemoryAssessmentRepo()
	}

	vendorSvc := &vendors.Service{Repo: vendorRepo}
	vendorHandler := vendors.NewHandler(vendorSvc)

	docSvc := &documents.Service{Store: store, Repo: docRepo}
	docHandler := documents.NewHandler(docSvc, cfg.MaxUploadBytes)

	client := newLLMClient(cfg)
	bounds := analysis.DefaultBounds()
	bounds.MaxInputChars = cfg.MaxDocumentChars
	analyzer := analysis.NewAnalyzer(client, bounds)
	synthesizer := analysis.NewSynthesizer(client, analyzer, cfg.MaxDocsPerAnalysis, cfg.ExcerptChars)
	analysisSvc := &analysis.Service{
		Docs:        docRepo,
		Vendors:     vendorRepo,
		Assessments: assessmentRepo,
		Store:       store,
		Analyzer:    analyzer,
		Synthesizer: synthesizer,
	}
	analysisHandler := analysis.NewHandler(analysisSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	vendorHandler.RegisterRoutes(api)
	docHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)

	return r
}

func connectDB(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	ctx := context.Background()
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		sqlDB.Close()
		return nil
	}
	return sqlDB
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

func newLLMClient(cfg config.Config) llm.Client {
	if cfg.LLMProvider != "openai" {
		log.Printf("unknown LLM provider %q, analyses will degrade", cfg.LLMProvider)
		return llm.Unconfigured{}
	}
	if cfg.LLMAPIKey == "" {
		log.Printf("no LLM credentials configured, analyses will degrade")
		return llm.Unconfigured{}
	}
	client, err := openai.NewClient(cfg.LLMAPIKey, cfg.LLMModel)
	if err != nil {
		log.Printf("failed to init LLM client, analyses will degrade: %v", err)
		return llm.Unconfigured{}
	}
	return client
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
