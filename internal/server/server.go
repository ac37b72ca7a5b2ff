package server

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/keygrant/keygrant-api/internal/client/custody"
	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/handlers"
	"github.com/keygrant/keygrant-api/internal/logger"
	"github.com/keygrant/keygrant-api/internal/services"
)

// Handler Definitions
var (
	sessionKeyHandler *handlers.SessionKeyHandler
	executionHandler  *handlers.ExecutionHandler
	webhookHandler    *handlers.WebhookHandler
	custodyClient     *custody.Client
	renewalScheduler  *services.RenewalScheduler

	// Database
	dbQueries *db.Queries
)

func InitializeHandlers() {
	// Get database connection string from environment
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	// Create a connection pool using pgxpool
	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		logger.Fatal("Unable to parse database connection string", zap.Error(err))
	}

	// Configure the connection pool
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	// Create the connection pool
	connPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}

	// Create queries instance with the connection pool
	dbQueries = db.New(connPool)

	custodyAPIKey := os.Getenv("CUSTODY_API_KEY")
	if custodyAPIKey == "" {
		logger.Fatal("CUSTODY_API_KEY environment variable is required")
	}
	custodyBaseURL := os.Getenv("CUSTODY_BASE_URL")
	if custodyBaseURL == "" {
		logger.Fatal("CUSTODY_BASE_URL environment variable is required")
	}

	// Initialize the custody client
	custodyClient = custody.NewClient(custody.Config{
		BaseURL: custodyBaseURL,
		APIKey:  custodyAPIKey,
	})

	catalog := services.NewPermissionCatalog()
	challengeService := services.NewChallengeService(dbQueries, catalog, custodyClient)
	enforcementService := services.NewEnforcementService(dbQueries)
	sessionKeyService := services.NewSessionKeyService(dbQueries)

	commonServices := handlers.NewCommonServices(
		dbQueries,
		challengeService,
		enforcementService,
		sessionKeyService,
	)

	// API Handler initialization
	sessionKeyHandler = handlers.NewSessionKeyHandler(commonServices)
	executionHandler = handlers.NewExecutionHandler(commonServices)
	webhookHandler = handlers.NewWebhookHandler(commonServices)

	renewalScheduler = services.NewRenewalScheduler(dbQueries, challengeService, services.DefaultRenewalSchedulerConfig())
}

func InitializeRoutes(router *gin.Engine) {
	// Configure and apply CORS middleware
	router.Use(configureCORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Start the in-process renewal scheduler alongside the API
	renewalScheduler.Start()

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Session keys
		sessionKeys := v1.Group("/session-keys")
		{
			sessionKeys.POST("", sessionKeyHandler.CreateSessionKey)
			sessionKeys.GET("", sessionKeyHandler.ListSessionKeys)
			sessionKeys.GET("/:session_key_id", sessionKeyHandler.GetSessionKey)
			sessionKeys.POST("/:session_key_id/renew", sessionKeyHandler.RenewSessionKey)
			sessionKeys.POST("/:session_key_id/revoke", sessionKeyHandler.RevokeSessionKey)
			sessionKeys.GET("/:session_key_id/executions", sessionKeyHandler.ListExecutionRecords)

			// Enforcement
			sessionKeys.POST("/:session_key_id/authorize", executionHandler.AuthorizeAction)
			sessionKeys.POST("/:session_key_id/reverse", executionHandler.ReverseAction)
		}

		// Custody provider callbacks
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/custody/challenge", webhookHandler.HandleChallengeResult)
		}
	}
}

// Shutdown stops background workers before the process exits
func Shutdown() {
	if renewalScheduler != nil {
		renewalScheduler.Stop()
	}
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default to localhost if not set
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		// Split and trim the origins
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	// Get allowed methods from environment variable
	methodsEnv := os.Getenv("CORS_ALLOWED_METHODS")
	if methodsEnv == "" {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	} else {
		methods := strings.Split(methodsEnv, ",")
		for i, method := range methods {
			methods[i] = strings.TrimSpace(method)
		}
		corsConfig.AllowMethods = methods
	}

	// Get allowed headers from environment variable
	headersEnv := os.Getenv("CORS_ALLOWED_HEADERS")
	if headersEnv == "" {
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"}
	} else {
		headers := strings.Split(headersEnv, ",")
		for i, header := range headers {
			headers[i] = strings.TrimSpace(header)
		}
		corsConfig.AllowHeaders = headers
	}

	// Set credentials allowed
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
