package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/keygrant/keygrant-api/internal/client/custody"
	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/helpers"
	"github.com/keygrant/keygrant-api/internal/logger"
	"github.com/keygrant/keygrant-api/internal/services"
)

// Application holds all dependencies for the Lambda handler
type Application struct {
	scheduler *services.RenewalScheduler
}

// HandleRequest is the actual Lambda handler function.
// Each scheduled invocation sweeps the auto-renew window once.
func (app *Application) HandleRequest(ctx context.Context) error {
	logger.Info("Starting renewal sweep")

	results, err := app.scheduler.ProcessDueRenewals(ctx)
	if err != nil {
		logger.Error("Error processing due renewals", zap.Error(err))
		return fmt.Errorf("HandleRequest: error from ProcessDueRenewals: %w", err)
	}

	logger.Info("Renewal sweep results",
		zap.Int("due", results.Due),
		zap.Int("started", results.Started),
		zap.Int("skipped", results.Skipped),
		zap.Int("failed", results.Failed),
	)
	return nil
}

func main() {
	// Load .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v. Proceeding with environment variables.", err)
	}

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !helpers.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	// Initialize logger (AFTER stage validation)
	logger.InitLogger(stage)
	logger.Info("Lambda Cold Start: Initializing renewal processor", zap.String("stage", stage))
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL environment variable is required and not set")
	}

	// --- Database Pool Initialization ---
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("Unable to parse database DSN", zap.Error(err))
	}
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 15
	connPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}
	// Do NOT defer connPool.Close() here; the pool persists for warm starts.

	dbQueries := db.New(connPool)

	// --- Custody Client Initialization ---
	custodyAPIKey := os.Getenv("CUSTODY_API_KEY")
	if custodyAPIKey == "" {
		logger.Fatal("CUSTODY_API_KEY environment variable is required and not set")
	}
	custodyBaseURL := os.Getenv("CUSTODY_BASE_URL")
	if custodyBaseURL == "" {
		logger.Fatal("CUSTODY_BASE_URL environment variable is required and not set")
	}
	custodyClient := custody.NewClient(custody.Config{
		BaseURL: custodyBaseURL,
		APIKey:  custodyAPIKey,
	})

	catalog := services.NewPermissionCatalog()
	challengeService := services.NewChallengeService(dbQueries, catalog, custodyClient)
	scheduler := services.NewRenewalScheduler(dbQueries, challengeService, services.DefaultRenewalSchedulerConfig())

	app := &Application{scheduler: scheduler}

	// lambda.Start blocks and handles invocations using the HandleRequest method
	lambda.Start(app.HandleRequest)
}
