package main

import (
	"context"
	"log"
	"net"

	_ "transporte_xpto/docs"
	"transporte_xpto/internal/adapter/http/middleware"
	"transporte_xpto/internal/adapter/http/routes"
	"transporte_xpto/internal/adapter/persistence/repository"
	"transporte_xpto/internal/config"
	"transporte_xpto/internal/infrastructure/database"
	"transporte_xpto/internal/infrastructure/logger"
	"transporte_xpto/internal/infrastructure/notifications"
	"transporte_xpto/internal/infrastructure/payments"
	"transporte_xpto/internal/infrastructure/storage"
	"transporte_xpto/internal/usecase"
	"transporte_xpto/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Transport Service Requests API
// @version         1.0
// @description     Service requests, vehicle allocation, contract budgets and pre-invoices backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router, cleanup, err := buildRouter(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("failed to wire application", zap.Error(err))
	}
	defer cleanup()

	addr := net.JoinHostPort("", cfg.Server.Port)
	zl.Info("starting http server", zap.String("addr", addr))
	if err := routes.Run(addr, router); err != nil {
		zl.Fatal("failed to startup the application", zap.Error(err))
	}
}

// buildRouter wires storage, gateways and use cases. Optional collaborators
// (expense ledger, document sink, checkout gateway) are left out when they
// are not configured.
func buildRouter(ctx context.Context, cfg config.Config, zl *zap.Logger) (*gin.Engine, func(), error) {
	cleanup := func() {}

	awsCfg, err := database.NewAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, cleanup, err
	}
	ddb := database.NewDynamoDBClient(awsCfg)

	requestRepo := repository.NewServiceRequestDynamoRepository(ddb, cfg.Tables)
	contractRepo := repository.NewContractDynamoRepository(ddb, cfg.Tables)
	deliveryRepo := repository.NewPrefacturaDeliveryDynamoRepository(ddb, cfg.Tables)
	directory := repository.NewDirectoryDynamoRepository(ddb, cfg.Tables)
	locationRepo := repository.NewLocationDynamoRepository(ddb, cfg.Tables)
	sequenceRepo := repository.NewSequenceDynamoRepository(ddb, cfg.Tables)

	var expenses interfaces.IExpenseLedger
	if cfg.Postgres.URL != "" {
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = pool.Close
		expenses = repository.NewExpensePostgresRepository(pool)
	} else {
		zl.Warn("expense ledger not configured, settlements will report missing expenses")
	}

	var sink interfaces.IDocumentSink
	if s3Sink, err := storage.NewS3DocumentSink(database.NewS3Client(awsCfg, cfg.AWS), cfg.S3.Bucket, cfg.S3.Prefix, zl); err != nil {
		zl.Warn("pre-invoice documents will not be published", zap.Error(err))
	} else {
		sink = s3Sink
	}

	var checkout interfaces.ICheckoutGateway
	if gateway, err := payments.NewMercadoPagoCheckoutGateway(cfg.Payments.AccessToken, cfg.Payments.Mock, zl); err != nil {
		zl.Warn("mercado pago gateway not configured", zap.Error(err))
	} else {
		checkout = gateway
	}

	hub := notifications.NewHub(zl)

	serviceRequests := usecase.NewServiceRequestUseCase(usecase.ServiceRequestDeps{
		Requests:       requestRepo,
		Sections:       requestRepo,
		Contracts:      contractRepo,
		Fleet:          directory,
		Clients:        directory,
		Locations:      locationRepo,
		Sequences:      sequenceRepo,
		Expenses:       expenses,
		Notifier:       hub,
		Checkout:       checkout,
		SequencePrefix: cfg.Sequence.Prefix,
	}, zl)
	allocation := usecase.NewAllocationUseCase(requestRepo, directory, zl)
	contracts := usecase.NewContractLedgerUseCase(contractRepo, directory, zl)
	prefacturas := usecase.NewPrefacturaUseCase(usecase.PrefacturaDeps{
		Requests:   requestRepo,
		Deliveries: deliveryRepo,
		Expenses:   expenses,
		Sink:       sink,
		Notifier:   hub,
	}, zl)

	router := routes.NewRouter(routes.Dependencies{
		Logger:          zl,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		Auth:            middleware.NewAuthenticator(cfg.JWT.Secret),
		Subscriptions:   hub,
		ServiceRequests: serviceRequests,
		Allocation:      allocation,
		Contracts:       contracts,
		Prefacturas:     prefacturas,
	})
	return router, cleanup, nil
}
