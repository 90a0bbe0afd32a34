package routes

import (
	"net/http"
	"slices"
	"time"

	"transporte_xpto/internal/adapter/http/handlers"
	"transporte_xpto/internal/adapter/http/middleware"
	"transporte_xpto/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	Auth           *middleware.Authenticator
	Subscriptions  handlers.Subscriptions

	ServiceRequests usecase.IServiceRequestUseCase
	Allocation      usecase.IAllocationUseCase
	Contracts       usecase.IContractLedgerUseCase
	Prefacturas     usecase.IPrefacturaUseCase
}

// NewRouter builds the gin engine with every public and authenticated route.
func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	setMiddlewares(router, logger, deps.AllowedOrigins)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	ws := handlers.NewNotificationsHandler(deps.Subscriptions, deps.Auth, deps.AllowedOrigins, logger)
	v1.GET("/ws", ws.ServeWs)

	authed := v1.Group("")
	authed.Use(deps.Auth.Authenticate())
	addServiceRequestRoutes(authed, handlers.NewServiceRequestHandler(deps.ServiceRequests))
	addAllocationRoutes(authed, handlers.NewAllocationHandler(deps.Allocation))
	addContractRoutes(authed, handlers.NewContractHandler(deps.Contracts))
	addPrefacturaRoutes(authed, handlers.NewPrefacturaHandler(deps.Prefacturas))

	return router
}

// Run serves router on addr until the server fails.
func Run(addr string, router *gin.Engine) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger, allowedOrigins []string) {
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(cors.New(corsConfig(allowedOrigins)))
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	cfg.AddAllowHeaders("Authorization")
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}
