package service

import (
	"context"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/promojour/promojour/internal/auth"
	"github.com/promojour/promojour/internal/billing"
	"github.com/promojour/promojour/internal/distribution"
	"github.com/promojour/promojour/internal/email"
	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/internal/handlers"
	"github.com/promojour/promojour/internal/jobs"
	"github.com/promojour/promojour/internal/merchant"
	"github.com/promojour/promojour/internal/promocard"
	"github.com/promojour/promojour/storage"
)

type Service struct {
	storage *storage.Storage
	config  *Config

	distributeHandler  *handlers.DistributeHandler
	campaignsHandler   *handlers.CampaignsHandler
	promotionsHandler  *handlers.PromotionsHandler
	storesHandler      *handlers.StoresHandler
	connectionsHandler *handlers.ConnectionsHandler
	historyHandler     *handlers.HistoryHandler
	publishHandler     *handlers.PublishHandler
	promoCardHandler   *handlers.PromoCardHandler
	billingHandler     *handlers.BillingHandler

	distributionRunner *jobs.DistributionRunner
	campaignCloser     *jobs.CampaignCloser
	digestSender       *jobs.DigestSender
}

func New(st *storage.Storage, config *Config) *Service {
	graphClient := graph.NewClient()
	if config.Graph.BaseURL != "" {
		graphClient = graph.NewClientWithBaseURLs(config.Graph.BaseURL, config.Graph.UploadURL)
	}

	merchantClient := merchant.NewClient(st.Queries)
	distributor := distribution.NewDistributor(st, graphClient)
	emailService := email.NewService()
	billingService := billing.NewService()
	cardGenerator := promocard.NewGenerator()

	return &Service{
		storage:            st,
		config:             config,
		distributeHandler:  handlers.NewDistributeHandler(distributor),
		campaignsHandler:   handlers.NewCampaignsHandler(st.Queries),
		promotionsHandler:  handlers.NewPromotionsHandler(st.Queries),
		storesHandler:      handlers.NewStoresHandler(st.Queries),
		connectionsHandler: handlers.NewConnectionsHandler(st.Queries, merchantClient),
		historyHandler:     handlers.NewHistoryHandler(st.Queries),
		publishHandler:     handlers.NewPublishHandler(st.Queries, graphClient, merchantClient),
		promoCardHandler:   handlers.NewPromoCardHandler(st.Queries, cardGenerator, config.BaseURL),
		billingHandler:     handlers.NewBillingHandler(st.Queries, billingService),
		distributionRunner: jobs.NewDistributionRunner(distributor),
		campaignCloser:     jobs.NewCampaignCloser(st),
		digestSender:       jobs.NewDigestSender(st, emailService),
	}
}

// StartJobs launches the background jobs. Call StopJobs on shutdown.
func (s *Service) StartJobs(ctx context.Context) {
	s.distributionRunner.Start(ctx)
	s.campaignCloser.Start(ctx)
	s.digestSender.Start(ctx)
}

func (s *Service) StopJobs() {
	s.distributionRunner.Stop()
	s.campaignCloser.Stop()
	s.digestSender.Stop()
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Configure the default Clerk backend. Tests don't need the key since
	// they never call Clerk APIs.
	clerk.SetKey(s.config.Clerk.SecretKey)

	// Operational endpoints, no auth
	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Scheduler trigger, service-role token only
	e.POST("/api/distribute", s.distributeHandler.HandleDistribute,
		auth.ServiceTokenAuth(s.config.ServiceRoleKey))

	// Dashboard API, Clerk-authenticated and org-scoped
	api := e.Group("/api")
	api.Use(auth.ClerkAuthMiddleware(s.storage))
	api.Use(auth.RequireAuth())

	api.GET("/campaigns", s.campaignsHandler.HandleList)
	api.POST("/campaigns", s.campaignsHandler.HandleCreate)
	api.GET("/campaigns/:id", s.campaignsHandler.HandleGet)
	api.PUT("/campaigns/:id", s.campaignsHandler.HandleUpdate)
	api.DELETE("/campaigns/:id", s.campaignsHandler.HandleDelete)

	api.GET("/promotions", s.promotionsHandler.HandleList)
	api.POST("/promotions", s.promotionsHandler.HandleCreate)
	api.GET("/promotions/:id", s.promotionsHandler.HandleGet)
	api.PUT("/promotions/:id", s.promotionsHandler.HandleUpdate)
	api.DELETE("/promotions/:id", s.promotionsHandler.HandleDelete)
	api.GET("/promotions/:id/history", s.promotionsHandler.HandleHistory)
	api.GET("/promotions/:id/card.png", s.promoCardHandler.HandleCard)
	api.GET("/promotions/:id/flyer.pdf", s.promoCardHandler.HandleFlyer)

	api.GET("/stores", s.storesHandler.HandleList)
	api.POST("/stores", s.storesHandler.HandleCreate)
	api.GET("/stores/:id", s.storesHandler.HandleGet)
	api.PUT("/stores/:id", s.storesHandler.HandleUpdate)
	api.DELETE("/stores/:id", s.storesHandler.HandleDelete)
	api.GET("/stores/:id/settings", s.storesHandler.HandleGetSettings)
	api.PUT("/stores/:id/settings", s.storesHandler.HandleUpdateSettings)
	api.GET("/stores/:id/history", s.storesHandler.HandleHistory)

	api.GET("/stores/:id/connections", s.connectionsHandler.HandleList)
	api.POST("/stores/:id/connections", s.connectionsHandler.HandleConnect)
	api.DELETE("/stores/:id/connections/:platform", s.connectionsHandler.HandleDisconnect)
	api.GET("/stores/:id/connections/google/verify", s.connectionsHandler.HandleVerifyGoogle)

	api.GET("/history", s.historyHandler.HandleList)
	api.POST("/publish", s.publishHandler.HandlePublish)
	api.POST("/billing/checkout", s.billingHandler.HandleCreateCheckoutSession)
}

func (s *Service) handleHealth(c echo.Context) error {
	if err := s.storage.DB().PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
