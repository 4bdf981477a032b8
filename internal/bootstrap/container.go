package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-showroom-be/internal/config"
	"ai-showroom-be/internal/controller"
	"ai-showroom-be/internal/pkg/logger"
	"ai-showroom-be/internal/pkg/mailer"
	"ai-showroom-be/internal/repository/memory"
	"ai-showroom-be/internal/repository/unitofwork"
	"ai-showroom-be/internal/service"
	"ai-showroom-be/internal/websocket"
	"ai-showroom-be/pkg/catalog"
	"ai-showroom-be/pkg/crm/sheets"
	"ai-showroom-be/pkg/funnel/oracle"
	"ai-showroom-be/pkg/llm/factory"
	"ai-showroom-be/pkg/pricing"

	pktNats "ai-showroom-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	TelegramController *controller.TelegramController
	WhatsAppController *controller.WhatsAppController
	AdminController    *controller.AdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/activity.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Funnel Infrastructure
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HFApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	extractor := oracle.NewExtractor(
		llmProvider,
		time.Duration(cfg.Funnel.OracleTimeoutSeconds)*time.Second,
		nil,
	)

	sessionStore := memory.NewSessionStore(time.Duration(cfg.Funnel.SessionTTLMinutes) * time.Minute)

	catalogProvider := catalog.NewCachedProvider(
		catalog.NewGormProvider(uowFactory),
		rdb,
		time.Minute,
	)

	pricingService := pricing.NewService(uowFactory)

	// CRM export is optional: without a service account the worker still
	// runs, it just skips the sheet push.
	var crmWriter sheets.LeadAppender
	if cfg.CRM.ServiceAccountFile != "" {
		writer, err := sheets.NewWriter(context.Background(), cfg.CRM.ServiceAccountFile, sysLogger)
		if err != nil {
			log.Printf("[WARN] CRM sheets disabled: %v", err)
		} else {
			crmWriter = writer
		}
	}

	// 4. Services
	leadService := service.NewLeadService(uowFactory, pubSub, cfg.CRM.ExportTopic, natsPub, sysLogger)

	funnelService := service.NewFunnelService(
		uowFactory,
		sessionStore,
		catalogProvider,
		extractor,
		pricingService,
		leadService,
		wsHub,
		sysLogger,
		service.FunnelOptions{
			PageSize:       cfg.Funnel.PageSize,
			ApplyThreshold: cfg.Funnel.ApplyThreshold,
			AskThreshold:   cfg.Funnel.AskThreshold,
		},
	)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.CRM.ExportTopic,
		uowFactory,
		crmWriter,
		emailService,
	)

	adminService := service.NewAdminService(funnelService, sessionStore, uowFactory, sysLogger)

	if natsSub != nil {
		notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
		if err := notifService.Start(); err != nil {
			log.Printf("[WARN] Dashboard relay not started: %v", err)
		}
	}

	// 5. Controllers
	return &Container{
		TelegramController: controller.NewTelegramController(funnelService, sysLogger),
		WhatsAppController: controller.NewWhatsAppController(funnelService, sysLogger),
		AdminController:    controller.NewAdminController(adminService),

		ConsumerService: consumerService,

		WebSocketHub: wsHub,
	}
}
