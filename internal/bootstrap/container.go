package bootstrap

import (
	"context"
	"log"
	"time"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/controller"
	"portfolio-terminal/internal/handler"
	"portfolio-terminal/internal/pkg/logger"
	"portfolio-terminal/internal/pkg/mailer"
	"portfolio-terminal/internal/repository/contract"
	"portfolio-terminal/internal/repository/memory"
	"portfolio-terminal/internal/repository/redisstore"
	"portfolio-terminal/internal/service"
	"portfolio-terminal/internal/websocket"
	"portfolio-terminal/pkg/chat/session"
	"portfolio-terminal/pkg/chat/state"
	"portfolio-terminal/pkg/events"
	"portfolio-terminal/pkg/llm/factory"
	"portfolio-terminal/pkg/usage"

	pktNats "portfolio-terminal/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	TerminalController controller.ITerminalController
	ChatController     controller.IChatController
	AdminController    controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ActivityService service.IActivityService

	// WebSockets
	ActivityHandler *handler.ActivityHandler
	WebSocketHub    *websocket.Hub

	// Held for shutdown.
	NatsPublisher *pktNats.Publisher

	// Shared app logger (request logging, server lifecycle).
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.SMTP.OwnerEmail,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS mirrors activity events for external consumers; the app runs fine
	// without it.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsEnabled {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// Session storage. Redis when configured, otherwise in-process cache.
	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessionRepo contract.SessionRepository
	if cfg.Session.Store == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to memory store", err)
			sessionRepo = memory.NewSessionRepository(sessionTTL)
		} else {
			sessionRepo = redisstore.NewSessionRepository(rdb, sessionTTL)
			log.Printf("[INFO] Using Session Store: REDIS (%s)", cfg.Session.RedisAddr)
		}
	} else {
		sessionRepo = memory.NewSessionRepository(sessionTTL)
		log.Printf("[INFO] Using Session Store: MEMORY (ttl %s)", sessionTTL)
	}

	sessionManager := session.NewManager(sessionRepo)
	stateManager := state.NewManager(log.Default())

	// LLM provider. A missing key is not fatal: the chat surface degrades to
	// its unavailable message while commands keep working.
	var modelName, baseURL, apiKey string
	switch cfg.Ai.LLMProvider {
	case "ollama":
		modelName, baseURL = cfg.Ai.OllamaModel, cfg.Ai.OllamaBaseURL
	case "huggingface":
		modelName, baseURL, apiKey = cfg.Ai.HFModel, cfg.Ai.HFBaseURL, cfg.Ai.HFApiKey
	default:
		modelName, apiKey = cfg.Ai.GeminiModel, cfg.Ai.GeminiAPIKey
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		modelName,
		baseURL,
		apiKey,
	)
	if err != nil {
		log.Printf("[WARN] LLM provider unavailable, chat disabled: %v", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, modelName)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/activity.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	// 3. Services
	usageCollector := usage.NewCollector()
	publisherService := service.NewPublisherService(events.ActivityTopic, pubSub)
	activityService := service.NewActivityService(
		pubSub,
		events.ActivityTopic,
		usageCollector,
		wsHub,
	)

	commandService := service.NewCommandService(
		sessionManager,
		stateManager,
		emailService,
		usageCollector,
		publisherService,
		natsPub,
	)
	chatService := service.NewChatService(
		cfg.Ai,
		sessionManager,
		stateManager,
		llmProvider,
		publisherService,
		natsPub,
	)
	adminService := service.NewAdminService(
		cfg.Admin,
		sysLogger,
		usageCollector,
		sessionManager,
	)

	// Handler
	activityHandler := handler.NewActivityHandler(wsHub, wsLogger, cfg.Admin)

	// 4. Controllers
	// Public fields so the server can register routes.
	return &Container{
		TerminalController: controller.NewTerminalController(commandService, cfg.App),
		ChatController:     controller.NewChatController(chatService, cfg.Ai),
		AdminController:    controller.NewAdminController(adminService, cfg.Admin),

		ActivityService: activityService,
		ActivityHandler: activityHandler,
		WebSocketHub:    wsHub,
		NatsPublisher:   natsPub,
		Logger:          sysLogger,
	}
}
