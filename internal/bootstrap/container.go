package bootstrap

import (
	"log"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/config"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/controller"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/logger"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/pkg/mailer"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/memory"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/repository/unitofwork"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/service"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/analyzer"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/llm/factory"
	pktNats "github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/nats"
)

const auditTopic = "document.audit"

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	AdminController    controller.IAdminController

	// Exposed for main.go
	AuthService     service.IAuthService
	ConsumerService service.IConsumerService
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

	// NATS is auxiliary; the app serves without it.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 3. Domain Collaborators
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	docAnalyzer := analyzer.NewCommandAnalyzer(
		cfg.Analyzer.Command,
		cfg.Analyzer.AnalyzerArgs(),
		time.Duration(cfg.Analyzer.TimeoutSeconds)*time.Second,
	)

	textCache := memory.NewDocumentTextCache()

	if err := os.MkdirAll(cfg.App.UploadDir, 0o755); err != nil {
		log.Fatalf("[FATAL] Failed to create upload dir %s: %v", cfg.App.UploadDir, err)
	}

	// 4. Services
	publisherService := service.NewPublisherService(auditTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, auditTopic, sysLogger)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	documentService := service.NewDocumentService(uowFactory, docAnalyzer, textCache, publisherService, natsPub)
	chatService := service.NewChatService(uowFactory, llmProvider, textCache, natsPub)
	adminService := service.NewAdminService(uowFactory, textCache, natsPub)

	// 5. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		DocumentController: controller.NewDocumentController(documentService, cfg.App.UploadDir),
		ChatController:     controller.NewChatController(chatService),
		AdminController:    controller.NewAdminController(adminService),

		AuthService:     authService,
		ConsumerService: consumerService,
	}
}
