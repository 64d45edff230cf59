package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"hr-assistant/internal/ai"
	appsvc "hr-assistant/internal/app"
	"hr-assistant/internal/bootstrap"
	"hr-assistant/internal/cache"
	"hr-assistant/internal/platform/rabbitmq"
	"hr-assistant/internal/repository"
	"hr-assistant/internal/retrieval"
	"hr-assistant/internal/transport/http/handler"
	"hr-assistant/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(app.Config.App.CORSAllowOrigins))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	var publisher appsvc.ArchivePublisher
	if app.MQConn != nil {
		publisher = rabbitmq.NewMessagePublisher(app.MQConn, app.Config.RabbitMQ.ArchiveQueue)
	}
	var historyCache appsvc.HistoryCache
	if app.Redis != nil {
		historyCache = cache.NewHistoryCache(
			app.Redis,
			time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second,
			time.Duration(app.Config.Redis.HistoryDirtyTTLSeconds)*time.Second,
		)
	}
	var archiveReader appsvc.ArchivedHistoryReader
	if app.MySQL != nil {
		archiveReader = repository.NewMessageRepository(app.MySQL)
	}

	dispatcher := retrieval.NewDispatcher(app.Employees, app.Leaves, app.Corpus)
	chatService := appsvc.NewChatService(
		app.Sessions,
		dispatcher,
		ai.NewOpenAICompatibleClient(),
		publisher,
		historyCache,
		archiveReader,
		ai.ChatConfig{
			BaseURL:     app.Config.LLM.BaseURL,
			APIKey:      app.Config.LLM.APIKey,
			Model:       app.Config.LLM.Model,
			MaxTokens:   app.Config.LLM.MaxTokens,
			Temperature: app.Config.LLM.Temperature,
		},
		app.Config.LLM.MaxContextTurns,
		app.Config.LLM.StrictContext,
		app.Logger,
	)
	leaveService := appsvc.NewLeaveService(app.Leaves, app.Logger)
	adminService := appsvc.NewAdminService(
		app.Config.Auth.AdminKeyHash,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
		app.Reload,
	)

	chatHandler := handler.NewChatHandler(chatService)
	employeeHandler := handler.NewEmployeeHandler(app.Employees, app.Config.App.MaskContacts)
	leaveHandler := handler.NewLeaveHandler(app.Leaves, leaveService)
	statusHandler := handler.NewStatusHandler(app)
	adminHandler := handler.NewAdminHandler(adminService, chatService)

	api := router.Group("/api")
	api.Use(middleware.APIKey(app.Config.Auth.ServiceAPIKey))

	chatGroup := api.Group("/chat")
	chatGroup.POST("/start", chatHandler.Start)
	chatGroup.POST("/message", chatHandler.SendMessage)
	chatGroup.GET("/history", chatHandler.GetHistory)
	chatGroup.POST("/history/clear", chatHandler.ClearHistory)

	api.GET("/employees", employeeHandler.List)
	api.GET("/employees/search", employeeHandler.Search)

	leaveGroup := api.Group("/annual-leave")
	leaveGroup.GET("", leaveHandler.List)
	leaveGroup.GET("/search", leaveHandler.Search)
	leaveGroup.GET("/employee/:name", leaveHandler.ByEmployee)
	leaveGroup.POST("/use", leaveHandler.Use)
	leaveGroup.POST("/cancel", leaveHandler.Cancel)

	api.GET("/database/status", statusHandler.DatabaseStatus)

	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", adminHandler.Login)
	adminGroup.GET("/sessions", middleware.AuthJWT(app.Config.Auth.JWTSecret), adminHandler.ListSessions)
	adminGroup.POST("/reload", middleware.AuthJWT(app.Config.Auth.JWTSecret), adminHandler.Reload)

	return router
}
