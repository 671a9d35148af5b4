package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "docfolio/internal/app"
	"docfolio/internal/bootstrap"
	"docfolio/internal/cache"
	"docfolio/internal/ingest"
	"docfolio/internal/platform/rabbitmq"
	"docfolio/internal/repository"
	"docfolio/internal/transport/http/handler"
	"docfolio/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	workspaceRepo := repository.NewWorkspaceRepository(app.MySQL)
	documentRepo := repository.NewDocumentRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)
	quizResultRepo := repository.NewQuizResultRepository(app.MySQL)

	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	publisher := rabbitmq.NewMessagePublisher(app.MQConn, app.Config.RabbitMQ.MessagePersistQueue)
	pipeline := ingest.NewPipeline(app.Gemini)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	workspaceService := appsvc.NewWorkspaceService(workspaceRepo, documentRepo, messageRepo, historyCache)
	ingestService := appsvc.NewIngestService(
		workspaceRepo,
		documentRepo,
		pipeline,
		app.Config.Ingest.MaxFileSizeMB,
		app.Config.Ingest.MaxBatchFiles,
	)
	chatService := appsvc.NewChatService(
		workspaceRepo,
		documentRepo,
		messageRepo,
		publisher,
		historyCache,
		app.Gemini,
		app.Config.Ingest.HistoryContext,
	)
	quizService := appsvc.NewQuizService(workspaceRepo, documentRepo, quizResultRepo, app.Gemini)

	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	documentHandler := handler.NewDocumentHandler(ingestService)
	chatHandler := handler.NewChatHandler(chatService)
	quizHandler := handler.NewQuizHandler(quizService)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)
	authGroup.PUT("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.UpdateMe)

	secured := v1.Group("")
	secured.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))

	secured.POST("/workspaces", workspaceHandler.Create)
	secured.GET("/workspaces", workspaceHandler.List)
	secured.PUT("/workspaces/:id", workspaceHandler.Update)
	secured.DELETE("/workspaces/:id", workspaceHandler.Delete)

	secured.POST("/workspaces/:id/documents", documentHandler.Upload)
	secured.GET("/workspaces/:id/documents", documentHandler.List)
	secured.DELETE("/documents/:id", documentHandler.Delete)

	secured.POST("/workspaces/:id/messages", chatHandler.SendMessage)
	secured.GET("/workspaces/:id/messages", chatHandler.GetHistory)
	secured.DELETE("/workspaces/:id/messages", chatHandler.ClearMessages)
	secured.POST("/messages/:id/reactions", chatHandler.ToggleReaction)
	secured.POST("/messages/:id/pin", chatHandler.SetPinned)
	secured.POST("/messages/:id/favorite", chatHandler.SetFavorited)

	secured.POST("/workspaces/:id/quiz", quizHandler.Generate)
	secured.POST("/quiz/results", quizHandler.SubmitResult)
	secured.GET("/quiz/results", quizHandler.ListHistory)

	secured.GET("/backup/export", workspaceHandler.Export)
	secured.POST("/backup/import", workspaceHandler.Import)

	return router
}
