package main

import (
	"fmt"
	"log"
	"os"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"RESET_TOKEN_EXPIRATION_TIME",
		"REDIS_URL",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter(userService *usecase.UserService, notesService *usecase.NotesService, statsHandler *handler.StatsHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService)
			})
			auth.POST("/forgot-password", func(c *gin.Context) {
				handler.ForgotPasswordHandler(c, userService)
			})
			auth.POST("/reset-password", func(c *gin.Context) {
				handler.ResetPasswordHandler(c, userService)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		notes := protected.Group("/notes")
		{
			notes.GET("/", func(c *gin.Context) {
				handler.GetUserNotesHandler(c, notesService)
			})
			notes.GET("/all", func(c *gin.Context) {
				handler.GetAllNotesHandler(c, notesService)
			})
			notes.GET("/labels/:labelId", func(c *gin.Context) {
				handler.GetNotesByLabelHandler(c, notesService)
			})
			notes.POST("/", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService)
			})
			notes.GET("/:id", func(c *gin.Context) {
				handler.GetNoteHandler(c, notesService)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.SoftDeleteNoteHandler(c, notesService)
			})
			notes.DELETE("/:id/permanent", func(c *gin.Context) {
				handler.HardDeleteNoteHandler(c, notesService)
			})
			notes.POST("/:id/archive", func(c *gin.Context) {
				handler.ArchiveNoteHandler(c, notesService)
			})
			notes.POST("/:id/labels", func(c *gin.Context) {
				handler.AddLabelHandler(c, notesService)
			})
			notes.DELETE("/:id/labels/:labelId", func(c *gin.Context) {
				handler.RemoveLabelHandler(c, notesService)
			})
			notes.POST("/:id/collaborators", func(c *gin.Context) {
				handler.AddCollaboratorHandler(c, notesService)
			})
			notes.DELETE("/:id/collaborators/:userId", func(c *gin.Context) {
				handler.RemoveCollaboratorHandler(c, notesService)
			})
		}

		protected.GET("/stats", statsHandler.GetServiceStats)
	}

	return router
}

func main() {
	dbCfg := config.LoadDatabaseConfig()
	userRepo := repository.GetUserRepo(utils.MongoClient, dbCfg.DatabaseName)
	notesRepo := repository.GetNotesRepo(utils.MongoClient, dbCfg.DatabaseName)

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbCfg.DatabaseName)); err != nil {
		log.Fatalf("Failed to setup indexes: %v", err)
	}

	resetGuard, err := services.NewRedisResetGuard(config.LoadRedisConfig().URL)
	if err != nil {
		log.Fatalf("Failed to connect reset guard: %v", err)
	}
	defer resetGuard.Close()

	mailerCfg := config.LoadMailerConfig()
	notifier := services.NewMailNotifier(mailerCfg)

	userService := &usecase.UserService{
		UsersRepo:  userRepo,
		Notifier:   notifier,
		ResetGuard: resetGuard,
		BaseURL:    mailerCfg.BaseURL,
	}
	notesService := &usecase.NotesService{
		NotesRepo: notesRepo,
		UsersRepo: userRepo,
	}
	statsHandler := handler.NewStatsHandler(userRepo, notesRepo)

	router := setupRouter(userService, notesService, statsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
