package app

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"vitadoc/internal/config"
	"vitadoc/internal/handlers"
	"vitadoc/internal/pdf"
	"vitadoc/internal/repositories"
	"vitadoc/internal/routes"
	"vitadoc/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "vitadoc/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := os.MkdirAll(cfg.Files.UploadsDir, 0o755); err != nil {
		log.Fatal("Failed to create uploads dir: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	identity := services.NewGoogleVerifier(cfg.Google.ClientID)
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL, userRepo)
	otpService := services.NewOTPService(userRepo)
	userService := services.NewUserService(userRepo, authService, emailService, identity)
	resetService := services.NewResetService(userRepo, otpService, emailService, authService, identity)

	cardGen := pdf.NewCardGenerator(cfg.Files.CardsDir)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, tokenService, cfg.Files.UploadsDir)
	resetHandler := handlers.NewResetHandler(resetService)
	userHandler := handlers.NewUserHandler(userService, cardGen)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// uploaded profile pictures
	router.Static("/uploads", cfg.Files.UploadsDir)

	routes.SetupRoutes(router, authHandler, resetHandler, userHandler, tokenService)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
