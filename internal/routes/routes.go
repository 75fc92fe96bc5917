package routes

import (
	"github.com/gin-gonic/gin"

	"vitadoc/internal/handlers"
	"vitadoc/internal/middleware"
	"vitadoc/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	resetHandler *handlers.ResetHandler,
	userHandler *handlers.UserHandler,
	tokens services.TokenService,
) *gin.Engine {

	auth := r.Group("/auth")
	{
		// public
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/google", authHandler.GoogleSignin)
		auth.POST("/forgot-password", resetHandler.ForgotPassword)
		auth.POST("/verify-code", resetHandler.VerifyCode)
		auth.POST("/reset-password", resetHandler.ResetPassword)
		auth.GET("/verify", authHandler.VerifyToken)
		auth.POST("/refresh", authHandler.Refresh)

		// protected
		protected := auth.Group("", middleware.AuthMiddleware(tokens))
		{
			protected.GET("/user/:id", userHandler.GetUserByID)
			protected.GET("/user/:id/card", userHandler.DownloadProfileCard)
		}
	}

	return r
}
