package api

import (
	"net/http"

	articleDelivery "laterstack-backend/internal/article/delivery"
	"laterstack-backend/internal/auth/delivery"
	authUsecase "laterstack-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, authHandler *delivery.AuthHandler, articleHandler *articleDelivery.ArticleHandler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Identity-provider sync events (signature-verified, no session)
		api.POST("/webhooks/identity", authHandler.HandleIdentityWebhook)

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(delivery.AuthMiddleware(authUc))
		{
			profile.GET("", authHandler.GetProfile)
			profile.PUT("", authHandler.UpdateProfile)
		}

		// Article routes (protected)
		articles := api.Group("/articles")
		articles.Use(delivery.AuthMiddleware(authUc))
		{
			articles.POST("", articleHandler.SaveArticle)
			articles.GET("", articleHandler.ListArticles)
			articles.PATCH("/:id/read", articleHandler.MarkRead)
			articles.PATCH("/:id/unread", articleHandler.MarkUnread)
			articles.PATCH("/:id/archive", articleHandler.Archive)
			articles.PATCH("/:id/unarchive", articleHandler.Unarchive)
		}
	}
}
