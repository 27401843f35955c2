package api

import (
	articleDelivery "laterstack-backend/internal/article/delivery"
	articleUsecasePkg "laterstack-backend/internal/article/usecase"
	authDelivery "laterstack-backend/internal/auth/delivery"
	authUsecasePkg "laterstack-backend/internal/auth/usecase"
	"laterstack-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authUsecasePkg.AuthUsecase
	authHandler    *authDelivery.AuthHandler
	articleHandler *articleDelivery.ArticleHandler
}

func NewHandler(authUc authUsecasePkg.AuthUsecase, articleUc articleUsecasePkg.ArticleUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:    authUc,
		authHandler:    authDelivery.NewAuthHandler(authUc, cfg.WebhookSecret),
		articleHandler: articleDelivery.NewArticleHandler(articleUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.articleHandler)

	return r.Run(addr)
}
