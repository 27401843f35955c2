package main

import (
	"log"

	api "laterstack-backend/cmd/api"
	articleDomain "laterstack-backend/internal/article/domain"
	articleRepo "laterstack-backend/internal/article/repository"
	articleUsecase "laterstack-backend/internal/article/usecase"
	authdomain "laterstack-backend/internal/auth/domain"
	authRepo "laterstack-backend/internal/auth/repository"
	authUsecase "laterstack-backend/internal/auth/usecase"
	"laterstack-backend/pkg/ai"
	"laterstack-backend/pkg/config"
	"laterstack-backend/pkg/database"
	"laterstack-backend/pkg/identity"
	"laterstack-backend/pkg/scraper"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &articleDomain.SavedItem{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	itemRepository := articleRepo.NewItemRepository(db)

	// Outbound service clients
	identityClient := identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPISecret)
	contentScraper := scraper.New(cfg)
	analyzer := ai.New(cfg)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, identityClient, cfg)
	articleUsecaseInstance := articleUsecase.NewArticleUsecase(itemRepository, authUsecaseInstance, contentScraper, analyzer)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, articleUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
