package app

import (
	"net/http"

	"github.com/CleanArchitectureTutorials/PackAndGo/internal/auth"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/cache"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/config"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/handlers"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/repo"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/service"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/uow"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires repositories, services and handlers onto the router.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	users := repo.NewPGUserRepo(db)
	lists := repo.NewPGPackingListRepo(db)
	creds := repo.NewPGCredentialRepo(db)

	starter := uow.NewPG(db)
	listCache := cache.NewListCache(rdb, cfg.Redis.CacheTTL.Duration())
	sessions := auth.NewStore(rdb, cfg.Redis.SessionTTL.Duration())

	userSvc := service.NewUserService(starter, users, creds)
	listSvc := service.NewListService(starter, lists, listCache)

	authHandler := handlers.NewAuthHandler(sessions, userSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	listHandler := handlers.NewListHandler(listSvc)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": cfg.App.Name, "version": cfg.App.Version})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
		}

		protected := api.Group("")
		protected.Use(auth.RequireSession(sessions))
		{
			protected.GET("/users/me", userHandler.Me)
			protected.PUT("/users/me/email", userHandler.ChangeEmail)

			listGroup := protected.Group("/lists")
			{
				listGroup.POST("", listHandler.Create)
				listGroup.GET("", listHandler.List)
				listGroup.GET("/:id", listHandler.GetByID)
				listGroup.PATCH("/:id", listHandler.Rename)
				listGroup.DELETE("/:id", listHandler.Delete)

				listGroup.POST("/:id/items", listHandler.AddItem)
				listGroup.PATCH("/:id/items/:itemId", listHandler.RenameItem)
				listGroup.DELETE("/:id/items/:itemId", listHandler.RemoveItem)
				listGroup.POST("/:id/items/:itemId/pack", listHandler.PackItem)
				listGroup.POST("/:id/items/:itemId/unpack", listHandler.UnpackItem)
			}
		}
	}
}
