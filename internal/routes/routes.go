package routes

import (
	"school-store/internal/handlers"
	"school-store/internal/middlewares"

	"github.com/go-openapi/runtime/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"time"
)

func InitRoutes(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	storeHandler *handlers.StoreHandler,
	pointsHandler *handlers.PointsHandler,
	authMiddleware *middlewares.AuthMiddleware,
	allowedOrigin string,
) *gin.Engine {
	router := gin.Default()

	_ = router.SetTrustedProxies(nil)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.StaticFile("/swagger.yaml", "./swagger.yaml")

	opts := middleware.SwaggerUIOpts{SpecURL: "/swagger.yaml"}
	sh := middleware.SwaggerUI(opts, nil)

	router.GET("/swagger/*any", func(c *gin.Context) {
		sh.ServeHTTP(c.Writer, c.Request)
	})

	api := router.Group("/api")

	// public routes
	api.POST("/auth/login", authHandler.Login)
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// authenticated routes
	authed := api.Group("")
	authed.Use(authMiddleware.Handle())
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.POST("/auth/logout", authHandler.Logout)

		authed.GET("/users/:id", userHandler.GetUser)

		authed.GET("/store/items", storeHandler.ListItems)
		authed.GET("/store/items/:id", storeHandler.GetItem)
		authed.GET("/store/categories", storeHandler.ListCategories)
		authed.POST("/store/purchase", storeHandler.Purchase)
		authed.GET("/store/purchases", storeHandler.ListPurchases)

		authed.GET("/points/:id", pointsHandler.GetBalance)
		authed.GET("/points/transactions", pointsHandler.ListTransactions)

		// teacher-only routes
		teacher := authed.Group("")
		teacher.Use(authMiddleware.RequireTeacher())
		{
			teacher.GET("/users", userHandler.ListUsers)
			teacher.POST("/users", userHandler.CreateUser)
			teacher.PUT("/users/:id", userHandler.UpdateUser)
			teacher.DELETE("/users/:id", userHandler.DeleteUser)

			teacher.POST("/store/items", storeHandler.CreateItem)
			teacher.PUT("/store/items/:id", storeHandler.UpdateItem)
			teacher.DELETE("/store/items/:id", storeHandler.DeleteItem)

			teacher.POST("/points/award", pointsHandler.Award)
			teacher.GET("/points/leaderboard", pointsHandler.Leaderboard)
		}
	}

	return router
}
