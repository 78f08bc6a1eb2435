package app

import (
	httpserver "school-store/internal/app/http-server"
	"school-store/internal/handlers"
	"school-store/internal/lib/sessions"
	"school-store/internal/middlewares"
	"school-store/internal/repository/postgres"
	"school-store/internal/repository/redis"
	"school-store/internal/routes"
	"school-store/internal/services"

	"context"
	"log/slog"
	"os"
	"time"
)

type App struct {
	HTTPServer *httpserver.Server
}

func New(log *slog.Logger, serverAddress, storagePath, sessionSecret string, sessionTTLHours int, allowedOrigin string) *App {
	storage, err := postgres.NewPostgres(context.Background(), storagePath)
	if err != nil {
		panic(err)
	}

	sessionTTL := time.Duration(sessionTTLHours) * time.Hour
	gen := sessions.NewGenerator(sessionSecret, sessionTTL)

	redisDB, err := redis.InitRedis(os.Getenv("REDIS_STORAGE_PATH"), os.Getenv("REDIS_PASSWORD"), os.Getenv("REDIS_DB_NUMBER"), sessionTTL)
	if err != nil {
		panic(err)
	}

	authService := services.NewAuthService(log, storage, redisDB, gen)
	userService := services.NewUserService(log, storage)
	storeService := services.NewStoreService(log, storage)
	pointsService := services.NewPointsService(log, storage)

	cookieTTL := int(sessionTTL / time.Second)

	authHandler := handlers.NewAuthHandler(log, authService, cookieTTL)
	userHandler := handlers.NewUserHandler(log, userService)
	storeHandler := handlers.NewStoreHandler(log, storeService, authService)
	pointsHandler := handlers.NewPointsHandler(log, pointsService, authService)

	authMiddleware := middlewares.NewAuthMiddleware(gen, redisDB, authService)

	r := routes.InitRoutes(authHandler, userHandler, storeHandler, pointsHandler, authMiddleware, allowedOrigin)

	server := httpserver.NewServer(log, serverAddress, r)

	return &App{
		HTTPServer: server,
	}
}
