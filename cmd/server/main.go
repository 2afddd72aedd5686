package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"outbound_tool/internal/config"
	"outbound_tool/internal/handler"
	"outbound_tool/internal/middleware"
	"outbound_tool/internal/repository"
	"outbound_tool/internal/service"
	"outbound_tool/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on environment variables")
	}

	// --- Configuration ---
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load app config")
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load DB config")
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatal().Err(err).Msg("failed to auto-migrate database")
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(appCfg.JWTSecret, appCfg.JWTExpHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	sessionRepo := repository.NewSessionRepository(dbPool)
	dispatchRepo := repository.NewDispatchRepository(dbPool)
	hubRepo := repository.NewHubRepository(dbPool)
	lookupRepo := repository.NewLookupRepository(dbPool)
	kpiRepo := repository.NewKPIRepository(dbPool)

	// --- Initialize Services ---
	sessionService := service.NewSessionService(sessionRepo, appCfg.SessionTTL)
	authService := service.NewAuthService(userRepo, sessionRepo, sessionService, jwtUtil, appCfg.AllowedDomains)
	dispatchService := service.NewDispatchService(dispatchRepo)
	hubService := service.NewHubService(hubRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, sessionService)
	dispatchHandler := handler.NewDispatchHandler(dispatchService)
	hubHandler := handler.NewHubHandler(hubService)
	lookupHandler := handler.NewLookupHandler(lookupRepo, userRepo)
	kpiHandler := handler.NewKPIHandler(kpiRepo)
	userHandler := handler.NewUserHandler(userRepo)
	healthHandler := handler.NewHealthHandler(dbPool, appCfg.AppName, appCfg.AppVersion)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.New()
	router.Use(middleware.RequestLogger(log.Logger))

	corsConfig := cors.DefaultConfig()
	if allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length")
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	router.Use(cors.New(corsConfig))

	// --- Initialize Middlewares ---
	sessionAuthMW := middleware.SessionAuth(authService, jwtUtil)

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup, sessionAuthMW)
	dispatchHandler.RegisterDispatchRoutes(apiGroup, sessionAuthMW)
	hubHandler.RegisterHubRoutes(apiGroup, sessionAuthMW)
	lookupHandler.RegisterLookupRoutes(apiGroup, sessionAuthMW)
	kpiHandler.RegisterKPIRoutes(apiGroup, sessionAuthMW)
	userHandler.RegisterUserRoutes(apiGroup, sessionAuthMW)
	healthHandler.RegisterHealthRoutes(apiGroup)

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + appCfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", appCfg.ServerPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
