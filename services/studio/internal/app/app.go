package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio-portfolio/pkg/cache"
	"studio-portfolio/pkg/config"
	"studio-portfolio/pkg/database"
	"studio-portfolio/pkg/imaging"
	"studio-portfolio/pkg/jwt"
	"studio-portfolio/pkg/logger"
	"studio-portfolio/pkg/queue"
	"studio-portfolio/pkg/s3"
	studioHTTP "studio-portfolio/services/studio/internal/controller/http"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/repo/persistent"
	"studio-portfolio/services/studio/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const mib = 1 << 20

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	mongoClient, mongoDB, err := database.NewMongoDB(context.Background(), cfg)
	if err != nil {
		log.Error("Failed to connect to MongoDB: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (rate limiting and view de-duplication disabled)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ: %v (orphaned objects will only be logged)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret).WithTTL(time.Duration(cfg.JWTTTLHours) * time.Hour)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		mongoClient: mongoClient,
		mongoDB:     mongoDB,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	userRepo := persistent.NewUserRepository(a.db)
	photoRepo := persistent.NewMediaRepository(a.mongoDB, entity.KindPhoto)
	videoRepo := persistent.NewMediaRepository(a.mongoDB, entity.KindVideo)
	contactRepo := persistent.NewContactRepository(a.mongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, repo := range []persistent.MediaRepository{photoRepo, videoRepo} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", repo.Kind().Collection(), err)
		}
	}

	var cleanup usecase.CleanupPublisher
	if a.queueClient != nil {
		cleanup = a.queueClient
	}

	processor := imaging.NewProcessor(a.cfg.WatermarkText, imaging.WithMaxPixels(int64(a.cfg.MaxImageMP)*1_000_000))
	views := usecase.NewViewTracker(a.redisClient)
	maxPhoto := int64(a.cfg.MaxPhotoMB) * mib
	maxVideo := int64(a.cfg.MaxVideoMB) * mib

	photoUseCase := usecase.NewMediaUseCase(photoRepo, userRepo, a.s3Client, processor, views, cleanup, maxPhoto, a.log)
	videoUseCase := usecase.NewMediaUseCase(videoRepo, userRepo, a.s3Client, processor, views, cleanup, maxVideo, a.log)
	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, a.s3Client, processor, a.log)
	userUseCase := usecase.NewUserUseCase(userRepo, a.log, photoUseCase, videoUseCase)
	contactUseCase := usecase.NewContactUseCase(contactRepo, a.log)

	handlers := routeHandlers{
		auth:    studioHTTP.NewAuthHandler(authUseCase, a.log),
		users:   studioHTTP.NewUserHandler(userUseCase, a.log),
		photos:  studioHTTP.NewMediaHandler(photoUseCase, maxPhoto, a.log),
		videos:  studioHTTP.NewMediaHandler(videoUseCase, maxVideo, a.log),
		contact: studioHTTP.NewContactHandler(contactUseCase, a.log),

		accounts: usecase.NewAccountLookup(userRepo),
	}

	gin.SetMode(a.cfg.GinMode)
	r := newRouter(a.cfg, a.log, a.jwtService, a.redisClient, handlers)

	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("Studio service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down studio service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if err := a.mongoClient.Disconnect(ctx); err != nil {
		a.log.Error("Error closing MongoDB: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("Studio service exited")
	a.log.Sync()
	return shutdownErr
}
