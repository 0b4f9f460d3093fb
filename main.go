package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/volunteerhub/volunteer-server/handlers"
	"github.com/volunteerhub/volunteer-server/internal/config"
	"github.com/volunteerhub/volunteer-server/internal/database"
	"github.com/volunteerhub/volunteer-server/internal/sessions"
	"github.com/volunteerhub/volunteer-server/internal/tokens"
	"github.com/volunteerhub/volunteer-server/internal/volunteer/service"
	"github.com/volunteerhub/volunteer-server/pkg/logger"
	"github.com/volunteerhub/volunteer-server/pkg/metrics"
	"github.com/volunteerhub/volunteer-server/pkg/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoConnectAttempts = 5
	shutdownTimeout      = 10 * time.Second
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		logger.UseJSON()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v strict_auth=%v",
		cfg.Server.Environment, cfg.MongoDB.ConnectionURI() != "", cfg.Redis.Host != "", cfg.Auth.Strict)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.Writer(logrus.DebugLevel)
	gin.DefaultErrorWriter = logger.Writer(logrus.ErrorLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.Pinger{}

	// Redis is optional: it backs logout revocation and the shared rate limiter.
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		defer func() { _ = rdb.Close() }()
	}
	blacklist := sessions.NewBlacklist(rdb)

	var mongoClient *mongo.Client
	var svc *service.Service
	if uri := cfg.MongoDB.ConnectionURI(); uri != "" {
		mongoClient, err = database.ConnectWithRetry(ctx, uri, cfg.MongoDB.Timeout, mongoConnectAttempts, time.Second)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		logger.Infof("connected to MongoDB, database=%s", cfg.MongoDB.Database)
		db := mongoClient.Database(cfg.MongoDB.Database)
		svc, err = service.NewMongoService(ctx, db, cfg.MongoDB.OpportunitiesCollection, cfg.MongoDB.ApplicationsCollection)
		if err != nil {
			logger.Fatalf("failed to prepare collections: %v", err)
		}
		checks["mongodb"] = database.Pinger(mongoClient)
	} else {
		logger.Warn("MongoDB not configured, using in-memory store")
		svc = service.NewMemoryService()
	}

	codec := tokens.NewCodec(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	gate := middleware.CookieAuth(codec, middleware.AuthOptions{
		Strict:      cfg.Auth.Strict,
		Revocations: blacklist,
	})
	if !cfg.Auth.Strict {
		logger.Warn("lenient auth: requests with unverifiable tokens proceed without identity")
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		gin.CustomRecoveryWithWriter(gin.DefaultErrorWriter, func(c *gin.Context, recovered any) {
			logger.Errorf("panic recovered: %v", recovered)
			c.AbortWithStatus(http.StatusInternalServerError)
		}),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.HTTPMetrics(),
		handlers.ErrorHandler(),
	)

	// Optional global rate limiter, Redis-backed when requested and available
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
		logger.Infof("rate limiter enabled: rps=%v burst=%d redis=%v", cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.UseRedis && rdb != nil)
	}

	handlers.NewHealthHandler(checks).Register(r)
	handlers.NewAuthHandler(codec, blacklist, cfg.Server.IsProduction()).Register(r)
	handlers.NewVolunteerHandler(svc).Register(r, gate)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("volunteer server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Errorf("mongo disconnect: %v", err)
		}
	}
}
