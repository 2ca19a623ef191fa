package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/config"
	"github.com/oksasatya/bootcamp-directory/internal/container"
	pginfra "github.com/oksasatya/bootcamp-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/search"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/internal/router"
	"github.com/oksasatya/bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
	"github.com/oksasatya/bootcamp-directory/pkg/storage"
	"github.com/oksasatya/bootcamp-directory/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Warn("redis unreachable; rate limits and geocode cache will be skipped until it answers")
	}
	defer func() { _ = rdb.Close() }()

	c := container.New(cfg, logger)
	c.Redis = rdb
	c.UsePostgres(pool)
	c.Geocoder = geocoder.NewCached(
		geocoder.NewNominatim(cfg.GeocoderURL, cfg.GeocoderCountry, cfg.GeocoderUserAgent),
		rdb, cfg.GeocodeCacheTTL, logger,
	)

	closeFiles := wireStorage(ctx, c, cfg, logger)
	defer closeFiles()
	closeMail := wireMail(c, cfg, logger)
	defer closeMail()
	wireSearch(ctx, c, cfg, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.MaxMultipartMemory = cfg.MaxFileUpload
	if cfg.StorageDriver == "local" {
		r.Static(cfg.FileUploadURL, cfg.FileUploadPath)
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func wireStorage(ctx context.Context, c *container.Container, cfg *config.Config, logger *logrus.Logger) func() {
	switch cfg.StorageDriver {
	case "gcs":
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Fatal("failed to init GCS client")
		}
		c.Files = storage.NewGCS(client, cfg.GCSBucket)
		return func() { _ = client.Close() }
	case "local":
		c.Files = storage.NewLocal(cfg.FileUploadPath, cfg.FileUploadURL)
		return func() {}
	default:
		logger.Fatalf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
		return nil
	}
}

func wireMail(c *container.Container, cfg *config.Config, logger *logrus.Logger) func() {
	if !cfg.MailSendEnabled {
		logger.Warn("MAIL_SEND_ENABLED=false; emails are logged, not sent")
		c.Mail = mailer.LogSender{Logger: logger}
		return func() {}
	}
	switch cfg.MailTransport {
	case "mailgun":
		c.Mail = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		return func() {}
	case "queue":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to rabbitmq")
		}
		c.Mail = mailer.NewQueueSender(pub)
		return pub.Close
	case "log":
		c.Mail = mailer.LogSender{Logger: logger}
		return func() {}
	default:
		logger.Fatalf("unknown MAIL_TRANSPORT %q", cfg.MailTransport)
		return nil
	}
}

// wireSearch enables /api/bootcamps/search when Elasticsearch is configured.
func wireSearch(ctx context.Context, c *container.Container, cfg *config.Config, logger *logrus.Logger) {
	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		logger.Info("ELASTICSEARCH_ADDRS empty; bootcamp search disabled")
		return
	}
	es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Fatal("failed to init elasticsearch client")
	}
	idx := search.NewBootcampIndex(es, cfg.ESBootcampsIndex)
	if err := idx.EnsureIndex(ctx); err != nil {
		logger.WithError(err).Warn("could not ensure bootcamp index; writes will retry indexing")
	}
	c.Index = idx
}
