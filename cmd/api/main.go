package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/Fashion-Store/Aradaa/internal/auth"
	"github.com/Fashion-Store/Aradaa/internal/aws"
	"github.com/Fashion-Store/Aradaa/internal/catalog"
	"github.com/Fashion-Store/Aradaa/internal/config"
	"github.com/Fashion-Store/Aradaa/internal/handlers"
	"github.com/Fashion-Store/Aradaa/internal/idempotency"
	"github.com/Fashion-Store/Aradaa/internal/logger"
	"github.com/Fashion-Store/Aradaa/internal/middleware"
	"github.com/Fashion-Store/Aradaa/internal/notify"
)

func setupRouter(hcfg handlers.HandlerConfig, origins []string, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log), middleware.CORS(origins))

	handlers.RegisterRoutes(r, hcfg)

	return r
}

// buildHandlerConfig wires the optional AWS and mail integrations that cfg enables.
func buildHandlerConfig(ctx context.Context, cfg config.Config, log *slog.Logger) (handlers.HandlerConfig, error) {
	hcfg := handlers.HandlerConfig{
		Products:   catalog.Products(),
		Tokens:     auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Logger:     log,
		Env:        cfg.AppEnv,
		Production: cfg.Production(),
		PublicDir:  cfg.PublicDir,
		Notifier:   notify.LogNotifier{Logger: log},
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, using development signing key")
	}

	if cfg.SMTP.Enabled() {
		mailer, err := notify.NewMailer(cfg.SMTP)
		if err != nil {
			return hcfg, err
		}
		hcfg.Notifier = mailer
	}

	if !cfg.UsesAWS() {
		return hcfg, nil
	}

	clients, err := aws.NewAWSClients(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
	if err != nil {
		return hcfg, fmt.Errorf("init aws clients: %w", err)
	}
	if cfg.IdempotencyTable != "" {
		hcfg.Idempotency = idempotency.NewStore(clients.DynamoDB, cfg.IdempotencyTable, cfg.IdempotencyTTL)
	}
	if cfg.OrdersQueueURL != "" {
		hcfg.Events = aws.NewPublisher(clients.SQS, cfg.OrdersQueueURL)
	}
	if cfg.MetricsNamespace != "" {
		hcfg.Metrics = aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace, cfg.AppEnv)
	}
	return hcfg, nil
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "api",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hcfg, err := buildHandlerConfig(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", slog.Any("err", err))
		os.Exit(1)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.ServeLambda() {
		// the sandbox freezes once the response is returned
		hcfg.Async = func(task func()) { task() }
		adapter := ginadapter.New(setupRouter(hcfg, cfg.CORSOrigins, log))

		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return
	}

	var tasks sync.WaitGroup
	hcfg.Async = func(task func()) {
		tasks.Add(1)
		go func() {
			defer tasks.Done()
			task()
		}()
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           setupRouter(hcfg, cfg.CORSOrigins, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr), slog.Bool("production", cfg.Production()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", slog.Any("err", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	tasks.Wait()
	log.Info("bye")
}
