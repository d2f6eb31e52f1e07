// Package handlers wires the storefront JSON API onto a gin engine.
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Fashion-Store/Aradaa/internal/auth"
	"github.com/Fashion-Store/Aradaa/internal/catalog"
	"github.com/Fashion-Store/Aradaa/internal/idempotency"
	"github.com/Fashion-Store/Aradaa/internal/notify"
	"github.com/Fashion-Store/Aradaa/internal/orders"
)

// IdempotencyStore records Idempotency-Key headers for POST /api/orders.
type IdempotencyStore interface {
	Create(ctx context.Context, key, orderID, requestHash string) error
	Get(ctx context.Context, key string) (*idempotency.Record, error)
	MarkDone(ctx context.Context, key, responseBody string, responseStatus int) error
	MarkFailed(ctx context.Context, key, note string) error
}

// OrderPublisher announces placed orders.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev orders.PlacedEvent) error
}

// OrderMetrics records placed orders.
type OrderMetrics interface {
	RecordOrder(ctx context.Context, items int, total int64) error
}

// HandlerConfig groups the dependencies of the API routes. Idempotency, Events,
// Metrics and Notifier are optional.
type HandlerConfig struct {
	Products []catalog.Product
	Tokens   *auth.Issuer
	Logger   *slog.Logger

	Idempotency IdempotencyStore
	Events      OrderPublisher
	Metrics     OrderMetrics
	Notifier    notify.Notifier

	Env        string
	Production bool
	PublicDir  string

	// Async runs fire-and-forget side effects. Defaults to a bare goroutine.
	Async func(task func())
	// Now defaults to time.Now.
	Now func() time.Time
}

const sideEffectTimeout = 10 * time.Second

func (cfg *HandlerConfig) defaults() {
	if cfg.Products == nil {
		cfg.Products = catalog.Products()
	}
	if cfg.Tokens == nil {
		cfg.Tokens = auth.NewIssuer("", 0)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.Async == nil {
		cfg.Async = func(task func()) { go task() }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
}

// background runs task through cfg.Async with a context detached from the
// request and bounded by sideEffectTimeout.
func (cfg HandlerConfig) background(parent context.Context, name string, task func(ctx context.Context) error) {
	ctx := context.WithoutCancel(parent)
	log := cfg.Logger
	cfg.Async(func() {
		ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
		defer cancel()
		if err := task(ctx); err != nil {
			log.WarnContext(ctx, "side effect failed", slog.String("task", name), slog.Any("err", err))
		}
	})
}

// RegisterRoutes registers every API route plus the non-API fallback.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	cfg.defaults()

	api := r.Group("/api")
	RegisterHealthRoutes(api, cfg)
	RegisterProductRoutes(api, cfg)
	RegisterAuthRoutes(api, cfg)
	RegisterContactRoutes(api, cfg)
	RegisterOrdersRoutes(api, cfg)
	RegisterPlaceholderRoutes(api, cfg)

	r.NoRoute(fallback(cfg))
}
