package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fashion-Store/Aradaa/internal/idempotency"
	"github.com/Fashion-Store/Aradaa/internal/middleware"
	"github.com/Fashion-Store/Aradaa/internal/orders"
	"github.com/Fashion-Store/Aradaa/internal/validation"
)

// IdempotencyKeyHeader lets a client retry checkout without placing a second order.
const IdempotencyKeyHeader = "Idempotency-Key"

// RegisterOrdersRoutes registers order placement and the sample order history.
func RegisterOrdersRoutes(r gin.IRouter, cfg HandlerConfig) {
	r.POST("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		var order orders.Order
		if err := validation.BindJSON(c, &order); err != nil {
			return
		}
		if order.PaymentMethod == "" {
			order.PaymentMethod = orders.PaymentCOD
		}

		now := cfg.Now()
		orderID := orders.NewID(now)
		idempKey := c.GetHeader(IdempotencyKeyHeader)

		tracked := false
		if idempKey != "" && cfg.Idempotency != nil {
			hash := requestHash(order)
			err := cfg.Idempotency.Create(ctx, idempKey, orderID, hash)
			switch {
			case errors.Is(err, idempotency.ErrAlreadyExists):
				if replay(c, cfg, idempKey, hash) {
					return
				}
				// the earlier record expired, so this is a new checkout
				cfg.Logger.InfoContext(ctx, "idempotency record expired, placing untracked",
					slog.String("idempotency_key", idempKey))
			case err != nil:
				// the store being down must not block checkout
				cfg.Logger.WarnContext(ctx, "idempotency unavailable, continuing untracked",
					slog.String("idempotency_key", idempKey), slog.Any("err", err))
			default:
				tracked = true
			}
		}

		resp := orders.Confirm(orderID)
		body, err := json.Marshal(resp)
		if err != nil {
			if tracked {
				_ = cfg.Idempotency.MarkFailed(ctx, idempKey, "encode response: "+err.Error())
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "encode_failed"})
			return
		}
		if tracked {
			if err := cfg.Idempotency.MarkDone(ctx, idempKey, string(body), http.StatusOK); err != nil {
				cfg.Logger.WarnContext(ctx, "idempotency mark done failed",
					slog.String("idempotency_key", idempKey), slog.Any("err", err))
			}
		}

		cfg.Logger.InfoContext(ctx, "order placed",
			slog.String("order_id", orderID),
			slog.Int("items", order.ItemCount()),
			slog.Int64("total", order.Total),
		)

		ev := orders.Event(order, orderID, now)
		ev.IdempotencyKey = idempKey
		ev.CorrelationID = middleware.GetRequestID(c)
		if cfg.Events != nil {
			cfg.background(ctx, "publish_order_placed", func(ctx context.Context) error {
				return cfg.Events.PublishOrderPlaced(ctx, ev)
			})
		}
		if cfg.Metrics != nil {
			cfg.background(ctx, "record_order_metric", func(ctx context.Context) error {
				return cfg.Metrics.RecordOrder(ctx, ev.ItemCount, ev.Total)
			})
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	})

	r.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"orders": orders.SampleHistory(cfg.Now(), c.Query("latest")),
		})
	})
}

// replay answers a request whose Idempotency-Key was seen before and reports
// whether it wrote a response. An expired or vanished record is treated as
// absent and nothing is written.
func replay(c *gin.Context, cfg HandlerConfig, key, hash string) bool {
	ctx := c.Request.Context()

	rec, err := cfg.Idempotency.Get(ctx, key)
	if errors.Is(err, idempotency.ErrNotFound) {
		return false
	}
	if err != nil {
		cfg.Logger.ErrorContext(ctx, "idempotency lookup failed", slog.String("idempotency_key", key), slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "idempotency_check_failed"})
		return true
	}
	if rec.Expired(cfg.Now()) {
		return false
	}
	if rec.RequestHash != "" && rec.RequestHash != hash {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "idempotency_key_reused"})
		return true
	}

	switch rec.Status {
	case idempotency.StatusDone:
		if rec.ResponseBody != "" {
			c.Header("Idempotent-Replayed", "true")
			c.Data(rec.ResponseStatus, "application/json; charset=utf-8", []byte(rec.ResponseBody))
			return true
		}
		c.JSON(http.StatusOK, orders.Confirm(rec.OrderID))
	case idempotency.StatusInProgress:
		c.JSON(http.StatusAccepted, gin.H{
			"success": false,
			"orderId": rec.OrderID,
			"message": "request already in progress",
		})
	case idempotency.StatusFailed:
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "previous_attempt_failed",
			"orderId": rec.OrderID,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "unknown_idempotency_status"})
	}
	return true
}

func requestHash(o orders.Order) string {
	b, _ := json.Marshal(o)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
