// Command shop is a terminal storefront: it browses the catalog, keeps a cart
// and a signed-in session on disk and places orders against the API.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Fashion-Store/Aradaa/internal/cart"
	"github.com/Fashion-Store/Aradaa/internal/client"
	"github.com/Fashion-Store/Aradaa/internal/config"
	"github.com/Fashion-Store/Aradaa/internal/localstore"
	"github.com/Fashion-Store/Aradaa/internal/logger"
	"github.com/Fashion-Store/Aradaa/internal/session"
)

const (
	cartKey    = "cart"
	sessionKey = "session"
)

// app is the state shared by every command.
type app struct {
	api     *client.Client
	cart    *cart.Store
	session *session.Store
	log     *slog.Logger

	closers []io.Closer
}

// newApp wires the API client and the on-disk state. Carts go to Redis when
// REDIS_ADDR is set and to the state directory otherwise.
func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) *app {
	a := &app{
		api: client.New(cfg.APIBaseURL, client.WithTimeout(cfg.ClientTimeout)),
		log: log,
	}

	dir := localstore.New(cfg.StateDir)

	var p cart.Persister = cart.NewFileStore(dir)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		a.closers = append(a.closers, rdb)
		p = cart.NewRedisStore(rdb, cart.DefaultRedisTTL)
	}
	a.cart = cart.Open(ctx, p, cartKey, log)

	a.session = session.New(a.api,
		session.WithPersister(session.NewFileStore(dir, sessionKey)),
		session.WithLogger(log),
	)
	a.session.Restore(ctx)

	return a
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn("close failed", slog.Any("err", err))
		}
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "shop",
		Short:         "Adaraa storefront in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProductsCmd(a),
		newProductCmd(a),
		newCartCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newUpdateCmd(a),
		newClearCmd(a),
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newCheckoutCmd(a),
		newOrdersCmd(a),
		newContactCmd(a),
		newHealthCmd(a),
	)
	return root
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "shop",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Output:  os.Stderr,
	})
	// Ctrl-C abandons the in-flight request
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(ctx, cfg, log)
	defer a.Close()

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		a.Close()
		stop()
		os.Exit(1)
	}
}
