package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MikeMC777/bebidas-delivery/internal/auth"
	"github.com/MikeMC777/bebidas-delivery/internal/cart"
	"github.com/MikeMC777/bebidas-delivery/internal/category"
	"github.com/MikeMC777/bebidas-delivery/internal/config"
	"github.com/MikeMC777/bebidas-delivery/internal/db"
	"github.com/MikeMC777/bebidas-delivery/internal/establishment"
	"github.com/MikeMC777/bebidas-delivery/internal/notify"
	"github.com/MikeMC777/bebidas-delivery/internal/order"
	"github.com/MikeMC777/bebidas-delivery/internal/product"
	"github.com/MikeMC777/bebidas-delivery/internal/seed"
	"github.com/MikeMC777/bebidas-delivery/internal/user"
)

// establishmentRefs lets the user service confirm a store before binding an
// admin to it.
type establishmentRefs struct{ svc *establishment.Service }

func (r establishmentRefs) ByID(ctx context.Context, id string) (user.EstablishmentRef, error) {
	e, err := r.svc.ByID(ctx, id)
	if err != nil {
		return user.EstablishmentRef{}, err
	}
	return user.EstablishmentRef{ID: e.ID, Slug: e.Slug}, nil
}

// @title Bebidas Delivery API
// @version 1.0
// @description Multi-store beverage ordering: storefront, cart, checkout and store administration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if err := db.Migrate(cfg.PostgresDSN, cfg.MigrationsTable); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	var kv cart.KV = cart.NewMemoryKV()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[cart] redis ping failed, carts will degrade until it recovers: %v", err)
		}
		kv = cart.NewRedisKV(rdb, cfg.CartTTL)
	}

	hub := notify.NewHub(cfg.CORSOrigins...)
	events := notify.Multi{hub}
	if len(cfg.KafkaBrokers) > 0 {
		kp := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		events = append(events, kp)
	}

	establishments := establishment.NewService(establishment.NewPGRepo(pool))
	categories := category.NewPGRepo(pool)
	products := product.NewPGRepo(pool)
	orders := order.NewService(order.NewPGRepo(pool), establishments, products, events)
	users := user.NewService(user.NewPGRepo(pool), establishmentRefs{establishments})

	if err := users.EnsureSuperAdmin(ctx, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		log.Fatalf("super admin: %v", err)
	}
	if cfg.SeedDemo {
		s := &seed.Seeder{Establishments: establishments, Categories: categories, Products: products, Users: users}
		if err := s.Demo(ctx, cfg.DemoAdminEmail, cfg.DemoAdminPassword); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	a := &app{
		establishments: establishments,
		categories:     categories,
		products:       products,
		orders:         orders,
		users:          users,
		carts:          cart.NewStore(kv, cfg.CartNamespace),
		hub:            hub,
		tokens:         auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL),
		corsOrigins:    cfg.CORSOrigins,
		requestTimeout: cfg.RequestTimeout,
		ready:          pool.Ping,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(a.router(), "storefront"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("storefront listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
