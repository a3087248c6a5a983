package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeMC777/bebidas-delivery/internal/auth"
	"github.com/MikeMC777/bebidas-delivery/internal/config"
	"github.com/MikeMC777/bebidas-delivery/internal/db"
	"github.com/MikeMC777/bebidas-delivery/internal/establishment"
	"github.com/MikeMC777/bebidas-delivery/internal/notify"
	"github.com/MikeMC777/bebidas-delivery/internal/order"
	"github.com/MikeMC777/bebidas-delivery/internal/product"
	"github.com/MikeMC777/bebidas-delivery/internal/rpc"
)

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

	// decisions taken here still reach the admin feeds through Kafka
	var events order.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		events = kp
	}

	establishments := establishment.NewService(establishment.NewPGRepo(pool))
	orders := order.NewService(order.NewPGRepo(pool), establishments, product.NewPGRepo(pool), events)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	grpcServer, health := rpc.NewGRPCServer(rpc.NewServer(orders, auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL)))

	go func() {
		log.Printf("order-service gRPC listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down gRPC server")
	health.Shutdown()
	grpcServer.GracefulStop()
}
