package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/config"
	kafkax "github.com/GrandsonfrmO/galaxyshop-backend/internal/kafka"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/maillog"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/mailer"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/orders"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/postgres"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB (email log only)
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis for event dedup
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	om := &mailer.OrderMailer{
		Dispatcher: &mailer.Dispatcher{
			Provider: mailer.NewClient(cfg.ResendAPIKey),
			Log:      &maillog.Repo{DB: db},
			From:     cfg.MailFrom,
		},
		Redis:      rdb,
		AdminEmail: cfg.AdminEmail,
	}

	group := getenv("MAILER_GROUP", "mailer-svc")
	workers := atoi(os.Getenv("MAILER_WORKERS"), 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderCreated, workers)

	go func() {
		log.Printf("mailer consumer started: group=%s topic=%s workers=%d", group, orders.TopicOrderCreated, workers)
		if err := cons.Start(ctx, om.HandleOrderCreated); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down mailer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return def
	}
	return i
}
