package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/catalog"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/config"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/httpx"
	kafkax "github.com/GrandsonfrmO/galaxyshop-backend/internal/kafka"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/maillog"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/mailer"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/orders"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/postgres"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/redisx"
	"github.com/GrandsonfrmO/galaxyshop-backend/internal/zones"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for order.created
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	prod.Start(ctx)

	zoneRepo := &zones.Repo{DB: db}
	productRepo := &catalog.Repo{DB: db}
	logRepo := &maillog.Repo{DB: db}

	svc := &orders.Service{
		Store:    &orders.Repo{DB: db},
		Zones:    zoneRepo,
		Catalog:  productRepo,
		Producer: prod,
		Name:     cfg.ServiceName,
	}
	dispatcher := &mailer.Dispatcher{
		Provider: mailer.NewClient(cfg.ResendAPIKey),
		Log:      logRepo,
		From:     cfg.MailFrom,
	}

	router := httpx.NewRouter()
	(&httpx.API{
		Orders:         httpx.NewOrdersHandler(svc, rdb),
		Zones:          httpx.NewZonesHandler(zoneRepo),
		Products:       &httpx.ProductsHandler{Store: productRepo},
		Emails:         httpx.NewEmailsHandler(dispatcher, logRepo),
		AdminToken:     cfg.AdminToken,
		InternalSecret: cfg.InternalSecret,
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush pending order.created events
	prod.WaitClosed()
}
