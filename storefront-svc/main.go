package main

import (
	"log"
	"time"

	"brewpoint/config"
	httpapi "brewpoint/storefront-svc/internal/api/http"
	"brewpoint/storefront-svc/internal/service"
	"brewpoint/storefront-svc/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	kafkaWriter := config.NewKafkaWriter("orders")
	defer kafkaWriter.Close()

	qrGen := service.TableQRGenerator{
		BaseURL: config.GetEnv("STOREFRONT_BASE_URL", "http://localhost:8080"),
	}

	catalogSvc := service.NewCatalogService(repo, repo, qrGen)
	cartSvc := service.NewCartService(storage.NewRedisCartStorage(rdb, 7*24*time.Hour))
	checkoutSvc := service.NewCheckoutService(repo, storage.NewKafkaPublisher(kafkaWriter))

	handler := httpapi.NewHandler(catalogSvc, cartSvc, checkoutSvc)
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+config.GetEnv("PORT", "8081"), router)
}
