package main

import (
	"context"
	"log"

	httpapi "brewpoint/analytics-svc/internal/api/http"
	"brewpoint/analytics-svc/internal/service"
	"brewpoint/analytics-svc/internal/storage"
	"brewpoint/config"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	store := storage.NewStore(db, rdb)
	if err := store.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	reader := config.NewKafkaReader("orders", "analytics-svc-consumer")
	defer reader.Close()

	consumer := service.NewConsumer(reader, store)
	go consumer.Start(context.Background())

	handler := httpapi.NewHandler(store)
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+config.GetEnv("PORT", "8082"), router)
}
