package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/idolchat/idolchat/internal/config"
	"github.com/idolchat/idolchat/internal/db"
	"github.com/idolchat/idolchat/internal/httpapi"
	"github.com/idolchat/idolchat/internal/store/rabbitmq"
	"github.com/idolchat/idolchat/internal/store/redisstore"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rds.Ping(pingCtx); err != nil {
		cancel()
		log.Fatalf("redis ping: %v", err)
	}
	cancel()

	rabbit, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Fatalf("rabbit setup: %v", err)
	}
	defer rabbit.Close()

	r := httpapi.NewRouter(gdb, cfg, rds, rabbit)

	log.Printf("server listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
