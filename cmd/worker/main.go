package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/idolchat/idolchat/internal/ai"
	"github.com/idolchat/idolchat/internal/billing"
	"github.com/idolchat/idolchat/internal/chat"
	"github.com/idolchat/idolchat/internal/config"
	"github.com/idolchat/idolchat/internal/db"
	"github.com/idolchat/idolchat/internal/persona"
	"github.com/idolchat/idolchat/internal/store/rabbitmq"
	"github.com/idolchat/idolchat/internal/store/redisstore"
)

const workerCount = 4

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rds.Ping(pingCtx); err != nil {
		cancelPing()
		log.Fatalf("worker: ping redis: %v", err)
	}
	cancelPing()
	defer rds.Close()

	reg := ai.NewRegistry()
	reg.Register("openai", func(model string) (ai.Provider, error) {
		return ai.NewOpenAIProvider(
			cfg.OpenAIBaseURL,
			cfg.OpenAIAPIKey,
			model,
			cfg.OpenAIMaxTokens,
			cfg.OpenAITemperature,
			time.Duration(cfg.OpenAITimeoutSecs)*time.Second,
		), nil
	})
	provider, err := reg.Build("openai", cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("worker: provider: %v", err)
	}

	billingRepo := billing.NewRepo(gdb)
	svc := chat.NewService(
		chat.NewRepo(gdb),
		persona.Default(),
		billing.NewChecker(billingRepo),
		rds,
		provider,
		chat.NewQuotas(cfg.RateLimitWindowMinutes, cfg.RateLimitFree, cfg.RateLimitPremium, cfg.RateLimitEnterprise),
	)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("worker: dial rabbit: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("worker: open channel: %v", err)
	}
	defer ch.Close()

	// The publisher owns queue topology; the worker only verifies it exists.
	if _, err := ch.QueueDeclarePassive(cfg.RabbitQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("worker: queue %q not declared: %v", cfg.RabbitQueue, err)
	}
	if err := ch.Qos(workerCount, 0, false); err != nil {
		log.Fatalf("worker: set qos: %v", err)
	}

	deliveries, err := ch.Consume(cfg.RabbitQueue, "relay-worker", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("worker: consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs := make(chan amqp.Delivery)
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range jobs {
				handle(ctx, svc, d)
			}
		}()
	}

	log.Printf("worker: consuming %q with %d workers", cfg.RabbitQueue, workerCount)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case d, ok := <-deliveries:
			if !ok {
				break loop
			}
			jobs <- d
		}
	}

	close(jobs)
	wg.Wait()
	log.Println("worker: shut down")
}

func handle(ctx context.Context, svc *chat.Service, d amqp.Delivery) {
	var msg rabbitmq.JobMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Printf("worker: drop malformed job message: %v", err)
		_ = d.Nack(false, false)
		return
	}
	if err := svc.ProcessJob(ctx, msg.JobID); err != nil {
		log.Printf("worker: job %s failed: %v", msg.JobID, err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
