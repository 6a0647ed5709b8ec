package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/idolchat/idolchat/internal/ai"
	"github.com/idolchat/idolchat/internal/billing"
	"github.com/idolchat/idolchat/internal/chat"
	"github.com/idolchat/idolchat/internal/common"
	"github.com/idolchat/idolchat/internal/config"
	"github.com/idolchat/idolchat/internal/email"
	"github.com/idolchat/idolchat/internal/httpapi/middleware"
	"github.com/idolchat/idolchat/internal/persona"
	"github.com/idolchat/idolchat/internal/store/rabbitmq"
	"github.com/idolchat/idolchat/internal/store/redisstore"
	"gorm.io/gorm"
)

type Handler struct {
	DB          *gorm.DB
	Cfg         config.Config
	Redis       *redisstore.Store
	SMTPSetting email.SMTPConfig
	Personas    *persona.Registry
	ChatSvc     *chat.Service
	BillingSvc  *billing.Service
	Rabbit      *rabbitmq.Publisher
}

func NewHandler(db *gorm.DB, cfg config.Config, rds *redisstore.Store, rabbit *rabbitmq.Publisher) *Handler {
	provider := ai.NewOpenAIProvider(
		cfg.OpenAIBaseURL,
		cfg.OpenAIAPIKey,
		cfg.OpenAIModel,
		cfg.OpenAIMaxTokens,
		cfg.OpenAITemperature,
		time.Duration(cfg.OpenAITimeoutSecs)*time.Second,
	)

	registry := persona.Default()
	billingRepo := billing.NewRepo(db)
	chatSvc := chat.NewService(
		chat.NewRepo(db),
		registry,
		billing.NewChecker(billingRepo),
		rds,
		provider,
		chat.NewQuotas(cfg.RateLimitWindowMinutes, cfg.RateLimitFree, cfg.RateLimitPremium, cfg.RateLimitEnterprise),
	)

	return &Handler{
		DB:    db,
		Cfg:   cfg,
		Redis: rds,
		SMTPSetting: email.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		},
		Personas:   registry,
		ChatSvc:    chatSvc,
		BillingSvc: billing.NewService(billingRepo),
		Rabbit:     rabbit,
	}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}

func userIDFromContext(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
