package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/idolchat/idolchat/internal/common"
	"github.com/idolchat/idolchat/internal/config"
	"github.com/idolchat/idolchat/internal/httpapi/handlers"
	"github.com/idolchat/idolchat/internal/httpapi/middleware"
	"github.com/idolchat/idolchat/internal/store/rabbitmq"
	"github.com/idolchat/idolchat/internal/store/redisstore"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, cfg config.Config, rds *redisstore.Store, rabbit *rabbitmq.Publisher) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())

	// all origins, preflight answered with an empty 200
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:              []string{"authorization", "x-client-info", "apikey", "content-type", "idempotency-key"},
		OptionsResponseStatusCode: http.StatusOK,
		MaxAge:                    12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.Use(middleware.RequestID())

	h := handlers.NewHandler(db, cfg, rds, rabbit)

	r.GET("/ping", h.Ping)

	// persona-gated completion relay (legacy wire contract, own auth)
	r.POST("/chat", h.RelayChat)

	// captcha + registration + auth
	r.POST("/captcha", h.SendCaptcha)
	r.POST("/users", h.CreateUser)
	r.POST("/login", h.Login)
	r.POST("/password/reset-request", h.RequestPasswordReset)
	r.POST("/password/reset", h.ConfirmPasswordReset)

	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	authGroup.GET("/me", h.Me)
	authGroup.GET("/personas", h.ListPersonas)
	authGroup.GET("/chat/:idol_id/messages", h.ListChatMessages)
	authGroup.POST("/chat/async", h.SendChatMessageAsync)
	authGroup.GET("/chat/jobs/:job_id", h.GetRelayJob)
	authGroup.GET("/subscription", h.GetSubscription)
	authGroup.POST("/subscription", h.CreateSubscription)
	authGroup.DELETE("/subscription", h.CancelSubscription)

	return r
}
