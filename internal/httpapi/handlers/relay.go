package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/idolchat/idolchat/internal/auth"
	"github.com/idolchat/idolchat/internal/chat"
)

type relayReq struct {
	Message string `json:"message"`
	IdolID  string `json:"idolId"`
}

// RelayChat is the persona-gated completion relay. It keeps the legacy
// wire contract of the function it replaces: 200 {"response": text} on
// success, 500 {"error": text} on every failure including auth, so it
// does its own bearer check instead of using AuthRequired.
func (h *Handler) RelayChat(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if header == "" || token == "" || token == header {
		relayFail(c, chat.ErrUnauthenticated)
		return
	}
	uid, err := auth.ParseJWT(token, h.Cfg.JWTSecret)
	if err != nil {
		relayFail(c, chat.ErrUnauthenticated)
		return
	}

	var req relayReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" || req.IdolID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "message and idolId are required"})
		return
	}

	reply, err := h.ChatSvc.Relay(c.Request.Context(), uid, req.IdolID, req.Message)
	if err != nil {
		// the reply was computed; the missing rows are logged inside
		// the service and do not unwind the response
		if errors.Is(err, chat.ErrPersistence) {
			c.JSON(http.StatusOK, gin.H{"response": reply})
			return
		}
		relayFail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func relayFail(c *gin.Context, err error) {
	msg := "internal error"
	switch {
	case errors.Is(err, chat.ErrUnauthenticated):
		msg = chat.ErrUnauthenticated.Error()
	case errors.Is(err, chat.ErrUnknownPersona):
		msg = chat.ErrUnknownPersona.Error()
	case errors.Is(err, chat.ErrEntitlementDenied):
		msg = chat.ErrEntitlementDenied.Error()
	case errors.Is(err, chat.ErrRateLimited):
		msg = chat.ErrRateLimited.Error()
	case errors.Is(err, chat.ErrUpstreamCompletion):
		msg = chat.ErrUpstreamCompletion.Error()
	default:
		log.Printf("[RelayChat] %v", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
