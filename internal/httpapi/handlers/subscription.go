package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/idolchat/idolchat/internal/billing"
	"github.com/idolchat/idolchat/internal/common"
)

func (h *Handler) GetSubscription(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	sub, err := h.BillingSvc.Get(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, billing.ErrNoSubscriber) {
			// an account without a row is simply unsubscribed
			common.OK(c, gin.H{
				"tier":       billing.TierNone,
				"subscribed": false,
			})
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}

	common.OK(c, gin.H{
		"tier":       sub.Tier,
		"subscribed": sub.Subscribed,
		"expires_at": sub.ExpiresAt,
	})
}

type subscribeReq struct {
	Tier      string     `json:"tier" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// CreateSubscription records the outcome of a plan purchase. Payment
// itself happens with the external billing provider.
func (h *Handler) CreateSubscription(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req subscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	sub, err := h.BillingSvc.Subscribe(c.Request.Context(), uid, req.Tier, req.ExpiresAt)
	if err != nil {
		if errors.Is(err, billing.ErrUnknownTier) {
			common.Fail(c, http.StatusBadRequest, 10030, "unknown tier")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}

	common.OK(c, gin.H{
		"tier":       sub.Tier,
		"subscribed": sub.Subscribed,
		"expires_at": sub.ExpiresAt,
	})
}

func (h *Handler) CancelSubscription(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	if err := h.BillingSvc.Cancel(c.Request.Context(), uid); err != nil {
		if errors.Is(err, billing.ErrNoSubscriber) {
			common.Fail(c, http.StatusNotFound, 40404, "no subscription")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}
	common.OK(c, gin.H{"cancelled": true})
}
