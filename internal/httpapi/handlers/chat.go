package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/idolchat/idolchat/internal/chat"
	"github.com/idolchat/idolchat/internal/common"
	"gorm.io/gorm"
)

func (h *Handler) ListChatMessages(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	idolID := c.Param("idol_id")
	if _, ok := h.Personas.Lookup(idolID); !ok {
		common.Fail(c, http.StatusNotFound, 40403, "idol not found")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	var beforeID uint64
	if v := c.Query("before_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			beforeID = n
		}
	}

	msgs, err := h.ChatSvc.ListMessages(c.Request.Context(), uid, idolID, limit, beforeID)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to list messages")
		return
	}

	var nextBeforeID uint64
	if len(msgs) > 0 {
		nextBeforeID = msgs[len(msgs)-1].ID
	}

	common.OK(c, gin.H{
		"messages":       msgs,
		"next_before_id": nextBeforeID,
	})
}

type asyncRelayReq struct {
	IdolID  string `json:"idol_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SendChatMessageAsync runs the admission gate immediately and hands
// the completion call to the worker.
func (h *Handler) SendChatMessageAsync(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req asyncRelayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	idempoKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(idempoKey) > 128 {
		common.Fail(c, http.StatusBadRequest, 10003, "idempotency key too long")
		return
	}
	var idempoKeyPtr *string
	if idempoKey != "" {
		idempoKeyPtr = &idempoKey
	}

	job, created, err := h.ChatSvc.EnqueueRelay(c.Request.Context(), uid, req.IdolID, req.Message, idempoKeyPtr)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrUnknownPersona):
			common.Fail(c, http.StatusNotFound, 40403, "idol not found")
		case errors.Is(err, chat.ErrEntitlementDenied):
			common.Fail(c, http.StatusForbidden, 40301, "subscription required")
		case errors.Is(err, chat.ErrRateLimited):
			common.Fail(c, http.StatusTooManyRequests, 42901, "rate limit exceeded")
		default:
			log.Printf("[SendChatMessageAsync] enqueue failed uid=%d idol=%s err=%v", uid, req.IdolID, err)
			common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		}
		return
	}

	// enqueue only when a new job was created
	if created {
		if err := h.Rabbit.PublishJob(c.Request.Context(), job.ID); err != nil {
			log.Printf("[SendChatMessageAsync] publish failed uid=%d job=%s err=%v", uid, job.ID, err)
			common.Fail(c, http.StatusInternalServerError, 50002, "enqueue failed")
			return
		}
	}

	common.OK(c, gin.H{"job_id": job.ID})
}

func (h *Handler) GetRelayJob(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}
	jobID := c.Param("job_id")
	if jobID == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "job_id required")
		return
	}

	j, err := h.ChatSvc.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	if j.UserID != uid {
		// hide existence
		common.Fail(c, http.StatusNotFound, 40402, "job not found")
		return
	}

	common.OK(c, gin.H{
		"job": gin.H{
			"id":                j.ID,
			"idol_id":           j.IdolID,
			"status":            j.Status,
			"result_message_id": j.ResultMessageID,
			"error":             j.Error,
			"created_at":        j.CreatedAt,
			"updated_at":        j.UpdatedAt,
		},
	})
}
