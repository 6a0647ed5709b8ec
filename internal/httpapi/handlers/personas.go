package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/idolchat/idolchat/internal/common"
)

// ListPersonas feeds the dashboard: public persona metadata only, the
// system prompts never leave the server.
func (h *Handler) ListPersonas(c *gin.Context) {
	type personaView struct {
		ID           string `json:"id"`
		DisplayName  string `json:"display_name"`
		IsFree       bool   `json:"is_free"`
		RequiredTier string `json:"required_tier"`
	}

	all := h.Personas.All()
	out := make([]personaView, 0, len(all))
	for _, p := range all {
		out = append(out, personaView{
			ID:           p.ID,
			DisplayName:  p.DisplayName,
			IsFree:       p.IsFree,
			RequiredTier: string(p.RequiredTier),
		})
	}
	common.OK(c, gin.H{"personas": out})
}
