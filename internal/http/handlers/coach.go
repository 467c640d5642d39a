package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightsteps/brightsteps-backend/internal/http/response"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

type CoachHandler struct {
	coachService services.CoachService
}

func NewCoachHandler(coachService services.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

func (h *CoachHandler) Cards(c *gin.Context) {
	childID, err := parseChildID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_child_id", err)
		return
	}
	cards, err := h.coachService.CardsFor(c.Request.Context(), childID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "cards_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"cards": cards})
}

// Impression callbacks. The card id is opaque; an id from a stale cycle is
// accepted and ignored.

func (h *CoachHandler) Visible(c *gin.Context) {
	cardID, err := parseCardID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_card_id", err)
		return
	}
	h.coachService.CardVisible(c.Request.Context(), cardID)
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *CoachHandler) Hidden(c *gin.Context) {
	cardID, err := parseCardID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_card_id", err)
		return
	}
	h.coachService.CardHidden(c.Request.Context(), cardID)
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *CoachHandler) Interaction(c *gin.Context) {
	cardID, err := parseCardID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_card_id", err)
		return
	}
	h.coachService.CardInteraction(c.Request.Context(), cardID)
	response.RespondOK(c, gin.H{"ok": true})
}

func parseCardID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", fmt.Errorf("missing card id")
	}
	return id, nil
}
