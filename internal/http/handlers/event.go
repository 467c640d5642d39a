package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/http/response"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (eh *EventHandler) Log(c *gin.Context) {
	childID, err := parseChildID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_child_id", err)
		return
	}
	var req struct {
		BehaviorTypeID uuid.UUID  `json:"behavior_type_id"`
		Points         *int       `json:"points"`
		OccurredAt     *time.Time `json:"occurred_at"`
		Note           string     `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ev, err := eh.eventService.Log(c.Request.Context(), childID, req.BehaviorTypeID, req.Points, req.OccurredAt, req.Note)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "log_event_failed", err)
		return
	}
	response.RespondCreated(c, ev)
}

func (eh *EventHandler) ListWindow(c *gin.Context) {
	childID, err := parseChildID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_child_id", err)
		return
	}
	to := time.Now().UTC()
	from := to.Add(-30 * 24 * time.Hour)
	if raw := c.Query("from"); raw != "" {
		if t, pErr := time.Parse(time.RFC3339, raw); pErr == nil {
			from = t.UTC()
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, pErr := time.Parse(time.RFC3339, raw); pErr == nil {
			to = t.UTC()
		}
	}
	events, err := eh.eventService.ListWindow(c.Request.Context(), childID, from, to)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "list_events_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}
