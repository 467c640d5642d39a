package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/http/response"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

type ChildHandler struct {
	familyService services.FamilyService
}

func NewChildHandler(familyService services.FamilyService) *ChildHandler {
	return &ChildHandler{familyService: familyService}
}

func (ch *ChildHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		AvatarColor string `json:"avatar_color"`
		BirthYear   int    `json:"birth_year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	child, err := ch.familyService.CreateChild(c.Request.Context(), req.Name, req.AvatarColor, req.BirthYear)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_child_failed", err)
		return
	}
	response.RespondCreated(c, child)
}

func (ch *ChildHandler) List(c *gin.Context) {
	children, err := ch.familyService.ListChildren(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "list_children_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"children": children})
}

func (ch *ChildHandler) ListBehaviorTypes(c *gin.Context) {
	bts, err := ch.familyService.ListBehaviorTypes(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "list_behavior_types_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"behavior_types": bts})
}

func (ch *ChildHandler) SetGoal(c *gin.Context) {
	childID, err := parseChildID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_child_id", err)
		return
	}
	var req struct {
		Title        string `json:"title"`
		TargetPoints int    `json:"target_points"`
		Deadline     string `json:"deadline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	goal, err := ch.familyService.SetGoal(c.Request.Context(), childID, req.Title, req.TargetPoints, req.Deadline)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "set_goal_failed", err)
		return
	}
	response.RespondCreated(c, goal)
}

func (ch *ChildHandler) ActiveGoal(c *gin.Context) {
	childID, err := parseChildID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_child_id", err)
		return
	}
	goal, err := ch.familyService.ActiveGoal(c.Request.Context(), childID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "goal_lookup_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"goal": goal})
}

func parseChildID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid child id")
	}
	return id, nil
}
