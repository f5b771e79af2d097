package handler

import (
	"net/http"
	"strconv"

	"sugoroku/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type ActionInput struct {
	Action    string `json:"action" binding:"required,oneof=dice_roll"`
	Effect    string `json:"effect" binding:"required,oneof=move_forward move_backward"`
	EffectNum int    `json:"effect_num" binding:"required,min=1,max=6"`
}

type ActionResponse struct {
	Effect    string `json:"effect"`
	EffectNum int    `json:"effect_num"`
	Position  int    `json:"position"`
	Finished  bool   `json:"finished"`
	GameEnded bool   `json:"game_ended"`
}

type PositionResponse struct {
	UserID   uint `json:"user_id"`
	Position int  `json:"position"`
}

// endregion

// StartGame godoc
// @Summary      Start the game (owner only)
// @Description  Assigns a random turn order to every member plus the virus slot and flips the room to busy.
// @Tags         sugoroku
// @Produce      json
// @Security     BearerAuth
// @Param        uname path string true "Room uname"
// @Success      200 {object} map[string]string "{"message": "Game started"}"
// @Failure      403 {object} ErrorResponse "Only the owner can start the game"
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Room is not open"
// @Router       /rooms/{uname}/start [post]
func StartGame(c *gin.Context) {
	userID, _ := c.Get("userID")

	if err := Engine.Start(c.Request.Context(), c.Param("uname"), userID.(uint)); err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game started"})
}

// ResolveAction godoc
// @Summary      Resolve a turn action
// @Description  Applies a dice roll for the caller, chains the landed space's effect, and advances the turn.
// @Tags         sugoroku
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uname path string true "Room uname"
// @Param        input body ActionInput true "Declared action"
// @Success      200 {object} ActionResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Not this participant's turn"
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Game is not in progress"
// @Router       /rooms/{uname}/actions [post]
func ResolveAction(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input ActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := Engine.ResolveAction(
		c.Request.Context(),
		c.Param("uname"),
		userID.(uint),
		models.ActionKind(input.Action),
		models.SpaceEffect(input.Effect),
		input.EffectNum,
	)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, ActionResponse{
		Effect:    string(result.AppliedEffect),
		EffectNum: result.EffectNum,
		Position:  result.Position,
		Finished:  result.Finished,
		GameEnded: result.GameEnded,
	})
}

// GetPosition godoc
// @Summary      Get a participant's token position
// @Tags         sugoroku
// @Produce      json
// @Security     BearerAuth
// @Param        uname  path string true "Room uname"
// @Param        userID path int    true "Participant user ID"
// @Success      200 {object} PositionResponse
// @Failure      404 {object} ErrorResponse
// @Router       /rooms/{uname}/positions/{userID} [get]
func GetPosition(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	room, err := Engine.FindByName(c.Request.Context(), c.Param("uname"))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	member, err := Engine.IsMember(c.Request.Context(), room.ID, viewerID.(uint))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if !member {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	targetID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	position, err := Engine.GetPosition(c.Request.Context(), room.Uname, uint(targetID))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, PositionResponse{UserID: uint(targetID), Position: position})
}
