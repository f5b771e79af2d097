package handler

import (
	"net/http"
	"strconv"

	"sugoroku/backend/internal/database"
	"sugoroku/backend/internal/models"
	"sugoroku/backend/internal/sugoroku"

	"github.com/gin-gonic/gin"
)

// Engine is the room/game session engine the handlers delegate to. Set
// once from main before the router starts serving.
var Engine *sugoroku.Engine

// region --- DTOs ---

type RoomInput struct {
	Name           string `json:"name" binding:"required,max=255"`
	BoardID        uint   `json:"board_id" binding:"required"`
	MaxMemberCount int    `json:"max_member_count" binding:"required,min=1,max=8"`
}

type RoomResponse struct {
	ID             uint   `json:"id"`
	Uname          string `json:"uname"`
	Name           string `json:"name"`
	OwnerID        uint   `json:"owner_id"`
	BoardID        uint   `json:"board_id"`
	Status         string `json:"status"`
	MaxMemberCount int    `json:"max_member_count"`
	MemberCount    int    `json:"member_count"`
}

type SpaceResponse struct {
	Position  int    `json:"position"`
	Effect    string `json:"effect"`
	EffectNum int    `json:"effect_num"`
}

type RoomDetailResponse struct {
	RoomResponse
	GoalPosition int              `json:"goal_position"`
	Spaces       []SpaceResponse  `json:"spaces"`
	Members      []MemberResponse `json:"members"`
}

type MemberResponse struct {
	UserID    uint   `json:"user_id"`
	Nickname  string `json:"nickname"`
	TurnOrder *int   `json:"turn_order"`
	Position  int    `json:"position"`
	Finished  bool   `json:"finished"`
}

func newRoomResponse(room models.Room) RoomResponse {
	return RoomResponse{
		ID:             room.ID,
		Uname:          room.Uname,
		Name:           room.Name,
		OwnerID:        room.OwnerID,
		BoardID:        room.BoardID,
		Status:         string(room.Status),
		MaxMemberCount: room.MaxMemberCount,
		MemberCount:    room.MemberCount,
	}
}

// endregion

// ListRooms godoc
// @Summary      List open rooms
// @Description  Gets a paginated list of rooms accepting joins, oldest first. Works with or without a token.
// @Tags         rooms
// @Produce      json
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[RoomResponse]
// @Router       /rooms [get]
func ListRooms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	query := database.DB.
		Where("status = ?", models.RoomStatusOpen).
		Order("created_at ASC")

	paginated, err := Paginate[models.Room](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rooms"})
		return
	}

	response := make([]RoomResponse, 0, len(paginated.Data))
	for _, room := range paginated.Data {
		response = append(response, newRoomResponse(room))
	}

	c.JSON(http.StatusOK, PaginatedResponse[RoomResponse]{Data: response, Meta: paginated.Meta})
}

// CreateRoom godoc
// @Summary      Create a new room
// @Description  Opens a room, making the creator the owner and first member.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RoomInput true "Room Info"
// @Success      201  {object}  RoomResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Board not found"
// @Failure      409  {object}  ErrorResponse "Owner already has an open room, or the active-room ceiling was reached"
// @Router       /rooms [post]
func CreateRoom(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := Engine.CreateRoom(c.Request.Context(), userID.(uint), input.Name, input.BoardID, input.MaxMemberCount)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newRoomResponse(*room))
}

// GetRoom godoc
// @Summary      Get a room by uname
// @Description  Gets full room details including the board track. Members only; others get 404.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        uname path string true "Room uname"
// @Success      200 {object} RoomDetailResponse
// @Failure      404 {object} ErrorResponse
// @Router       /rooms/{uname} [get]
func GetRoom(c *gin.Context) {
	userID, _ := c.Get("userID")

	room, err := Engine.FindByName(c.Request.Context(), c.Param("uname"))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	member, err := Engine.IsMember(c.Request.Context(), room.ID, userID.(uint))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if !member {
		// Non-members cannot observe the room at all.
		c.JSON(http.StatusNotFound, gin.H{"error": sugoroku.ErrRoomNotFound.Error()})
		return
	}

	var board models.Board
	if err := database.DB.Preload("Spaces").First(&board, room.BoardID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}

	var memberships []models.Membership
	if err := database.DB.Preload("User").Where("room_id = ?", room.ID).Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load members"})
		return
	}

	detail := RoomDetailResponse{
		RoomResponse: newRoomResponse(*room),
		GoalPosition: board.GoalPosition,
	}
	for _, space := range board.Spaces {
		detail.Spaces = append(detail.Spaces, SpaceResponse{
			Position:  space.Position,
			Effect:    string(space.Effect),
			EffectNum: space.EffectNum,
		})
	}
	for _, m := range memberships {
		detail.Members = append(detail.Members, MemberResponse{
			UserID:    m.UserID,
			Nickname:  m.User.Nickname,
			TurnOrder: m.TurnOrder,
			Position:  m.Position,
			Finished:  m.Finished,
		})
	}

	c.JSON(http.StatusOK, detail)
}

// JoinRoom godoc
// @Summary      Join a room
// @Description  Joins an open room. Joining a room you are already in succeeds unchanged.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        uname path string true "Room uname"
// @Success      200 {object} RoomResponse
// @Failure      403 {object} ErrorResponse "Already in another live room"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Failure      409 {object} ErrorResponse "Room is full or no longer open"
// @Router       /rooms/{uname}/join [post]
func JoinRoom(c *gin.Context) {
	userID, _ := c.Get("userID")

	room, err := Engine.JoinRoom(c.Request.Context(), userID.(uint), c.Param("uname"))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRoomResponse(*room))
}

// LeaveRoom godoc
// @Summary      Leave a room before the game starts
// @Description  Removes the caller's membership. The owner leaving abandons the room.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        uname path string true "Room uname"
// @Success      200 {object} map[string]string "{"message": "Left room successfully"}"
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Game already started"
// @Router       /rooms/{uname}/leave [post]
func LeaveRoom(c *gin.Context) {
	userID, _ := c.Get("userID")

	if err := Engine.LeaveRoom(c.Request.Context(), userID.(uint), c.Param("uname")); err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left room successfully"})
}
