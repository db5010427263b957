package http

import (
	"net/http"

	"inkwell/internal/entity"
	"inkwell/internal/usecase"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUseCase usecase.InteractionUseCase
}

func NewInteractionHandler(interactionUseCase usecase.InteractionUseCase) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
	}
}

type ToggleLikeRequest struct {
	Type string `json:"type" binding:"required,oneof=up down"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// ToggleLike godoc
// @Summary      Toggle a vote on a post
// @Description  No existing vote creates one, repeating the same type retracts it, a different type switches it.
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body ToggleLikeRequest true "Vote type"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	like, err := h.interactionUseCase.ToggleLike(c.Param("id"), userID, entity.LikeType(req.Type))
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"like": like})
}

// CountLikes godoc
// @Summary      Count votes of one type on a post
// @Tags         interactions
// @Produce      json
// @Param        id   path  string true "Post ID"
// @Param        type query string false "Vote type, up or down" default(up)
// @Success      200  {object}  map[string]int64
// @Router       /posts/{id}/likes [get]
func (h *InteractionHandler) CountLikes(c *gin.Context) {
	likeType := entity.LikeType(c.DefaultQuery("type", string(entity.LikeUp)))
	if likeType != entity.LikeUp && likeType != entity.LikeDown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be up or down"})
		return
	}

	count, err := h.interactionUseCase.CountLikes(c.Param("id"), likeType)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetComments godoc
// @Summary      List a post's comments, newest first
// @Tags         interactions
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string][]entity.Comment
// @Router       /posts/{id}/comments [get]
func (h *InteractionHandler) GetComments(c *gin.Context) {
	comments, err := h.interactionUseCase.GetComments(c.Param("id"))
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body CreateCommentRequest true "Comment body"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [post]
func (h *InteractionHandler) CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.interactionUseCase.CreateComment(c.Param("id"), userID, req.Content)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}
