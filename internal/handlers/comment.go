// internal/handlers/comment.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/webstore/backend/internal/services"
	"github.com/webstore/backend/internal/utils"
)

type CommentHandler struct {
	commentService *services.CommentService
	authService    *services.AuthService
}

func NewCommentHandler(commentService *services.CommentService, authService *services.AuthService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		authService:    authService,
	}
}

// GET /comments
func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.commentService.ListComments(c.Query("product"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"comments": comments,
	})
}

// POST /comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}

	actor, err := h.authService.GetUserByID(userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	var req services.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	comment, err := h.commentService.AddComment(actor, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"comment": comment,
	})
}

// DELETE /comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid comment ID", nil)
		return
	}

	actor, err := h.authService.GetUserByID(userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	product, err := h.commentService.RemoveComment(actor, commentID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}
