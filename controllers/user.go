package controllers

import (
	"net/http"

	"github.com/Jfdeev/reflora/models"

	"github.com/gin-gonic/gin"
)

// UpdateUser changes the caller's name and e-mail.
func (h *Handler) UpdateUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}
	user, err := h.guard.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// DeleteUser removes the caller's account and everything under it.
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.guard.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User account and all related data deleted successfully"})
}
