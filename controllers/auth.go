package controllers

import (
	"errors"
	"net/http"

	"github.com/Jfdeev/reflora/middlewares"
	"github.com/Jfdeev/reflora/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates an account and signs the caller in.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err, "")
		return
	}

	user := models.User{Name: req.Name, Email: req.Email, Password: string(hashedPassword)}
	err = h.db.WithContext(c.Request.Context()).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
		return
	}
	if err != nil {
		respondError(c, err, "")
		return
	}

	h.sendToken(c, http.StatusCreated, user)
}

// Login authenticates a user and returns a JWT token.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		respondError(c, err, "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	h.sendToken(c, http.StatusOK, user)
}

func (h *Handler) sendToken(c *gin.Context, status int, user models.User) {
	token, err := middlewares.GenerateToken([]byte(h.cfg.JWTSecret), user.ID, h.cfg.JWTExpiration)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(status, gin.H{"token": token, "name": user.Name, "email": user.Email})
}
