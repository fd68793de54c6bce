package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Jfdeev/reflora/config"
	"github.com/Jfdeev/reflora/ingest"
	"github.com/Jfdeev/reflora/middlewares"
	"github.com/Jfdeev/reflora/ownership"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgMissingFields  = "Missing or invalid fields"
	msgSensorNotFound = "Sensor not found"
	msgServerError    = "Internal server error"
)

// Handler carries what the route handlers share. Every sensor, reading and
// alert access goes through guard or ingestor.
type Handler struct {
	db       *gorm.DB
	guard    *ownership.Guard
	ingestor *ingest.Ingestor
	cfg      *config.Config
}

func NewHandler(db *gorm.DB, guard *ownership.Guard, ingestor *ingest.Ingestor, cfg *config.Config) *Handler {
	return &Handler{db: db, guard: guard, ingestor: ingestor, cfg: cfg}
}

// currentUser returns the authenticated caller or answers 401.
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
	}
	return userID, ok
}

// parseID reads a positive numeric path parameter or answers 400.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondError maps domain errors to a status code. notFound is the message
// used for ownership.ErrNotFound, which also covers records owned by others.
func respondError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, ownership.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound})
	case errors.Is(err, ownership.ErrNotClaimable):
		c.JSON(http.StatusNotFound, gin.H{"message": "Sensor not found or already assigned to a user"})
	case errors.Is(err, ownership.ErrUnknownUser):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User no longer exists"})
	case errors.Is(err, ownership.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
	case errors.Is(err, ingest.ErrMissingMetrics):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
	case errors.Is(err, ingest.ErrUnknownToken):
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
	}
}
