package controllers

import (
	"errors"
	"net/http"

	"github.com/Jfdeev/reflora/ingest"
	"github.com/Jfdeev/reflora/models"
	"github.com/Jfdeev/reflora/ownership"

	"github.com/gin-gonic/gin"
)

// ReceiveWebhookData ingests a reading posted by a field device. The sensor
// token in ?token= is the only credential and is checked before the body.
func (h *Handler) ReceiveWebhookData(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token missing"})
		return
	}
	if _, err := h.guard.SensorByToken(c.Request.Context(), token); err != nil {
		if errors.Is(err, ownership.ErrNotFound) {
			err = ingest.ErrUnknownToken
		}
		respondError(c, err, msgSensorNotFound)
		return
	}
	var req models.WebhookReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}
	result, err := h.ingestor.IngestByToken(c.Request.Context(), token, req.MetricsInput)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Data received successfully",
		"reading": result.Reading,
		"alerts":  result.Alerts,
	})
}
