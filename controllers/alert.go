package controllers

import (
	"net/http"

	"github.com/Jfdeev/reflora/models"

	"github.com/gin-gonic/gin"
)

const msgAlertNotFound = "Alert not found"

// CreateAlert records a manual alert on an owned sensor.
func (h *Handler) CreateAlert(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.AlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}
	alert, err := h.guard.CreateAlert(c.Request.Context(), userID, sensorID, req)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Alert registered successfully", "alert": alert})
}

func (h *Handler) ListAlerts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	alerts, err := h.guard.ListAlerts(c.Request.Context(), userID, sensorID)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	if len(alerts) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No alerts found for this sensor"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *Handler) GetAlert(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	alertID, ok := parseID(c, "alertId")
	if !ok {
		return
	}
	alert, err := h.guard.SensorAlert(c.Request.Context(), userID, sensorID, alertID)
	if err != nil {
		respondError(c, err, msgAlertNotFound)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *Handler) UpdateAlert(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	alertID, ok := parseID(c, "alertId")
	if !ok {
		return
	}
	var req models.AlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}
	alert, err := h.guard.UpdateAlert(c.Request.Context(), userID, alertID, req)
	if err != nil {
		respondError(c, err, msgAlertNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alert updated successfully", "alert": alert})
}

func (h *Handler) DeleteAlert(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	alertID, ok := parseID(c, "alertId")
	if !ok {
		return
	}
	if err := h.guard.DeleteAlert(c.Request.Context(), userID, alertID); err != nil {
		respondError(c, err, msgAlertNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alert deleted"})
}
