package controllers

import (
	"net/http"

	"github.com/Jfdeev/reflora/models"

	"github.com/gin-gonic/gin"
)

// CreateSensor registers a sensor owned by the caller.
func (h *Handler) CreateSensor(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.SensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}
	sensor, err := h.guard.CreateSensor(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sensor registered successfully", "sensor": sensor})
}

// ProvisionSensor registers an unowned sensor that reports through its
// webhook token until a user claims it.
func (h *Handler) ProvisionSensor(c *gin.Context) {
	var req models.SensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}
	sensor, err := h.guard.ProvisionSensor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"sensorId":     sensor.ID,
		"webhookToken": sensor.WebhookToken,
	})
}

// ClaimSensor binds an unowned sensor to the caller.
func (h *Handler) ClaimSensor(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sensor, err := h.guard.ClaimSensor(c.Request.Context(), userID, sensorID)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sensor assigned to user successfully", "sensor": sensor})
}

func (h *Handler) ListSensors(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensors, err := h.guard.ListSensors(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	if len(sensors) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No sensors found"})
		return
	}
	c.JSON(http.StatusOK, sensors)
}

func (h *Handler) GetSensor(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sensor, err := h.guard.ResolveOwnedSensor(c.Request.Context(), userID, sensorID)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	c.JSON(http.StatusOK, sensor)
}

func (h *Handler) UpdateSensor(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.SensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}
	sensor, err := h.guard.UpdateSensor(c.Request.Context(), userID, sensorID, req)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sensor updated successfully", "sensor": sensor})
}

// DeleteSensor removes the sensor with its readings and alerts.
func (h *Handler) DeleteSensor(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.guard.DeleteSensor(c.Request.Context(), userID, sensorID); err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sensor deleted successfully"})
}
