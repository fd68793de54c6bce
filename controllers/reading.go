package controllers

import (
	"net/http"

	"github.com/Jfdeev/reflora/models"

	"github.com/gin-gonic/gin"
)

const msgReadingNotFound = "Sensor data not found"

// CreateReading stores a reading for an owned sensor and returns the alerts
// it raised.
func (h *Handler) CreateReading(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.MetricsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}
	result, err := h.ingestor.IngestForUser(c.Request.Context(), userID, sensorID, input)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Data stored and alerts generated",
		"reading": result.Reading,
		"alerts":  result.Alerts,
	})
}

func (h *Handler) ListReadings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sensorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	readings, err := h.guard.ListReadings(c.Request.Context(), userID, sensorID)
	if err != nil {
		respondError(c, err, msgSensorNotFound)
		return
	}
	if len(readings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": msgReadingNotFound})
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (h *Handler) GetReading(c *gin.Context) {
	userID, sensorID, readingID, ok := readingParams(c)
	if !ok {
		return
	}
	reading, err := h.guard.ResolveOwnedReading(c.Request.Context(), userID, sensorID, readingID)
	if err != nil {
		respondError(c, err, msgReadingNotFound)
		return
	}
	c.JSON(http.StatusOK, reading)
}

// UpdateReading overwrites the supplied metrics; omitted ones are kept.
func (h *Handler) UpdateReading(c *gin.Context) {
	userID, sensorID, readingID, ok := readingParams(c)
	if !ok {
		return
	}
	var patch models.ReadingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingFields})
		return
	}
	reading, err := h.ingestor.UpdateReading(c.Request.Context(), userID, sensorID, readingID, patch)
	if err != nil {
		respondError(c, err, msgReadingNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sensor data updated successfully", "reading": reading})
}

func (h *Handler) DeleteReading(c *gin.Context) {
	userID, sensorID, readingID, ok := readingParams(c)
	if !ok {
		return
	}
	if err := h.guard.DeleteReading(c.Request.Context(), userID, sensorID, readingID); err != nil {
		respondError(c, err, msgReadingNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sensor data deleted successfully"})
}

func readingParams(c *gin.Context) (userID, sensorID, readingID uint, ok bool) {
	if userID, ok = currentUser(c); !ok {
		return
	}
	if sensorID, ok = parseID(c, "id"); !ok {
		return
	}
	readingID, ok = parseID(c, "dataId")
	return
}
