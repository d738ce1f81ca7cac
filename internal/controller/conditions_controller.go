package controller

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/service"
)

// ConditionsController handles greenhouse condition report requests
type ConditionsController struct {
	conditionsService service.ConditionsService
	logger            *slog.Logger
}

// NewConditionsController creates a new conditions controller
func NewConditionsController(conditionsService service.ConditionsService, logger *slog.Logger) *ConditionsController {
	return &ConditionsController{
		conditionsService: conditionsService,
		logger:            logger,
	}
}

// GetGreenhouseConditions handles GET /invernaderos/:invernadero_id/condiciones
// Query parameters:
//   - horas (optional): trailing window in hours, 1 to 168 (default: 24)
func (c *ConditionsController) GetGreenhouseConditions(ctx *gin.Context) {
	startTime := time.Now()

	greenhouseID, ok := pathID(ctx, "invernadero_id")
	if !ok {
		return
	}

	hoursStr := ctx.DefaultQuery("horas", "24")
	hours, err := strconv.Atoi(hoursStr)
	if err != nil || hours < 1 || hours > 168 {
		c.logger.Warn("invalid horas parameter",
			"horas", hoursStr,
			"invernadero_id", greenhouseID,
		)
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid horas",
			"message": "horas debe ser un entero entre 1 y 168",
		})
		return
	}

	exists, err := c.conditionsService.GreenhouseExists(greenhouseID)
	if err != nil {
		c.logger.Error("failed to check greenhouse existence",
			"invernadero_id", greenhouseID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Error interno del servidor",
		})
		return
	}
	if !exists {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": fmt.Sprintf("Invernadero %d no encontrado", greenhouseID),
		})
		return
	}

	report, err := c.conditionsService.GetGreenhouseConditions(greenhouseID, time.Duration(hours)*time.Hour)
	if err != nil {
		latency := time.Since(startTime)
		c.logger.Error("failed to build conditions report",
			"invernadero_id", greenhouseID,
			"horas", hours,
			"error", err.Error(),
			"latency_ms", latency.Milliseconds(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Error interno del servidor",
		})
		return
	}

	latency := time.Since(startTime)
	c.logger.Info("conditions report completed",
		"invernadero_id", greenhouseID,
		"horas", hours,
		"sensor_types", len(report.Readings),
		"latency_ms", latency.Milliseconds(),
	)

	ctx.JSON(http.StatusOK, report)
}
