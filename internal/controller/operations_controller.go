package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/repository"
)

// OperationsController handles the time-series endpoints: measurements,
// actuator actions and irrigation recommendations.
type OperationsController struct {
	operations repository.OperationsRepository
	logger     *slog.Logger
}

// NewOperationsController creates a new operations controller
func NewOperationsController(operations repository.OperationsRepository, logger *slog.Logger) *OperationsController {
	return &OperationsController{operations: operations, logger: logger}
}

// --- Measurements ---

// GetMeasurement handles GET /mediciones/:medicion_id
func (c *OperationsController) GetMeasurement(ctx *gin.Context) {
	id, ok := pathID(ctx, "medicion_id")
	if !ok {
		return
	}
	m, err := c.operations.GetMeasurement(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, m)
}

// ListMeasurements handles GET /mediciones/, newest first
func (c *OperationsController) ListMeasurements(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	ms, err := c.operations.ListMeasurements(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, ms)
}

// ListMeasurementsBySensor handles GET /mediciones/sensor/:sensor_id
func (c *OperationsController) ListMeasurementsBySensor(ctx *gin.Context) {
	sensorID, ok := pathID(ctx, "sensor_id")
	if !ok {
		return
	}
	offset, limit := pageParams(ctx)
	ms, err := c.operations.ListMeasurementsBySensor(sensorID, offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, ms)
}

// CreateMeasurement handles POST /mediciones/. Readings are append-only.
func (c *OperationsController) CreateMeasurement(ctx *gin.Context) {
	var in repository.CreateMeasurementInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	m, err := c.operations.CreateMeasurement(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, m)
}

// --- Actuator actions ---

// GetActuatorAction handles GET /acciones/:accion_id
func (c *OperationsController) GetActuatorAction(ctx *gin.Context) {
	id, ok := pathID(ctx, "accion_id")
	if !ok {
		return
	}
	a, err := c.operations.GetActuatorAction(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, a)
}

// ListActuatorActions handles GET /acciones/, newest first
func (c *OperationsController) ListActuatorActions(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	as, err := c.operations.ListActuatorActions(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, as)
}

// ListActuatorActionsByActuator handles GET /acciones/actuador/:actuador_id
func (c *OperationsController) ListActuatorActionsByActuator(ctx *gin.Context) {
	actuatorID, ok := pathID(ctx, "actuador_id")
	if !ok {
		return
	}
	offset, limit := pageParams(ctx)
	as, err := c.operations.ListActuatorActionsByActuator(actuatorID, offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, as)
}

// CreateActuatorAction handles POST /acciones/. Actions are append-only.
func (c *OperationsController) CreateActuatorAction(ctx *gin.Context) {
	var in repository.CreateActuatorActionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	a, err := c.operations.CreateActuatorAction(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, a)
}

// --- Irrigation recommendations ---

// GetRecommendation handles GET /recomendaciones/:recomendacion_id
func (c *OperationsController) GetRecommendation(ctx *gin.Context) {
	id, ok := pathID(ctx, "recomendacion_id")
	if !ok {
		return
	}
	rec, err := c.operations.GetRecommendation(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, rec)
}

// ListRecommendations handles GET /recomendaciones/, newest first
func (c *OperationsController) ListRecommendations(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	recs, err := c.operations.ListRecommendations(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, recs)
}

// ListRecommendationsByGreenhouse handles GET /recomendaciones/invernadero/:invernadero_id
func (c *OperationsController) ListRecommendationsByGreenhouse(ctx *gin.Context) {
	greenhouseID, ok := pathID(ctx, "invernadero_id")
	if !ok {
		return
	}
	offset, limit := pageParams(ctx)
	recs, err := c.operations.ListRecommendationsByGreenhouse(greenhouseID, offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, recs)
}

// CreateRecommendation handles POST /recomendaciones/
func (c *OperationsController) CreateRecommendation(ctx *gin.Context) {
	var in repository.CreateRecommendationInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	rec, err := c.operations.CreateRecommendation(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("recommendation created", "recomendacion_id", rec.ID, "invernadero_id", rec.GreenhouseID)
	ctx.JSON(http.StatusCreated, rec)
}

// UpdateRecommendation handles PUT /recomendaciones/:recomendacion_id
func (c *OperationsController) UpdateRecommendation(ctx *gin.Context) {
	id, ok := pathID(ctx, "recomendacion_id")
	if !ok {
		return
	}
	var in repository.UpdateRecommendationInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	rec, err := c.operations.UpdateRecommendation(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, rec)
}

// DeleteRecommendation handles DELETE /recomendaciones/:recomendacion_id
func (c *OperationsController) DeleteRecommendation(ctx *gin.Context) {
	id, ok := pathID(ctx, "recomendacion_id")
	if !ok {
		return
	}
	if err := c.operations.DeleteRecommendation(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Recomendacion eliminada correctamente"})
}
