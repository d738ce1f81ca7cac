package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/repository"
)

// CatalogController handles the reference-data endpoints: crops, optimal
// growth parameters and the sensor/actuator type catalogs.
type CatalogController struct {
	catalog repository.CatalogRepository
	logger  *slog.Logger
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(catalog repository.CatalogRepository, logger *slog.Logger) *CatalogController {
	return &CatalogController{catalog: catalog, logger: logger}
}

// --- Crops ---

// GetCrop handles GET /cultivos/:cultivo_id
func (c *CatalogController) GetCrop(ctx *gin.Context) {
	id, ok := pathID(ctx, "cultivo_id")
	if !ok {
		return
	}
	crop, err := c.catalog.GetCrop(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, crop)
}

// ListCrops handles GET /cultivos/
func (c *CatalogController) ListCrops(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	crops, err := c.catalog.ListCrops(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, crops)
}

// CreateCrop handles POST /cultivos/
func (c *CatalogController) CreateCrop(ctx *gin.Context) {
	var in repository.CreateCropInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	crop, err := c.catalog.CreateCrop(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("crop created", "cultivo_id", crop.ID, "nombre", crop.Name)
	ctx.JSON(http.StatusCreated, crop)
}

// UpdateCrop handles PUT /cultivos/:cultivo_id
func (c *CatalogController) UpdateCrop(ctx *gin.Context) {
	id, ok := pathID(ctx, "cultivo_id")
	if !ok {
		return
	}
	var in repository.UpdateCropInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	crop, err := c.catalog.UpdateCrop(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, crop)
}

// DeleteCrop handles DELETE /cultivos/:cultivo_id
func (c *CatalogController) DeleteCrop(ctx *gin.Context) {
	id, ok := pathID(ctx, "cultivo_id")
	if !ok {
		return
	}
	if err := c.catalog.DeleteCrop(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Cultivo eliminado correctamente"})
}

// --- Optimal parameters ---

// GetOptimalParameters handles GET /parametros/:parametro_id
func (c *CatalogController) GetOptimalParameters(ctx *gin.Context) {
	id, ok := pathID(ctx, "parametro_id")
	if !ok {
		return
	}
	params, err := c.catalog.GetOptimalParameters(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, params)
}

// ListOptimalParameters handles GET /parametros/
func (c *CatalogController) ListOptimalParameters(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	params, err := c.catalog.ListOptimalParameters(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, params)
}

// ListOptimalParametersByCrop handles GET /parametros/cultivo/:cultivo_id
func (c *CatalogController) ListOptimalParametersByCrop(ctx *gin.Context) {
	cropID, ok := pathID(ctx, "cultivo_id")
	if !ok {
		return
	}
	offset, limit := pageParams(ctx)
	params, err := c.catalog.ListOptimalParametersByCrop(cropID, offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, params)
}

// CreateOptimalParameters handles POST /parametros/
func (c *CatalogController) CreateOptimalParameters(ctx *gin.Context) {
	var in repository.CreateOptimalParametersInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	params, err := c.catalog.CreateOptimalParameters(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("optimal parameters created", "parametro_id", params.ID, "cultivo_id", params.CropID)
	ctx.JSON(http.StatusCreated, params)
}

// UpdateOptimalParameters handles PUT /parametros/:parametro_id
func (c *CatalogController) UpdateOptimalParameters(ctx *gin.Context) {
	id, ok := pathID(ctx, "parametro_id")
	if !ok {
		return
	}
	var in repository.UpdateOptimalParametersInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	params, err := c.catalog.UpdateOptimalParameters(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, params)
}

// DeleteOptimalParameters handles DELETE /parametros/:parametro_id
func (c *CatalogController) DeleteOptimalParameters(ctx *gin.Context) {
	id, ok := pathID(ctx, "parametro_id")
	if !ok {
		return
	}
	if err := c.catalog.DeleteOptimalParameters(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Parametros eliminados correctamente"})
}

// --- Sensor types ---

// GetSensorType handles GET /tipos-sensor/:tipo_sensor_id
func (c *CatalogController) GetSensorType(ctx *gin.Context) {
	id, ok := pathID(ctx, "tipo_sensor_id")
	if !ok {
		return
	}
	st, err := c.catalog.GetSensorType(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, st)
}

// ListSensorTypes handles GET /tipos-sensor/
func (c *CatalogController) ListSensorTypes(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	types, err := c.catalog.ListSensorTypes(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, types)
}

// CreateSensorType handles POST /tipos-sensor/
func (c *CatalogController) CreateSensorType(ctx *gin.Context) {
	var in repository.CreateSensorTypeInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	st, err := c.catalog.CreateSensorType(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, st)
}

// UpdateSensorType handles PUT /tipos-sensor/:tipo_sensor_id
func (c *CatalogController) UpdateSensorType(ctx *gin.Context) {
	id, ok := pathID(ctx, "tipo_sensor_id")
	if !ok {
		return
	}
	var in repository.UpdateSensorTypeInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	st, err := c.catalog.UpdateSensorType(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, st)
}

// DeleteSensorType handles DELETE /tipos-sensor/:tipo_sensor_id
func (c *CatalogController) DeleteSensorType(ctx *gin.Context) {
	id, ok := pathID(ctx, "tipo_sensor_id")
	if !ok {
		return
	}
	if err := c.catalog.DeleteSensorType(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Tipo de sensor eliminado correctamente"})
}

// --- Actuator types ---

// GetActuatorType handles GET /tipos-actuador/:tipo_actuador_id
func (c *CatalogController) GetActuatorType(ctx *gin.Context) {
	id, ok := pathID(ctx, "tipo_actuador_id")
	if !ok {
		return
	}
	at, err := c.catalog.GetActuatorType(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, at)
}

// ListActuatorTypes handles GET /tipos-actuador/
func (c *CatalogController) ListActuatorTypes(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	types, err := c.catalog.ListActuatorTypes(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, types)
}

// CreateActuatorType handles POST /tipos-actuador/
func (c *CatalogController) CreateActuatorType(ctx *gin.Context) {
	var in repository.CreateActuatorTypeInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	at, err := c.catalog.CreateActuatorType(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, at)
}

// UpdateActuatorType handles PUT /tipos-actuador/:tipo_actuador_id
func (c *CatalogController) UpdateActuatorType(ctx *gin.Context) {
	id, ok := pathID(ctx, "tipo_actuador_id")
	if !ok {
		return
	}
	var in repository.UpdateActuatorTypeInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	at, err := c.catalog.UpdateActuatorType(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, at)
}

// DeleteActuatorType handles DELETE /tipos-actuador/:tipo_actuador_id
func (c *CatalogController) DeleteActuatorType(ctx *gin.Context) {
	id, ok := pathID(ctx, "tipo_actuador_id")
	if !ok {
		return
	}
	if err := c.catalog.DeleteActuatorType(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Tipo de actuador eliminado correctamente"})
}
