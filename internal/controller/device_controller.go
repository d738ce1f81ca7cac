package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/repository"
)

// DeviceController handles sensor and actuator HTTP requests
type DeviceController struct {
	devices repository.DeviceRepository
	logger  *slog.Logger
}

// NewDeviceController creates a new device controller
func NewDeviceController(devices repository.DeviceRepository, logger *slog.Logger) *DeviceController {
	return &DeviceController{devices: devices, logger: logger}
}

// --- Sensors ---

// GetSensor handles GET /sensores/:sensor_id
func (c *DeviceController) GetSensor(ctx *gin.Context) {
	id, ok := pathID(ctx, "sensor_id")
	if !ok {
		return
	}
	sensor, err := c.devices.GetSensor(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, sensor)
}

// ListSensors handles GET /sensores/
func (c *DeviceController) ListSensors(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	sensors, err := c.devices.ListSensors(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, sensors)
}

// ListSensorsByGreenhouse handles GET /sensores/invernadero/:invernadero_id
func (c *DeviceController) ListSensorsByGreenhouse(ctx *gin.Context) {
	greenhouseID, ok := pathID(ctx, "invernadero_id")
	if !ok {
		return
	}
	offset, limit := pageParams(ctx)
	sensors, err := c.devices.ListSensorsByGreenhouse(greenhouseID, offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, sensors)
}

// CreateSensor handles POST /sensores/
func (c *DeviceController) CreateSensor(ctx *gin.Context) {
	var in repository.CreateSensorInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	sensor, err := c.devices.CreateSensor(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("sensor created", "sensor_id", sensor.ID, "tipo_sensor_id", sensor.SensorTypeID)
	ctx.JSON(http.StatusCreated, sensor)
}

// UpdateSensor handles PUT /sensores/:sensor_id
func (c *DeviceController) UpdateSensor(ctx *gin.Context) {
	id, ok := pathID(ctx, "sensor_id")
	if !ok {
		return
	}
	var in repository.UpdateSensorInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	sensor, err := c.devices.UpdateSensor(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, sensor)
}

// DeleteSensor handles DELETE /sensores/:sensor_id
func (c *DeviceController) DeleteSensor(ctx *gin.Context) {
	id, ok := pathID(ctx, "sensor_id")
	if !ok {
		return
	}
	if err := c.devices.DeleteSensor(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Sensor eliminado correctamente"})
}

// --- Actuators ---

// GetActuator handles GET /actuadores/:actuador_id
func (c *DeviceController) GetActuator(ctx *gin.Context) {
	id, ok := pathID(ctx, "actuador_id")
	if !ok {
		return
	}
	actuator, err := c.devices.GetActuator(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, actuator)
}

// ListActuators handles GET /actuadores/
func (c *DeviceController) ListActuators(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	actuators, err := c.devices.ListActuators(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, actuators)
}

// ListActuatorsByGreenhouse handles GET /actuadores/invernadero/:invernadero_id
func (c *DeviceController) ListActuatorsByGreenhouse(ctx *gin.Context) {
	greenhouseID, ok := pathID(ctx, "invernadero_id")
	if !ok {
		return
	}
	offset, limit := pageParams(ctx)
	actuators, err := c.devices.ListActuatorsByGreenhouse(greenhouseID, offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, actuators)
}

// CreateActuator handles POST /actuadores/
func (c *DeviceController) CreateActuator(ctx *gin.Context) {
	var in repository.CreateActuatorInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	actuator, err := c.devices.CreateActuator(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("actuator created", "actuador_id", actuator.ID, "tipo_actuador_id", actuator.ActuatorTypeID)
	ctx.JSON(http.StatusCreated, actuator)
}

// UpdateActuator handles PUT /actuadores/:actuador_id
func (c *DeviceController) UpdateActuator(ctx *gin.Context) {
	id, ok := pathID(ctx, "actuador_id")
	if !ok {
		return
	}
	var in repository.UpdateActuatorInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	actuator, err := c.devices.UpdateActuator(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, actuator)
}

// DeleteActuator handles DELETE /actuadores/:actuador_id
func (c *DeviceController) DeleteActuator(ctx *gin.Context) {
	id, ok := pathID(ctx, "actuador_id")
	if !ok {
		return
	}
	if err := c.devices.DeleteActuator(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Actuador eliminado correctamente"})
}
