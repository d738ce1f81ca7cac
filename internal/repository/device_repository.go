package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sira-backend/internal/apperr"
	"sira-backend/internal/model"
)

// CreateSensorInput registers a physical sensor, optionally already
// installed in a greenhouse.
type CreateSensorInput struct {
	Location     string `json:"ubicacion_sensor" binding:"omitempty,max=100"`
	Status       string `json:"estado_sensor" binding:"omitempty,max=20"`
	SensorTypeID uint   `json:"tipo_sensor_id" binding:"required"`
	GreenhouseID *uint  `json:"invernadero_id,omitempty"`
}

// UpdateSensorInput is a partial sensor update. RemoveGreenhouse detaches
// the device without assigning a new greenhouse.
type UpdateSensorInput struct {
	Location         *string `json:"ubicacion_sensor,omitempty" binding:"omitempty,max=100"`
	Status           *string `json:"estado_sensor,omitempty" binding:"omitempty,max=20"`
	SensorTypeID     *uint   `json:"tipo_sensor_id,omitempty"`
	GreenhouseID     *uint   `json:"invernadero_id,omitempty"`
	RemoveGreenhouse bool    `json:"quitar_invernadero,omitempty"`
}

// CreateActuatorInput registers a physical actuator.
type CreateActuatorInput struct {
	Location       string `json:"ubicacion_actuador" binding:"omitempty,max=100"`
	Status         string `json:"estado_actuador" binding:"omitempty,max=20"`
	ActuatorTypeID uint   `json:"tipo_actuador_id" binding:"required"`
	GreenhouseID   *uint  `json:"invernadero_id,omitempty"`
}

// UpdateActuatorInput is a partial actuator update.
type UpdateActuatorInput struct {
	Location         *string `json:"ubicacion_actuador,omitempty" binding:"omitempty,max=100"`
	Status           *string `json:"estado_actuador,omitempty" binding:"omitempty,max=20"`
	ActuatorTypeID   *uint   `json:"tipo_actuador_id,omitempty"`
	GreenhouseID     *uint   `json:"invernadero_id,omitempty"`
	RemoveGreenhouse bool    `json:"quitar_invernadero,omitempty"`
}

// DeviceRepository manages sensors and actuators, the field hardware
// attached to greenhouses.
type DeviceRepository interface {
	GetSensor(id uint) (*model.Sensor, error)
	ListSensors(offset, limit int) ([]model.Sensor, error)
	ListSensorsByGreenhouse(greenhouseID uint, offset, limit int) ([]model.Sensor, error)
	CreateSensor(in CreateSensorInput) (*model.Sensor, error)
	UpdateSensor(id uint, in UpdateSensorInput) (*model.Sensor, error)
	DeleteSensor(id uint) error

	GetActuator(id uint) (*model.Actuator, error)
	ListActuators(offset, limit int) ([]model.Actuator, error)
	ListActuatorsByGreenhouse(greenhouseID uint, offset, limit int) ([]model.Actuator, error)
	CreateActuator(in CreateActuatorInput) (*model.Actuator, error)
	UpdateActuator(id uint, in UpdateActuatorInput) (*model.Actuator, error)
	DeleteActuator(id uint) error
}

type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) greenhouseExists(id uint) error {
	var count int64
	if err := r.db.Model(&model.Greenhouse{}).Where("invernadero_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("Invernadero %d no encontrado", id)
	}
	return nil
}

// --- Sensors ---

func (r *deviceRepository) GetSensor(id uint) (*model.Sensor, error) {
	var sensor model.Sensor
	err := r.db.Preload("SensorType").Preload("Greenhouse").
		First(&sensor, "sensor_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Sensor %d no encontrado", id)
	}
	if err != nil {
		return nil, err
	}
	return &sensor, nil
}

func (r *deviceRepository) ListSensors(offset, limit int) ([]model.Sensor, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var sensors []model.Sensor
	err := r.db.Preload("SensorType").Offset(offset).Limit(limit).Find(&sensors).Error
	return sensors, err
}

func (r *deviceRepository) ListSensorsByGreenhouse(greenhouseID uint, offset, limit int) ([]model.Sensor, error) {
	if err := r.greenhouseExists(greenhouseID); err != nil {
		return nil, err
	}
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var sensors []model.Sensor
	err := r.db.Preload("SensorType").Where("invernadero_id = ?", greenhouseID).
		Offset(offset).Limit(limit).Find(&sensors).Error
	return sensors, err
}

func (r *deviceRepository) CreateSensor(in CreateSensorInput) (*model.Sensor, error) {
	var count int64
	if err := r.db.Model(&model.SensorType{}).Where("tipo_sensor_id = ?", in.SensorTypeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Tipo de sensor %d no encontrado", in.SensorTypeID)
	}
	if in.GreenhouseID != nil {
		if err := r.greenhouseExists(*in.GreenhouseID); err != nil {
			return nil, err
		}
	}

	sensor := model.Sensor{
		Location:     in.Location,
		Status:       in.Status,
		SensorTypeID: in.SensorTypeID,
		GreenhouseID: in.GreenhouseID,
	}
	if err := r.db.Create(&sensor).Error; err != nil {
		return nil, err
	}
	return r.GetSensor(sensor.ID)
}

func (r *deviceRepository) UpdateSensor(id uint, in UpdateSensorInput) (*model.Sensor, error) {
	sensor, err := r.GetSensor(id)
	if err != nil {
		return nil, err
	}

	if in.SensorTypeID != nil && *in.SensorTypeID != sensor.SensorTypeID {
		var count int64
		if err := r.db.Model(&model.SensorType{}).Where("tipo_sensor_id = ?", *in.SensorTypeID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Tipo de sensor %d no encontrado", *in.SensorTypeID)
		}
		sensor.SensorTypeID = *in.SensorTypeID
	}
	switch {
	case in.RemoveGreenhouse:
		sensor.GreenhouseID = nil
	case in.GreenhouseID != nil:
		if err := r.greenhouseExists(*in.GreenhouseID); err != nil {
			return nil, err
		}
		sensor.GreenhouseID = in.GreenhouseID
	}
	if in.Location != nil {
		sensor.Location = *in.Location
	}
	if in.Status != nil {
		sensor.Status = *in.Status
	}

	if err := r.db.Omit(clause.Associations).Save(sensor).Error; err != nil {
		return nil, err
	}
	return r.GetSensor(id)
}

// DeleteSensor hard-deletes. Measurements are the historical record, so a
// sensor that has any cannot go away.
func (r *deviceRepository) DeleteSensor(id uint) error {
	if _, err := r.GetSensor(id); err != nil {
		return err
	}
	var count int64
	if err := r.db.Model(&model.Measurement{}).Where("sensor_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.ReferentialBlock("No se puede eliminar el sensor %d: %d mediciones lo referencian", id, count)
	}
	return r.db.Delete(&model.Sensor{}, "sensor_id = ?", id).Error
}

// --- Actuators ---

func (r *deviceRepository) GetActuator(id uint) (*model.Actuator, error) {
	var actuator model.Actuator
	err := r.db.Preload("ActuatorType").Preload("Greenhouse").
		First(&actuator, "actuador_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Actuador %d no encontrado", id)
	}
	if err != nil {
		return nil, err
	}
	return &actuator, nil
}

func (r *deviceRepository) ListActuators(offset, limit int) ([]model.Actuator, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var actuators []model.Actuator
	err := r.db.Preload("ActuatorType").Offset(offset).Limit(limit).Find(&actuators).Error
	return actuators, err
}

func (r *deviceRepository) ListActuatorsByGreenhouse(greenhouseID uint, offset, limit int) ([]model.Actuator, error) {
	if err := r.greenhouseExists(greenhouseID); err != nil {
		return nil, err
	}
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var actuators []model.Actuator
	err := r.db.Preload("ActuatorType").Where("invernadero_id = ?", greenhouseID).
		Offset(offset).Limit(limit).Find(&actuators).Error
	return actuators, err
}

func (r *deviceRepository) CreateActuator(in CreateActuatorInput) (*model.Actuator, error) {
	var count int64
	if err := r.db.Model(&model.ActuatorType{}).Where("tipo_actuador_id = ?", in.ActuatorTypeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Tipo de actuador %d no encontrado", in.ActuatorTypeID)
	}
	if in.GreenhouseID != nil {
		if err := r.greenhouseExists(*in.GreenhouseID); err != nil {
			return nil, err
		}
	}

	actuator := model.Actuator{
		Location:       in.Location,
		Status:         in.Status,
		ActuatorTypeID: in.ActuatorTypeID,
		GreenhouseID:   in.GreenhouseID,
	}
	if err := r.db.Create(&actuator).Error; err != nil {
		return nil, err
	}
	return r.GetActuator(actuator.ID)
}

func (r *deviceRepository) UpdateActuator(id uint, in UpdateActuatorInput) (*model.Actuator, error) {
	actuator, err := r.GetActuator(id)
	if err != nil {
		return nil, err
	}

	if in.ActuatorTypeID != nil && *in.ActuatorTypeID != actuator.ActuatorTypeID {
		var count int64
		if err := r.db.Model(&model.ActuatorType{}).Where("tipo_actuador_id = ?", *in.ActuatorTypeID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Tipo de actuador %d no encontrado", *in.ActuatorTypeID)
		}
		actuator.ActuatorTypeID = *in.ActuatorTypeID
	}
	switch {
	case in.RemoveGreenhouse:
		actuator.GreenhouseID = nil
	case in.GreenhouseID != nil:
		if err := r.greenhouseExists(*in.GreenhouseID); err != nil {
			return nil, err
		}
		actuator.GreenhouseID = in.GreenhouseID
	}
	if in.Location != nil {
		actuator.Location = *in.Location
	}
	if in.Status != nil {
		actuator.Status = *in.Status
	}

	if err := r.db.Omit(clause.Associations).Save(actuator).Error; err != nil {
		return nil, err
	}
	return r.GetActuator(id)
}

func (r *deviceRepository) DeleteActuator(id uint) error {
	if _, err := r.GetActuator(id); err != nil {
		return err
	}
	var count int64
	if err := r.db.Model(&model.ActuatorAction{}).Where("actuador_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.ReferentialBlock("No se puede eliminar el actuador %d: %d acciones lo referencian", id, count)
	}
	return r.db.Delete(&model.Actuator{}, "actuador_id = ?", id).Error
}
