package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sira-backend/internal/apperr"
	"sira-backend/internal/model"
)

// CreateMeasurementInput is one sensor reading. Timestamp defaults to the
// ingestion time when omitted.
type CreateMeasurementInput struct {
	Timestamp *time.Time      `json:"fecha_hora,omitempty"`
	Value     decimal.Decimal `json:"valor" binding:"required"`
	SensorID  uint            `json:"sensor_id" binding:"required"`
}

// CreateActuatorActionInput is one recorded actuator event.
type CreateActuatorActionInput struct {
	Timestamp  *time.Time `json:"fecha_hora,omitempty"`
	Detail     string     `json:"accion_detalle" binding:"required,max=100"`
	ActuatorID uint       `json:"actuador_id" binding:"required"`
}

// CreateRecommendationInput is an irrigation recommendation for a greenhouse.
type CreateRecommendationInput struct {
	Timestamp    *time.Time      `json:"fecha_recomendacion,omitempty"`
	AmountML     decimal.Decimal `json:"cantidad_ml" binding:"required"`
	DurationMin  int             `json:"duracion_min" binding:"required,min=1"`
	Reason       string          `json:"razon_logica" binding:"required,max=255"`
	GreenhouseID uint            `json:"invernadero_id" binding:"required"`
}

// UpdateRecommendationInput is a partial recommendation update. The target
// greenhouse is fixed at creation.
type UpdateRecommendationInput struct {
	AmountML    *decimal.Decimal `json:"cantidad_ml,omitempty"`
	DurationMin *int             `json:"duracion_min,omitempty" binding:"omitempty,min=1"`
	Reason      *string          `json:"razon_logica,omitempty" binding:"omitempty,max=255"`
}

// OperationsRepository handles the time-series side of the platform:
// measurements and actuator actions are append-only, recommendations
// support full editing.
type OperationsRepository interface {
	GetMeasurement(id uint) (*model.Measurement, error)
	ListMeasurements(offset, limit int) ([]model.Measurement, error)
	ListMeasurementsBySensor(sensorID uint, offset, limit int) ([]model.Measurement, error)
	CreateMeasurement(in CreateMeasurementInput) (*model.Measurement, error)

	GetActuatorAction(id uint) (*model.ActuatorAction, error)
	ListActuatorActions(offset, limit int) ([]model.ActuatorAction, error)
	ListActuatorActionsByActuator(actuatorID uint, offset, limit int) ([]model.ActuatorAction, error)
	CreateActuatorAction(in CreateActuatorActionInput) (*model.ActuatorAction, error)

	GetRecommendation(id uint) (*model.IrrigationRecommendation, error)
	ListRecommendations(offset, limit int) ([]model.IrrigationRecommendation, error)
	ListRecommendationsByGreenhouse(greenhouseID uint, offset, limit int) ([]model.IrrigationRecommendation, error)
	CreateRecommendation(in CreateRecommendationInput) (*model.IrrigationRecommendation, error)
	UpdateRecommendation(id uint, in UpdateRecommendationInput) (*model.IrrigationRecommendation, error)
	DeleteRecommendation(id uint) error
}

type operationsRepository struct {
	db *gorm.DB
}

// NewOperationsRepository creates a new operations repository
func NewOperationsRepository(db *gorm.DB) OperationsRepository {
	return &operationsRepository{db: db}
}

// --- Measurements ---

func (r *operationsRepository) GetMeasurement(id uint) (*model.Measurement, error) {
	var m model.Measurement
	err := r.db.First(&m, "medicion_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Medicion %d no encontrada", id)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *operationsRepository) ListMeasurements(offset, limit int) ([]model.Measurement, error) {
	offset, limit = clampPage(offset, limit, MeasurementListLimit)
	var ms []model.Measurement
	err := r.db.Order("fecha_hora DESC").Offset(offset).Limit(limit).Find(&ms).Error
	return ms, err
}

func (r *operationsRepository) ListMeasurementsBySensor(sensorID uint, offset, limit int) ([]model.Measurement, error) {
	var count int64
	if err := r.db.Model(&model.Sensor{}).Where("sensor_id = ?", sensorID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Sensor %d no encontrado", sensorID)
	}
	offset, limit = clampPage(offset, limit, MeasurementListLimit)
	var ms []model.Measurement
	err := r.db.Where("sensor_id = ?", sensorID).Order("fecha_hora DESC").
		Offset(offset).Limit(limit).Find(&ms).Error
	return ms, err
}

func (r *operationsRepository) CreateMeasurement(in CreateMeasurementInput) (*model.Measurement, error) {
	var count int64
	if err := r.db.Model(&model.Sensor{}).Where("sensor_id = ?", in.SensorID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Sensor %d no encontrado", in.SensorID)
	}

	ts := timeNow()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	m := model.Measurement{Timestamp: ts, Value: in.Value, SensorID: in.SensorID}
	if err := r.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// --- Actuator actions ---

func (r *operationsRepository) GetActuatorAction(id uint) (*model.ActuatorAction, error) {
	var a model.ActuatorAction
	err := r.db.First(&a, "accion_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Accion %d no encontrada", id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *operationsRepository) ListActuatorActions(offset, limit int) ([]model.ActuatorAction, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var as []model.ActuatorAction
	err := r.db.Order("fecha_hora DESC").Offset(offset).Limit(limit).Find(&as).Error
	return as, err
}

func (r *operationsRepository) ListActuatorActionsByActuator(actuatorID uint, offset, limit int) ([]model.ActuatorAction, error) {
	var count int64
	if err := r.db.Model(&model.Actuator{}).Where("actuador_id = ?", actuatorID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Actuador %d no encontrado", actuatorID)
	}
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var as []model.ActuatorAction
	err := r.db.Where("actuador_id = ?", actuatorID).Order("fecha_hora DESC").
		Offset(offset).Limit(limit).Find(&as).Error
	return as, err
}

func (r *operationsRepository) CreateActuatorAction(in CreateActuatorActionInput) (*model.ActuatorAction, error) {
	var count int64
	if err := r.db.Model(&model.Actuator{}).Where("actuador_id = ?", in.ActuatorID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Actuador %d no encontrado", in.ActuatorID)
	}

	ts := timeNow()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	a := model.ActuatorAction{Timestamp: ts, Detail: in.Detail, ActuatorID: in.ActuatorID}
	if err := r.db.Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// --- Irrigation recommendations ---

func (r *operationsRepository) GetRecommendation(id uint) (*model.IrrigationRecommendation, error) {
	var rec model.IrrigationRecommendation
	err := r.db.Preload("Greenhouse").First(&rec, "recomendacion_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Recomendacion %d no encontrada", id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *operationsRepository) ListRecommendations(offset, limit int) ([]model.IrrigationRecommendation, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var recs []model.IrrigationRecommendation
	err := r.db.Order("fecha_recomendacion DESC").Offset(offset).Limit(limit).Find(&recs).Error
	return recs, err
}

func (r *operationsRepository) ListRecommendationsByGreenhouse(greenhouseID uint, offset, limit int) ([]model.IrrigationRecommendation, error) {
	var count int64
	if err := r.db.Model(&model.Greenhouse{}).Where("invernadero_id = ?", greenhouseID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Invernadero %d no encontrado", greenhouseID)
	}
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var recs []model.IrrigationRecommendation
	err := r.db.Where("invernadero_id = ?", greenhouseID).Order("fecha_recomendacion DESC").
		Offset(offset).Limit(limit).Find(&recs).Error
	return recs, err
}

func (r *operationsRepository) CreateRecommendation(in CreateRecommendationInput) (*model.IrrigationRecommendation, error) {
	var count int64
	if err := r.db.Model(&model.Greenhouse{}).Where("invernadero_id = ?", in.GreenhouseID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Invernadero %d no encontrado", in.GreenhouseID)
	}

	ts := timeNow()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	rec := model.IrrigationRecommendation{
		Timestamp:    ts,
		AmountML:     in.AmountML,
		DurationMin:  in.DurationMin,
		Reason:       in.Reason,
		GreenhouseID: in.GreenhouseID,
	}
	if err := r.db.Create(&rec).Error; err != nil {
		return nil, err
	}
	return r.GetRecommendation(rec.ID)
}

func (r *operationsRepository) UpdateRecommendation(id uint, in UpdateRecommendationInput) (*model.IrrigationRecommendation, error) {
	rec, err := r.GetRecommendation(id)
	if err != nil {
		return nil, err
	}

	if in.AmountML != nil {
		rec.AmountML = *in.AmountML
	}
	if in.DurationMin != nil {
		rec.DurationMin = *in.DurationMin
	}
	if in.Reason != nil {
		rec.Reason = *in.Reason
	}

	if err := r.db.Omit(clause.Associations).Save(rec).Error; err != nil {
		return nil, err
	}
	return r.GetRecommendation(id)
}

func (r *operationsRepository) DeleteRecommendation(id uint) error {
	if _, err := r.GetRecommendation(id); err != nil {
		return err
	}
	return r.db.Delete(&model.IrrigationRecommendation{}, "recomendacion_id = ?", id).Error
}
