package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sira-backend/internal/apperr"
	"sira-backend/internal/model"
)

// CreateCropInput carries a new crop catalog entry.
type CreateCropInput struct {
	Name          string  `json:"nombre_cultivo" binding:"required,max=100"`
	ExternalAPIID *string `json:"external_api_id,omitempty" binding:"omitempty,max=100"`
}

// UpdateCropInput is a partial crop update.
type UpdateCropInput struct {
	Name          *string `json:"nombre_cultivo,omitempty" binding:"omitempty,max=100"`
	ExternalAPIID *string `json:"external_api_id,omitempty" binding:"omitempty,max=100"`
}

// CreateOptimalParametersInput carries one growth phase for a crop.
type CreateOptimalParametersInput struct {
	GrowthPhase string          `json:"fase_crecimiento" binding:"required,max=50"`
	TempMin     decimal.Decimal `json:"temp_optima_min" binding:"required"`
	TempMax     decimal.Decimal `json:"temp_optima_max" binding:"required"`
	HumidityMin decimal.Decimal `json:"humedad_optima_min" binding:"required"`
	HumidityMax decimal.Decimal `json:"humedad_optima_max" binding:"required"`
	WaterNeed   decimal.Decimal `json:"necesidad_hidrica" binding:"required"`
	CropID      uint            `json:"cultivo_id" binding:"required"`
}

// UpdateOptimalParametersInput is a partial growth-phase update.
type UpdateOptimalParametersInput struct {
	GrowthPhase *string          `json:"fase_crecimiento,omitempty" binding:"omitempty,max=50"`
	TempMin     *decimal.Decimal `json:"temp_optima_min,omitempty"`
	TempMax     *decimal.Decimal `json:"temp_optima_max,omitempty"`
	HumidityMin *decimal.Decimal `json:"humedad_optima_min,omitempty"`
	HumidityMax *decimal.Decimal `json:"humedad_optima_max,omitempty"`
	WaterNeed   *decimal.Decimal `json:"necesidad_hidrica,omitempty"`
	CropID      *uint            `json:"cultivo_id,omitempty"`
}

// CreateSensorTypeInput carries a new sensor-type catalog entry.
type CreateSensorTypeInput struct {
	Name          string `json:"nombre_tipo" binding:"required,max=100"`
	UnitOfMeasure string `json:"unidad_medida" binding:"required,max=20"`
}

// UpdateSensorTypeInput is a partial sensor-type update.
type UpdateSensorTypeInput struct {
	Name          *string `json:"nombre_tipo,omitempty" binding:"omitempty,max=100"`
	UnitOfMeasure *string `json:"unidad_medida,omitempty" binding:"omitempty,max=20"`
}

// CreateActuatorTypeInput carries a new actuator-type catalog entry.
type CreateActuatorTypeInput struct {
	Name string `json:"nombre_tipo" binding:"required,max=100"`
}

// UpdateActuatorTypeInput is a partial actuator-type update.
type UpdateActuatorTypeInput struct {
	Name *string `json:"nombre_tipo,omitempty" binding:"omitempty,max=100"`
}

// CatalogRepository groups the reference tables: crops with their optimal
// growth-phase parameters, and the sensor/actuator type catalogs.
type CatalogRepository interface {
	GetCrop(id uint) (*model.Crop, error)
	ListCrops(offset, limit int) ([]model.Crop, error)
	CreateCrop(in CreateCropInput) (*model.Crop, error)
	UpdateCrop(id uint, in UpdateCropInput) (*model.Crop, error)
	DeleteCrop(id uint) error

	GetOptimalParameters(id uint) (*model.OptimalParameters, error)
	ListOptimalParameters(offset, limit int) ([]model.OptimalParameters, error)
	ListOptimalParametersByCrop(cropID uint, offset, limit int) ([]model.OptimalParameters, error)
	CreateOptimalParameters(in CreateOptimalParametersInput) (*model.OptimalParameters, error)
	UpdateOptimalParameters(id uint, in UpdateOptimalParametersInput) (*model.OptimalParameters, error)
	DeleteOptimalParameters(id uint) error

	GetSensorType(id uint) (*model.SensorType, error)
	ListSensorTypes(offset, limit int) ([]model.SensorType, error)
	CreateSensorType(in CreateSensorTypeInput) (*model.SensorType, error)
	UpdateSensorType(id uint, in UpdateSensorTypeInput) (*model.SensorType, error)
	DeleteSensorType(id uint) error

	GetActuatorType(id uint) (*model.ActuatorType, error)
	ListActuatorTypes(offset, limit int) ([]model.ActuatorType, error)
	CreateActuatorType(in CreateActuatorTypeInput) (*model.ActuatorType, error)
	UpdateActuatorType(id uint, in UpdateActuatorTypeInput) (*model.ActuatorType, error)
	DeleteActuatorType(id uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// --- Crops ---

func (r *catalogRepository) GetCrop(id uint) (*model.Crop, error) {
	var crop model.Crop
	err := r.db.First(&crop, "cultivo_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Cultivo %d no encontrado", id)
	}
	if err != nil {
		return nil, err
	}
	return &crop, nil
}

func (r *catalogRepository) ListCrops(offset, limit int) ([]model.Crop, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var crops []model.Crop
	err := r.db.Offset(offset).Limit(limit).Find(&crops).Error
	return crops, err
}

func (r *catalogRepository) CreateCrop(in CreateCropInput) (*model.Crop, error) {
	var count int64
	if err := r.db.Model(&model.Crop{}).Where("nombre_cultivo = ?", in.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Duplicate("El cultivo %q ya existe", in.Name)
	}

	crop := model.Crop{Name: in.Name, ExternalAPIID: in.ExternalAPIID}
	if err := r.db.Create(&crop).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("El cultivo %q ya existe", in.Name)
		}
		return nil, err
	}
	return &crop, nil
}

func (r *catalogRepository) UpdateCrop(id uint, in UpdateCropInput) (*model.Crop, error) {
	crop, err := r.GetCrop(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != crop.Name {
		var count int64
		if err := r.db.Model(&model.Crop{}).
			Where("nombre_cultivo = ? AND cultivo_id <> ?", *in.Name, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Duplicate("El cultivo %q ya existe", *in.Name)
		}
		crop.Name = *in.Name
	}
	if in.ExternalAPIID != nil {
		crop.ExternalAPIID = in.ExternalAPIID
	}

	if err := r.db.Omit(clause.Associations).Save(crop).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("El cultivo %q ya existe", crop.Name)
		}
		return nil, err
	}
	return crop, nil
}

// DeleteCrop hard-deletes a catalog entry. Blocked while greenhouses grow it
// or growth phases describe it.
func (r *catalogRepository) DeleteCrop(id uint) error {
	if _, err := r.GetCrop(id); err != nil {
		return err
	}
	var count int64
	if err := r.db.Model(&model.Greenhouse{}).Where("cultivo_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.ReferentialBlock("No se puede eliminar el cultivo %d: %d invernaderos lo referencian", id, count)
	}
	if err := r.db.Model(&model.OptimalParameters{}).Where("cultivo_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.ReferentialBlock("No se puede eliminar el cultivo %d: %d fases de parametros lo referencian", id, count)
	}
	return r.db.Delete(&model.Crop{}, "cultivo_id = ?", id).Error
}

// --- Optimal parameters ---

func (r *catalogRepository) GetOptimalParameters(id uint) (*model.OptimalParameters, error) {
	var params model.OptimalParameters
	err := r.db.Preload("Crop").First(&params, "parametro_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Parametros %d no encontrados", id)
	}
	if err != nil {
		return nil, err
	}
	return &params, nil
}

func (r *catalogRepository) ListOptimalParameters(offset, limit int) ([]model.OptimalParameters, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var params []model.OptimalParameters
	err := r.db.Preload("Crop").Offset(offset).Limit(limit).Find(&params).Error
	return params, err
}

func (r *catalogRepository) ListOptimalParametersByCrop(cropID uint, offset, limit int) ([]model.OptimalParameters, error) {
	if _, err := r.GetCrop(cropID); err != nil {
		return nil, err
	}
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var params []model.OptimalParameters
	err := r.db.Preload("Crop").Where("cultivo_id = ?", cropID).
		Offset(offset).Limit(limit).Find(&params).Error
	return params, err
}

// validateRanges rejects inverted min/max pairs before any write.
func validateRanges(tempMin, tempMax, humMin, humMax decimal.Decimal) error {
	if tempMin.GreaterThan(tempMax) {
		return apperr.Validation("temp_optima_min no puede superar temp_optima_max")
	}
	if humMin.GreaterThan(humMax) {
		return apperr.Validation("humedad_optima_min no puede superar humedad_optima_max")
	}
	return nil
}

func (r *catalogRepository) CreateOptimalParameters(in CreateOptimalParametersInput) (*model.OptimalParameters, error) {
	if err := validateRanges(in.TempMin, in.TempMax, in.HumidityMin, in.HumidityMax); err != nil {
		return nil, err
	}
	if _, err := r.GetCrop(in.CropID); err != nil {
		return nil, err
	}

	params := model.OptimalParameters{
		GrowthPhase: in.GrowthPhase,
		TempMin:     in.TempMin,
		TempMax:     in.TempMax,
		HumidityMin: in.HumidityMin,
		HumidityMax: in.HumidityMax,
		WaterNeed:   in.WaterNeed,
		CropID:      in.CropID,
	}
	if err := r.db.Create(&params).Error; err != nil {
		return nil, err
	}
	return r.GetOptimalParameters(params.ID)
}

func (r *catalogRepository) UpdateOptimalParameters(id uint, in UpdateOptimalParametersInput) (*model.OptimalParameters, error) {
	params, err := r.GetOptimalParameters(id)
	if err != nil {
		return nil, err
	}

	if in.CropID != nil && *in.CropID != params.CropID {
		if _, err := r.GetCrop(*in.CropID); err != nil {
			return nil, err
		}
		params.CropID = *in.CropID
	}
	if in.GrowthPhase != nil {
		params.GrowthPhase = *in.GrowthPhase
	}
	if in.TempMin != nil {
		params.TempMin = *in.TempMin
	}
	if in.TempMax != nil {
		params.TempMax = *in.TempMax
	}
	if in.HumidityMin != nil {
		params.HumidityMin = *in.HumidityMin
	}
	if in.HumidityMax != nil {
		params.HumidityMax = *in.HumidityMax
	}
	if in.WaterNeed != nil {
		params.WaterNeed = *in.WaterNeed
	}
	if err := validateRanges(params.TempMin, params.TempMax, params.HumidityMin, params.HumidityMax); err != nil {
		return nil, err
	}

	if err := r.db.Omit(clause.Associations).Save(params).Error; err != nil {
		return nil, err
	}
	return r.GetOptimalParameters(id)
}

func (r *catalogRepository) DeleteOptimalParameters(id uint) error {
	if _, err := r.GetOptimalParameters(id); err != nil {
		return err
	}
	return r.db.Delete(&model.OptimalParameters{}, "parametro_id = ?", id).Error
}

// --- Sensor types ---

func (r *catalogRepository) GetSensorType(id uint) (*model.SensorType, error) {
	var st model.SensorType
	err := r.db.First(&st, "tipo_sensor_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Tipo de sensor %d no encontrado", id)
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *catalogRepository) ListSensorTypes(offset, limit int) ([]model.SensorType, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var types []model.SensorType
	err := r.db.Offset(offset).Limit(limit).Find(&types).Error
	return types, err
}

func (r *catalogRepository) CreateSensorType(in CreateSensorTypeInput) (*model.SensorType, error) {
	var count int64
	if err := r.db.Model(&model.SensorType{}).Where("nombre_tipo = ?", in.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Duplicate("El tipo de sensor %q ya existe", in.Name)
	}

	st := model.SensorType{Name: in.Name, UnitOfMeasure: in.UnitOfMeasure}
	if err := r.db.Create(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("El tipo de sensor %q ya existe", in.Name)
		}
		return nil, err
	}
	return &st, nil
}

func (r *catalogRepository) UpdateSensorType(id uint, in UpdateSensorTypeInput) (*model.SensorType, error) {
	st, err := r.GetSensorType(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != st.Name {
		var count int64
		if err := r.db.Model(&model.SensorType{}).
			Where("nombre_tipo = ? AND tipo_sensor_id <> ?", *in.Name, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Duplicate("El tipo de sensor %q ya existe", *in.Name)
		}
		st.Name = *in.Name
	}
	if in.UnitOfMeasure != nil {
		st.UnitOfMeasure = *in.UnitOfMeasure
	}

	if err := r.db.Omit(clause.Associations).Save(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}

func (r *catalogRepository) DeleteSensorType(id uint) error {
	if _, err := r.GetSensorType(id); err != nil {
		return err
	}
	var count int64
	if err := r.db.Model(&model.Sensor{}).Where("tipo_sensor_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.ReferentialBlock("No se puede eliminar el tipo de sensor %d: %d sensores lo referencian", id, count)
	}
	return r.db.Delete(&model.SensorType{}, "tipo_sensor_id = ?", id).Error
}

// --- Actuator types ---

func (r *catalogRepository) GetActuatorType(id uint) (*model.ActuatorType, error) {
	var at model.ActuatorType
	err := r.db.First(&at, "tipo_actuador_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Tipo de actuador %d no encontrado", id)
	}
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func (r *catalogRepository) ListActuatorTypes(offset, limit int) ([]model.ActuatorType, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var types []model.ActuatorType
	err := r.db.Offset(offset).Limit(limit).Find(&types).Error
	return types, err
}

func (r *catalogRepository) CreateActuatorType(in CreateActuatorTypeInput) (*model.ActuatorType, error) {
	var count int64
	if err := r.db.Model(&model.ActuatorType{}).Where("nombre_tipo = ?", in.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Duplicate("El tipo de actuador %q ya existe", in.Name)
	}

	at := model.ActuatorType{Name: in.Name}
	if err := r.db.Create(&at).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("El tipo de actuador %q ya existe", in.Name)
		}
		return nil, err
	}
	return &at, nil
}

func (r *catalogRepository) UpdateActuatorType(id uint, in UpdateActuatorTypeInput) (*model.ActuatorType, error) {
	at, err := r.GetActuatorType(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != at.Name {
		var count int64
		if err := r.db.Model(&model.ActuatorType{}).
			Where("nombre_tipo = ? AND tipo_actuador_id <> ?", *in.Name, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Duplicate("El tipo de actuador %q ya existe", *in.Name)
		}
		at.Name = *in.Name
	}

	if err := r.db.Omit(clause.Associations).Save(at).Error; err != nil {
		return nil, err
	}
	return at, nil
}

func (r *catalogRepository) DeleteActuatorType(id uint) error {
	if _, err := r.GetActuatorType(id); err != nil {
		return err
	}
	var count int64
	if err := r.db.Model(&model.Actuator{}).Where("tipo_actuador_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.ReferentialBlock("No se puede eliminar el tipo de actuador %d: %d actuadores lo referencian", id, count)
	}
	return r.db.Delete(&model.ActuatorType{}, "tipo_actuador_id = ?", id).Error
}
