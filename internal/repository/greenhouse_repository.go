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

// CreateGreenhouseInput carries a new cultivation structure. CropID is
// optional: a nil crop means the greenhouse starts fallow.
type CreateGreenhouseInput struct {
	PlantingDate *time.Time      `json:"fecha_plantacion,omitempty"`
	LengthM      decimal.Decimal `json:"largo_m" binding:"required"`
	WidthM       decimal.Decimal `json:"ancho_m" binding:"required"`
	ParcelID     uint            `json:"parcela_id" binding:"required"`
	CropID       *uint           `json:"cultivo_id,omitempty"`
}

// UpdateGreenhouseInput is a partial update. Rotating the crop (or clearing
// it with RemoveCrop) is a normal update; the parcel link never changes.
type UpdateGreenhouseInput struct {
	PlantingDate *time.Time       `json:"fecha_plantacion,omitempty"`
	LengthM      *decimal.Decimal `json:"largo_m,omitempty"`
	WidthM       *decimal.Decimal `json:"ancho_m,omitempty"`
	ParcelID     *uint            `json:"parcela_id,omitempty"`
	CropID       *uint            `json:"cultivo_id,omitempty"`
	RemoveCrop   bool             `json:"quitar_cultivo,omitempty"`
}

// GreenhouseRepository defines persistence operations for greenhouses.
type GreenhouseRepository interface {
	Get(id uint) (*model.Greenhouse, error)
	List(offset, limit int) ([]model.Greenhouse, error)
	ListByParcel(parcelID uint, offset, limit int) ([]model.Greenhouse, error)
	Create(in CreateGreenhouseInput) (*model.Greenhouse, error)
	Update(id uint, in UpdateGreenhouseInput) (*model.Greenhouse, error)
	Delete(id uint) error
}

type greenhouseRepository struct {
	db *gorm.DB
}

// NewGreenhouseRepository creates a new greenhouse repository
func NewGreenhouseRepository(db *gorm.DB) GreenhouseRepository {
	return &greenhouseRepository{db: db}
}

func (r *greenhouseRepository) Get(id uint) (*model.Greenhouse, error) {
	var greenhouse model.Greenhouse
	err := r.db.Preload("Parcel").Preload("Crop").
		First(&greenhouse, "invernadero_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Invernadero %d no encontrado", id)
	}
	if err != nil {
		return nil, err
	}
	return &greenhouse, nil
}

func (r *greenhouseRepository) List(offset, limit int) ([]model.Greenhouse, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var greenhouses []model.Greenhouse
	err := r.db.Preload("Parcel").Preload("Crop").
		Where("activa = ?", true).
		Offset(offset).Limit(limit).Find(&greenhouses).Error
	return greenhouses, err
}

func (r *greenhouseRepository) ListByParcel(parcelID uint, offset, limit int) ([]model.Greenhouse, error) {
	var count int64
	if err := r.db.Model(&model.Parcel{}).Where("parcela_id = ?", parcelID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Parcela %d no encontrada", parcelID)
	}

	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var greenhouses []model.Greenhouse
	err := r.db.Preload("Parcel").Preload("Crop").
		Where("parcela_id = ? AND activa = ?", parcelID, true).
		Offset(offset).Limit(limit).Find(&greenhouses).Error
	return greenhouses, err
}

// Create verifies the parcel exists and, when a crop is supplied, that it
// exists too, then persists.
func (r *greenhouseRepository) Create(in CreateGreenhouseInput) (*model.Greenhouse, error) {
	var count int64
	if err := r.db.Model(&model.Parcel{}).Where("parcela_id = ?", in.ParcelID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Parcela %d no encontrada", in.ParcelID)
	}
	if in.CropID != nil {
		if err := r.db.Model(&model.Crop{}).Where("cultivo_id = ?", *in.CropID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Cultivo %d no encontrado", *in.CropID)
		}
	}

	greenhouse := model.Greenhouse{
		PlantingDate: in.PlantingDate,
		LengthM:      in.LengthM,
		WidthM:       in.WidthM,
		ParcelID:     in.ParcelID,
		CropID:       in.CropID,
		Active:       true,
	}
	if err := r.db.Create(&greenhouse).Error; err != nil {
		return nil, err
	}
	return r.Get(greenhouse.ID)
}

// Update rotates the crop and edits dimensions/planting date. The parcel
// link is structural identity: any attempt to change it is a conflict, no
// flag unlocks it.
func (r *greenhouseRepository) Update(id uint, in UpdateGreenhouseInput) (*model.Greenhouse, error) {
	greenhouse, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	if in.ParcelID != nil && *in.ParcelID != greenhouse.ParcelID {
		return nil, apperr.Conflict("Un invernadero no puede cambiar de parcela")
	}

	switch {
	case in.RemoveCrop:
		greenhouse.CropID = nil
	case in.CropID != nil && (greenhouse.CropID == nil || *in.CropID != *greenhouse.CropID):
		var count int64
		if err := r.db.Model(&model.Crop{}).Where("cultivo_id = ?", *in.CropID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Cultivo %d no encontrado", *in.CropID)
		}
		greenhouse.CropID = in.CropID
	}

	if in.PlantingDate != nil {
		greenhouse.PlantingDate = in.PlantingDate
	}
	if in.LengthM != nil {
		greenhouse.LengthM = *in.LengthM
	}
	if in.WidthM != nil {
		greenhouse.WidthM = *in.WidthM
	}

	if err := r.db.Omit(clause.Associations).Save(greenhouse).Error; err != nil {
		return nil, err
	}
	return r.Get(id)
}

// Delete deactivates the greenhouse (soft delete); its sensors, actuators
// and recommendation history stay reachable for audit.
func (r *greenhouseRepository) Delete(id uint) error {
	greenhouse, err := r.Get(id)
	if err != nil {
		return err
	}
	greenhouse.Active = false
	return r.db.Omit(clause.Associations).Save(greenhouse).Error
}
