package repository

import (
	"errors"

	"gorm.io/gorm"

	"sira-backend/internal/apperr"
	"sira-backend/internal/model"
)

// CreateLocalityInput carries a new postal-code entry.
type CreateLocalityInput struct {
	PostalCode   string `json:"codigo_postal" binding:"required,len=5"`
	Municipality string `json:"municipio" binding:"required,max=100"`
	Province     string `json:"provincia" binding:"required,max=100"`
}

// UpdateLocalityInput is a partial update. The postal code is the primary
// key; changing it needs the confirmation flag and is refused while parcels
// still reference the old code.
type UpdateLocalityInput struct {
	PostalCode    *string `json:"codigo_postal,omitempty" binding:"omitempty,len=5"`
	Municipality  *string `json:"municipio,omitempty" binding:"omitempty,max=100"`
	Province      *string `json:"provincia,omitempty" binding:"omitempty,max=100"`
	ConfirmChange bool    `json:"confirmar_cambio,omitempty"`
}

// LocalityRepository defines persistence operations for postal localities.
type LocalityRepository interface {
	Get(postalCode string) (*model.Locality, error)
	List(offset, limit int) ([]model.Locality, error)
	Create(in CreateLocalityInput) (*model.Locality, error)
	Update(postalCode string, in UpdateLocalityInput) (*model.Locality, error)
	Delete(postalCode string) error
}

type localityRepository struct {
	db *gorm.DB
}

// NewLocalityRepository creates a new locality repository
func NewLocalityRepository(db *gorm.DB) LocalityRepository {
	return &localityRepository{db: db}
}

func (r *localityRepository) Get(postalCode string) (*model.Locality, error) {
	var locality model.Locality
	err := r.db.First(&locality, "codigo_postal = ?", postalCode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Localidad %s no encontrada", postalCode)
	}
	if err != nil {
		return nil, err
	}
	return &locality, nil
}

func (r *localityRepository) List(offset, limit int) ([]model.Locality, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var localities []model.Locality
	err := r.db.Order("codigo_postal").Offset(offset).Limit(limit).Find(&localities).Error
	return localities, err
}

func (r *localityRepository) Create(in CreateLocalityInput) (*model.Locality, error) {
	var count int64
	if err := r.db.Model(&model.Locality{}).
		Where("codigo_postal = ?", in.PostalCode).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Duplicate("La localidad %s ya existe", in.PostalCode)
	}

	locality := model.Locality{
		PostalCode:   in.PostalCode,
		Municipality: in.Municipality,
		Province:     in.Province,
	}
	if err := r.db.Create(&locality).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("La localidad %s ya existe", in.PostalCode)
		}
		return nil, err
	}
	return &locality, nil
}

// Update edits municipality/province freely. A postal-code change is a keyed
// correction: it needs the confirmation flag, a uniqueness re-check on the
// new code, and no parcel may still reference the old one.
func (r *localityRepository) Update(postalCode string, in UpdateLocalityInput) (*model.Locality, error) {
	locality, err := r.Get(postalCode)
	if err != nil {
		return nil, err
	}

	if in.PostalCode != nil && *in.PostalCode != locality.PostalCode {
		if !in.ConfirmChange {
			return nil, apperr.ConfirmationRequired(
				"El codigo postal es un campo protegido; repita la peticion con confirmar_cambio=true")
		}
		var count int64
		if err := r.db.Model(&model.Locality{}).
			Where("codigo_postal = ?", *in.PostalCode).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Duplicate("La localidad %s ya existe", *in.PostalCode)
		}
		if err := r.db.Model(&model.Parcel{}).
			Where("codigo_postal = ?", locality.PostalCode).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.ReferentialBlock(
				"No se puede cambiar el codigo postal %s: %d parcelas lo referencian", locality.PostalCode, count)
		}

		// Primary-key rewrite: insert the new row, drop the old one.
		updated := model.Locality{
			PostalCode:   *in.PostalCode,
			Municipality: locality.Municipality,
			Province:     locality.Province,
		}
		if in.Municipality != nil {
			updated.Municipality = *in.Municipality
		}
		if in.Province != nil {
			updated.Province = *in.Province
		}
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&updated).Error; err != nil {
				return err
			}
			return tx.Delete(&model.Locality{}, "codigo_postal = ?", locality.PostalCode).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Duplicate("La localidad %s ya existe", *in.PostalCode)
			}
			return nil, err
		}
		return &updated, nil
	}

	if in.Municipality != nil {
		locality.Municipality = *in.Municipality
	}
	if in.Province != nil {
		locality.Province = *in.Province
	}
	if err := r.db.Save(locality).Error; err != nil {
		return nil, err
	}
	return locality, nil
}

// Delete hard-deletes a locality. Refused while any parcel row references
// the code; deactivated parcels still count because the row persists for
// audit and the foreign key stays live.
func (r *localityRepository) Delete(postalCode string) error {
	if _, err := r.Get(postalCode); err != nil {
		return err
	}
	var count int64
	if err := r.db.Model(&model.Parcel{}).
		Where("codigo_postal = ?", postalCode).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.ReferentialBlock(
			"No se puede eliminar la localidad %s: %d parcelas la referencian", postalCode, count)
	}
	return r.db.Delete(&model.Locality{}, "codigo_postal = ?", postalCode).Error
}
