package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sira-backend/internal/apperr"
	"sira-backend/internal/model"
)

// CreateParcelInput carries a new plot of land. The locality and address are
// fixed forever once the row exists; the cadastral reference must be unique
// platform-wide.
type CreateParcelInput struct {
	Address            string `json:"direccion" binding:"required,max=150"`
	CadastralReference string `json:"ref_catastral" binding:"required,len=14"`
	ClientID           uint   `json:"cliente_id" binding:"required"`
	PostalCode         string `json:"codigo_postal" binding:"required,len=5"`
}

// UpdateParcelInput is a partial update. Ownership (ClientID) transfers
// freely; address, locality and cadastral reference are physical identity
// and only change with the explicit confirmation flag.
type UpdateParcelInput struct {
	ClientID           *uint   `json:"cliente_id,omitempty"`
	Address            *string `json:"direccion,omitempty" binding:"omitempty,max=150"`
	CadastralReference *string `json:"ref_catastral,omitempty" binding:"omitempty,len=14"`
	PostalCode         *string `json:"codigo_postal,omitempty" binding:"omitempty,len=5"`
	ConfirmChange      bool    `json:"confirmar_cambio,omitempty"`
}

// ParcelRepository defines persistence operations for parcels.
type ParcelRepository interface {
	Get(id uint) (*model.Parcel, error)
	List(offset, limit int) ([]model.Parcel, error)
	ListByClient(clientID uint, offset, limit int) ([]model.Parcel, error)
	Create(in CreateParcelInput) (*model.Parcel, error)
	Update(id uint, in UpdateParcelInput) (*model.Parcel, error)
	Delete(id uint) error
}

type parcelRepository struct {
	db *gorm.DB
}

// NewParcelRepository creates a new parcel repository
func NewParcelRepository(db *gorm.DB) ParcelRepository {
	return &parcelRepository{db: db}
}

// Get returns a parcel with its owner and locality resolved. Deactivated
// parcels are still returned by ID for audit.
func (r *parcelRepository) Get(id uint) (*model.Parcel, error) {
	var parcel model.Parcel
	err := r.db.Preload("Client").Preload("Locality").
		First(&parcel, "parcela_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Parcela %d no encontrada", id)
	}
	if err != nil {
		return nil, err
	}
	return &parcel, nil
}

func (r *parcelRepository) List(offset, limit int) ([]model.Parcel, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var parcels []model.Parcel
	err := r.db.Preload("Client").Preload("Locality").
		Where("activa = ?", true).
		Offset(offset).Limit(limit).Find(&parcels).Error
	return parcels, err
}

// ListByClient returns the active parcels owned by one client. The owner
// must exist; an unknown ID is a NotFound, not an empty list.
func (r *parcelRepository) ListByClient(clientID uint, offset, limit int) ([]model.Parcel, error) {
	var count int64
	if err := r.db.Model(&model.Client{}).Where("cliente_id = ?", clientID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Cliente %d no encontrado", clientID)
	}

	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var parcels []model.Parcel
	err := r.db.Preload("Client").Preload("Locality").
		Where("cliente_id = ? AND activa = ?", clientID, true).
		Offset(offset).Limit(limit).Find(&parcels).Error
	return parcels, err
}

// Create validates the uniqueness of the cadastral reference first, then
// every foreign reference, then persists. The database constraint remains
// the backstop for concurrent creates on the same reference.
func (r *parcelRepository) Create(in CreateParcelInput) (*model.Parcel, error) {
	var count int64
	if err := r.db.Model(&model.Parcel{}).
		Where("ref_catastral = ?", in.CadastralReference).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Duplicate("La parcela con referencia catastral %s ya existe", in.CadastralReference)
	}

	if err := r.db.Model(&model.Client{}).Where("cliente_id = ?", in.ClientID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Cliente %d no encontrado", in.ClientID)
	}
	if err := r.db.Model(&model.Locality{}).Where("codigo_postal = ?", in.PostalCode).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Localidad %s no encontrada", in.PostalCode)
	}

	parcel := model.Parcel{
		Address:            in.Address,
		CadastralReference: in.CadastralReference,
		ClientID:           in.ClientID,
		PostalCode:         in.PostalCode,
		Active:             true,
	}
	if err := r.db.Create(&parcel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("La parcela con referencia catastral %s ya existe", in.CadastralReference)
		}
		return nil, err
	}
	return r.Get(parcel.ID)
}

// Update transfers ownership freely. Address, locality and cadastral
// reference are protected: without the confirmation flag the stored record
// is left untouched and the caller gets ConfirmationRequired so it can
// re-prompt.
func (r *parcelRepository) Update(id uint, in UpdateParcelInput) (*model.Parcel, error) {
	parcel, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	protected := (in.Address != nil && *in.Address != parcel.Address) ||
		(in.PostalCode != nil && *in.PostalCode != parcel.PostalCode) ||
		(in.CadastralReference != nil && *in.CadastralReference != parcel.CadastralReference)
	if protected && !in.ConfirmChange {
		return nil, apperr.ConfirmationRequired(
			"Direccion, localidad y referencia catastral son campos protegidos; repita la peticion con confirmar_cambio=true")
	}

	if in.ClientID != nil && *in.ClientID != parcel.ClientID {
		var count int64
		if err := r.db.Model(&model.Client{}).Where("cliente_id = ?", *in.ClientID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Cliente %d no encontrado", *in.ClientID)
		}
		parcel.ClientID = *in.ClientID
	}

	if in.CadastralReference != nil && *in.CadastralReference != parcel.CadastralReference {
		var count int64
		if err := r.db.Model(&model.Parcel{}).
			Where("ref_catastral = ? AND parcela_id <> ?", *in.CadastralReference, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Duplicate("La parcela con referencia catastral %s ya existe", *in.CadastralReference)
		}
		parcel.CadastralReference = *in.CadastralReference
	}
	if in.PostalCode != nil && *in.PostalCode != parcel.PostalCode {
		var count int64
		if err := r.db.Model(&model.Locality{}).Where("codigo_postal = ?", *in.PostalCode).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Localidad %s no encontrada", *in.PostalCode)
		}
		parcel.PostalCode = *in.PostalCode
	}
	if in.Address != nil {
		parcel.Address = *in.Address
	}

	if err := r.db.Omit(clause.Associations).Save(parcel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("La parcela con referencia catastral %s ya existe", parcel.CadastralReference)
		}
		return nil, err
	}
	return r.Get(id)
}

// Delete deactivates the parcel (soft delete); greenhouses and their history
// remain reachable for audit.
func (r *parcelRepository) Delete(id uint) error {
	parcel, err := r.Get(id)
	if err != nil {
		return err
	}
	parcel.Active = false
	return r.db.Omit(clause.Associations).Save(parcel).Error
}
