package repository

import (
	"errors"

	"gorm.io/gorm"

	"sira-backend/internal/apperr"
	"sira-backend/internal/auth"
	"sira-backend/internal/model"
)

// CreateClientInput is the payload for registering a tenant account. The
// plaintext secret is hashed before it ever reaches the row.
type CreateClientInput struct {
	CompanyName   string `json:"nombre_empresa" binding:"required,max=150"`
	CIF           string `json:"cif" binding:"required,len=9"`
	AdminEmail    string `json:"email_admin" binding:"required,email,max=150"`
	Phone         string `json:"telefono" binding:"required,max=13"`
	ContactPerson string `json:"persona_contacto" binding:"required,max=100"`
	Password      string `json:"password" binding:"required,min=8"`
}

// UpdateClientInput is a partial update. Nil fields are left unchanged.
// Changing the CIF is a sensitive correction and requires ConfirmChange.
type UpdateClientInput struct {
	CompanyName   *string `json:"nombre_empresa,omitempty" binding:"omitempty,max=150"`
	CIF           *string `json:"cif,omitempty" binding:"omitempty,len=9"`
	AdminEmail    *string `json:"email_admin,omitempty" binding:"omitempty,email,max=150"`
	Phone         *string `json:"telefono,omitempty" binding:"omitempty,max=13"`
	ContactPerson *string `json:"persona_contacto,omitempty" binding:"omitempty,max=100"`
	Password      *string `json:"password,omitempty" binding:"omitempty,min=8"`
	ConfirmChange bool    `json:"confirmar_cambio,omitempty"`
}

// ClientRepository defines persistence operations for tenant accounts.
type ClientRepository interface {
	Get(id uint) (*model.Client, error)
	GetByCIF(cif string) (*model.Client, error)
	List(offset, limit int) ([]model.Client, error)
	Create(in CreateClientInput) (*model.Client, error)
	Update(id uint, in UpdateClientInput) (*model.Client, error)
	Delete(id uint) error
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Get returns a client by ID. Deactivated accounts are still returned so
// audit lookups keep working.
func (r *clientRepository) Get(id uint) (*model.Client, error) {
	var client model.Client
	err := r.db.First(&client, "cliente_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Cliente %d no encontrado", id)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByCIF returns a client by fiscal identifier. Used by the login flow and
// the access gate.
func (r *clientRepository) GetByCIF(cif string) (*model.Client, error) {
	var client model.Client
	err := r.db.First(&client, "cif = ?", cif).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Cliente con CIF %s no encontrado", cif)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// List returns active clients, paginated. Deactivated accounts are excluded
// from default listings.
func (r *clientRepository) List(offset, limit int) ([]model.Client, error) {
	offset, limit = clampPage(offset, limit, DefaultListLimit)
	var clients []model.Client
	err := r.db.Where("activa = ?", true).Offset(offset).Limit(limit).Find(&clients).Error
	return clients, err
}

// Create registers a new client. The CIF uniqueness check runs first so the
// caller gets a precise message; the database unique constraint stays the
// authoritative backstop under concurrent registration.
func (r *clientRepository) Create(in CreateClientInput) (*model.Client, error) {
	var count int64
	if err := r.db.Model(&model.Client{}).Where("cif = ?", in.CIF).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Duplicate("El cliente con CIF %s ya existe", in.CIF)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	client := model.Client{
		CompanyName:   in.CompanyName,
		CIF:           in.CIF,
		AdminEmail:    in.AdminEmail,
		Phone:         in.Phone,
		ContactPerson: in.ContactPerson,
		PasswordHash:  hash,
		Active:        true,
	}
	if err := r.db.Create(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("El cliente con CIF %s ya existe", in.CIF)
		}
		return nil, err
	}
	return &client, nil
}

// Update applies a partial update. The fiscal identifier is immutable unless
// the payload carries the explicit confirmation flag, in which case the
// uniqueness constraint is re-checked on the new value.
func (r *clientRepository) Update(id uint, in UpdateClientInput) (*model.Client, error) {
	client, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	if in.CIF != nil && *in.CIF != client.CIF {
		if !in.ConfirmChange {
			return nil, apperr.ConfirmationRequired(
				"El CIF es un campo protegido; repita la peticion con confirmar_cambio=true")
		}
		var count int64
		if err := r.db.Model(&model.Client{}).
			Where("cif = ? AND cliente_id <> ?", *in.CIF, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Duplicate("El cliente con CIF %s ya existe", *in.CIF)
		}
		client.CIF = *in.CIF
	}

	if in.CompanyName != nil {
		client.CompanyName = *in.CompanyName
	}
	if in.AdminEmail != nil {
		client.AdminEmail = *in.AdminEmail
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.ContactPerson != nil {
		client.ContactPerson = *in.ContactPerson
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		client.PasswordHash = hash
	}

	if err := r.db.Save(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("El cliente con CIF %s ya existe", client.CIF)
		}
		return nil, err
	}
	return client, nil
}

// Delete deactivates the account (soft delete). The row stays queryable by
// ID so parcels and audit history keep a valid owner reference.
func (r *clientRepository) Delete(id uint) error {
	client, err := r.Get(id)
	if err != nil {
		return err
	}
	client.Active = false
	return r.db.Save(client).Error
}
