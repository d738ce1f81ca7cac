package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"sira-backend/internal/apperr"
	"sira-backend/internal/auth"
)

func validClientInput(cif string) CreateClientInput {
	return CreateClientInput{
		CompanyName:   "Agricola Levante SL",
		CIF:           cif,
		AdminEmail:    "admin@levante.es",
		Phone:         "+34600111222",
		ContactPerson: "Maria Soler",
		Password:      "segura1234",
	}
}

func TestClientCreateHashesPassword(t *testing.T) {
	repo := NewClientRepository(newTestDB(t))

	client, err := repo.Create(validClientInput("A12345678"))
	require.NoError(t, err)
	require.NotZero(t, client.ID)
	require.True(t, client.Active)
	require.NotEqual(t, "segura1234", client.PasswordHash)
	require.True(t, auth.VerifyPassword(client.PasswordHash, "segura1234"))
}

func TestClientCreateDuplicateCIF(t *testing.T) {
	repo := NewClientRepository(newTestDB(t))

	_, err := repo.Create(validClientInput("A12345678"))
	require.NoError(t, err)

	_, err = repo.Create(validClientInput("A12345678"))
	require.True(t, errors.Is(err, apperr.ErrDuplicate))

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "El cliente con CIF A12345678 ya existe", appErr.Message)
}

func TestClientGetNotFound(t *testing.T) {
	repo := NewClientRepository(newTestDB(t))

	_, err := repo.Get(999)
	require.True(t, errors.Is(err, apperr.ErrNotFound))

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "Cliente 999 no encontrado", appErr.Message)
}

func TestClientUpdateCIFRequiresConfirmation(t *testing.T) {
	repo := NewClientRepository(newTestDB(t))

	client, err := repo.Create(validClientInput("A12345678"))
	require.NoError(t, err)

	_, err = repo.Update(client.ID, UpdateClientInput{CIF: strPtr("B99999999")})
	require.True(t, errors.Is(err, apperr.ErrConfirmationRequired))

	updated, err := repo.Update(client.ID, UpdateClientInput{CIF: strPtr("B99999999"), ConfirmChange: true})
	require.NoError(t, err)
	require.Equal(t, "B99999999", updated.CIF)
}

func TestClientUpdateCIFDuplicateRejected(t *testing.T) {
	repo := NewClientRepository(newTestDB(t))

	_, err := repo.Create(validClientInput("A12345678"))
	require.NoError(t, err)
	other, err := repo.Create(validClientInput("B99999999"))
	require.NoError(t, err)

	_, err = repo.Update(other.ID, UpdateClientInput{CIF: strPtr("A12345678"), ConfirmChange: true})
	require.True(t, errors.Is(err, apperr.ErrDuplicate))
}

func TestClientUpdatePartialFields(t *testing.T) {
	repo := NewClientRepository(newTestDB(t))

	client, err := repo.Create(validClientInput("A12345678"))
	require.NoError(t, err)

	updated, err := repo.Update(client.ID, UpdateClientInput{Phone: strPtr("+34699999999")})
	require.NoError(t, err)
	require.Equal(t, "+34699999999", updated.Phone)
	require.Equal(t, client.CompanyName, updated.CompanyName)
	require.Equal(t, client.CIF, updated.CIF)
}

func TestClientSoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)

	client, err := repo.Create(validClientInput("A12345678"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(client.ID))

	// Still reachable by ID, but inactive
	got, err := repo.Get(client.ID)
	require.NoError(t, err)
	require.False(t, got.Active)

	// Excluded from default listings
	list, err := repo.List(0, 0)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestClientGetByCIF(t *testing.T) {
	repo := NewClientRepository(newTestDB(t))

	created, err := repo.Create(validClientInput("A12345678"))
	require.NoError(t, err)

	got, err := repo.GetByCIF("A12345678")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = repo.GetByCIF("X00000000")
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}
