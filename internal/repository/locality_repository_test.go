package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"sira-backend/internal/apperr"
)

func TestLocalityCreateAndGet(t *testing.T) {
	repo := NewLocalityRepository(newTestDB(t))

	created, err := repo.Create(CreateLocalityInput{PostalCode: "30001", Municipality: "Murcia", Province: "Murcia"})
	require.NoError(t, err)
	require.Equal(t, "30001", created.PostalCode)

	got, err := repo.Get("30001")
	require.NoError(t, err)
	require.Equal(t, "Murcia", got.Municipality)

	_, err = repo.Get("99999")
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestLocalityCreateDuplicate(t *testing.T) {
	repo := NewLocalityRepository(newTestDB(t))

	_, err := repo.Create(CreateLocalityInput{PostalCode: "30001", Municipality: "Murcia", Province: "Murcia"})
	require.NoError(t, err)

	_, err = repo.Create(CreateLocalityInput{PostalCode: "30001", Municipality: "Otra", Province: "Otra"})
	require.True(t, errors.Is(err, apperr.ErrDuplicate))
}

func TestLocalityUpdateFreeFields(t *testing.T) {
	repo := NewLocalityRepository(newTestDB(t))

	_, err := repo.Create(CreateLocalityInput{PostalCode: "30001", Municipality: "Murcia", Province: "Murcia"})
	require.NoError(t, err)

	updated, err := repo.Update("30001", UpdateLocalityInput{Municipality: strPtr("Cartagena")})
	require.NoError(t, err)
	require.Equal(t, "Cartagena", updated.Municipality)
	require.Equal(t, "30001", updated.PostalCode)
}

func TestLocalityPostalCodeChange(t *testing.T) {
	repo := NewLocalityRepository(newTestDB(t))

	_, err := repo.Create(CreateLocalityInput{PostalCode: "30001", Municipality: "Murcia", Province: "Murcia"})
	require.NoError(t, err)

	// Without confirmation
	_, err = repo.Update("30001", UpdateLocalityInput{PostalCode: strPtr("30002")})
	require.True(t, errors.Is(err, apperr.ErrConfirmationRequired))

	// With confirmation the key is rewritten
	updated, err := repo.Update("30001", UpdateLocalityInput{PostalCode: strPtr("30002"), ConfirmChange: true})
	require.NoError(t, err)
	require.Equal(t, "30002", updated.PostalCode)

	_, err = repo.Get("30001")
	require.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = repo.Get("30002")
	require.NoError(t, err)
}

func TestLocalityPostalCodeChangeBlockedByParcels(t *testing.T) {
	db := newTestDB(t)
	repo := NewLocalityRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	mustParcel(t, db, client.ID, "30001", "30001001A0001X")

	_, err := repo.Update("30001", UpdateLocalityInput{PostalCode: strPtr("30002"), ConfirmChange: true})
	require.True(t, errors.Is(err, apperr.ErrReferentialBlock))
}

func TestLocalityDeleteBlockedByParcels(t *testing.T) {
	db := newTestDB(t)
	repo := NewLocalityRepository(db)
	parcels := NewParcelRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")

	err := repo.Delete("30001")
	require.True(t, errors.Is(err, apperr.ErrReferentialBlock))

	// Deactivating the parcel does not free the locality: the row persists
	// and its foreign key stays live.
	require.NoError(t, parcels.Delete(parcel.ID))
	err = repo.Delete("30001")
	require.True(t, errors.Is(err, apperr.ErrReferentialBlock))
}

func TestLocalityDeleteUnreferenced(t *testing.T) {
	repo := NewLocalityRepository(newTestDB(t))

	_, err := repo.Create(CreateLocalityInput{PostalCode: "30001", Municipality: "Murcia", Province: "Murcia"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete("30001"))
	_, err = repo.Get("30001")
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}
