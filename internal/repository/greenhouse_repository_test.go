package repository

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"sira-backend/internal/apperr"
)

func TestGreenhouseCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGreenhouseRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	crop := mustCrop(t, db, "Tomate")

	// Fallow greenhouse
	gh, err := repo.Create(CreateGreenhouseInput{
		LengthM:  decimal.NewFromFloat(40),
		WidthM:   decimal.NewFromFloat(12.5),
		ParcelID: parcel.ID,
	})
	require.NoError(t, err)
	require.Nil(t, gh.CropID)
	require.True(t, gh.Active)

	// With a crop assigned
	gh, err = repo.Create(CreateGreenhouseInput{
		LengthM:  decimal.NewFromFloat(30),
		WidthM:   decimal.NewFromFloat(10),
		ParcelID: parcel.ID,
		CropID:   uintPtr(crop.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, gh.Crop)
	require.Equal(t, "Tomate", gh.Crop.Name)

	// Unknown parcel or crop
	_, err = repo.Create(CreateGreenhouseInput{
		LengthM:  decimal.NewFromFloat(30),
		WidthM:   decimal.NewFromFloat(10),
		ParcelID: 999,
	})
	require.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = repo.Create(CreateGreenhouseInput{
		LengthM:  decimal.NewFromFloat(30),
		WidthM:   decimal.NewFromFloat(10),
		ParcelID: parcel.ID,
		CropID:   uintPtr(999),
	})
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGreenhouseParcelIsImmutable(t *testing.T) {
	db := newTestDB(t)
	repo := NewGreenhouseRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	otherParcel := mustParcel(t, db, client.ID, "30001", "30001001A0002X")
	gh := mustGreenhouse(t, db, parcel.ID, nil)

	_, err := repo.Update(gh.ID, UpdateGreenhouseInput{ParcelID: uintPtr(otherParcel.ID)})
	require.True(t, errors.Is(err, apperr.ErrConflict))

	// Sending the current parcel ID is a no-op, not a conflict
	_, err = repo.Update(gh.ID, UpdateGreenhouseInput{ParcelID: uintPtr(parcel.ID)})
	require.NoError(t, err)
}

func TestGreenhouseCropRotation(t *testing.T) {
	db := newTestDB(t)
	repo := NewGreenhouseRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	tomato := mustCrop(t, db, "Tomate")
	pepper := mustCrop(t, db, "Pimiento")
	gh := mustGreenhouse(t, db, parcel.ID, uintPtr(tomato.ID))

	// Rotate to another crop
	updated, err := repo.Update(gh.ID, UpdateGreenhouseInput{CropID: uintPtr(pepper.ID)})
	require.NoError(t, err)
	require.Equal(t, pepper.ID, *updated.CropID)

	// Clear the crop entirely
	updated, err = repo.Update(gh.ID, UpdateGreenhouseInput{RemoveCrop: true})
	require.NoError(t, err)
	require.Nil(t, updated.CropID)

	// Unknown crop is refused
	_, err = repo.Update(gh.ID, UpdateGreenhouseInput{CropID: uintPtr(999)})
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGreenhouseUpdateDimensions(t *testing.T) {
	db := newTestDB(t)
	repo := NewGreenhouseRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	gh := mustGreenhouse(t, db, parcel.ID, nil)

	updated, err := repo.Update(gh.ID, UpdateGreenhouseInput{LengthM: decPtr(55.5)})
	require.NoError(t, err)
	require.True(t, updated.LengthM.Equal(decimal.NewFromFloat(55.5)))
	require.True(t, updated.WidthM.Equal(gh.WidthM))
}

func TestGreenhouseListByParcel(t *testing.T) {
	db := newTestDB(t)
	repo := NewGreenhouseRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	mustGreenhouse(t, db, parcel.ID, nil)
	mustGreenhouse(t, db, parcel.ID, nil)

	greenhouses, err := repo.ListByParcel(parcel.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, greenhouses, 2)

	_, err = repo.ListByParcel(999, 0, 0)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGreenhouseSoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGreenhouseRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	gh := mustGreenhouse(t, db, parcel.ID, nil)

	require.NoError(t, repo.Delete(gh.ID))

	got, err := repo.Get(gh.ID)
	require.NoError(t, err)
	require.False(t, got.Active)

	list, err := repo.List(0, 0)
	require.NoError(t, err)
	require.Empty(t, list)
}
