package repository

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"sira-backend/internal/apperr"
)

func validParamsInput(cropID uint) CreateOptimalParametersInput {
	return CreateOptimalParametersInput{
		GrowthPhase: "crecimiento",
		TempMin:     decimal.NewFromFloat(16),
		TempMax:     decimal.NewFromFloat(28),
		HumidityMin: decimal.NewFromFloat(55),
		HumidityMax: decimal.NewFromFloat(80),
		WaterNeed:   decimal.NewFromFloat(1200),
		CropID:      cropID,
	}
}

func TestCropCreateDuplicateName(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t))

	_, err := repo.CreateCrop(CreateCropInput{Name: "Tomate"})
	require.NoError(t, err)

	_, err = repo.CreateCrop(CreateCropInput{Name: "Tomate"})
	require.True(t, errors.Is(err, apperr.ErrDuplicate))
}

func TestCropUpdateRename(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t))

	crop, err := repo.CreateCrop(CreateCropInput{Name: "Tomate"})
	require.NoError(t, err)
	_, err = repo.CreateCrop(CreateCropInput{Name: "Pimiento"})
	require.NoError(t, err)

	// Renaming onto an existing name is refused
	_, err = repo.UpdateCrop(crop.ID, UpdateCropInput{Name: strPtr("Pimiento")})
	require.True(t, errors.Is(err, apperr.ErrDuplicate))

	updated, err := repo.UpdateCrop(crop.ID, UpdateCropInput{Name: strPtr("Tomate Cherry")})
	require.NoError(t, err)
	require.Equal(t, "Tomate Cherry", updated.Name)
}

func TestCropDeleteBlocked(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	crop := mustCrop(t, db, "Tomate")

	// Blocked by a greenhouse growing it
	gh := mustGreenhouse(t, db, parcel.ID, uintPtr(crop.ID))
	err := repo.DeleteCrop(crop.ID)
	require.True(t, errors.Is(err, apperr.ErrReferentialBlock))

	// Detach the greenhouse; still blocked by growth-phase parameters
	require.NoError(t, db.Model(gh).Update("cultivo_id", nil).Error)
	_, err = repo.CreateOptimalParameters(validParamsInput(crop.ID))
	require.NoError(t, err)
	err = repo.DeleteCrop(crop.ID)
	require.True(t, errors.Is(err, apperr.ErrReferentialBlock))
}

func TestCropDeleteUnreferenced(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t))

	crop, err := repo.CreateCrop(CreateCropInput{Name: "Tomate"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCrop(crop.ID))
	_, err = repo.GetCrop(crop.ID)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestOptimalParametersCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db)
	crop := mustCrop(t, db, "Tomate")

	params, err := repo.CreateOptimalParameters(validParamsInput(crop.ID))
	require.NoError(t, err)
	require.Equal(t, "Tomate", params.Crop.Name)

	// Unknown crop
	_, err = repo.CreateOptimalParameters(validParamsInput(999))
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestOptimalParametersInvertedRanges(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db)
	crop := mustCrop(t, db, "Tomate")

	in := validParamsInput(crop.ID)
	in.TempMin = decimal.NewFromFloat(30)
	in.TempMax = decimal.NewFromFloat(20)
	_, err := repo.CreateOptimalParameters(in)
	require.True(t, errors.Is(err, apperr.ErrValidation))

	in = validParamsInput(crop.ID)
	in.HumidityMin = decimal.NewFromFloat(90)
	in.HumidityMax = decimal.NewFromFloat(50)
	_, err = repo.CreateOptimalParameters(in)
	require.True(t, errors.Is(err, apperr.ErrValidation))

	// The same validation applies to partial updates
	params, err := repo.CreateOptimalParameters(validParamsInput(crop.ID))
	require.NoError(t, err)
	_, err = repo.UpdateOptimalParameters(params.ID, UpdateOptimalParametersInput{TempMin: decPtr(35)})
	require.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestOptimalParametersListByCrop(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db)
	tomato := mustCrop(t, db, "Tomate")
	pepper := mustCrop(t, db, "Pimiento")

	_, err := repo.CreateOptimalParameters(validParamsInput(tomato.ID))
	require.NoError(t, err)
	_, err = repo.CreateOptimalParameters(validParamsInput(pepper.ID))
	require.NoError(t, err)

	params, err := repo.ListOptimalParametersByCrop(tomato.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, params, 1)
	require.Equal(t, tomato.ID, params[0].CropID)

	_, err = repo.ListOptimalParametersByCrop(999, 0, 0)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestOptimalParametersDeleteIsFree(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db)
	crop := mustCrop(t, db, "Tomate")

	params, err := repo.CreateOptimalParameters(validParamsInput(crop.ID))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOptimalParameters(params.ID))
	_, err = repo.GetOptimalParameters(params.ID)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSensorTypeLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db)

	st, err := repo.CreateSensorType(CreateSensorTypeInput{Name: "Temperatura", UnitOfMeasure: "C"})
	require.NoError(t, err)

	_, err = repo.CreateSensorType(CreateSensorTypeInput{Name: "Temperatura", UnitOfMeasure: "K"})
	require.True(t, errors.Is(err, apperr.ErrDuplicate))

	// Delete blocked while a sensor references the type
	sensor := mustSensor(t, db, st.ID, nil)
	err = repo.DeleteSensorType(st.ID)
	require.True(t, errors.Is(err, apperr.ErrReferentialBlock))

	require.NoError(t, db.Delete(sensor).Error)
	require.NoError(t, repo.DeleteSensorType(st.ID))
}

func TestActuatorTypeLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db)

	at, err := repo.CreateActuatorType(CreateActuatorTypeInput{Name: "Valvula de riego"})
	require.NoError(t, err)

	_, err = repo.CreateActuatorType(CreateActuatorTypeInput{Name: "Valvula de riego"})
	require.True(t, errors.Is(err, apperr.ErrDuplicate))

	actuator := mustActuator(t, db, at.ID, nil)
	err = repo.DeleteActuatorType(at.ID)
	require.True(t, errors.Is(err, apperr.ErrReferentialBlock))

	require.NoError(t, db.Delete(actuator).Error)
	require.NoError(t, repo.DeleteActuatorType(at.ID))
}
