package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"sira-backend/internal/apperr"
	"sira-backend/internal/model"
)

func TestSensorCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeviceRepository(db)

	st := mustSensorType(t, db, "Temperatura", "C")
	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	gh := mustGreenhouse(t, db, parcel.ID, nil)

	// Unassigned sensor
	sensor, err := repo.CreateSensor(CreateSensorInput{
		Location:     "almacen",
		Status:       "inactivo",
		SensorTypeID: st.ID,
	})
	require.NoError(t, err)
	require.Nil(t, sensor.GreenhouseID)
	require.Equal(t, "Temperatura", sensor.SensorType.Name)

	// Installed in a greenhouse
	sensor, err = repo.CreateSensor(CreateSensorInput{
		Location:     "zona central",
		Status:       "activo",
		SensorTypeID: st.ID,
		GreenhouseID: uintPtr(gh.ID),
	})
	require.NoError(t, err)
	require.Equal(t, gh.ID, *sensor.GreenhouseID)

	// Unknown type and unknown greenhouse
	_, err = repo.CreateSensor(CreateSensorInput{SensorTypeID: 999})
	require.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = repo.CreateSensor(CreateSensorInput{SensorTypeID: st.ID, GreenhouseID: uintPtr(999)})
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSensorReassignAndDetach(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeviceRepository(db)

	st := mustSensorType(t, db, "Temperatura", "C")
	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	gh1 := mustGreenhouse(t, db, parcel.ID, nil)
	gh2 := mustGreenhouse(t, db, parcel.ID, nil)
	sensor := mustSensor(t, db, st.ID, uintPtr(gh1.ID))

	// Move to another greenhouse
	updated, err := repo.UpdateSensor(sensor.ID, UpdateSensorInput{GreenhouseID: uintPtr(gh2.ID)})
	require.NoError(t, err)
	require.Equal(t, gh2.ID, *updated.GreenhouseID)

	// Detach entirely
	updated, err = repo.UpdateSensor(sensor.ID, UpdateSensorInput{RemoveGreenhouse: true})
	require.NoError(t, err)
	require.Nil(t, updated.GreenhouseID)

	// Status edit leaves the rest untouched
	updated, err = repo.UpdateSensor(sensor.ID, UpdateSensorInput{Status: strPtr("averiado")})
	require.NoError(t, err)
	require.Equal(t, "averiado", updated.Status)
	require.Equal(t, st.ID, updated.SensorTypeID)
}

func TestSensorDeleteBlockedByMeasurements(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeviceRepository(db)

	st := mustSensorType(t, db, "Temperatura", "C")
	sensor := mustSensor(t, db, st.ID, nil)

	m := model.Measurement{Timestamp: time.Now(), Value: decimal.NewFromFloat(21.5), SensorID: sensor.ID}
	require.NoError(t, db.Create(&m).Error)

	err := repo.DeleteSensor(sensor.ID)
	require.True(t, errors.Is(err, apperr.ErrReferentialBlock))

	require.NoError(t, db.Delete(&m).Error)
	require.NoError(t, repo.DeleteSensor(sensor.ID))
}

func TestSensorsByGreenhouse(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeviceRepository(db)

	st := mustSensorType(t, db, "Temperatura", "C")
	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	gh := mustGreenhouse(t, db, parcel.ID, nil)
	mustSensor(t, db, st.ID, uintPtr(gh.ID))
	mustSensor(t, db, st.ID, uintPtr(gh.ID))
	mustSensor(t, db, st.ID, nil)

	sensors, err := repo.ListSensorsByGreenhouse(gh.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, sensors, 2)

	_, err = repo.ListSensorsByGreenhouse(999, 0, 0)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestActuatorLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeviceRepository(db)

	at := mustActuatorType(t, db, "Valvula de riego")
	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	gh := mustGreenhouse(t, db, parcel.ID, nil)

	actuator, err := repo.CreateActuator(CreateActuatorInput{
		Location:       "cabecera de riego",
		Status:         "activo",
		ActuatorTypeID: at.ID,
		GreenhouseID:   uintPtr(gh.ID),
	})
	require.NoError(t, err)
	require.Equal(t, "Valvula de riego", actuator.ActuatorType.Name)

	// Detach and delete
	updated, err := repo.UpdateActuator(actuator.ID, UpdateActuatorInput{RemoveGreenhouse: true})
	require.NoError(t, err)
	require.Nil(t, updated.GreenhouseID)

	require.NoError(t, repo.DeleteActuator(actuator.ID))
	_, err = repo.GetActuator(actuator.ID)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestActuatorDeleteBlockedByActions(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeviceRepository(db)

	at := mustActuatorType(t, db, "Valvula de riego")
	actuator := mustActuator(t, db, at.ID, nil)

	action := model.ActuatorAction{Timestamp: time.Now(), Detail: "apertura 10min", ActuatorID: actuator.ID}
	require.NoError(t, db.Create(&action).Error)

	err := repo.DeleteActuator(actuator.ID)
	require.True(t, errors.Is(err, apperr.ErrReferentialBlock))
}
