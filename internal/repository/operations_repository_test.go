package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"sira-backend/internal/apperr"
)

func TestMeasurementCreateDefaultsTimestamp(t *testing.T) {
	db := newTestDB(t)
	repo := NewOperationsRepository(db)

	st := mustSensorType(t, db, "Temperatura", "C")
	sensor := mustSensor(t, db, st.ID, nil)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = orig }()

	m, err := repo.CreateMeasurement(CreateMeasurementInput{
		Value:    decimal.NewFromFloat(21.5),
		SensorID: sensor.ID,
	})
	require.NoError(t, err)
	require.True(t, m.Timestamp.Equal(fixed))

	// Explicit timestamps are preserved
	explicit := time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)
	m, err = repo.CreateMeasurement(CreateMeasurementInput{
		Timestamp: &explicit,
		Value:     decimal.NewFromFloat(19.2),
		SensorID:  sensor.ID,
	})
	require.NoError(t, err)
	require.True(t, m.Timestamp.Equal(explicit))

	// Unknown sensor is refused
	_, err = repo.CreateMeasurement(CreateMeasurementInput{
		Value:    decimal.NewFromFloat(1),
		SensorID: 999,
	})
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestMeasurementListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewOperationsRepository(db)

	st := mustSensorType(t, db, "Temperatura", "C")
	sensor := mustSensor(t, db, st.ID, nil)
	other := mustSensor(t, db, st.ID, nil)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		_, err := repo.CreateMeasurement(CreateMeasurementInput{
			Timestamp: &ts,
			Value:     decimal.NewFromInt(int64(i)),
			SensorID:  sensor.ID,
		})
		require.NoError(t, err)
	}
	ts := base.Add(30 * time.Minute)
	_, err := repo.CreateMeasurement(CreateMeasurementInput{
		Timestamp: &ts,
		Value:     decimal.NewFromInt(100),
		SensorID:  other.ID,
	})
	require.NoError(t, err)

	ms, err := repo.ListMeasurements(0, 0)
	require.NoError(t, err)
	require.Len(t, ms, 4)
	for i := 1; i < len(ms); i++ {
		require.False(t, ms[i-1].Timestamp.Before(ms[i].Timestamp))
	}

	// Per-sensor listing filters and keeps the ordering
	ms, err = repo.ListMeasurementsBySensor(sensor.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, ms, 3)
	require.True(t, ms[0].Timestamp.After(ms[2].Timestamp))

	_, err = repo.ListMeasurementsBySensor(999, 0, 0)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestActuatorActionCreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewOperationsRepository(db)

	at := mustActuatorType(t, db, "Valvula de riego")
	actuator := mustActuator(t, db, at.ID, nil)

	a, err := repo.CreateActuatorAction(CreateActuatorActionInput{
		Detail:     "apertura 10min",
		ActuatorID: actuator.ID,
	})
	require.NoError(t, err)
	require.False(t, a.Timestamp.IsZero())

	_, err = repo.CreateActuatorAction(CreateActuatorActionInput{Detail: "x", ActuatorID: 999})
	require.True(t, errors.Is(err, apperr.ErrNotFound))

	actions, err := repo.ListActuatorActionsByActuator(actuator.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	require.Equal(t, "apertura 10min", actions[0].Detail)
}

func TestRecommendationLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewOperationsRepository(db)

	client := mustClient(t, db, "A12345678")
	mustLocality(t, db, "30001")
	parcel := mustParcel(t, db, client.ID, "30001", "30001001A0001X")
	gh := mustGreenhouse(t, db, parcel.ID, nil)

	rec, err := repo.CreateRecommendation(CreateRecommendationInput{
		AmountML:     decimal.NewFromInt(1500),
		DurationMin:  20,
		Reason:       "humedad del suelo por debajo del rango optimo",
		GreenhouseID: gh.ID,
	})
	require.NoError(t, err)
	require.Equal(t, gh.ID, rec.GreenhouseID)
	require.False(t, rec.Timestamp.IsZero())

	// Unknown greenhouse
	_, err = repo.CreateRecommendation(CreateRecommendationInput{
		AmountML:     decimal.NewFromInt(1),
		DurationMin:  1,
		Reason:       "x",
		GreenhouseID: 999,
	})
	require.True(t, errors.Is(err, apperr.ErrNotFound))

	// Partial update
	updated, err := repo.UpdateRecommendation(rec.ID, UpdateRecommendationInput{DurationMin: intPtr(35)})
	require.NoError(t, err)
	require.Equal(t, 35, updated.DurationMin)
	require.Equal(t, rec.Reason, updated.Reason)

	// Per-greenhouse listing
	recs, err := repo.ListRecommendationsByGreenhouse(gh.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	// Delete
	require.NoError(t, repo.DeleteRecommendation(rec.ID))
	_, err = repo.GetRecommendation(rec.ID)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func intPtr(v int) *int { return &v }
