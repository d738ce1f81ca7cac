package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sira-backend/internal/model"
	"sira-backend/internal/repository"
)

// fakeStatsRepository is an in-memory StatsRepository for testing
type fakeStatsRepository struct {
	exists     bool
	aggregates []repository.SensorTypeAggregate
	params     []model.OptimalParameters
}

func (f *fakeStatsRepository) GreenhouseExists(greenhouseID uint) (bool, error) {
	return f.exists, nil
}

func (f *fakeStatsRepository) GreenhouseAggregates(greenhouseID uint, since, until time.Time) ([]repository.SensorTypeAggregate, error) {
	return f.aggregates, nil
}

func (f *fakeStatsRepository) GreenhouseOptimalParameters(greenhouseID uint) ([]model.OptimalParameters, error) {
	return f.params, nil
}

func optimalParams(tempMin, tempMax, humMin, humMax float64) model.OptimalParameters {
	return model.OptimalParameters{
		GrowthPhase: "crecimiento",
		TempMin:     decimal.NewFromFloat(tempMin),
		TempMax:     decimal.NewFromFloat(tempMax),
		HumidityMin: decimal.NewFromFloat(humMin),
		HumidityMax: decimal.NewFromFloat(humMax),
	}
}

func TestGetGreenhouseConditionsInRange(t *testing.T) {
	repo := &fakeStatsRepository{
		exists: true,
		aggregates: []repository.SensorTypeAggregate{
			{SensorTypeID: 1, SensorTypeName: "Temperatura", UnitOfMeasure: "C", AvgValue: 22.0, MinValue: 18, MaxValue: 26, SampleCount: 48},
			{SensorTypeID: 2, SensorTypeName: "Humedad relativa", UnitOfMeasure: "%", AvgValue: 65.0, MinValue: 50, MaxValue: 75, SampleCount: 48},
		},
		params: []model.OptimalParameters{optimalParams(16, 28, 55, 80)},
	}
	svc := NewConditionsService(repo)

	report, err := svc.GetGreenhouseConditions(1, 24*time.Hour)
	if err != nil {
		t.Fatalf("GetGreenhouseConditions returned error: %v", err)
	}
	if len(report.Readings) != 2 {
		t.Fatalf("Expected 2 readings, got %d", len(report.Readings))
	}
	for _, r := range report.Readings {
		if r.InRange == nil || !*r.InRange {
			t.Errorf("Expected %s to be in range", r.SensorTypeName)
		}
		if r.DeviationPct == nil || *r.DeviationPct != 0 {
			t.Errorf("Expected zero deviation for %s", r.SensorTypeName)
		}
	}
	if len(report.OptimalBands) != 1 {
		t.Errorf("Expected 1 optimal band, got %d", len(report.OptimalBands))
	}
}

func TestGetGreenhouseConditionsOutOfRange(t *testing.T) {
	repo := &fakeStatsRepository{
		exists: true,
		aggregates: []repository.SensorTypeAggregate{
			{SensorTypeID: 1, SensorTypeName: "Temperatura", UnitOfMeasure: "C", AvgValue: 33.0, SampleCount: 10},
		},
		params: []model.OptimalParameters{optimalParams(16, 28, 55, 80)},
	}
	svc := NewConditionsService(repo)

	report, err := svc.GetGreenhouseConditions(1, 24*time.Hour)
	if err != nil {
		t.Fatalf("GetGreenhouseConditions returned error: %v", err)
	}
	r := report.Readings[0]
	if r.InRange == nil || *r.InRange {
		t.Error("Expected temperature to be out of range")
	}
	// 5 degrees above a band with midpoint 22: 5/22*100 = 22.73
	if r.DeviationPct == nil || *r.DeviationPct != 22.73 {
		t.Errorf("Expected deviation 22.73, got %v", r.DeviationPct)
	}
}

func TestGetGreenhouseConditionsMultiPhaseEnvelope(t *testing.T) {
	// Two phases widen the acceptable envelope to the union of both
	repo := &fakeStatsRepository{
		exists: true,
		aggregates: []repository.SensorTypeAggregate{
			{SensorTypeID: 1, SensorTypeName: "Temperatura", UnitOfMeasure: "C", AvgValue: 14.0, SampleCount: 10},
		},
		params: []model.OptimalParameters{
			optimalParams(16, 28, 55, 80),
			optimalParams(12, 20, 50, 70),
		},
	}
	svc := NewConditionsService(repo)

	report, err := svc.GetGreenhouseConditions(1, 24*time.Hour)
	if err != nil {
		t.Fatalf("GetGreenhouseConditions returned error: %v", err)
	}
	r := report.Readings[0]
	if r.InRange == nil || !*r.InRange {
		t.Error("Expected 14C to fall inside the 12-28 envelope")
	}
}

func TestGetGreenhouseConditionsNoCrop(t *testing.T) {
	repo := &fakeStatsRepository{
		exists: true,
		aggregates: []repository.SensorTypeAggregate{
			{SensorTypeID: 1, SensorTypeName: "Temperatura", UnitOfMeasure: "C", AvgValue: 22.0, SampleCount: 10},
			{SensorTypeID: 3, SensorTypeName: "Luminosidad", UnitOfMeasure: "lux", AvgValue: 12000, SampleCount: 10},
		},
	}
	svc := NewConditionsService(repo)

	report, err := svc.GetGreenhouseConditions(1, 24*time.Hour)
	if err != nil {
		t.Fatalf("GetGreenhouseConditions returned error: %v", err)
	}
	for _, r := range report.Readings {
		if r.InRange != nil {
			t.Errorf("Expected no verdict for %s without optimal bands", r.SensorTypeName)
		}
	}
	if len(report.OptimalBands) != 0 {
		t.Errorf("Expected no optimal bands, got %d", len(report.OptimalBands))
	}
}
