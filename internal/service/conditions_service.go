package service

import (
	"math"
	"time"

	"sira-backend/internal/repository"
)

// ConditionsService defines the interface for greenhouse condition reports
type ConditionsService interface {
	GreenhouseExists(greenhouseID uint) (bool, error)
	GetGreenhouseConditions(greenhouseID uint, window time.Duration) (*ConditionsReport, error)
}

// ConditionsReport summarizes recent measurements for a greenhouse against
// the optimal ranges of its current crop.
type ConditionsReport struct {
	GreenhouseID uint               `json:"invernadero_id"`
	Period       ReportPeriod       `json:"periodo"`
	Readings     []ConditionReading `json:"lecturas"`
	OptimalBands []OptimalBand      `json:"rangos_optimos"`
}

// ReportPeriod is the time window the report covers
type ReportPeriod struct {
	Since time.Time `json:"desde"`
	Until time.Time `json:"hasta"`
}

// ConditionReading is the aggregate for one sensor type, with an in-range
// verdict when an optimal band applies.
type ConditionReading struct {
	SensorTypeID   uint     `json:"tipo_sensor_id"`
	SensorTypeName string   `json:"nombre_tipo"`
	UnitOfMeasure  string   `json:"unidad_medida"`
	AvgValue       float64  `json:"valor_medio"`
	MinValue       float64  `json:"valor_minimo"`
	MaxValue       float64  `json:"valor_maximo"`
	SampleCount    int      `json:"num_mediciones"`
	InRange        *bool    `json:"en_rango,omitempty"`
	DeviationPct   *float64 `json:"desviacion_pct,omitempty"`
}

// OptimalBand is one growth phase's target ranges
type OptimalBand struct {
	GrowthPhase string  `json:"fase_crecimiento"`
	TempMin     float64 `json:"temp_optima_min"`
	TempMax     float64 `json:"temp_optima_max"`
	HumidityMin float64 `json:"humedad_optima_min"`
	HumidityMax float64 `json:"humedad_optima_max"`
}

type conditionsService struct {
	stats repository.StatsRepository
}

// NewConditionsService creates a new conditions service
func NewConditionsService(stats repository.StatsRepository) ConditionsService {
	return &conditionsService{stats: stats}
}

// GreenhouseExists checks if a greenhouse with the given ID exists
func (s *conditionsService) GreenhouseExists(greenhouseID uint) (bool, error) {
	return s.stats.GreenhouseExists(greenhouseID)
}

// GetGreenhouseConditions builds the condition report for the trailing
// window ending now.
func (s *conditionsService) GetGreenhouseConditions(greenhouseID uint, window time.Duration) (*ConditionsReport, error) {
	until := time.Now()
	since := until.Add(-window)

	aggregates, err := s.stats.GreenhouseAggregates(greenhouseID, since, until)
	if err != nil {
		return nil, err
	}
	params, err := s.stats.GreenhouseOptimalParameters(greenhouseID)
	if err != nil {
		return nil, err
	}

	bands := make([]OptimalBand, 0, len(params))
	for _, p := range params {
		bands = append(bands, OptimalBand{
			GrowthPhase: p.GrowthPhase,
			TempMin:     p.TempMin.InexactFloat64(),
			TempMax:     p.TempMax.InexactFloat64(),
			HumidityMin: p.HumidityMin.InexactFloat64(),
			HumidityMax: p.HumidityMax.InexactFloat64(),
		})
	}

	readings := make([]ConditionReading, 0, len(aggregates))
	for _, agg := range aggregates {
		reading := ConditionReading{
			SensorTypeID:   agg.SensorTypeID,
			SensorTypeName: agg.SensorTypeName,
			UnitOfMeasure:  agg.UnitOfMeasure,
			AvgValue:       round2(agg.AvgValue),
			MinValue:       agg.MinValue,
			MaxValue:       agg.MaxValue,
			SampleCount:    agg.SampleCount,
		}
		if lo, hi, ok := bandFor(agg.UnitOfMeasure, bands); ok {
			inRange := agg.AvgValue >= lo && agg.AvgValue <= hi
			reading.InRange = &inRange
			deviation := round2(deviationPercent(agg.AvgValue, lo, hi))
			reading.DeviationPct = &deviation
		}
		readings = append(readings, reading)
	}

	return &ConditionsReport{
		GreenhouseID: greenhouseID,
		Period:       ReportPeriod{Since: since, Until: until},
		Readings:     readings,
		OptimalBands: bands,
	}, nil
}

// bandFor widens the per-phase ranges into one envelope for the unit.
// Temperature sensors report in C, humidity sensors in %. Other units have
// no defined optimum.
func bandFor(unit string, bands []OptimalBand) (lo, hi float64, ok bool) {
	if len(bands) == 0 {
		return 0, 0, false
	}
	lo = math.Inf(1)
	hi = math.Inf(-1)
	switch unit {
	case "C", "ºC", "°C":
		for _, b := range bands {
			lo = math.Min(lo, b.TempMin)
			hi = math.Max(hi, b.TempMax)
		}
	case "%":
		for _, b := range bands {
			lo = math.Min(lo, b.HumidityMin)
			hi = math.Max(hi, b.HumidityMax)
		}
	default:
		return 0, 0, false
	}
	return lo, hi, true
}

// deviationPercent is how far the average sits outside the band, as a
// percentage of the band midpoint. Zero when inside.
func deviationPercent(avg, lo, hi float64) float64 {
	mid := (lo + hi) / 2
	if mid == 0 {
		return 0
	}
	switch {
	case avg < lo:
		return (lo - avg) / mid * 100
	case avg > hi:
		return (avg - hi) / mid * 100
	default:
		return 0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
