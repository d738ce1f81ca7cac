package repository

import (
	"time"

	"gorm.io/gorm"

	"sira-backend/internal/model"
)

// SensorTypeAggregate is one row of the per-type measurement rollup for a
// greenhouse.
type SensorTypeAggregate struct {
	SensorTypeID   uint    `gorm:"column:tipo_sensor_id" json:"tipo_sensor_id"`
	SensorTypeName string  `gorm:"column:nombre_tipo" json:"nombre_tipo"`
	UnitOfMeasure  string  `gorm:"column:unidad_medida" json:"unidad_medida"`
	AvgValue       float64 `gorm:"column:avg_value" json:"valor_medio"`
	MinValue       float64 `gorm:"column:min_value" json:"valor_minimo"`
	MaxValue       float64 `gorm:"column:max_value" json:"valor_maximo"`
	SampleCount    int     `gorm:"column:sample_count" json:"num_mediciones"`
}

// StatsRepository answers aggregate queries over the measurement history.
type StatsRepository interface {
	GreenhouseExists(greenhouseID uint) (bool, error)
	GreenhouseAggregates(greenhouseID uint, since, until time.Time) ([]SensorTypeAggregate, error)
	GreenhouseOptimalParameters(greenhouseID uint) ([]model.OptimalParameters, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// GreenhouseExists checks if a greenhouse with the given ID exists
func (r *statsRepository) GreenhouseExists(greenhouseID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Greenhouse{}).Where("invernadero_id = ?", greenhouseID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GreenhouseAggregates rolls up the greenhouse's measurements per sensor
// type with a single grouped query.
func (r *statsRepository) GreenhouseAggregates(greenhouseID uint, since, until time.Time) ([]SensorTypeAggregate, error) {
	var results []SensorTypeAggregate

	sqlQuery := `
		SELECT
			ts.tipo_sensor_id,
			ts.nombre_tipo,
			ts.unidad_medida,
			AVG(m.valor) as avg_value,
			MIN(m.valor) as min_value,
			MAX(m.valor) as max_value,
			COUNT(*) as sample_count
		FROM medicion m
		JOIN sensor s ON s.sensor_id = m.sensor_id
		JOIN tipo_sensor ts ON ts.tipo_sensor_id = s.tipo_sensor_id
		WHERE s.invernadero_id = ? AND m.fecha_hora >= ? AND m.fecha_hora < ?
		GROUP BY ts.tipo_sensor_id, ts.nombre_tipo, ts.unidad_medida
		ORDER BY ts.nombre_tipo ASC`

	err := r.db.Raw(sqlQuery, greenhouseID, since, until).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GreenhouseOptimalParameters returns the optimal ranges for the crop the
// greenhouse currently grows. Empty when no crop is assigned.
func (r *statsRepository) GreenhouseOptimalParameters(greenhouseID uint) ([]model.OptimalParameters, error) {
	var greenhouse model.Greenhouse
	if err := r.db.First(&greenhouse, "invernadero_id = ?", greenhouseID).Error; err != nil {
		return nil, err
	}
	if greenhouse.CropID == nil {
		return nil, nil
	}

	var params []model.OptimalParameters
	err := r.db.Where("cultivo_id = ?", *greenhouse.CropID).
		Order("parametro_id ASC").Find(&params).Error
	return params, err
}
