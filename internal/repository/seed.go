package repository

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sira-backend/internal/auth"
	"sira-backend/internal/model"
)

// SeedRepository populates a development database with a coherent tenant
// hierarchy and a few weeks of sensor history.
type SeedRepository struct {
	db *gorm.DB
}

// NewSeedRepository creates a new seed repository
func NewSeedRepository(db *gorm.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// SeedDatabase seeds demo data. It is a no-op when any client already
// exists, so restarting the server with seeding enabled is safe.
func (s *SeedRepository) SeedDatabase() error {
	var count int64
	if err := s.db.Model(&model.Client{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	clients, err := s.createClients()
	if err != nil {
		return fmt.Errorf("failed to create clients: %w", err)
	}
	localities, err := s.createLocalities()
	if err != nil {
		return fmt.Errorf("failed to create localities: %w", err)
	}
	greenhouses, err := s.createFarmStructure(clients, localities)
	if err != nil {
		return fmt.Errorf("failed to create farm structure: %w", err)
	}
	sensors, err := s.createDevices(greenhouses)
	if err != nil {
		return fmt.Errorf("failed to create devices: %w", err)
	}
	total, err := s.createMeasurements(sensors)
	if err != nil {
		return fmt.Errorf("failed to create measurements: %w", err)
	}

	fmt.Printf("✓ Seeded database successfully:\n")
	fmt.Printf("  - Clients: %d\n", len(clients))
	fmt.Printf("  - Greenhouses: %d\n", len(greenhouses))
	fmt.Printf("  - Sensors: %d\n", len(sensors))
	fmt.Printf("  - Measurements: %d\n", total)

	return nil
}

func (s *SeedRepository) createClients() ([]model.Client, error) {
	// Demo login: CIF A12345678, password "demo1234"
	hash, err := auth.HashPassword("demo1234")
	if err != nil {
		return nil, err
	}

	clients := []model.Client{
		{
			CompanyName:   "Agricola Levante SL",
			CIF:           "A12345678",
			AdminEmail:    "admin@agricolalevante.es",
			Phone:         "+34600111222",
			ContactPerson: "Maria Soler",
			PasswordHash:  hash,
			Active:        true,
		},
		{
			CompanyName:   "Huertos del Segura SA",
			CIF:           "B87654321",
			AdminEmail:    "contacto@huertossegura.es",
			Phone:         "+34600333444",
			ContactPerson: "Jose Navarro",
			PasswordHash:  hash,
			Active:        true,
		},
	}
	if err := s.db.Create(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *SeedRepository) createLocalities() ([]model.Locality, error) {
	localities := []model.Locality{
		{PostalCode: "30001", Municipality: "Murcia", Province: "Murcia"},
		{PostalCode: "04001", Municipality: "Almeria", Province: "Almeria"},
		{PostalCode: "46001", Municipality: "Valencia", Province: "Valencia"},
	}
	if err := s.db.Create(&localities).Error; err != nil {
		return nil, err
	}
	return localities, nil
}

// createFarmStructure builds parcels, crops with their optimal parameters,
// and two greenhouses per parcel.
func (s *SeedRepository) createFarmStructure(clients []model.Client, localities []model.Locality) ([]model.Greenhouse, error) {
	crops := []model.Crop{
		{Name: "Tomate"},
		{Name: "Pimiento"},
		{Name: "Lechuga"},
	}
	if err := s.db.Create(&crops).Error; err != nil {
		return nil, err
	}

	params := []model.OptimalParameters{}
	for _, crop := range crops {
		for _, phase := range []string{"germinacion", "crecimiento", "maduracion"} {
			params = append(params, model.OptimalParameters{
				GrowthPhase: phase,
				TempMin:     decimal.NewFromFloat(16.0),
				TempMax:     decimal.NewFromFloat(28.0),
				HumidityMin: decimal.NewFromFloat(55.0),
				HumidityMax: decimal.NewFromFloat(80.0),
				WaterNeed:   decimal.NewFromFloat(1200.0),
				CropID:      crop.ID,
			})
		}
	}
	if err := s.db.Create(&params).Error; err != nil {
		return nil, err
	}

	parcels := []model.Parcel{}
	for i, client := range clients {
		for j := 1; j <= 2; j++ {
			locality := localities[(i+j)%len(localities)]
			parcels = append(parcels, model.Parcel{
				Address:            fmt.Sprintf("Camino Rural %d, km %d", i+1, j),
				CadastralReference: fmt.Sprintf("%05d%02dA%04dXY", i+1, j, i*10+j),
				Active:             true,
				ClientID:           client.ID,
				PostalCode:         locality.PostalCode,
			})
		}
	}
	if err := s.db.Create(&parcels).Error; err != nil {
		return nil, err
	}

	planted := time.Now().AddDate(0, -2, 0)
	greenhouses := []model.Greenhouse{}
	for i, parcel := range parcels {
		for j := 0; j < 2; j++ {
			cropID := crops[(i+j)%len(crops)].ID
			greenhouses = append(greenhouses, model.Greenhouse{
				PlantingDate: &planted,
				LengthM:      decimal.NewFromFloat(40.0),
				WidthM:       decimal.NewFromFloat(12.5),
				Active:       true,
				ParcelID:     parcel.ID,
				CropID:       &cropID,
			})
		}
	}
	if err := s.db.Create(&greenhouses).Error; err != nil {
		return nil, err
	}
	return greenhouses, nil
}

func (s *SeedRepository) createDevices(greenhouses []model.Greenhouse) ([]model.Sensor, error) {
	sensorTypes := []model.SensorType{
		{Name: "Temperatura", UnitOfMeasure: "C"},
		{Name: "Humedad relativa", UnitOfMeasure: "%"},
		{Name: "Humedad del suelo", UnitOfMeasure: "%"},
	}
	if err := s.db.Create(&sensorTypes).Error; err != nil {
		return nil, err
	}

	actuatorTypes := []model.ActuatorType{
		{Name: "Valvula de riego"},
		{Name: "Ventilacion"},
	}
	if err := s.db.Create(&actuatorTypes).Error; err != nil {
		return nil, err
	}

	sensors := []model.Sensor{}
	actuators := []model.Actuator{}
	for _, gh := range greenhouses {
		ghID := gh.ID
		for _, st := range sensorTypes {
			sensors = append(sensors, model.Sensor{
				Location:     "zona central",
				Status:       "activo",
				GreenhouseID: &ghID,
				SensorTypeID: st.ID,
			})
		}
		actuators = append(actuators, model.Actuator{
			Location:       "cabecera de riego",
			Status:         "activo",
			GreenhouseID:   &ghID,
			ActuatorTypeID: actuatorTypes[0].ID,
		})
	}
	if err := s.db.Create(&sensors).Error; err != nil {
		return nil, err
	}
	if err := s.db.Create(&actuators).Error; err != nil {
		return nil, err
	}
	return sensors, nil
}

// createMeasurements generates two weeks of hourly readings per sensor,
// inserted in batches.
func (s *SeedRepository) createMeasurements(sensors []model.Sensor) (int, error) {
	end := time.Now().Truncate(time.Hour)
	start := end.AddDate(0, 0, -14)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	batchSize := 100
	batch := []model.Measurement{}
	total := 0

	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		for _, sensor := range sensors {
			// Daily cycle around a base value with a little noise
			hour := float64(ts.Hour())
			value := 20.0 + 6.0*math.Sin(2*math.Pi*hour/24.0) + rng.Float64()*2.0

			batch = append(batch, model.Measurement{
				Timestamp: ts,
				Value:     decimal.NewFromFloat(value).Round(2),
				SensorID:  sensor.ID,
			})
			total++

			if len(batch) >= batchSize {
				if err := s.db.Create(&batch).Error; err != nil {
					return 0, fmt.Errorf("failed to create measurement batch: %w", err)
				}
				batch = []model.Measurement{}
			}
		}
	}
	if len(batch) > 0 {
		if err := s.db.Create(&batch).Error; err != nil {
			return 0, fmt.Errorf("failed to create final measurement batch: %w", err)
		}
	}
	return total, nil
}
