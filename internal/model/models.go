package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client represents a tenant company account in the irrigation platform.
// The CIF (fiscal identifier) is globally unique and doubles as the login
// username. PasswordHash is never serialized.
type Client struct {
	ID        uint      `gorm:"primaryKey;column:cliente_id" json:"cliente_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CompanyName   string `gorm:"not null;size:150;column:nombre_empresa" json:"nombre_empresa"`
	CIF           string `gorm:"not null;unique;type:char(9);column:cif" json:"cif"`
	AdminEmail    string `gorm:"not null;size:150;column:email_admin" json:"email_admin"`
	Phone         string `gorm:"not null;size:13;column:telefono" json:"telefono"`
	ContactPerson string `gorm:"not null;size:100;column:persona_contacto" json:"persona_contacto"`
	PasswordHash  string `gorm:"not null;size:255;column:hash_contrasena" json:"-"`
	Active        bool   `gorm:"not null;default:true;column:activa" json:"activa"`

	// Relationships
	Parcels []Parcel `gorm:"foreignKey:ClientID" json:"parcelas,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "cliente"
}

// Locality holds a postal code with its municipality and province. The
// postal code is the primary key, kept as a string because Spanish codes
// may start with a leading zero.
type Locality struct {
	PostalCode   string `gorm:"primaryKey;type:char(5);column:codigo_postal" json:"codigo_postal"`
	Municipality string `gorm:"not null;size:100;column:municipio" json:"municipio"`
	Province     string `gorm:"not null;size:100;column:provincia" json:"provincia"`

	// Relationships
	Parcels []Parcel `gorm:"foreignKey:PostalCode;references:PostalCode" json:"parcelas,omitempty"`
}

// TableName specifies the table name for Locality
func (Locality) TableName() string {
	return "localidad"
}

// Parcel is a physical plot of land owned by a client and located in a
// locality. Address and locality are fixed at creation; only ownership may
// change without an explicit confirmation flag.
type Parcel struct {
	ID        uint      `gorm:"primaryKey;column:parcela_id" json:"parcela_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address            string `gorm:"not null;size:150;column:direccion" json:"direccion"`
	CadastralReference string `gorm:"not null;unique;type:char(14);column:ref_catastral" json:"ref_catastral"`
	Active             bool   `gorm:"not null;default:true;column:activa" json:"activa"`

	ClientID   uint   `gorm:"not null;index;column:cliente_id" json:"cliente_id"`
	PostalCode string `gorm:"not null;index;type:char(5);column:codigo_postal" json:"codigo_postal"`

	// Relationships
	Client      Client       `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`
	Locality    Locality     `gorm:"foreignKey:PostalCode;references:PostalCode" json:"localidad,omitempty"`
	Greenhouses []Greenhouse `gorm:"foreignKey:ParcelID" json:"invernaderos,omitempty"`
}

// TableName specifies the table name for Parcel
func (Parcel) TableName() string {
	return "parcela"
}

// Greenhouse is a cultivation structure inside a parcel. The parcel link is
// immutable; the crop link is nullable (fallow) and rotates freely.
// Dimensions are exact decimals to avoid rounding drift on physical measures.
type Greenhouse struct {
	ID        uint      `gorm:"primaryKey;column:invernadero_id" json:"invernadero_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PlantingDate *time.Time      `gorm:"type:date;column:fecha_plantacion" json:"fecha_plantacion,omitempty"`
	LengthM      decimal.Decimal `gorm:"not null;type:numeric(8,2);column:largo_m" json:"largo_m"`
	WidthM       decimal.Decimal `gorm:"not null;type:numeric(8,2);column:ancho_m" json:"ancho_m"`
	Active       bool            `gorm:"not null;default:true;column:activa" json:"activa"`

	ParcelID uint  `gorm:"not null;index;column:parcela_id" json:"parcela_id"`
	CropID   *uint `gorm:"index;column:cultivo_id" json:"cultivo_id,omitempty"`

	// Relationships
	Parcel          Parcel                     `gorm:"foreignKey:ParcelID" json:"parcela,omitempty"`
	Crop            *Crop                      `gorm:"foreignKey:CropID" json:"cultivo,omitempty"`
	Sensors         []Sensor                   `gorm:"foreignKey:GreenhouseID" json:"sensores,omitempty"`
	Actuators       []Actuator                 `gorm:"foreignKey:GreenhouseID" json:"actuadores,omitempty"`
	Recommendations []IrrigationRecommendation `gorm:"foreignKey:GreenhouseID" json:"recomendaciones_riego,omitempty"`
}

// TableName specifies the table name for Greenhouse
func (Greenhouse) TableName() string {
	return "invernadero"
}

// Crop is a catalog entry for a cultivable species, optionally linked to an
// external catalog identifier.
type Crop struct {
	ID uint `gorm:"primaryKey;column:cultivo_id" json:"cultivo_id"`

	Name          string  `gorm:"not null;unique;size:100;column:nombre_cultivo" json:"nombre_cultivo"`
	ExternalAPIID *string `gorm:"unique;size:100;column:external_api_id" json:"external_api_id,omitempty"`

	// Relationships
	Greenhouses       []Greenhouse        `gorm:"foreignKey:CropID" json:"invernaderos,omitempty"`
	OptimalParameters []OptimalParameters `gorm:"foreignKey:CropID" json:"parametros_optimos,omitempty"`
}

// TableName specifies the table name for Crop
func (Crop) TableName() string {
	return "cultivo"
}

// OptimalParameters stores the optimal temperature, humidity and water-need
// ranges for one growth phase of a crop. All ranges are exact decimals.
type OptimalParameters struct {
	ID uint `gorm:"primaryKey;column:parametro_id" json:"parametro_id"`

	GrowthPhase string          `gorm:"not null;size:50;column:fase_crecimiento" json:"fase_crecimiento"`
	TempMin     decimal.Decimal `gorm:"not null;type:numeric(5,2);column:temp_optima_min" json:"temp_optima_min"`
	TempMax     decimal.Decimal `gorm:"not null;type:numeric(5,2);column:temp_optima_max" json:"temp_optima_max"`
	HumidityMin decimal.Decimal `gorm:"not null;type:numeric(5,2);column:humedad_optima_min" json:"humedad_optima_min"`
	HumidityMax decimal.Decimal `gorm:"not null;type:numeric(5,2);column:humedad_optima_max" json:"humedad_optima_max"`
	WaterNeed   decimal.Decimal `gorm:"not null;type:numeric(8,2);column:necesidad_hidrica" json:"necesidad_hidrica"`

	CropID uint `gorm:"not null;index;column:cultivo_id" json:"cultivo_id"`

	// Relationships
	Crop Crop `gorm:"foreignKey:CropID" json:"cultivo,omitempty"`
}

// TableName specifies the table name for OptimalParameters
func (OptimalParameters) TableName() string {
	return "parametros_optimos"
}

// SensorType is a catalog entry for a kind of sensor, including its unit of
// measure (e.g. "ºC", "%Humedad", "ppm").
type SensorType struct {
	ID uint `gorm:"primaryKey;column:tipo_sensor_id" json:"tipo_sensor_id"`

	Name          string `gorm:"not null;unique;size:100;column:nombre_tipo" json:"nombre_tipo"`
	UnitOfMeasure string `gorm:"not null;size:20;column:unidad_medida" json:"unidad_medida"`

	// Relationships
	Sensors []Sensor `gorm:"foreignKey:SensorTypeID" json:"sensores,omitempty"`
}

// TableName specifies the table name for SensorType
func (SensorType) TableName() string {
	return "tipo_sensor"
}

// Sensor is a physical measuring device. It always has a type; the
// greenhouse link is nullable, meaning the unit sits unassigned in inventory.
type Sensor struct {
	ID uint `gorm:"primaryKey;column:sensor_id" json:"sensor_id"`

	Location string `gorm:"size:100;column:ubicacion_sensor" json:"ubicacion_sensor"`
	Status   string `gorm:"size:20;column:estado_sensor" json:"estado_sensor"`

	GreenhouseID *uint `gorm:"index;column:invernadero_id" json:"invernadero_id,omitempty"`
	SensorTypeID uint  `gorm:"not null;index;column:tipo_sensor_id" json:"tipo_sensor_id"`

	// Relationships
	Greenhouse   *Greenhouse   `gorm:"foreignKey:GreenhouseID" json:"invernadero,omitempty"`
	SensorType   SensorType    `gorm:"foreignKey:SensorTypeID" json:"tipo_sensor,omitempty"`
	Measurements []Measurement `gorm:"foreignKey:SensorID" json:"mediciones,omitempty"`
}

// TableName specifies the table name for Sensor
func (Sensor) TableName() string {
	return "sensor"
}

// Measurement is one reading captured by a sensor. Rows are append-only and
// the timestamp is assigned by the store when the caller omits it, so
// server-side ordering stays monotonic.
type Measurement struct {
	ID uint `gorm:"primaryKey;column:medicion_id" json:"medicion_id"`

	Timestamp time.Time       `gorm:"not null;column:fecha_hora" json:"fecha_hora"`
	Value     decimal.Decimal `gorm:"not null;type:numeric(10,2);column:valor" json:"valor"`

	SensorID uint `gorm:"not null;index;column:sensor_id" json:"sensor_id"`
}

// TableName specifies the table name for Measurement
func (Measurement) TableName() string {
	return "medicion"
}

// ActuatorType is a catalog entry for a kind of actuator (e.g. irrigation
// valve, ventilation, heating).
type ActuatorType struct {
	ID uint `gorm:"primaryKey;column:tipo_actuador_id" json:"tipo_actuador_id"`

	Name string `gorm:"not null;unique;size:100;column:nombre_tipo" json:"nombre_tipo"`

	// Relationships
	Actuators []Actuator `gorm:"foreignKey:ActuatorTypeID" json:"actuadores,omitempty"`
}

// TableName specifies the table name for ActuatorType
func (ActuatorType) TableName() string {
	return "tipo_actuador"
}

// Actuator is a physical device acting on a greenhouse. Same inventory
// semantics as Sensor: type required, greenhouse optional.
type Actuator struct {
	ID uint `gorm:"primaryKey;column:actuador_id" json:"actuador_id"`

	Location string `gorm:"size:100;column:ubicacion_actuador" json:"ubicacion_actuador"`
	Status   string `gorm:"size:20;column:estado_actuador" json:"estado_actuador"`

	GreenhouseID   *uint `gorm:"index;column:invernadero_id" json:"invernadero_id,omitempty"`
	ActuatorTypeID uint  `gorm:"not null;index;column:tipo_actuador_id" json:"tipo_actuador_id"`

	// Relationships
	Greenhouse   *Greenhouse      `gorm:"foreignKey:GreenhouseID" json:"invernadero,omitempty"`
	ActuatorType ActuatorType     `gorm:"foreignKey:ActuatorTypeID" json:"tipo_actuador,omitempty"`
	Actions      []ActuatorAction `gorm:"foreignKey:ActuatorID" json:"acciones_actuador,omitempty"`
}

// TableName specifies the table name for Actuator
func (Actuator) TableName() string {
	return "actuador"
}

// ActuatorAction is one entry of the append-only audit log of actuator
// activity ("valve open 5 min"). Timestamp handling matches Measurement.
type ActuatorAction struct {
	ID uint `gorm:"primaryKey;column:accion_id" json:"accion_id"`

	Timestamp time.Time `gorm:"not null;column:fecha_hora" json:"fecha_hora"`
	Detail    string    `gorm:"not null;size:100;column:accion_detalle" json:"accion_detalle"`

	ActuatorID uint `gorm:"not null;index;column:actuador_id" json:"actuador_id"`
}

// TableName specifies the table name for ActuatorAction
func (ActuatorAction) TableName() string {
	return "accion_actuador"
}

// IrrigationRecommendation records one irrigation advice generated for a
// greenhouse: how much, for how long, and the reasoning behind it.
type IrrigationRecommendation struct {
	ID uint `gorm:"primaryKey;column:recomendacion_id" json:"recomendacion_id"`

	Timestamp   time.Time       `gorm:"not null;column:fecha_recomendacion" json:"fecha_recomendacion"`
	AmountML    decimal.Decimal `gorm:"not null;type:numeric(8,2);column:cantidad_ml" json:"cantidad_ml"`
	DurationMin int             `gorm:"not null;column:duracion_min" json:"duracion_min"`
	Reason      string          `gorm:"not null;size:255;column:razon_logica" json:"razon_logica"`

	GreenhouseID uint `gorm:"not null;index;column:invernadero_id" json:"invernadero_id"`

	// Relationships
	Greenhouse Greenhouse `gorm:"foreignKey:GreenhouseID" json:"invernadero,omitempty"`
}

// TableName specifies the table name for IrrigationRecommendation
func (IrrigationRecommendation) TableName() string {
	return "recomendacion_riego"
}
