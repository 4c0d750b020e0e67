package history

import (
	"time"

	"github.com/google/uuid"
)

// PatientSnapshot is a full point-in-time copy of a patient row, appended
// on every full update and never modified afterwards.
type PatientSnapshot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`

	PatientID     uuid.UUID `gorm:"column:id_paciente;type:uuid;not null;index" json:"id_paciente"`
	FirstName     string    `gorm:"column:primer_nombre;type:varchar(100)" json:"primer_nombre"`
	MiddleName    string    `gorm:"column:segundo_nombre;type:varchar(100)" json:"segundo_nombre"`
	FirstSurname  string    `gorm:"column:primer_apellido;type:varchar(100)" json:"primer_apellido"`
	SecondSurname string    `gorm:"column:segundo_apellido;type:varchar(100)" json:"segundo_apellido"`
	IdentType     string    `gorm:"column:tipo_identificacion;type:varchar(30)" json:"tipo_identificacion"`
	IdentNumber   string    `gorm:"column:numero_identificacion;type:varchar(50)" json:"numero_identificacion"`
	BirthDate     time.Time `gorm:"column:fecha_nacimiento" json:"fecha_nacimiento"`
	Location      string    `gorm:"column:ubicacion;type:varchar(150)" json:"ubicacion"`
	Status        string    `gorm:"column:status;type:varchar(20)" json:"status"`
	AgeGroup      string    `gorm:"column:age_group;type:varchar(40)" json:"age_group"`
	Responsible   string    `gorm:"column:responsable_registro;type:varchar(100)" json:"responsable_registro"`
}

func (PatientSnapshot) TableName() string {
	return "historial_paciente"
}

// VitalsSnapshot is the immutable copy appended on every vital-signs
// record update. Seq gives the oldest-first ordering of the listing.
type VitalsSnapshot struct {
	Seq       int64     `gorm:"column:seq;primaryKey;autoIncrement" json:"seq"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	PatientID uuid.UUID `gorm:"column:id_paciente;type:uuid;not null;index" json:"id_paciente"`
	RecordID  uuid.UUID `gorm:"column:id_registro;type:uuid;not null;index" json:"id_registro"`

	RecordDate time.Time `gorm:"column:record_date" json:"record_date"`
	RecordTime string    `gorm:"column:record_time;type:varchar(10)" json:"record_time"`

	Systolic        *float64 `gorm:"column:presion_sistolica" json:"presion_sistolica"`
	Diastolic       *float64 `gorm:"column:presion_diastolica" json:"presion_diastolica"`
	MeanPressure    *float64 `gorm:"column:presion_media" json:"presion_media"`
	Pulse           *float64 `gorm:"column:pulso" json:"pulso"`
	Temperature     *float64 `gorm:"column:temperatura" json:"temperatura"`
	RespiratoryRate *float64 `gorm:"column:frecuencia_respiratoria" json:"frecuencia_respiratoria"`
	Saturation      *float64 `gorm:"column:saturacion_oxigeno" json:"saturacion_oxigeno"`
	AdultWeight     *float64 `gorm:"column:peso_adulto" json:"peso_adulto"`
	PediatricWeight *float64 `gorm:"column:peso_pediatrico" json:"peso_pediatrico"`
	Height          *float64 `gorm:"column:talla" json:"talla"`

	Observations string `gorm:"column:observaciones;type:text" json:"observaciones"`
	Responsible  string `gorm:"column:responsable_signos;type:varchar(100)" json:"responsable_signos"`
}

func (VitalsSnapshot) TableName() string {
	return "historial_signos_pacientes"
}
