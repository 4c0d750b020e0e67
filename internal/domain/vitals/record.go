package vitals

import (
	"time"

	"github.com/google/uuid"
)

// Record is one vital-signs measurement event for a patient. Records are
// corrected in place; every correction also appends an immutable copy to
// the historial table.
type Record struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	PatientID  uuid.UUID `gorm:"column:id_paciente;type:uuid;not null;index" json:"id_paciente"`
	RecordDate time.Time `gorm:"column:record_date;not null" json:"record_date"`
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

	Observations    string `gorm:"column:observaciones;type:text" json:"observaciones"`
	ResponsibleUser string `gorm:"column:responsable_signos;type:varchar(100)" json:"responsable_signos"`
}

func (Record) TableName() string {
	return "registros_paciente"
}

type CreateCommand struct {
	PatientID       uuid.UUID `json:"id_paciente"`
	RecordDate      time.Time `json:"record_date"`
	RecordTime      string    `json:"record_time"`
	Systolic        *float64  `json:"presion_sistolica"`
	Diastolic       *float64  `json:"presion_diastolica"`
	MeanPressure    *float64  `json:"presion_media"`
	Pulse           *float64  `json:"pulso"`
	Temperature     *float64  `json:"temperatura"`
	RespiratoryRate *float64  `json:"frecuencia_respiratoria"`
	Saturation      *float64  `json:"saturacion_oxigeno"`
	AdultWeight     *float64  `json:"peso_adulto"`
	PediatricWeight *float64  `json:"peso_pediatrico"`
	Height          *float64  `json:"talla"`
	Observations    string    `json:"observaciones"`
}

// UpdateCommand enumerates the mutable fields of a record; nil keeps the
// current value.
type UpdateCommand struct {
	RecordDate      *time.Time `json:"record_date"`
	RecordTime      *string    `json:"record_time"`
	Systolic        *float64   `json:"presion_sistolica"`
	Diastolic       *float64   `json:"presion_diastolica"`
	MeanPressure    *float64   `json:"presion_media"`
	Pulse           *float64   `json:"pulso"`
	Temperature     *float64   `json:"temperatura"`
	RespiratoryRate *float64   `json:"frecuencia_respiratoria"`
	Saturation      *float64   `json:"saturacion_oxigeno"`
	AdultWeight     *float64   `json:"peso_adulto"`
	PediatricWeight *float64   `json:"peso_pediatrico"`
	Height          *float64   `json:"talla"`
	Observations    *string    `json:"observaciones"`
}

func (c *UpdateCommand) Merge(cur *Record) Record {
	merged := *cur
	if c.RecordDate != nil {
		merged.RecordDate = *c.RecordDate
	}
	if c.RecordTime != nil {
		merged.RecordTime = *c.RecordTime
	}
	if c.Systolic != nil {
		merged.Systolic = c.Systolic
	}
	if c.Diastolic != nil {
		merged.Diastolic = c.Diastolic
	}
	if c.MeanPressure != nil {
		merged.MeanPressure = c.MeanPressure
	}
	if c.Pulse != nil {
		merged.Pulse = c.Pulse
	}
	if c.Temperature != nil {
		merged.Temperature = c.Temperature
	}
	if c.RespiratoryRate != nil {
		merged.RespiratoryRate = c.RespiratoryRate
	}
	if c.Saturation != nil {
		merged.Saturation = c.Saturation
	}
	if c.AdultWeight != nil {
		merged.AdultWeight = c.AdultWeight
	}
	if c.PediatricWeight != nil {
		merged.PediatricWeight = c.PediatricWeight
	}
	if c.Height != nil {
		merged.Height = c.Height
	}
	if c.Observations != nil {
		merged.Observations = *c.Observations
	}
	return merged
}
