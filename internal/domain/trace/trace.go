package trace

import (
	"time"

	"github.com/google/uuid"
)

// Action is the label recorded for a traced operation. Labels are free
// text in the schema but drawn from this fixed vocabulary.
type Action string

const (
	ActionCreacion            Action = "Creación"
	ActionActualizacion       Action = "Actualización de datos del paciente"
	ActionCambioEstado        Action = "Cambio de estado del paciente"
	ActionDescargaPDF         Action = "Descarga de PDF"
	ActionNuevoRegistroSignos Action = "Nuevo registro de Signos Vitales"
	ActionActualizacionSignos Action = "Actualización de Signos Vitales"
)

// Category disambiguates which kind of entity an entry points at; the
// entity id column carries no formal foreign key.
type Category string

const (
	CategoryPaciente Category = "Paciente"
	CategorySignos   Category = "Signos Vitales"
)

// Entry is one immutable trazabilidad row. Snapshots are persisted as
// serialized JSON text and decoded on read.
type Entry struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	UserID   uuid.UUID `gorm:"column:usuario_id;type:uuid;not null;index" json:"usuario_id"`
	Username string    `gorm:"column:usuario_nombre;type:varchar(100);not null" json:"usuario_nombre"`
	Action   Action    `gorm:"column:accion;type:varchar(100);not null" json:"accion"`
	EntityID uuid.UUID `gorm:"column:entidad_id;type:uuid;not null;index" json:"entidad_id"`

	OldData string `gorm:"column:datos_antiguos;type:jsonb" json:"-"`
	NewData string `gorm:"column:datos_nuevos;type:jsonb" json:"-"`

	RecordedAt time.Time `gorm:"column:fecha_hora;not null;index" json:"fecha_hora"`
	Category   Category  `gorm:"column:tipo_accion;type:varchar(30);not null" json:"tipo_accion"`
}

func (Entry) TableName() string {
	return "trazabilidad"
}

// EntryView is an Entry with its snapshots decoded back to structured
// form, the shape handed to API callers.
type EntryView struct {
	Entry
	OldData map[string]any `json:"datos_antiguos"`
	NewData map[string]any `json:"datos_nuevos"`
}
