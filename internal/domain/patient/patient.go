package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a patient record. Patients are
// never hard-deleted; they move between estados.
type Status string

const (
	StatusActivo   Status = "activo"
	StatusInactivo Status = "inactivo"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActivo, StatusInactivo:
		return true
	}
	return false
}

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`

	FirstName      string `gorm:"column:primer_nombre;type:varchar(100)" json:"primer_nombre"`
	MiddleName     string `gorm:"column:segundo_nombre;type:varchar(100)" json:"segundo_nombre"`
	FirstSurname   string `gorm:"column:primer_apellido;type:varchar(100)" json:"primer_apellido"`
	SecondSurname  string `gorm:"column:segundo_apellido;type:varchar(100)" json:"segundo_apellido"`
	IdentType      string `gorm:"column:tipo_identificacion;type:varchar(30)" json:"tipo_identificacion"`
	IdentNumber    string `gorm:"column:numero_identificacion;type:varchar(50);not null;index" json:"numero_identificacion"`
	BirthDate      time.Time `gorm:"column:fecha_nacimiento;not null" json:"fecha_nacimiento"`
	Location       string `gorm:"column:ubicacion;type:varchar(150)" json:"ubicacion"`
	Status         Status `gorm:"column:status;type:varchar(20);default:'activo';index" json:"status"`
	AgeGroup       AgeGroup `gorm:"column:age_group;type:varchar(40)" json:"age_group"`

	// Last user who touched the record.
	ResponsibleUser string `gorm:"column:responsable_username;type:varchar(100)" json:"responsable_username"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) FullName() string {
	parts := []string{p.FirstName, p.MiddleName, p.FirstSurname, p.SecondSurname}
	name := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return strings.TrimSpace(name)
}

type CreateCommand struct {
	FirstName     string     `json:"primer_nombre"`
	MiddleName    string     `json:"segundo_nombre"`
	FirstSurname  string     `json:"primer_apellido"`
	SecondSurname string     `json:"segundo_apellido"`
	IdentType     string     `json:"tipo_identificacion"`
	IdentNumber   string     `json:"numero_identificacion"`
	BirthDate     time.Time  `json:"fecha_nacimiento"`
	Location      string     `json:"ubicacion"`
	Status        Status     `json:"status"`
	CreatedAt     *time.Time `json:"created_at"`
}

// UpdateCommand enumerates every mutable field; nil means "keep current
// value". Unknown client-supplied keys never reach the store.
type UpdateCommand struct {
	FirstName     *string    `json:"primer_nombre"`
	MiddleName    *string    `json:"segundo_nombre"`
	FirstSurname  *string    `json:"primer_apellido"`
	SecondSurname *string    `json:"segundo_apellido"`
	IdentType     *string    `json:"tipo_identificacion"`
	IdentNumber   *string    `json:"numero_identificacion"`
	BirthDate     *time.Time `json:"fecha_nacimiento"`
	Location      *string    `json:"ubicacion"`
	Status        *Status    `json:"status"`
}

// Merge applies the command over a copy of cur and returns the result.
// Derived fields (age group, responsible user) are not merged here; the
// service recomputes them after merging.
func (c *UpdateCommand) Merge(cur *Patient) Patient {
	merged := *cur
	if c.FirstName != nil {
		merged.FirstName = *c.FirstName
	}
	if c.MiddleName != nil {
		merged.MiddleName = *c.MiddleName
	}
	if c.FirstSurname != nil {
		merged.FirstSurname = *c.FirstSurname
	}
	if c.SecondSurname != nil {
		merged.SecondSurname = *c.SecondSurname
	}
	if c.IdentType != nil {
		merged.IdentType = *c.IdentType
	}
	if c.IdentNumber != nil {
		merged.IdentNumber = *c.IdentNumber
	}
	if c.BirthDate != nil {
		merged.BirthDate = *c.BirthDate
	}
	if c.Location != nil {
		merged.Location = *c.Location
	}
	if c.Status != nil {
		merged.Status = *c.Status
	}
	return merged
}
