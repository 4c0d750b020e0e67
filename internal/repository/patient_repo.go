package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanavia/clinica/internal/domain/patient"
)

type PatientRepo struct {
	db *gorm.DB
}

var _ patient.Repository = (*PatientRepo)(nil)

func NewPatientRepo(db *gorm.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("inserting patient: %w", err)
	}
	return nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching patient: %w", err)
	}
	return &p, nil
}

func (r *PatientRepo) List(ctx context.Context) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepo) Update(ctx context.Context, p *patient.Patient) error {
	res := r.db.WithContext(ctx).Model(&patient.Patient{}).
		Where("id = ?", p.ID).
		Select("primer_nombre", "segundo_nombre", "primer_apellido", "segundo_apellido",
			"tipo_identificacion", "numero_identificacion", "fecha_nacimiento",
			"ubicacion", "status", "age_group", "responsable_username").
		Updates(p)
	if res.Error != nil {
		return fmt.Errorf("updating patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status patient.Status, responsible string) error {
	res := r.db.WithContext(ctx).Model(&patient.Patient{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":               status,
			"responsable_username": responsible,
		})
	if res.Error != nil {
		return fmt.Errorf("updating patient status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}
