package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanavia/clinica/internal/domain/vitals"
)

type VitalsRepo struct {
	db *gorm.DB
}

var _ vitals.Repository = (*VitalsRepo)(nil)

func NewVitalsRepo(db *gorm.DB) *VitalsRepo {
	return &VitalsRepo{db: db}
}

func (r *VitalsRepo) Create(ctx context.Context, rec *vitals.Record) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("inserting vitals record: %w", err)
	}
	return nil
}

func (r *VitalsRepo) GetByID(ctx context.Context, id uuid.UUID) (*vitals.Record, error) {
	var rec vitals.Record
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, vitals.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching vitals record: %w", err)
	}
	return &rec, nil
}

func (r *VitalsRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*vitals.Record, error) {
	var records []*vitals.Record
	err := r.db.WithContext(ctx).
		Where("id_paciente = ?", patientID).
		Order("record_date, record_time").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing vitals records: %w", err)
	}
	return records, nil
}

func (r *VitalsRepo) Update(ctx context.Context, rec *vitals.Record) error {
	res := r.db.WithContext(ctx).Model(&vitals.Record{}).
		Where("id = ?", rec.ID).
		Select("record_date", "record_time", "presion_sistolica", "presion_diastolica",
			"presion_media", "pulso", "temperatura", "frecuencia_respiratoria",
			"saturacion_oxigeno", "peso_adulto", "peso_pediatrico", "talla",
			"observaciones", "responsable_signos").
		Updates(rec)
	if res.Error != nil {
		return fmt.Errorf("updating vitals record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return vitals.ErrRecordNotFound
	}
	return nil
}
