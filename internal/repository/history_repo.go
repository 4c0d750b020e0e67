package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanavia/clinica/internal/domain/history"
)

type HistoryRepo struct {
	db *gorm.DB
}

var _ history.Repository = (*HistoryRepo)(nil)

func NewHistoryRepo(db *gorm.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) AppendPatient(ctx context.Context, s *history.PatientSnapshot) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("appending patient snapshot: %w", err)
	}
	return nil
}

func (r *HistoryRepo) AppendVitals(ctx context.Context, s *history.VitalsSnapshot) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("appending vitals snapshot: %w", err)
	}
	return nil
}

func (r *HistoryRepo) ListPatient(ctx context.Context, patientID uuid.UUID) ([]*history.PatientSnapshot, error) {
	var snapshots []*history.PatientSnapshot
	err := r.db.WithContext(ctx).
		Where("id_paciente = ?", patientID).
		Order("created_at DESC").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("listing patient history: %w", err)
	}
	return snapshots, nil
}

func (r *HistoryRepo) ListVitals(ctx context.Context, patientID uuid.UUID) ([]*history.VitalsSnapshot, error) {
	var snapshots []*history.VitalsSnapshot
	err := r.db.WithContext(ctx).
		Where("id_paciente = ?", patientID).
		Order("seq ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("listing vitals history: %w", err)
	}
	return snapshots, nil
}
