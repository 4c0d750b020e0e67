package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanavia/clinica/internal/domain/trace"
)

type TraceRepo struct {
	db *gorm.DB
}

var _ trace.Repository = (*TraceRepo)(nil)

func NewTraceRepo(db *gorm.DB) *TraceRepo {
	return &TraceRepo{db: db}
}

func (r *TraceRepo) Create(ctx context.Context, e *trace.Entry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("inserting trace entry: %w", err)
	}
	return nil
}

func (r *TraceRepo) GetByID(ctx context.Context, id uuid.UUID) (*trace.Entry, error) {
	var e trace.Entry
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, trace.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching trace entry: %w", err)
	}
	return &e, nil
}

func (r *TraceRepo) ListAll(ctx context.Context) ([]*trace.Entry, error) {
	var entries []*trace.Entry
	if err := r.db.WithContext(ctx).Order("fecha_hora DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("listing trace entries: %w", err)
	}
	return entries, nil
}

func (r *TraceRepo) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*trace.Entry, error) {
	var entries []*trace.Entry
	err := r.db.WithContext(ctx).
		Where("entidad_id = ?", entityID).
		Order("fecha_hora DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing trace entries for entity: %w", err)
	}
	return entries, nil
}
