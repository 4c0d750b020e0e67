package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanavia/clinica/internal/config"
	"github.com/sanavia/clinica/internal/diff"
	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/internal/domain/history"
	"github.com/sanavia/clinica/internal/domain/patient"
	"github.com/sanavia/clinica/internal/domain/trace"
	"github.com/sanavia/clinica/internal/domain/vitals"
	"github.com/sanavia/clinica/pkg/metrics"
)

// OfflineBuffer parks vital-signs records that failed to reach the store
// until the sweep replays them.
type OfflineBuffer interface {
	Enqueue(rec *vitals.Record) error
}

type VitalsService struct {
	repo     vitals.Repository
	patients patient.Repository
	hist     history.Repository
	traceSvc *TraceService
	buffer   OfflineBuffer
	cfg      config.VitalsConfig
	log      *zap.Logger
	col      *metrics.Collector
}

func NewVitalsService(
	repo vitals.Repository,
	patients patient.Repository,
	hist history.Repository,
	traceSvc *TraceService,
	buffer OfflineBuffer,
	cfg config.VitalsConfig,
	log *zap.Logger,
	col *metrics.Collector,
) *VitalsService {
	return &VitalsService{
		repo:     repo,
		patients: patients,
		hist:     hist,
		traceSvc: traceSvc,
		buffer:   buffer,
		cfg:      cfg,
		log:      log,
		col:      col,
	}
}

// Create validates the measurements, persists the record, and traces a
// "Nuevo registro de Signos Vitales" entry carrying the new values plus a
// denormalized patient reference. If the store rejects the write, the
// record is parked in the offline buffer and ErrStoredOffline is returned.
func (s *VitalsService) Create(ctx context.Context, cmd *vitals.CreateCommand, actor domain.Principal) (*vitals.Record, error) {
	if err := s.validateRanges(measurements{
		Height:          cmd.Height,
		Pulse:           cmd.Pulse,
		RespiratoryRate: cmd.RespiratoryRate,
		Saturation:      cmd.Saturation,
		Systolic:        cmd.Systolic,
		Diastolic:       cmd.Diastolic,
		Temperature:     cmd.Temperature,
	}); err != nil {
		return nil, err
	}

	p, err := s.patients.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, err
	}

	rec := &vitals.Record{
		PatientID:       cmd.PatientID,
		RecordDate:      cmd.RecordDate,
		RecordTime:      cmd.RecordTime,
		Systolic:        cmd.Systolic,
		Diastolic:       cmd.Diastolic,
		MeanPressure:    cmd.MeanPressure,
		Pulse:           cmd.Pulse,
		Temperature:     cmd.Temperature,
		RespiratoryRate: cmd.RespiratoryRate,
		Saturation:      cmd.Saturation,
		AdultWeight:     cmd.AdultWeight,
		PediatricWeight: cmd.PediatricWeight,
		Height:          cmd.Height,
		Observations:    cmd.Observations,
		ResponsibleUser: actor.Username,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("failed to persist vitals record", zap.Error(err),
			zap.String("patient_id", cmd.PatientID.String()))
		if s.buffer != nil {
			if bufErr := s.buffer.Enqueue(rec); bufErr == nil {
				s.log.Warn("vitals record parked in offline buffer",
					zap.String("patient_id", cmd.PatientID.String()))
				return nil, vitals.ErrStoredOffline
			}
		}
		return nil, fmt.Errorf("creating vitals record: %w", err)
	}

	datosNuevos := recordSnapshot(rec)
	datosNuevos["paciente"] = patientRef(p)

	s.traceSvc.Record(ctx, TraceInput{
		Actor:    actor,
		Action:   trace.ActionNuevoRegistroSignos,
		Category: trace.CategorySignos,
		EntityID: cmd.PatientID,
		NewData:  datosNuevos,
	})

	s.col.VitalsRecordedTotal.Inc()
	return rec, nil
}

func (s *VitalsService) Get(ctx context.Context, recordID uuid.UUID) (*vitals.Record, error) {
	return s.repo.GetByID(ctx, recordID)
}

// PatientRecords bundles a patient with every measurement taken for them.
type PatientRecords struct {
	Patient *patient.Patient `json:"patient"`
	Records []*vitals.Record `json:"records"`
}

func (s *VitalsService) ListByPatient(ctx context.Context, patientID uuid.UUID) (*PatientRecords, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &PatientRecords{Patient: p, Records: records}, nil
}

// Update corrects a record in place: merge, persist, trace the changed
// fields as before/after pairs, and append an immutable copy to the
// historial_signos_pacientes table.
func (s *VitalsService) Update(ctx context.Context, recordID uuid.UUID, cmd *vitals.UpdateCommand, actor domain.Principal) (*vitals.Record, error) {
	if err := s.validateRanges(measurements{
		Height:          cmd.Height,
		Pulse:           cmd.Pulse,
		RespiratoryRate: cmd.RespiratoryRate,
		Saturation:      cmd.Saturation,
		Systolic:        cmd.Systolic,
		Diastolic:       cmd.Diastolic,
		Temperature:     cmd.Temperature,
	}); err != nil {
		return nil, err
	}

	cur, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	p, err := s.patients.GetByID(ctx, cur.PatientID)
	if err != nil {
		return nil, err
	}

	merged := cmd.Merge(cur)
	merged.ResponsibleUser = actor.Username

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	oldSnap := recordSnapshot(cur)
	cambios := diff.Compute(oldSnap, recordSnapshot(&merged), diff.Options{
		DateFields: []string{"record_date"},
		ForceField: "responsable_signos",
		Actor:      actor.Username,
	})

	datosNuevos := make(map[string]any, len(cambios)+1)
	for field, change := range cambios {
		datosNuevos[field] = change
	}
	datosNuevos["paciente"] = patientRef(p)

	s.traceSvc.Record(ctx, TraceInput{
		Actor:    actor,
		Action:   trace.ActionActualizacionSignos,
		Category: trace.CategorySignos,
		EntityID: cur.PatientID,
		OldData:  oldSnap,
		NewData:  datosNuevos,
	})

	snap := &history.VitalsSnapshot{
		PatientID:       merged.PatientID,
		RecordID:        recordID,
		RecordDate:      merged.RecordDate,
		RecordTime:      merged.RecordTime,
		Systolic:        merged.Systolic,
		Diastolic:       merged.Diastolic,
		MeanPressure:    merged.MeanPressure,
		Pulse:           merged.Pulse,
		Temperature:     merged.Temperature,
		RespiratoryRate: merged.RespiratoryRate,
		Saturation:      merged.Saturation,
		AdultWeight:     merged.AdultWeight,
		PediatricWeight: merged.PediatricWeight,
		Height:          merged.Height,
		Observations:    merged.Observations,
		Responsible:     merged.ResponsibleUser,
	}
	if err := s.hist.AppendVitals(ctx, snap); err != nil {
		s.log.Error("failed to append vitals history", zap.Error(err),
			zap.String("record_id", recordID.String()))
		return nil, fmt.Errorf("appending vitals history: %w", err)
	}

	return &merged, nil
}

func (s *VitalsService) PatientHistory(ctx context.Context, patientID uuid.UUID) ([]*history.PatientSnapshot, error) {
	return s.hist.ListPatient(ctx, patientID)
}

func (s *VitalsService) VitalsHistory(ctx context.Context, patientID uuid.UUID) ([]*history.VitalsSnapshot, error) {
	return s.hist.ListVitals(ctx, patientID)
}

type measurements struct {
	Height          *float64
	Pulse           *float64
	RespiratoryRate *float64
	Saturation      *float64
	Systolic        *float64
	Diastolic       *float64
	Temperature     *float64
}

// validateRanges applies the configured plausibility bounds. Absent
// measurements pass; only supplied values are checked.
func (s *VitalsService) validateRanges(m measurements) error {
	var errs []string

	if m.Height != nil && *m.Height > s.cfg.MaxHeight {
		errs = append(errs, fmt.Sprintf("talla exceeds the maximum of %.0f", s.cfg.MaxHeight))
	}
	if out(m.Pulse, s.cfg.MinPulse, s.cfg.MaxPulse) {
		errs = append(errs, fmt.Sprintf("pulso out of range [%.0f, %.0f]", s.cfg.MinPulse, s.cfg.MaxPulse))
	}
	if out(m.RespiratoryRate, s.cfg.MinRespRate, s.cfg.MaxRespRate) {
		errs = append(errs, fmt.Sprintf("frecuencia_respiratoria out of range [%.0f, %.0f]", s.cfg.MinRespRate, s.cfg.MaxRespRate))
	}
	if out(m.Saturation, s.cfg.MinSaturation, s.cfg.MaxSaturation) {
		errs = append(errs, fmt.Sprintf("saturacion_oxigeno out of range [%.0f, %.0f]", s.cfg.MinSaturation, s.cfg.MaxSaturation))
	}
	if out(m.Systolic, s.cfg.MinSystolic, s.cfg.MaxSystolic) {
		errs = append(errs, fmt.Sprintf("presion_sistolica out of range [%.0f, %.0f]", s.cfg.MinSystolic, s.cfg.MaxSystolic))
	}
	if out(m.Diastolic, s.cfg.MinDiastolic, s.cfg.MaxDiastolic) {
		errs = append(errs, fmt.Sprintf("presion_diastolica out of range [%.0f, %.0f]", s.cfg.MinDiastolic, s.cfg.MaxDiastolic))
	}
	if out(m.Temperature, s.cfg.MinTemp, s.cfg.MaxTemp) {
		errs = append(errs, fmt.Sprintf("temperatura out of range [%.0f, %.0f]", s.cfg.MinTemp, s.cfg.MaxTemp))
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func out(v *float64, min, max float64) bool {
	return v != nil && (*v < min || *v > max)
}

// recordSnapshot maps a record to the field names persisted in trace
// snapshots.
func recordSnapshot(r *vitals.Record) diff.Snapshot {
	return diff.Snapshot{
		"record_date":             r.RecordDate,
		"record_time":             r.RecordTime,
		"presion_sistolica":       deref(r.Systolic),
		"presion_diastolica":      deref(r.Diastolic),
		"presion_media":           deref(r.MeanPressure),
		"pulso":                   deref(r.Pulse),
		"temperatura":             deref(r.Temperature),
		"frecuencia_respiratoria": deref(r.RespiratoryRate),
		"saturacion_oxigeno":      deref(r.Saturation),
		"peso_adulto":             deref(r.AdultWeight),
		"peso_pediatrico":         deref(r.PediatricWeight),
		"talla":                   deref(r.Height),
		"observaciones":           r.Observations,
		"responsable_signos":      r.ResponsibleUser,
	}
}

func deref(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func patientRef(p *patient.Patient) map[string]any {
	return map[string]any{
		"nombre_completo":       p.FullName(),
		"tipo_identificacion":   p.IdentType,
		"numero_identificacion": p.IdentNumber,
	}
}
