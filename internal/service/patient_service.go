package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanavia/clinica/internal/diff"
	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/internal/domain/history"
	"github.com/sanavia/clinica/internal/domain/patient"
	"github.com/sanavia/clinica/internal/domain/trace"
	"github.com/sanavia/clinica/pkg/metrics"
)

// patientDiffOptions are the field rules every patient diff applies: the
// derived age fields never count as changes, the birth date compares at
// day granularity, and the responsible user is always stamped with the
// requesting actor.
func patientDiffOptions(actor string) diff.Options {
	return diff.Options{
		Exclude:    []string{"age_group", "edad"},
		DateFields: []string{"fecha_nacimiento"},
		ForceField: "responsable_username",
		Actor:      actor,
	}
}

type PatientService struct {
	repo     patient.Repository
	hist     history.Repository
	traceSvc *TraceService
	log      *zap.Logger
	col      *metrics.Collector
}

func NewPatientService(repo patient.Repository, hist history.Repository, traceSvc *TraceService, log *zap.Logger, col *metrics.Collector) *PatientService {
	return &PatientService{repo: repo, hist: hist, traceSvc: traceSvc, log: log, col: col}
}

func (s *PatientService) List(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.List(ctx)
}

func (s *PatientService) Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates a patient and records a Creación trace entry carrying
// the created values plus the derived fields and the acting user.
func (s *PatientService) Register(ctx context.Context, cmd *patient.CreateCommand, actor domain.Principal) (*patient.Patient, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	status := cmd.Status
	if status == "" {
		status = patient.StatusActivo
	}
	createdAt := time.Now()
	if cmd.CreatedAt != nil {
		createdAt = *cmd.CreatedAt
	}

	p := &patient.Patient{
		FirstName:       strings.TrimSpace(cmd.FirstName),
		MiddleName:      strings.TrimSpace(cmd.MiddleName),
		FirstSurname:    strings.TrimSpace(cmd.FirstSurname),
		SecondSurname:   strings.TrimSpace(cmd.SecondSurname),
		IdentType:       cmd.IdentType,
		IdentNumber:     strings.TrimSpace(cmd.IdentNumber),
		BirthDate:       cmd.BirthDate,
		Location:        cmd.Location,
		Status:          status,
		AgeGroup:        patient.AgeGroupFor(cmd.BirthDate),
		ResponsibleUser: actor.Username,
		CreatedAt:       createdAt,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to register patient", zap.Error(err))
		return nil, fmt.Errorf("registering patient: %w", err)
	}

	datosNuevos := patientSnapshot(p)
	datosNuevos["fecha_nacimiento"] = formatFecha(p.BirthDate)
	datosNuevos["created_at"] = p.CreatedAt

	s.traceSvc.Record(ctx, TraceInput{
		Actor:    actor,
		Action:   trace.ActionCreacion,
		Category: trace.CategoryPaciente,
		EntityID: p.ID,
		NewData:  datosNuevos,
	})

	s.col.PatientsRegisteredTotal.Inc()
	s.log.Info("patient registered",
		zap.String("patient_id", p.ID.String()),
		zap.String("registered_by", actor.Username),
	)

	return p, nil
}

// Update merges the supplied fields over the stored row, recomputes the
// derived fields, and records both a trace entry (old snapshot + changed
// fields) and a full historial_paciente snapshot.
func (s *PatientService) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdateCommand, actor domain.Principal) (*patient.Patient, error) {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Status != nil && !cmd.Status.IsValid() {
		return nil, &ValidationError{Fields: []string{"status is invalid"}}
	}

	merged := cmd.Merge(cur)
	merged.AgeGroup = patient.AgeGroupFor(merged.BirthDate)
	merged.ResponsibleUser = actor.Username

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	oldSnap := patientSnapshot(cur)
	cambios := diff.Compute(oldSnap, patientSnapshot(&merged), patientDiffOptions(actor.Username))

	s.traceSvc.Record(ctx, TraceInput{
		Actor:    actor,
		Action:   trace.ActionActualizacion,
		Category: trace.CategoryPaciente,
		EntityID: id,
		OldData:  oldSnap,
		NewData:  cambios,
	})

	snap := &history.PatientSnapshot{
		PatientID:     id,
		FirstName:     merged.FirstName,
		MiddleName:    merged.MiddleName,
		FirstSurname:  merged.FirstSurname,
		SecondSurname: merged.SecondSurname,
		IdentType:     merged.IdentType,
		IdentNumber:   merged.IdentNumber,
		BirthDate:     merged.BirthDate,
		Location:      merged.Location,
		Status:        string(merged.Status),
		AgeGroup:      string(merged.AgeGroup),
		Responsible:   actor.Username,
	}
	if err := s.hist.AppendPatient(ctx, snap); err != nil {
		s.log.Error("failed to append patient history", zap.Error(err), zap.String("patient_id", id.String()))
		return nil, fmt.Errorf("appending patient history: %w", err)
	}

	return &merged, nil
}

// UpdateStatus is the narrow update path: only the status and responsible
// user change. The trace snapshots carry the denormalized name and
// identification for readability, not raw row dumps.
func (s *PatientService) UpdateStatus(ctx context.Context, id uuid.UUID, status patient.Status, actor domain.Principal) error {
	if !status.IsValid() {
		return &ValidationError{Fields: []string{"status is invalid"}}
	}

	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	prevResponsible := cur.ResponsibleUser
	if prevResponsible == "" {
		prevResponsible = "No disponible"
	}
	datosAntiguos := map[string]any{
		"estado_anterior":       string(cur.Status),
		"nombre":                cur.FullName(),
		"numero_identificacion": cur.IdentNumber,
		"responsable":           prevResponsible,
	}

	if err := s.repo.UpdateStatus(ctx, id, status, actor.Username); err != nil {
		return err
	}

	datosNuevos := map[string]any{
		"estado_nuevo":          string(status),
		"nombre":                cur.FullName(),
		"numero_identificacion": cur.IdentNumber,
		"responsable":           actor.Username,
	}

	s.traceSvc.Record(ctx, TraceInput{
		Actor:    actor,
		Action:   trace.ActionCambioEstado,
		Category: trace.CategoryPaciente,
		EntityID: id,
		OldData:  datosAntiguos,
		NewData:  datosNuevos,
	})

	return nil
}

// LogDownload records that the patient's PDF was downloaded. No entity
// mutation happens; the trace entry doubles as an access log. The
// formatted data is returned for the caller to render.
func (s *PatientService) LogDownload(ctx context.Context, id uuid.UUID, actor domain.Principal) (map[string]any, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	datos := patientSnapshot(p)
	datos["fecha_nacimiento"] = formatFecha(p.BirthDate)
	datos["created_at"] = formatFecha(p.CreatedAt)

	s.traceSvc.Record(ctx, TraceInput{
		Actor:    actor,
		Action:   trace.ActionDescargaPDF,
		Category: trace.CategoryPaciente,
		EntityID: id,
		NewData:  datos,
	})

	return datos, nil
}

func validateCreate(cmd *patient.CreateCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.IdentNumber) == "" {
		errs = append(errs, "numero_identificacion is required")
	}
	if cmd.BirthDate.IsZero() {
		errs = append(errs, "fecha_nacimiento is required")
	}
	if cmd.Status != "" && !cmd.Status.IsValid() {
		errs = append(errs, "status is invalid")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// patientSnapshot maps a row to the field names persisted in trace
// snapshots.
func patientSnapshot(p *patient.Patient) diff.Snapshot {
	return diff.Snapshot{
		"primer_nombre":         p.FirstName,
		"segundo_nombre":        p.MiddleName,
		"primer_apellido":       p.FirstSurname,
		"segundo_apellido":      p.SecondSurname,
		"tipo_identificacion":   p.IdentType,
		"numero_identificacion": p.IdentNumber,
		"fecha_nacimiento":      p.BirthDate,
		"ubicacion":             p.Location,
		"status":                string(p.Status),
		"age_group":             string(p.AgeGroup),
		"responsable_username":  p.ResponsibleUser,
	}
}

// formatFecha renders a date the way trace snapshots present dates to
// readers, DD/MM/YYYY.
func formatFecha(t time.Time) string {
	if t.IsZero() {
		return "No disponible"
	}
	return t.Format("02/01/2006")
}
