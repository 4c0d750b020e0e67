package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanavia/clinica/internal/config"
	"github.com/sanavia/clinica/internal/domain/history"
	"github.com/sanavia/clinica/internal/domain/patient"
	"github.com/sanavia/clinica/internal/domain/trace"
	"github.com/sanavia/clinica/internal/domain/vitals"
	"github.com/sanavia/clinica/pkg/metrics"
)

// Prometheus collectors register globally, so the whole test binary
// shares one instance.
var testCollector = metrics.NewCollector("clinica_test")

func testVitalsConfig() config.VitalsConfig {
	return config.VitalsConfig{
		MaxHeight:     250,
		MinPulse:      40,
		MaxPulse:      200,
		MinRespRate:   10,
		MaxRespRate:   70,
		MinSaturation: 50,
		MaxSaturation: 100,
		MinSystolic:   50,
		MaxSystolic:   190,
		MinDiastolic:  40,
		MaxDiastolic:  130,
		MinTemp:       15,
		MaxTemp:       55,
	}
}

type patientRepoMock struct {
	CreateFn       func(ctx context.Context, p *patient.Patient) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	ListFn         func(ctx context.Context) ([]*patient.Patient, error)
	UpdateFn       func(ctx context.Context, p *patient.Patient) error
	UpdateStatusFn func(ctx context.Context, id uuid.UUID, status patient.Status, responsible string) error
}

func (m *patientRepoMock) Create(ctx context.Context, p *patient.Patient) error {
	return m.CreateFn(ctx, p)
}

func (m *patientRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *patientRepoMock) List(ctx context.Context) ([]*patient.Patient, error) {
	return m.ListFn(ctx)
}

func (m *patientRepoMock) Update(ctx context.Context, p *patient.Patient) error {
	return m.UpdateFn(ctx, p)
}

func (m *patientRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status patient.Status, responsible string) error {
	return m.UpdateStatusFn(ctx, id, status, responsible)
}

type vitalsRepoMock struct {
	CreateFn        func(ctx context.Context, r *vitals.Record) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*vitals.Record, error)
	ListByPatientFn func(ctx context.Context, patientID uuid.UUID) ([]*vitals.Record, error)
	UpdateFn        func(ctx context.Context, r *vitals.Record) error
}

func (m *vitalsRepoMock) Create(ctx context.Context, r *vitals.Record) error {
	return m.CreateFn(ctx, r)
}

func (m *vitalsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*vitals.Record, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *vitalsRepoMock) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*vitals.Record, error) {
	return m.ListByPatientFn(ctx, patientID)
}

func (m *vitalsRepoMock) Update(ctx context.Context, r *vitals.Record) error {
	return m.UpdateFn(ctx, r)
}

// traceRepoMock appends entries to an in-memory slice unless overridden.
type traceRepoMock struct {
	entries []*trace.Entry

	CreateFn       func(ctx context.Context, e *trace.Entry) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*trace.Entry, error)
	ListAllFn      func(ctx context.Context) ([]*trace.Entry, error)
	ListByEntityFn func(ctx context.Context, entityID uuid.UUID) ([]*trace.Entry, error)
}

func (m *traceRepoMock) Create(ctx context.Context, e *trace.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *traceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*trace.Entry, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, trace.ErrEntryNotFound
}

func (m *traceRepoMock) ListAll(ctx context.Context) ([]*trace.Entry, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return m.entries, nil
}

func (m *traceRepoMock) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*trace.Entry, error) {
	if m.ListByEntityFn != nil {
		return m.ListByEntityFn(ctx, entityID)
	}
	var out []*trace.Entry
	for _, e := range m.entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

type historyRepoMock struct {
	patientRows []*history.PatientSnapshot
	vitalsRows  []*history.VitalsSnapshot

	AppendPatientFn func(ctx context.Context, s *history.PatientSnapshot) error
	AppendVitalsFn  func(ctx context.Context, s *history.VitalsSnapshot) error
	ListPatientFn   func(ctx context.Context, patientID uuid.UUID) ([]*history.PatientSnapshot, error)
	ListVitalsFn    func(ctx context.Context, patientID uuid.UUID) ([]*history.VitalsSnapshot, error)
}

func (m *historyRepoMock) AppendPatient(ctx context.Context, s *history.PatientSnapshot) error {
	if m.AppendPatientFn != nil {
		return m.AppendPatientFn(ctx, s)
	}
	m.patientRows = append(m.patientRows, s)
	return nil
}

func (m *historyRepoMock) AppendVitals(ctx context.Context, s *history.VitalsSnapshot) error {
	if m.AppendVitalsFn != nil {
		return m.AppendVitalsFn(ctx, s)
	}
	m.vitalsRows = append(m.vitalsRows, s)
	return nil
}

func (m *historyRepoMock) ListPatient(ctx context.Context, patientID uuid.UUID) ([]*history.PatientSnapshot, error) {
	if m.ListPatientFn != nil {
		return m.ListPatientFn(ctx, patientID)
	}
	return m.patientRows, nil
}

func (m *historyRepoMock) ListVitals(ctx context.Context, patientID uuid.UUID) ([]*history.VitalsSnapshot, error) {
	if m.ListVitalsFn != nil {
		return m.ListVitalsFn(ctx, patientID)
	}
	return m.vitalsRows, nil
}

type bufferMock struct {
	items     []*vitals.Record
	EnqueueFn func(rec *vitals.Record) error
}

func (m *bufferMock) Enqueue(rec *vitals.Record) error {
	if m.EnqueueFn != nil {
		return m.EnqueueFn(rec)
	}
	m.items = append(m.items, rec)
	return nil
}

func newTestTraceService(repo trace.Repository) *TraceService {
	return NewTraceService(repo, zap.NewNop(), testCollector)
}
