package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/internal/domain/trace"
	"github.com/sanavia/clinica/pkg/metrics"
)

type TraceService struct {
	repo trace.Repository
	log  *zap.Logger
	col  *metrics.Collector
}

func NewTraceService(repo trace.Repository, log *zap.Logger, col *metrics.Collector) *TraceService {
	return &TraceService{repo: repo, log: log, col: col}
}

// TraceInput describes one mutation to be recorded. OldData is nil on
// creation-style actions.
type TraceInput struct {
	Actor    domain.Principal
	Action   trace.Action
	Category trace.Category
	EntityID uuid.UUID
	OldData  any
	NewData  any
}

// Record appends one immutable trazabilidad row. It is best-effort: a
// failed write is logged and counted but never surfaced to the mutation
// path, so the entity write alone decides the caller's response.
func (s *TraceService) Record(ctx context.Context, in TraceInput) {
	entry := &trace.Entry{
		UserID:     in.Actor.ID,
		Username:   in.Actor.Username,
		Action:     in.Action,
		EntityID:   in.EntityID,
		RecordedAt: time.Now(),
		Category:   in.Category,
	}

	var err error
	if entry.OldData, err = encodeSnapshot(in.OldData); err != nil {
		s.logFailure(in, err)
		return
	}
	if entry.NewData, err = encodeSnapshot(in.NewData); err != nil {
		s.logFailure(in, err)
		return
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logFailure(in, err)
		return
	}

	s.col.TraceEntriesTotal.WithLabelValues(string(in.Category)).Inc()
}

func (s *TraceService) logFailure(in TraceInput, err error) {
	s.col.TraceWriteFailures.Inc()
	s.log.Error("failed to persist trace entry",
		zap.Error(err),
		zap.String("action", string(in.Action)),
		zap.String("entity_id", in.EntityID.String()),
	)
}

func (s *TraceService) ListAll(ctx context.Context) ([]*trace.EntryView, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.decodeAll(entries), nil
}

func (s *TraceService) GetByID(ctx context.Context, id uuid.UUID) (*trace.EntryView, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decode(entry), nil
}

// ListByEntity returns the trail for one entity, newest first. An entity
// with no entries yields an empty slice, not an error.
func (s *TraceService) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*trace.EntryView, error) {
	entries, err := s.repo.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return s.decodeAll(entries), nil
}

func (s *TraceService) decodeAll(entries []*trace.Entry) []*trace.EntryView {
	views := make([]*trace.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, s.decode(e))
	}
	return views
}

// decode deserializes the persisted snapshot text back to structured form.
// A snapshot that no longer parses is returned as nil rather than failing
// the whole read.
func (s *TraceService) decode(e *trace.Entry) *trace.EntryView {
	view := &trace.EntryView{Entry: *e}
	if e.OldData != "" {
		if err := json.Unmarshal([]byte(e.OldData), &view.OldData); err != nil {
			s.log.Warn("undecodable datos_antiguos", zap.String("entry_id", e.ID.String()), zap.Error(err))
		}
	}
	if e.NewData != "" {
		if err := json.Unmarshal([]byte(e.NewData), &view.NewData); err != nil {
			s.log.Warn("undecodable datos_nuevos", zap.String("entry_id", e.ID.String()), zap.Error(err))
		}
	}
	return view
}

func encodeSnapshot(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
