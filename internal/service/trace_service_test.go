package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/internal/domain/trace"
)

func TestRecordEncodesSnapshotsRoundTrip(t *testing.T) {
	repo := &traceRepoMock{}
	svc := newTestTraceService(repo)
	entityID := uuid.New()

	svc.Record(context.Background(), TraceInput{
		Actor:    domain.Principal{ID: uuid.New(), Username: "dr.ruiz"},
		Action:   trace.ActionActualizacion,
		Category: trace.CategoryPaciente,
		EntityID: entityID,
		OldData:  map[string]any{"ubicacion": "Sala 1"},
		NewData:  map[string]any{"ubicacion": map[string]any{"anterior": "Sala 1", "nuevo": "Sala 3"}},
	})

	require.Len(t, repo.entries, 1)

	views, err := svc.ListByEntity(context.Background(), entityID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "Sala 1", view.OldData["ubicacion"])
	cambio, ok := view.NewData["ubicacion"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Sala 3", cambio["nuevo"])
}

func TestRecordFailureIsSwallowed(t *testing.T) {
	repo := &traceRepoMock{
		CreateFn: func(ctx context.Context, e *trace.Entry) error {
			return errors.New("insert failed")
		},
	}
	svc := newTestTraceService(repo)

	// Must not panic or surface the error to the caller.
	svc.Record(context.Background(), TraceInput{
		Actor:    domain.Principal{Username: "dr.ruiz"},
		Action:   trace.ActionCreacion,
		Category: trace.CategoryPaciente,
		EntityID: uuid.New(),
		NewData:  map[string]any{"x": 1},
	})
}

func TestRecordNilOldDataStaysEmpty(t *testing.T) {
	repo := &traceRepoMock{}
	svc := newTestTraceService(repo)

	svc.Record(context.Background(), TraceInput{
		Actor:    domain.Principal{Username: "dr.ruiz"},
		Action:   trace.ActionCreacion,
		Category: trace.CategoryPaciente,
		EntityID: uuid.New(),
		NewData:  map[string]any{"numero_identificacion": "CC-1001"},
	})

	require.Len(t, repo.entries, 1)
	assert.Empty(t, repo.entries[0].OldData)
	assert.NotEmpty(t, repo.entries[0].NewData)
}

func TestListByEntityEmptyIsNotAnError(t *testing.T) {
	svc := newTestTraceService(&traceRepoMock{})

	views, err := svc.ListByEntity(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListAllPreservesRepositoryOrder(t *testing.T) {
	now := time.Now()
	repo := &traceRepoMock{
		entries: []*trace.Entry{
			{ID: uuid.New(), RecordedAt: now},
			{ID: uuid.New(), RecordedAt: now.Add(-time.Hour)},
			{ID: uuid.New(), RecordedAt: now.Add(-2 * time.Hour)},
		},
	}
	svc := newTestTraceService(repo)

	views, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3)
	for i := 1; i < len(views); i++ {
		assert.True(t, !views[i].RecordedAt.After(views[i-1].RecordedAt),
			"entries stay newest first")
	}
}

func TestGetByIDMissingEntry(t *testing.T) {
	svc := newTestTraceService(&traceRepoMock{})

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, trace.ErrEntryNotFound)
}

func TestDecodeToleratesCorruptSnapshot(t *testing.T) {
	id := uuid.New()
	repo := &traceRepoMock{
		entries: []*trace.Entry{{
			ID:      id,
			OldData: "{not json",
			NewData: `{"ok":true}`,
		}},
	}
	svc := newTestTraceService(repo)

	view, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, view.OldData)
	assert.Equal(t, true, view.NewData["ok"])
}
