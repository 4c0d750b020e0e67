package offline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanavia/clinica/internal/domain/vitals"
	"github.com/sanavia/clinica/pkg/metrics"
)

var testCollector = metrics.NewCollector("clinica_offline_test")

func newTestBuffer(t *testing.T) *Buffer {
	t.Helper()
	return NewBuffer(filepath.Join(t.TempDir(), "offline_data.json"), 2*time.Hour)
}

func pulse(v float64) *float64 { return &v }

func TestEnqueueIsDueImmediately(t *testing.T) {
	buf := newTestBuffer(t)

	rec := &vitals.Record{PatientID: uuid.New(), Pulse: pulse(80)}
	require.NoError(t, buf.Enqueue(rec))

	due, err := buf.Due(time.Now())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, rec.PatientID, due[0].Record.PatientID)
	assert.Equal(t, 80.0, *due[0].Record.Pulse)
	assert.Zero(t, due[0].Attempts)
}

func TestBufferSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_data.json")

	first := NewBuffer(path, time.Hour)
	require.NoError(t, first.Enqueue(&vitals.Record{PatientID: uuid.New()}))

	reopened := NewBuffer(path, time.Hour)
	n, err := reopened.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAckRemovesOnlyThatItem(t *testing.T) {
	buf := newTestBuffer(t)
	require.NoError(t, buf.Enqueue(&vitals.Record{PatientID: uuid.New()}))
	require.NoError(t, buf.Enqueue(&vitals.Record{PatientID: uuid.New()}))

	due, err := buf.Due(time.Now())
	require.NoError(t, err)
	require.Len(t, due, 2)

	require.NoError(t, buf.Ack(due[0].ID))

	n, err := buf.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	remaining, err := buf.Due(time.Now())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, due[1].ID, remaining[0].ID)
}

func TestDeferBacksOffExponentially(t *testing.T) {
	buf := newTestBuffer(t)
	require.NoError(t, buf.Enqueue(&vitals.Record{PatientID: uuid.New()}))

	now := time.Now()
	due, err := buf.Due(now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	id := due[0].ID

	require.NoError(t, buf.Defer(id, now))

	// One failed attempt: not due for about a minute.
	none, err := buf.Due(now.Add(30 * time.Second))
	require.NoError(t, err)
	assert.Empty(t, none)

	again, err := buf.Due(now.Add(90 * time.Second))
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, 1, again[0].Attempts)

	// Second failure doubles the delay.
	require.NoError(t, buf.Defer(id, now))
	none, err = buf.Due(now.Add(90 * time.Second))
	require.NoError(t, err)
	assert.Empty(t, none)

	later, err := buf.Due(now.Add(3 * time.Minute))
	require.NoError(t, err)
	assert.Len(t, later, 1)
}

func TestRetryDelayIsCapped(t *testing.T) {
	buf := NewBuffer(filepath.Join(t.TempDir(), "offline_data.json"), 10*time.Minute)

	delay := buf.retryDelay(30)
	assert.Equal(t, 10*time.Minute, delay)
}

type createFnRepo struct {
	CreateFn func(ctx context.Context, r *vitals.Record) error
}

func (m *createFnRepo) Create(ctx context.Context, r *vitals.Record) error {
	return m.CreateFn(ctx, r)
}

func (m *createFnRepo) GetByID(ctx context.Context, id uuid.UUID) (*vitals.Record, error) {
	return nil, vitals.ErrRecordNotFound
}

func (m *createFnRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*vitals.Record, error) {
	return nil, nil
}

func (m *createFnRepo) Update(ctx context.Context, r *vitals.Record) error {
	return nil
}

func TestSweepReplaysAndPrunes(t *testing.T) {
	buf := newTestBuffer(t)
	require.NoError(t, buf.Enqueue(&vitals.Record{PatientID: uuid.New(), Pulse: pulse(80)}))

	var persisted []*vitals.Record
	repo := &createFnRepo{
		CreateFn: func(ctx context.Context, r *vitals.Record) error {
			persisted = append(persisted, r)
			return nil
		},
	}
	sweeper := NewSweeper(buf, repo, time.Minute, zap.NewNop(), testCollector)

	sweeper.Sweep(context.Background())

	require.Len(t, persisted, 1)
	n, err := buf.Len()
	require.NoError(t, err)
	assert.Zero(t, n, "replayed item leaves the buffer")
}

func TestSweepKeepsFailedItems(t *testing.T) {
	buf := newTestBuffer(t)
	require.NoError(t, buf.Enqueue(&vitals.Record{PatientID: uuid.New()}))

	repo := &createFnRepo{
		CreateFn: func(ctx context.Context, r *vitals.Record) error {
			return errors.New("still down")
		},
	}
	sweeper := NewSweeper(buf, repo, time.Minute, zap.NewNop(), testCollector)

	sweeper.Sweep(context.Background())

	n, err := buf.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "failed item stays parked")

	due, err := buf.Due(time.Now())
	require.NoError(t, err)
	assert.Empty(t, due, "failed item is rescheduled, not immediately due")
}
