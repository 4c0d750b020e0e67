// Package offline holds vital-signs records that could not reach the
// database in a local file until a periodic sweep replays them. Each
// buffered item carries its own retry state; retries back off
// exponentially instead of hammering the store every cycle.
package offline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/sanavia/clinica/internal/domain/vitals"
)

// Item is one parked record with its retry state.
type Item struct {
	ID          uuid.UUID     `json:"id"`
	Record      vitals.Record `json:"record"`
	Attempts    int           `json:"attempts"`
	EnqueuedAt  time.Time     `json:"enqueued_at"`
	NextAttempt time.Time     `json:"next_attempt"`
}

type Buffer struct {
	path     string
	maxDelay time.Duration

	mu sync.Mutex
}

func NewBuffer(path string, maxDelay time.Duration) *Buffer {
	return &Buffer{path: path, maxDelay: maxDelay}
}

// Enqueue parks a record for later replay. The first retry is due
// immediately.
func (b *Buffer) Enqueue(rec *vitals.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load()
	if err != nil {
		return err
	}

	now := time.Now()
	items = append(items, Item{
		ID:          uuid.New(),
		Record:      *rec,
		EnqueuedAt:  now,
		NextAttempt: now,
	})

	return b.save(items)
}

// Due returns the items whose next attempt has come.
func (b *Buffer) Due(now time.Time) ([]Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load()
	if err != nil {
		return nil, err
	}

	var due []Item
	for _, it := range items {
		if !it.NextAttempt.After(now) {
			due = append(due, it)
		}
	}
	return due, nil
}

// Ack removes an item after its record was confirmed persisted.
func (b *Buffer) Ack(id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return b.save(kept)
}

// Defer reschedules a failed item with exponential backoff.
func (b *Buffer) Defer(id uuid.UUID, now time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load()
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == id {
			items[i].Attempts++
			items[i].NextAttempt = now.Add(b.retryDelay(items[i].Attempts))
		}
	}
	return b.save(items)
}

// Len reports how many items are parked.
func (b *Buffer) Len() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load()
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// retryDelay grows exponentially with the attempt count, capped by the
// buffer's maximum delay.
func (b *Buffer) retryDelay(attempts int) time.Duration {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = time.Minute
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = b.maxDelay

	delay := eb.NextBackOff()
	for i := 1; i < attempts; i++ {
		delay = eb.NextBackOff()
	}
	if delay > b.maxDelay {
		delay = b.maxDelay
	}
	return delay
}

func (b *Buffer) load() ([]Item, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading offline buffer: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding offline buffer: %w", err)
	}
	return items, nil
}

func (b *Buffer) save(items []Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding offline buffer: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0o600); err != nil {
		return fmt.Errorf("writing offline buffer: %w", err)
	}
	return nil
}
