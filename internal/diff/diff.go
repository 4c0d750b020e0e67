// Package diff computes the set of changed fields between two snapshots
// of an entity, applying the field rules the traceability log depends on:
// derived fields are excluded, date fields compare at day granularity, and
// the responsible-user field is always stamped with the current actor.
package diff

import (
	"reflect"
	"time"
)

// Snapshot maps field names to values as they will appear in a
// trazabilidad row.
type Snapshot map[string]any

// Change is a before/after pair for one field. This pair shape is used by
// every update path; the audit log never records a bare new value for a
// changed field.
type Change struct {
	Before any `json:"anterior"`
	After  any `json:"nuevo"`
}

// Changes maps each changed field to its before/after pair.
type Changes map[string]Change

type Options struct {
	// Exclude lists fields never reported as changed (derived fields such
	// as age_group recomputed on every write).
	Exclude []string

	// DateFields compare at calendar-day granularity: two values on the
	// same day never register as a change.
	DateFields []string

	// ForceField, when set, is always present in the output with Actor as
	// the after value, even if it did not change.
	ForceField string
	Actor      string
}

// Compute returns the fields of new whose values differ from old under the
// options' rules. Fields present only in new count as changed against a
// nil before value.
func Compute(old, new Snapshot, opts Options) Changes {
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, f := range opts.Exclude {
		excluded[f] = true
	}
	dated := make(map[string]bool, len(opts.DateFields))
	for _, f := range opts.DateFields {
		dated[f] = true
	}

	changes := make(Changes)
	for field, after := range new {
		if excluded[field] || field == opts.ForceField {
			continue
		}

		before, had := old[field]
		if dated[field] {
			if dayOf(before) != dayOf(after) {
				changes[field] = Change{Before: before, After: after}
			}
			continue
		}
		if !had || !reflect.DeepEqual(before, after) {
			changes[field] = Change{Before: before, After: after}
		}
	}

	if opts.ForceField != "" {
		changes[opts.ForceField] = Change{Before: old[opts.ForceField], After: opts.Actor}
	}

	return changes
}

// dayOf normalizes a date-valued snapshot field to its calendar date.
// Unparseable values fall back to their string form so they still compare
// by strict equality.
func dayOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format("2006-01-02")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.Format("2006-01-02")
			}
		}
		return t
	default:
		return ""
	}
}
