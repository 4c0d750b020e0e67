package vitals

import "errors"

var (
	ErrRecordNotFound = errors.New("vital-signs record not found")

	// ErrStoredOffline reports that the database rejected the write and the
	// record was parked in the local offline buffer for the sweep to replay.
	ErrStoredOffline = errors.New("record buffered locally; database unavailable")
)
