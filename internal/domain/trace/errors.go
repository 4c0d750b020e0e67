package trace

import "errors"

var ErrEntryNotFound = errors.New("traceability entry not found")
