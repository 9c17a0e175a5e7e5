package clone

import "errors"

var (
	// ErrUnknownKind is returned for clone kinds other than weapon, costume and skin.
	ErrUnknownKind = errors.New("unknown clone kind")
	// ErrDLCContent is returned when the source record is DLC-only content.
	ErrDLCContent = errors.New("DLC content can't be cloned")
	// ErrBaseArchiveMissing is returned in strict mode when the base mesh archive does not exist.
	ErrBaseArchiveMissing = errors.New("base mesh archive not found")
	// ErrInvalidName is returned for new names that are not a single path element.
	ErrInvalidName = errors.New("new name must not contain path separators or '..'")
	// ErrNoLedger is returned when run history is requested without a database.
	ErrNoLedger = errors.New("run ledger is not configured")
)
