package store

// Store defines the interface for solve result persistence.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if a record doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveRecord atomically saves a record under its ID. An existing record
	// with the same ID is overwritten. Implementations should write via a
	// temp file + rename so failures cannot leave a corrupt record behind.
	SaveRecord(record *Record) error

	// LoadRecord retrieves the record with the given ID.
	// Returns ErrNotFound if no such record exists.
	LoadRecord(id string) (*Record, error)

	// ListRecords returns metadata for all stored records.
	// The returned slice may be empty.
	ListRecords() ([]RecordInfo, error)

	// DeleteRecord removes the record and all associated artifacts
	// (record.json, tour.svg, trace.jsonl) for the given ID.
	// Returns ErrNotFound if no record exists.
	DeleteRecord(id string) error

	// SaveArtifact stores a named artifact (e.g. tour.svg) next to the
	// record with the given ID.
	SaveArtifact(id, name string, data []byte) error
}

// ErrNotFound is returned when a requested record does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing record error.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return "record not found: " + e.ID
	}
	return "record not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
