package equipment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BruksfildServices01/equipment-lending/internal/httperr"
)

var (
	ErrNotFound          = httperr.ErrBusiness("equipment_not_found")
	ErrInvalidTransition = httperr.ErrBusiness("invalid_state")
	ErrStatusConflict    = httperr.ErrBusiness("status_conflict")
	ErrDuplicate         = httperr.ErrBusiness("equipment_exists")
)

// FieldErrors maps a field name to the human readable messages for it.
// Bulk operations key item fields as "items.<index>.<field>".
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Merge(prefix string, other FieldErrors) {
	for field, msgs := range other {
		fe[prefix+field] = append(fe[prefix+field], msgs...)
	}
}

// Err returns nil when no field failed, so callers can write
// `return fe.Err()` without a typed-nil error.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fe[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StorageError wraps a failure of the underlying repository.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
