package closure

import (
	"fmt"

	"asset-cloner/feature/records"
)

// NotFoundError reports a hard reference that could not be resolved.
type NotFoundError struct {
	Kind records.Kind
	Name string
	// Reference is the field that pointed at the missing record; empty for the root.
	Reference string
}

func (e *NotFoundError) Error() string {
	if e.Reference == "" {
		return fmt.Sprintf("couldn't find %s %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("couldn't find %s %q (referenced by %s)", e.Kind, e.Name, e.Reference)
}
