package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissionConflict rejects a second active mission for a driver email.
var ErrMissionConflict = errors.New("driver already has an active mission")

// MissingFieldsError reports a create payload rejected for absent required
// fields, carrying every missing field name so the client can show them all.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
