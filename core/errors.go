package core

import "fmt"

// MalformedRecordError reports a change point whose offset falls outside the
// valid [0,1440) range. It is fatal to the whole analysis run: an out-of-range
// offset indicates a corrupted card read, and clamping it could hide that.
type MalformedRecordError struct {
	Date          string
	OffsetMinutes int
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed change record for %s: offset %d is outside [0,1440)", e.Date, e.OffsetMinutes)
}

// UnknownActivityTypeError reports an activity code outside the closed
// 4-value enumeration. Also fatal; unknown codes are never defaulted to REST.
type UnknownActivityTypeError struct {
	Date string
	Code int
}

// Error implements the error interface.
func (e *UnknownActivityTypeError) Error() string {
	return fmt.Sprintf("unknown activity type code %d for %s: expected 0 (rest), 1 (availability), 2 (work) or 3 (drive)", e.Code, e.Date)
}
