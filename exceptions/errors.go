package exceptions

import (
	"errors"
	"fmt"
)

var NotFound = errors.New("NotFound")
var InternalError = errors.New("InternalError")
var NotWhitelisted = errors.New("NotWhitelisted")
var InvalidClassName = errors.New("InvalidClassName")
var DateNotFound = errors.New("DateNotFound")

// MalformedTableError is returned when a page table does not match the shape
// its header row declares. Page and Row are zero based.
type MalformedTableError struct {
	Page   int
	Row    int
	Reason string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed table on page %d, row %d: %s", e.Page, e.Row, e.Reason)
}
