package store

import (
	"errors"
	"fmt"

	"zhastar/catalog-service/internal/catalog"
)

// ErrNotFound is returned when a record id does not exist in the category.
var ErrNotFound = errors.New("record not found")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// FetchError reports a failed read. Callers render it as "no data, retry";
// it never crosses a category boundary.
type FetchError struct {
	Category catalog.Category
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Category, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError reports a failed insert or delete. It is surfaced per action and
// leaves unrelated records untouched.
type WriteError struct {
	Op       string
	Category catalog.Category
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Category, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
