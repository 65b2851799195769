package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUserData marks errors caused by bad or ambiguous spreadsheet content.
// Such errors are fixable by editing the input; everything else is treated
// as a defect in this program. Callers dispatch with errors.Is.
var ErrUserData = errors.New("user data error")

var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrNoOutputs       = errors.New("no outputs selected")
)

// IsUserError reports whether err originates from user-editable input.
func IsUserError(err error) bool {
	return errors.Is(err, ErrUserData)
}

type FieldNotFoundError struct {
	Selector string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %s not found in data", e.Selector)
}

func (e *FieldNotFoundError) Unwrap() error { return ErrUserData }

type AmbiguousFieldError struct {
	Selector string
	Matches  []string
}

func (e *AmbiguousFieldError) Error() string {
	return fmt.Sprintf("multiple columns match %s: %s; use a more specific expression",
		e.Selector, strings.Join(e.Matches, ", "))
}

func (e *AmbiguousFieldError) Unwrap() error { return ErrUserData }

type UnmappedValueError struct {
	Value string
}

func (e *UnmappedValueError) Error() string {
	return fmt.Sprintf("unmapped value: %q", e.Value)
}

func (e *UnmappedValueError) Unwrap() error { return ErrUserData }

type UnparseableTimeError struct {
	Text string
}

func (e *UnparseableTimeError) Error() string {
	return fmt.Sprintf("unparseable time: %q", e.Text)
}

func (e *UnparseableTimeError) Unwrap() error { return ErrUserData }

type NoCandidateError struct {
	LastName string
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("no participant with last name %q", e.LastName)
}

func (e *NoCandidateError) Unwrap() error { return ErrUserData }

type AmbiguousCandidateError struct {
	LastName string
}

func (e *AmbiguousCandidateError) Error() string {
	return fmt.Sprintf("multiple participants with last name %q", e.LastName)
}

func (e *AmbiguousCandidateError) Unwrap() error { return ErrUserData }

type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %q", e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrUserData }

type UnexpectedTextError struct {
	Text string
}

func (e *UnexpectedTextError) Error() string {
	return fmt.Sprintf("unexpected text in markup: %q", e.Text)
}

func (e *UnexpectedTextError) Unwrap() error { return ErrUserData }

type UnexpectedTagError struct {
	Tag string
}

func (e *UnexpectedTagError) Error() string {
	return fmt.Sprintf("unexpected tag in markup: <%s>", e.Tag)
}

func (e *UnexpectedTagError) Unwrap() error { return ErrUserData }

type SheetNotFoundError struct {
	Name string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("worksheet %q not found in workbook", e.Name)
}

func (e *SheetNotFoundError) Unwrap() error { return ErrUserData }

type MissingZoomRoomError struct {
	Name string
}

func (e *MissingZoomRoomError) Error() string {
	return fmt.Sprintf("zoom room %q is not in the zoom room directory", e.Name)
}

func (e *MissingZoomRoomError) Unwrap() error { return ErrUserData }

// MappingError wraps a field-level failure with enough context to locate
// the offending cell. Row is the zero-based data row within its sheet.
type MappingError struct {
	Field string
	Row   int
	Err   error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("row %d, field %q: %v", e.Row, e.Field, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
