package apperr

import (
	"errors"
	"sort"
	"strings"
)

// Kind classifies an application error so transports can map it to a status.
type Kind string

const (
	KindValidation           Kind = "validation"
	KindReferentialIntegrity Kind = "referential_integrity"
	KindNotFound             Kind = "not_found"
	KindUnauthenticated      Kind = "unauthenticated"
	KindForbidden            Kind = "forbidden"
	KindUnexpected           Kind = "unexpected"
)

// Error is the single error type crossing the application boundary.
// Fields is only populated for validation errors.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("; ")
			b.WriteString(k)
			b.WriteString(" ")
			b.WriteString(e.Fields[k])
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// ValidationField is shorthand for a single-field validation error.
func ValidationField(field, reason string) *Error {
	return Validation(map[string]string{field: reason})
}

func ReferentialIntegrity(msg string, err error) *Error {
	return &Error{Kind: KindReferentialIntegrity, Message: msg, Err: err}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "unexpected error", Err: err}
}

// KindOf reports the kind of err, treating anything unclassified as unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// Is reports whether err is an application error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// FieldsOf returns the per-field reasons of a validation error, if any.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// MessageOf returns the human readable message of an application error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
