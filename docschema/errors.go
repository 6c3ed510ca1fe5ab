package docschema

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the extractor.
var (
	ErrInvalidType             = errors.New("invalid type")
	ErrUnsupportedBareObject   = errors.New("nested objects are not supported")
	ErrOrphanedNestedParam     = errors.New("orphaned nested param")
	ErrMalformedTag            = errors.New("malformed tag")
	ErrMalformedExampleLiteral = errors.New("malformed example literal")
	ErrMissingTemplateVariable = errors.New("missing template variable")
	ErrUnknownErrorType        = errors.New("unknown error type")
	ErrInvalidSource           = errors.New("invalid source")
	ErrInvalidOption           = errors.New("invalid option")
	ErrReadInput               = errors.New("read input")
	ErrWriteOutput             = errors.New("write output")
)

// TagError reports a tag whose value does not match the grammar of its kind.
// It matches [ErrMalformedTag] with [errors.Is], as well as Err when set.
type TagError struct {
	Err   error
	Value string
	Kind  TagKind
}

func (e *TagError) Error() string {
	msg := fmt.Sprintf("%s: @%s %q", ErrMalformedTag, e.Kind, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *TagError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedTag}
	}

	return []error{ErrMalformedTag, e.Err}
}
