package wire

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a codec failure.
type Kind string

const (
	KindFieldTooLong    Kind = "field_too_long"     // identifier longer than its slot
	KindValueOutOfRange Kind = "value_out_of_range" // integer does not fit its packed width
	KindInvalidEncoding Kind = "invalid_encoding"   // bad UTF-8, trailing NUL, bad flag
	KindTruncatedBuffer Kind = "truncated_buffer"   // section longer than the remaining bytes
	KindUnknownVersion  Kind = "unknown_version"    // unsupported format version
	KindTrailingData    Kind = "trailing_data"      // bytes after the last declared section
	KindDuplicateKey    Kind = "duplicate_key"      // repeated module, method or contract key
	KindKeyMismatch     Kind = "key_mismatch"       // key disagrees with the payload it indexes
	KindLimitExceeded   Kind = "limit_exceeded"     // configured decode limit exceeded
)

var (
	// ErrFieldTooLong matches identifiers exceeding their fixed capacity.
	ErrFieldTooLong = &Error{Kind: KindFieldTooLong, Offset: -1}
	// ErrValueOutOfRange matches integers exceeding their packed width.
	ErrValueOutOfRange = &Error{Kind: KindValueOutOfRange, Offset: -1}
	// ErrInvalidEncoding matches malformed identifier bytes and flags.
	ErrInvalidEncoding = &Error{Kind: KindInvalidEncoding, Offset: -1}
	// ErrTruncatedBuffer matches reads past the end of the input.
	ErrTruncatedBuffer = &Error{Kind: KindTruncatedBuffer, Offset: -1}
	// ErrUnknownVersion matches unsupported format versions.
	ErrUnknownVersion = &Error{Kind: KindUnknownVersion, Offset: -1}
	// ErrTrailingData matches inputs with bytes after the last section.
	ErrTrailingData = &Error{Kind: KindTrailingData, Offset: -1}
	// ErrDuplicateKey matches repeated keys within one mapping.
	ErrDuplicateKey = &Error{Kind: KindDuplicateKey, Offset: -1}
	// ErrKeyMismatch matches keys that disagree with their payload.
	ErrKeyMismatch = &Error{Kind: KindKeyMismatch, Offset: -1}
	// ErrLimitExceeded matches inputs exceeding configured limits.
	ErrLimitExceeded = &Error{Kind: KindLimitExceeded, Offset: -1}
)

// Error is the structured error returned by the codec.
//
// Offset is the byte position in the input where decoding failed, or -1 for encode
// and construction failures.
type Error struct {
	Cause  error
	Kind   Kind
	Detail string
	Path   []string
	Offset int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Errorf builds an *Error of the given kind with no offset.
func Errorf(kind Kind, format string, args ...any) *Error {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Detail: detail, Offset: -1}
}

// Within prefixes the path of a codec error with segment. Errors that are not
// codec errors are returned unchanged.
func Within(err error, segment string) error {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return err
	}
	out := *e
	out.Path = append([]string{segment}, e.Path...)
	return &out
}

// Indexed formats a collection path segment such as "modules[2]".
func Indexed(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}

// KindOf returns the kind of a codec error, or "" when err is not one.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}

func atOffset(err error, off int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	out := *e
	out.Offset = off
	return &out
}
