// Package protoerr implements the closed error taxonomy shared by the
// froggi wire framing and markup packages. It plays the role ErrorHdr's
// numeric codes play in github.com/intuitivelabs/httpsp, but carries the
// extra structured fields (line, expected/got token, style name, numeric
// argument) that the richer framing/parse errors need.
package protoerr

import (
	"fmt"
)

// Kind is the top-level, exhaustive error category.
type Kind uint8

const (
	// Encoding means bytes that were required to be UTF-8 were not.
	Encoding Kind = iota
	// IO means the underlying stream failed or ended early.
	IO
	// RequestFormat means a wire-level invariant was violated.
	RequestFormat
	// Scan means the markup scanner failed to tokenize the source.
	Scan
	// Parse means the markup parser rejected the token stream.
	Parse
)

func (k Kind) String() string {
	switch k {
	case Encoding:
		return "encoding"
	case IO:
		return "io"
	case RequestFormat:
		return "request format"
	case Scan:
		return "scan"
	case Parse:
		return "parse"
	default:
		return "unknown error kind"
	}
}

// Detail further narrows a Scan or Parse Kind. Zero value (DetailNone) is
// used for Encoding, IO and RequestFormat, which have no sub-taxonomy.
type Detail uint8

const (
	DetailNone Detail = iota

	// scan-level details
	UnknownEscapeCode
	UnterminatedString

	// parse-level details
	UnexpectedToken
	UnbalancedParentheses
	ExpectedStyle
	ExpectedItem
	UnknownStyle
	RecursiveStyle
	IncorrectNumberFormat
)

func (d Detail) String() string {
	switch d {
	case DetailNone:
		return "none"
	case UnknownEscapeCode:
		return "unknown escape code"
	case UnterminatedString:
		return "unterminated string"
	case UnexpectedToken:
		return "unexpected token"
	case UnbalancedParentheses:
		return "unbalanced parentheses"
	case ExpectedStyle:
		return "expected style"
	case ExpectedItem:
		return "expected item"
	case UnknownStyle:
		return "unknown style"
	case RecursiveStyle:
		return "recursive style"
	case IncorrectNumberFormat:
		return "incorrect number format"
	default:
		return "unknown detail"
	}
}

// Error is the single error type produced anywhere in froggi's core. Only
// the fields relevant to Kind/Detail are populated, mirroring the way
// github.com/intuitivelabs/httpsp's PFLine or ChunkVal structs carry
// fields that are only meaningful for some of their states.
type Error struct {
	Kind   Kind
	Detail Detail

	Line int // source line, 1-based; 0 if not applicable

	Expected string // expected token kind or byte count, for UnexpectedToken/RequestFormat
	Got      string // the lexeme or value actually found

	Style string // style name, for UnknownStyle/RecursiveStyle

	Num    string // the offending numeral, for IncorrectNumberFormat
	Wanted string // what shape it should have had, e.g. "6 hex digits"

	Code byte // the offending escape code, for UnknownEscapeCode

	Msg string // breadcrumb context, comma-joined as callers add detail
}

// Error implements the error interface.
func (e *Error) Error() string {
	var base string
	switch e.Kind {
	case Encoding:
		base = "encoding: invalid utf-8"
	case IO:
		base = "io: " + e.Got
	case RequestFormat:
		base = "request format: " + e.requestFormatMsg()
	case Scan:
		base = fmt.Sprintf("scan error on line %d: %s", e.Line, e.scanMsg())
	case Parse:
		base = fmt.Sprintf("parse error on line %d: %s", e.Line, e.parseMsg())
	default:
		base = "unknown froggi error"
	}
	if e.Msg != "" {
		base += ", " + e.Msg
	}
	return base
}

func (e *Error) requestFormatMsg() string {
	if e.Got != "" || e.Expected != "" {
		return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
	}
	return "malformed request or response"
}

func (e *Error) scanMsg() string {
	switch e.Detail {
	case UnknownEscapeCode:
		return fmt.Sprintf("unknown escape code %q", e.Code)
	case UnterminatedString:
		return fmt.Sprintf("unterminated string starting on line %d", e.Line)
	default:
		return e.Detail.String()
	}
}

func (e *Error) parseMsg() string {
	switch e.Detail {
	case UnexpectedToken:
		return fmt.Sprintf("expected %s, got %q", e.Expected, e.Got)
	case UnbalancedParentheses:
		return fmt.Sprintf("unbalanced parentheses opened on line %d", e.Line)
	case ExpectedStyle:
		return fmt.Sprintf("expected a style rule, got %q", e.Got)
	case ExpectedItem:
		return fmt.Sprintf("expected a page item, got %q", e.Got)
	case UnknownStyle:
		return fmt.Sprintf("unknown style %q", e.Style)
	case RecursiveStyle:
		return fmt.Sprintf("style %q refers to itself", e.Style)
	case IncorrectNumberFormat:
		return fmt.Sprintf("%q is not a valid %s", e.Num, e.Wanted)
	default:
		return e.Detail.String()
	}
}

// With appends a breadcrumb message to the error, comma-joining it with any
// message already present. Mirrors the AddMsg/msg_str chaining found in
// original_source/library/src/lib.rs.
func (e *Error) With(msg string) *Error {
	if e.Msg == "" {
		e.Msg = msg
	} else {
		e.Msg = e.Msg + ", " + msg
	}
	return e
}

// Withf is With with fmt.Sprintf formatting.
func (e *Error) Withf(format string, args ...interface{}) *Error {
	return e.With(fmt.Sprintf(format, args...))
}

// NewEncoding builds an Encoding error.
func NewEncoding() *Error {
	return &Error{Kind: Encoding}
}

// NewIO wraps an I/O failure.
func NewIO(cause error) *Error {
	got := "stream ended early"
	if cause != nil {
		got = cause.Error()
	}
	return &Error{Kind: IO, Got: got}
}

// NewRequestFormat builds a RequestFormat error, optionally noting what was
// expected versus what was found.
func NewRequestFormat(expected, got string) *Error {
	return &Error{Kind: RequestFormat, Expected: expected, Got: got}
}

// NewScanUnknownEscape builds the UnknownEscapeCode scan error.
func NewScanUnknownEscape(line int, code byte) *Error {
	return &Error{Kind: Scan, Detail: UnknownEscapeCode, Line: line, Code: code}
}

// NewScanUnterminatedString builds the UnterminatedString scan error.
func NewScanUnterminatedString(startLine int) *Error {
	return &Error{Kind: Scan, Detail: UnterminatedString, Line: startLine}
}

// NewUnexpectedToken builds the UnexpectedToken parse error.
func NewUnexpectedToken(line int, expected, got string) *Error {
	return &Error{Kind: Parse, Detail: UnexpectedToken, Line: line, Expected: expected, Got: got}
}

// NewUnbalancedParentheses builds the UnbalancedParentheses parse error,
// reporting the line the unmatched delimiter was opened on.
func NewUnbalancedParentheses(openLine int) *Error {
	return &Error{Kind: Parse, Detail: UnbalancedParentheses, Line: openLine}
}

// NewExpectedStyle builds the ExpectedStyle parse error.
func NewExpectedStyle(line int, got string) *Error {
	return &Error{Kind: Parse, Detail: ExpectedStyle, Line: line, Got: got}
}

// NewExpectedItem builds the ExpectedItem parse error.
func NewExpectedItem(line int, got string) *Error {
	return &Error{Kind: Parse, Detail: ExpectedItem, Line: line, Got: got}
}

// NewUnknownStyle builds the UnknownStyle parse error.
func NewUnknownStyle(line int, style string) *Error {
	return &Error{Kind: Parse, Detail: UnknownStyle, Line: line, Style: style}
}

// NewRecursiveStyle builds the RecursiveStyle parse error.
func NewRecursiveStyle(line int, style string) *Error {
	return &Error{Kind: Parse, Detail: RecursiveStyle, Line: line, Style: style}
}

// NewIncorrectNumberFormat builds the IncorrectNumberFormat parse error.
func NewIncorrectNumberFormat(line int, num, wanted string) *Error {
	return &Error{Kind: Parse, Detail: IncorrectNumberFormat, Line: line, Num: num, Wanted: wanted}
}
