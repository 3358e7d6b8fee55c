// Package markup implements the scanner and parser for Froggi Markup
// Language (FML) source, turning a Lisp-shaped s-expression source buffer
// into a validated Page suitable for rendering. The package structure
// mirrors github.com/intuitivelabs/httpsp's token/lexer split
// (parse_tok.go), generalized from a resumable byte-offset scanner to a
// one-shot, restartable lexer since FML source is always fully buffered
// in memory before parsing.
package markup

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind uint8

const (
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	String
	Identifier
	Box
	VBox
	Text
	Inline
	Link
	Anchor
	Blob
	ImplicitText
	End
)

func (k Kind) String() string {
	switch k {
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case String:
		return "string"
	case Identifier:
		return "identifier"
	case Box:
		return "$"
	case VBox:
		return "|"
	case Text:
		return "*"
	case Inline:
		return "%"
	case Link:
		return "^"
	case Anchor:
		return "#"
	case Blob:
		return "&"
	case ImplicitText:
		return "implicit text"
	case End:
		return "end of input"
	default:
		return fmt.Sprintf("unknown token kind %d", uint8(k))
	}
}

// Token is a (kind, line, lexeme) triple. Lexeme is a slice of the source
// string the Scanner was built from; since Go strings share their backing
// array across slices, this is a zero-copy span into the source, no
// separate offset/length indirection needed.
type Token struct {
	Kind   Kind
	Line   int
	Lexeme string
}

// IsSelector reports whether the token's kind may appear as a page-style
// selector: Identifier | Link | Box | VBox | Text.
func (t Token) IsSelector() bool {
	switch t.Kind {
	case Identifier, Link, Box, VBox, Text:
		return true
	default:
		return false
	}
}
