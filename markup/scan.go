package markup

import (
	"strings"

	"github.com/zphixon/froggi/protoerr"
)

// sigils maps a single delimiter byte to the token kind it introduces.
// Grounded on the same table-driven dispatch style as
// github.com/intuitivelabs/httpsp's hdrName2Type in parse_headers.go,
// reduced here to single bytes since FML delimiters are always one byte
// wide.
var sigils = map[byte]Kind{
	'(': LeftParen,
	')': RightParen,
	'{': LeftBrace,
	'}': RightBrace,
	'^': Link,
	'&': Blob,
	'#': Anchor,
	'*': Text,
	'|': VBox,
	'%': Inline,
	'$': Box,
}

func isDelim(b byte) bool {
	if b == '"' {
		return true
	}
	_, ok := sigils[b]
	return ok
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// Scanner is a restartable lexer over a UTF-8 FML source buffer. It holds
// a one-token lookahead buffer, the only lookahead depth the parser
// needs: no production looks further ahead than one token to decide
// which grammar rule to take.
type Scanner struct {
	source string
	pos    int
	line   int
	peeked *Token
}

// NewScanner builds a Scanner over source, starting at line 1.
func NewScanner(source string) *Scanner {
	return &Scanner{source: source, pos: 0, line: 1}
}

// PeekToken returns the next token without consuming it. Calling it
// repeatedly without an intervening NextToken returns the same token.
func (s *Scanner) PeekToken() (Token, error) {
	if s.peeked == nil {
		tok, err := s.scanToken()
		if err != nil {
			return Token{}, err
		}
		s.peeked = &tok
	}
	return *s.peeked, nil
}

// NextToken consumes and returns the next token.
func (s *Scanner) NextToken() (Token, error) {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok, nil
	}
	return s.scanToken()
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.source) {
		b := s.source[s.pos]
		if b == '\n' {
			s.line++
			s.pos++
			continue
		}
		if isSpace(b) {
			s.pos++
			continue
		}
		break
	}
}

func (s *Scanner) scanToken() (Token, error) {
	s.skipSpace()

	if s.pos >= len(s.source) {
		return Token{Kind: End, Line: s.line, Lexeme: ""}, nil
	}

	startLine := s.line
	b := s.source[s.pos]

	if b == '"' {
		return s.scanString()
	}

	if kind, ok := sigils[b]; ok {
		s.pos++
		return Token{Kind: kind, Line: startLine, Lexeme: s.source[s.pos-1 : s.pos]}, nil
	}

	return s.scanIdentifier(startLine), nil
}

func (s *Scanner) scanIdentifier(startLine int) Token {
	start := s.pos
	for s.pos < len(s.source) {
		b := s.source[s.pos]
		if isSpace(b) || isDelim(b) {
			break
		}
		s.pos++
	}
	return Token{Kind: Identifier, Line: startLine, Lexeme: s.source[start:s.pos]}
}

// scanString consumes a quoted string literal, including escape sequences.
// The returned lexeme is the literal exactly as it appears in the source,
// quotes included; decoding escapes is left to the caller via Decode.
func (s *Scanner) scanString() (Token, error) {
	startLine := s.line
	start := s.pos
	s.pos++ // opening quote

	for {
		if s.pos >= len(s.source) {
			return Token{}, protoerr.NewScanUnterminatedString(startLine)
		}

		b := s.source[s.pos]
		if b == '"' {
			s.pos++
			break
		}
		if b == '\n' {
			s.line++
			s.pos++
			continue
		}
		if b == '\\' {
			s.pos++
			if s.pos >= len(s.source) {
				return Token{}, protoerr.NewScanUnterminatedString(startLine)
			}
			esc := s.source[s.pos]
			switch esc {
			case '\\', '"', 'n', 't':
				s.pos++
			default:
				return Token{}, protoerr.NewScanUnknownEscape(s.line, esc)
			}
			continue
		}
		s.pos++
	}

	return Token{Kind: String, Line: startLine, Lexeme: s.source[start:s.pos]}, nil
}

// Decode resolves the escape sequences in a String token's lexeme,
// stripping the surrounding quotes. lexeme must be a well-formed String
// token lexeme as produced by Scanner (i.e. already validated).
func Decode(lexeme string) string {
	inner := lexeme
	if len(inner) >= 2 && inner[0] == '"' && inner[len(inner)-1] == '"' {
		inner = inner[1 : len(inner)-1]
	}
	if !strings.ContainsRune(inner, '\\') {
		return inner
	}

	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' || i+1 >= len(inner) {
			b.WriteByte(c)
			continue
		}
		i++
		switch inner[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(inner[i])
		}
	}
	return b.String()
}
