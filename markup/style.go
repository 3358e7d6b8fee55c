package markup

import (
	"strconv"

	"github.com/intuitivelabs/bytescase"
	"github.com/zphixon/froggi/protoerr"
)

// StyleKind is the closed set of inline style variants.
type StyleKind uint8

const (
	Mono StyleKind = iota
	Serif
	Sans
	Bold
	Italic
	Underline
	Strike
	Fg
	Bg
	Fill
	Size
	UserDefined
)

// InlineStyle is a tagged variant over the built-in nullary styles, the
// built-in unary styles with typed arguments, and a reference to a
// page-style selector. Only the fields relevant to Kind are populated,
// the same discipline protoerr.Error and github.com/intuitivelabs/
// httpsp's PFLine/ChunkVal structs use for their own tagged variants.
type InlineStyle struct {
	Kind  StyleKind
	Token Token // the token that introduced the style, for diagnostics

	RGB  [3]byte // Fg, Bg
	Byte byte    // Fill
	Num  int     // Size

	Name string // UserDefined: the referenced selector's identifier
}

// builtinStyle associates a lowercased style name with its nullary Kind.
type builtinStyle struct {
	name []byte
	kind StyleKind
}

// nullaryStyles lists the built-ins that take no argument.
var nullaryStyles = []builtinStyle{
	{name: []byte("mono"), kind: Mono},
	{name: []byte("serif"), kind: Serif},
	{name: []byte("sans"), kind: Sans},
	{name: []byte("bold"), kind: Bold},
	{name: []byte("italic"), kind: Italic},
	{name: []byte("underline"), kind: Underline},
	{name: []byte("strike"), kind: Strike},
}

// unaryStyles lists the built-ins that take one string argument.
var unaryStyles = []builtinStyle{
	{name: []byte("fg"), kind: Fg},
	{name: []byte("bg"), kind: Bg},
	{name: []byte("fill"), kind: Fill},
	{name: []byte("size"), kind: Size},
}

const (
	styleBitsLen   uint = 2
	styleBitsFChar uint = 5
)

var nullaryLookup [1 << (styleBitsLen + styleBitsFChar)][]builtinStyle
var unaryLookup [1 << (styleBitsLen + styleBitsFChar)][]builtinStyle

// hashStyleName hashes a style name the same way github.com/intuitivelabs/
// httpsp's hashHdrName hashes header names (first byte + length),
// case-folded via bytescase so `Bold` and `bold` land in the same bucket.
func hashStyleName(n []byte) int {
	const (
		mC = (1 << styleBitsFChar) - 1
		mL = (1 << styleBitsLen) - 1
	)
	if len(n) == 0 {
		return 0
	}
	return (int(bytescase.ByteToLower(n[0])) & mC) |
		((len(n) & mL) << styleBitsFChar)
}

func init() {
	for _, b := range nullaryStyles {
		i := hashStyleName(b.name)
		nullaryLookup[i] = append(nullaryLookup[i], b)
	}
	for _, b := range unaryStyles {
		i := hashStyleName(b.name)
		unaryLookup[i] = append(unaryLookup[i], b)
	}
}

// lookupNullary returns the nullary StyleKind for name, case-insensitively.
func lookupNullary(name string) (StyleKind, bool) {
	n := []byte(name)
	i := hashStyleName(n)
	for _, b := range nullaryLookup[i] {
		if bytescase.CmpEq(n, b.name) {
			return b.kind, true
		}
	}
	return 0, false
}

// lookupUnary returns the unary StyleKind for name, case-insensitively.
func lookupUnary(name string) (StyleKind, bool) {
	n := []byte(name)
	i := hashStyleName(n)
	for _, b := range unaryLookup[i] {
		if bytescase.CmpEq(n, b.name) {
			return b.kind, true
		}
	}
	return 0, false
}

// resolveNullaryOrUserDefined classifies a bare identifier style: a known
// built-in nullary style, or else a UserDefined reference to a page-style
// selector.
func resolveNullaryOrUserDefined(token Token) InlineStyle {
	if kind, ok := lookupNullary(token.Lexeme); ok {
		return InlineStyle{Kind: kind, Token: token}
	}
	return InlineStyle{Kind: UserDefined, Token: token, Name: token.Lexeme}
}

// resolveUnary builds the typed InlineStyle for a unary built-in, parsing
// its string argument. name is the style-name token, arg is the String
// token carrying the argument (quotes included). An unrecognized name is
// not an error here: it is recorded as a UserDefined reference (the
// argument is discarded) and checked against the declared page-style
// selectors once the whole page is known, by validateStyleReferences.
func resolveUnary(name Token, arg Token) (InlineStyle, error) {
	kind, ok := lookupUnary(name.Lexeme)
	if !ok {
		return InlineStyle{Kind: UserDefined, Token: name, Name: name.Lexeme}, nil
	}

	value := Decode(arg.Lexeme)

	switch kind {
	case Fg, Bg:
		rgb, err := parseHexRGB(value)
		if err != nil {
			return InlineStyle{}, protoerr.NewIncorrectNumberFormat(arg.Line, value, "6 hex digits").
				With(err.Error())
		}
		return InlineStyle{Kind: kind, Token: name, RGB: rgb}, nil

	case Fill:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 255 {
			return InlineStyle{}, protoerr.NewIncorrectNumberFormat(arg.Line, value, "integer in [0, 255]")
		}
		return InlineStyle{Kind: Fill, Token: name, Byte: byte(n)}, nil

	case Size:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 65535 {
			return InlineStyle{}, protoerr.NewIncorrectNumberFormat(arg.Line, value, "integer in [1, 65535]")
		}
		return InlineStyle{Kind: Size, Token: name, Num: n}, nil

	default:
		return InlineStyle{}, protoerr.NewUnknownStyle(name.Line, name.Lexeme)
	}
}

func parseHexRGB(s string) ([3]byte, error) {
	if len(s) != 6 {
		return [3]byte{}, protoerr.NewEncoding().Withf("%q is not 6 hex digits", s)
	}
	var out [3]byte
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return [3]byte{}, err
		}
		out[i] = byte(n)
	}
	return out, nil
}

// checkRecursiveStyles walks every UserDefined reference reachable from
// each page-style rule and rejects cycles, including direct
// self-reference, via a directed-graph DFS with a visiting set.
func checkRecursiveStyles(rules []PageStyleRule) error {
	bySelector := make(map[string][]InlineStyle, len(rules))
	for _, r := range rules {
		bySelector[r.Selector.Lexeme] = r.Styles
	}

	for _, r := range rules {
		visiting := map[string]bool{r.Selector.Lexeme: true}
		if err := walkStyleRefs(r.Selector.Lexeme, bySelector, visiting); err != nil {
			return err
		}
	}
	return nil
}

func walkStyleRefs(selector string, bySelector map[string][]InlineStyle, visiting map[string]bool) error {
	for _, style := range bySelector[selector] {
		if style.Kind != UserDefined {
			continue
		}
		if visiting[style.Name] {
			return protoerr.NewRecursiveStyle(style.Token.Line, style.Name)
		}
		if _, isRule := bySelector[style.Name]; !isRule {
			continue // not a page-style selector; existence checked by validateStyleReferences
		}
		visiting[style.Name] = true
		if err := walkStyleRefs(style.Name, bySelector, visiting); err != nil {
			return err
		}
		delete(visiting, style.Name)
	}
	return nil
}

// validateStyleReferences checks every UserDefined inline style on an item
// (recursively through container children), and every UserDefined style
// on the page-style rules those items reach, against the set of selectors
// actually declared in the page-styles section. A page-style rule that no
// item reaches is not checked. It runs once the whole page is parsed, so
// the full selector set is known, and it expects checkRecursiveStyles to
// have rejected cyclic rules first.
func validateStyleReferences(rules []PageStyleRule, items []PageItem) error {
	declared := make(map[string][]InlineStyle, len(rules))
	for _, r := range rules {
		declared[r.Selector.Lexeme] = r.Styles
	}
	return checkItemStylesDeclared(items, declared)
}

func checkStylesDeclared(styles []InlineStyle, declared map[string][]InlineStyle) error {
	for _, s := range styles {
		if s.Kind != UserDefined {
			continue
		}
		ruleStyles, ok := declared[s.Name]
		if !ok {
			return protoerr.NewUnknownStyle(s.Token.Line, s.Name)
		}
		if err := checkStylesDeclared(ruleStyles, declared); err != nil {
			return err
		}
	}
	return nil
}

func checkItemStylesDeclared(items []PageItem, declared map[string][]InlineStyle) error {
	for _, item := range items {
		if err := checkStylesDeclared(item.Styles, declared); err != nil {
			return err
		}
		if item.PayloadKind == ItemChildren {
			if err := checkItemStylesDeclared(item.Children, declared); err != nil {
				return err
			}
		}
	}
	return nil
}
