package markup

import (
	"github.com/zphixon/froggi/protoerr"
)

// PageStyleRule is one rule from the page-wide `{ ... }` style block: a
// selector token plus the inline styles it applies.
type PageStyleRule struct {
	Selector Token
	Styles   []InlineStyle
}

// ItemKind is the closed set of PageItem payload shapes.
type ItemKind uint8

const (
	ItemText ItemKind = iota
	ItemChildren
	ItemLink
	ItemBlob
	ItemAnchor
)

// PageItem is a single body element: a builtin token, its inline styles,
// and a payload whose shape depends on the builtin.
type PageItem struct {
	Builtin Token
	Styles  []InlineStyle

	PayloadKind ItemKind

	Text     []Token    // ItemText: string tokens, concatenation is the text
	Children []PageItem // ItemChildren: nested items
	Line     int        // ItemChildren: opening line of the container

	Link string  // ItemLink: target
	Name string  // ItemBlob: blob name; ItemAnchor: anchor name

	// ItemLink/ItemBlob: optional display/alt text tokens
	DisplayOrAlt []Token
}

// Page is a parsed FML document: the page-wide style rules plus the body.
type Page struct {
	Styles []PageStyleRule
	Items  []PageItem
}

// Parse scans and parses data into a Page. Diagnostics from malformed
// top-level items are accumulated rather than aborting the parse; if any
// are found, Parse returns them all and a nil Page.
func Parse(data string) (*Page, []error) {
	var errs []error
	var items []PageItem
	var styles []PageStyleRule
	haveStyles := false

	scanner := NewScanner(data)

	for {
		tok, err := scanner.PeekToken()
		if err != nil {
			errs = append(errs, err)
			break
		}
		if tok.Kind == End {
			break
		}

		switch {
		case tok.Kind == LeftBrace && !haveStyles:
			rules, err := parsePageStyles(scanner)
			if err != nil {
				errs = append(errs, err)
				skipBalanced(scanner, LeftBrace, RightBrace)
				continue
			}
			styles = rules
			haveStyles = true

		case tok.Kind == LeftParen:
			item, err := parseItem(scanner)
			if err != nil {
				errs = append(errs, err)
				skipBalanced(scanner, LeftParen, RightParen)
				continue
			}
			items = append(items, item)

		default:
			errs = append(errs, protoerr.NewExpectedItem(tok.Line, tok.Lexeme))
			scanner.NextToken()
		}
	}

	if len(errs) == 0 {
		if err := checkRecursiveStyles(styles); err != nil {
			return nil, []error{err}
		}
		if err := validateStyleReferences(styles, items); err != nil {
			return nil, []error{err}
		}
		return &Page{Styles: styles, Items: items}, nil
	}
	return nil, errs
}

// skipBalanced resumes a top-level parse after a failed item or page-style
// block. The caller's subparser has already consumed the opening
// delimiter, so this walks forward counting nested opens until the
// matching close is consumed, or EOF is hit: nested failures unwind to
// that form's closing delimiter rather than the whole page.
func skipBalanced(s *Scanner, open, close Kind) {
	depth := 1
	for depth > 0 {
		tok, err := s.NextToken()
		if err != nil {
			return
		}
		if tok.Kind == End {
			return
		}
		switch tok.Kind {
		case open:
			depth++
		case close:
			depth--
		}
	}
}

func parsePageStyles(s *Scanner) ([]PageStyleRule, error) {
	leftBrace, err := consume(s, LeftBrace)
	if err != nil {
		return nil, err
	}

	var rules []PageStyleRule

	for {
		tok, err := s.PeekToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == RightBrace {
			break
		}

		if _, err := consume(s, LeftParen); err != nil {
			return nil, withMsg(err, "expected style rules inside page style item")
		}

		selector, err := consumeSelector(s)
		if err != nil {
			return nil, err
		}

		var styles []InlineStyle
		for {
			tok, err := s.PeekToken()
			if err != nil {
				return nil, err
			}
			if tok.Kind == RightParen {
				break
			}
			style, err := parseOneStyle(s)
			if err != nil {
				return nil, err
			}
			styles = append(styles, style)
		}

		rules = append(rules, PageStyleRule{Selector: selector, Styles: styles})
		if _, err := consume(s, RightParen); err != nil {
			return nil, err
		}
	}

	if _, err := consume(s, RightBrace); err != nil {
		return nil, protoerr.NewUnbalancedParentheses(leftBrace.Line)
	}

	return rules, nil
}

// parseOneStyle parses either a nullary identifier style or a
// parenthesized unary style, used by both the page-style block and
// per-item inline-style lists.
func parseOneStyle(s *Scanner) (InlineStyle, error) {
	tok, err := s.NextToken()
	if err != nil {
		return InlineStyle{}, err
	}

	switch tok.Kind {
	case Identifier:
		return resolveNullaryOrUserDefined(tok), nil

	case LeftParen:
		name, err := consume(s, Identifier)
		if err != nil {
			return InlineStyle{}, withMsg(err, "expected a built-in style rule")
		}
		arg, err := consume(s, String)
		if err != nil {
			return InlineStyle{}, withMsg(err, "expected an argument to the built-in style rule")
		}
		if _, err := consume(s, RightParen); err != nil {
			return InlineStyle{}, withMsg(err, "style rules only take one argument")
		}
		return resolveUnary(name, arg)

	default:
		return InlineStyle{}, protoerr.NewExpectedStyle(tok.Line, tok.Lexeme)
	}
}

func parseInlineStyles(s *Scanner) ([]InlineStyle, error) {
	tok, err := s.PeekToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind != LeftBrace {
		return nil, nil
	}
	if _, err := consume(s, LeftBrace); err != nil {
		return nil, err
	}

	var styles []InlineStyle
	for {
		tok, err := s.PeekToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == RightBrace {
			break
		}
		style, err := parseOneStyle(s)
		if err != nil {
			return nil, err
		}
		styles = append(styles, style)
	}

	if _, err := consume(s, RightBrace); err != nil {
		return nil, withMsg(err, "expected the end of the inline style")
	}
	return styles, nil
}

func parseItem(s *Scanner) (PageItem, error) {
	leftParen, err := consume(s, LeftParen)
	if err != nil {
		return PageItem{}, err
	}

	tok, err := s.PeekToken()
	if err != nil {
		return PageItem{}, err
	}

	var item PageItem
	switch tok.Kind {
	case Blob:
		item, err = parseBlob(s)
	case Link:
		item, err = parseLink(s)
	case Anchor:
		item, err = parseAnchor(s)
	case Text:
		item, err = parseText(s)
	case VBox:
		item, err = parseContainer(s, VBox)
	case Box:
		item, err = parseContainer(s, Box)
	default:
		item, err = parseImplicitText(s)
	}
	if err != nil {
		return PageItem{}, err
	}

	if _, cerr := consume(s, RightParen); cerr != nil {
		return PageItem{}, protoerr.NewUnbalancedParentheses(leftParen.Line)
	}
	return item, nil
}

func parseBlob(s *Scanner) (PageItem, error) {
	builtin, err := consume(s, Blob)
	if err != nil {
		return PageItem{}, err
	}
	name, err := consume(s, String)
	if err != nil {
		return PageItem{}, err
	}
	styles, err := parseInlineStyles(s)
	if err != nil {
		return PageItem{}, err
	}
	alt, err := collectText(s)
	if err != nil {
		return PageItem{}, err
	}
	return PageItem{
		Builtin: builtin, Styles: styles, PayloadKind: ItemBlob,
		Name: Decode(name.Lexeme), DisplayOrAlt: alt,
	}, nil
}

func parseLink(s *Scanner) (PageItem, error) {
	builtin, err := consume(s, Link)
	if err != nil {
		return PageItem{}, err
	}
	target, err := consume(s, String)
	if err != nil {
		return PageItem{}, err
	}
	styles, err := parseInlineStyles(s)
	if err != nil {
		return PageItem{}, err
	}
	text, err := collectText(s)
	if err != nil {
		return PageItem{}, err
	}
	return PageItem{
		Builtin: builtin, Styles: styles, PayloadKind: ItemLink,
		Link: Decode(target.Lexeme), DisplayOrAlt: text,
	}, nil
}

func parseAnchor(s *Scanner) (PageItem, error) {
	builtin, err := consume(s, Anchor)
	if err != nil {
		return PageItem{}, err
	}
	name, err := consume(s, String)
	if err != nil {
		return PageItem{}, err
	}
	return PageItem{Builtin: builtin, PayloadKind: ItemAnchor, Name: Decode(name.Lexeme)}, nil
}

func parseText(s *Scanner) (PageItem, error) {
	builtin, err := consume(s, Text)
	if err != nil {
		return PageItem{}, err
	}
	styles, err := parseInlineStyles(s)
	if err != nil {
		return PageItem{}, err
	}
	text, err := collectText(s)
	if err != nil {
		return PageItem{}, err
	}
	return PageItem{Builtin: builtin, Styles: styles, PayloadKind: ItemText, Text: text}, nil
}

func parseContainer(s *Scanner, kind Kind) (PageItem, error) {
	builtin, err := consume(s, kind)
	if err != nil {
		return PageItem{}, err
	}
	styles, err := parseInlineStyles(s)
	if err != nil {
		return PageItem{}, err
	}

	var children []PageItem
	for {
		tok, err := s.PeekToken()
		if err != nil {
			return PageItem{}, err
		}
		if tok.Kind == RightParen {
			break
		}
		child, err := parseItem(s)
		if err != nil {
			return PageItem{}, err
		}
		children = append(children, child)
	}

	return PageItem{
		Builtin: builtin, Styles: styles, PayloadKind: ItemChildren,
		Children: children, Line: builtin.Line,
	}, nil
}

func parseImplicitText(s *Scanner) (PageItem, error) {
	peeked, err := s.PeekToken()
	if err != nil {
		return PageItem{}, err
	}
	implicit := Token{Kind: ImplicitText, Line: peeked.Line, Lexeme: ""}

	styles, err := parseInlineStyles(s)
	if err != nil {
		return PageItem{}, err
	}
	text, err := collectText(s)
	if err != nil {
		return PageItem{}, err
	}
	return PageItem{Builtin: implicit, Styles: styles, PayloadKind: ItemText, Text: text}, nil
}

func collectText(s *Scanner) ([]Token, error) {
	var text []Token
	for {
		tok, err := s.PeekToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == RightParen {
			break
		}
		str, err := consume(s, String)
		if err != nil {
			return nil, err
		}
		text = append(text, Token{Kind: String, Line: str.Line, Lexeme: Decode(str.Lexeme)})
	}
	return text, nil
}

// withMsg appends a breadcrumb to err if it carries one, the same
// AddMsg/msg_str chaining original_source/library/src/lib.rs implements
// generically over any FroggiError.
func withMsg(err error, msg string) error {
	if pe, ok := err.(*protoerr.Error); ok {
		return pe.With(msg)
	}
	return err
}

func consumeSelector(s *Scanner) (Token, error) {
	tok, err := s.NextToken()
	if err != nil {
		return Token{}, err
	}
	if tok.IsSelector() {
		return tok, nil
	}
	return Token{}, protoerr.NewUnexpectedToken(tok.Line, Identifier.String(), tok.Lexeme).
		With("selectors must be either built-in items or links, or user-defined selectors")
}

func consume(s *Scanner, kind Kind) (Token, error) {
	tok, err := s.NextToken()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind == kind {
		return tok, nil
	}
	return Token{}, protoerr.NewUnexpectedToken(tok.Line, kind.String(), tok.Lexeme)
}
