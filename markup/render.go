package markup

import (
	"fmt"
	"strings"
)

// baseCSS is the boilerplate flex layout shared by every rendered page,
// grounded verbatim on the reference renderer's stylesheet preamble.
const baseCSS = `
<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf8">
    <style>
div {
    display: flex;
}
div > * {
    flex-basis: 0;
    flex-grow: 1;
    padding: 3px 3px 7px 3px;
}
body {
    max-width: 850px;
    margin: 0 auto;
    float: none;
}
`

// ToHTML renders a Page to a standalone HTML document: page styles become
// CSS rules keyed by selector kind, and the body items become nested
// divs/spans/anchors/images.
func ToHTML(page *Page) string {
	var html strings.Builder
	html.WriteString(baseCSS)

	for _, rule := range page.Styles {
		switch rule.Selector.Kind {
		case Identifier:
			fmt.Fprintf(&html, ".%s {\n", rule.Selector.Lexeme)
		case Blob:
			html.WriteString("img {\n")
		case Link:
			html.WriteString("a {\n")
		case Anchor:
			continue // anchors carry no CSS
		case Box, VBox:
			html.WriteString("div {\n")
		case Text, ImplicitText, Inline:
			html.WriteString("span {\n")
		default:
			continue
		}

		for _, style := range rule.Styles {
			fmt.Fprintf(&html, "    %s\n", inlineStyleToCSS(style))
		}
		html.WriteString("}\n")
	}
	html.WriteString("    </style>\n  </head>\n  <body>\n")

	for _, item := range page.Items {
		html.WriteString(itemToHTML(item, false))
	}

	html.WriteString(`  <script>
    if (window.location.hash) {
      var elt = document.getElementById(
        window.location.hash.substring(1)
      );
      elt.scrollIntoView(true);
    }
  </script>
`)
	html.WriteString("  </body>\n</html>\n")

	return html.String()
}

func itemToHTML(item PageItem, childOfInline bool) string {
	var html strings.Builder

	switch item.PayloadKind {
	case ItemText:
		html.WriteString("<span")
		if len(item.Styles) > 0 {
			html.WriteString(styleListToHTML(item, false))
		}
		html.WriteString(">")
		for _, t := range item.Text {
			html.WriteString(t.Lexeme)
		}
		trailer := "<br>"
		if childOfInline {
			trailer = ""
		}
		fmt.Fprintf(&html, "</span>%s <!-- text %d -->\n", trailer, item.Builtin.Line)

	case ItemChildren:
		isVertical := item.Builtin.Kind == VBox
		isInline := item.Builtin.Kind == Inline
		tag := "div"
		if isInline {
			tag = "span"
		}

		fmt.Fprintf(&html, "<%s", tag)
		html.WriteString(styleListToHTML(item, isVertical))
		fmt.Fprintf(&html, "> <!-- %s %d -->\n", item.Builtin.Lexeme, item.Builtin.Line)

		for _, child := range item.Children {
			html.WriteString(itemToHTML(child, isInline))
			if isVertical {
				html.WriteString("<br>")
			}
		}

		fmt.Fprintf(&html, "</%s>", tag)
		if isVertical || isInline {
			html.WriteString("<br>\n")
		} else {
			html.WriteString("\n")
		}

	case ItemLink:
		html.WriteString("<div")
		if len(item.Styles) > 0 {
			html.WriteString(styleListToHTML(item, false))
		}
		html.WriteString(">")
		fmt.Fprintf(&html, `<a href="%s">`, item.Link)
		if len(item.DisplayOrAlt) > 0 {
			for _, t := range item.DisplayOrAlt {
				html.WriteString(t.Lexeme)
			}
		} else {
			html.WriteString(item.Link)
		}
		html.WriteString("</a></div>\n")

	case ItemBlob:
		fmt.Fprintf(&html, `<img src="%s"`, item.Name)
		if len(item.DisplayOrAlt) > 0 {
			html.WriteString(` alt="`)
			for _, t := range item.DisplayOrAlt {
				html.WriteString(t.Lexeme)
			}
			html.WriteString(`"`)
		}
		html.WriteString(">\n")

	case ItemAnchor:
		fmt.Fprintf(&html, `<div id="%s" style="display:hidden;"></div>`+"\n", item.Name)
	}

	return html.String()
}

func styleListToHTML(item PageItem, flexColumn bool) string {
	var html strings.Builder
	var classes []string
	var styles []string

	for _, style := range item.Styles {
		if style.Kind == UserDefined {
			classes = append(classes, style.Name)
		} else {
			styles = append(styles, inlineStyleToCSS(style))
		}
	}

	if len(classes) > 0 {
		html.WriteString(` class="`)
		html.WriteString(strings.Join(classes, " "))
		html.WriteString(`"`)
	}

	if len(styles) > 0 {
		html.WriteString(` style="`)
		if flexColumn {
			html.WriteString("flex-direction: column;")
		}
		html.WriteString(strings.Join(styles, " "))
		html.WriteString(`"`)
	} else if flexColumn {
		html.WriteString(` style="flex-direction: column;"`)
	}

	return html.String()
}

func inlineStyleToCSS(style InlineStyle) string {
	switch style.Kind {
	case Mono:
		return "font-family: monospace;"
	case Serif:
		return "font-family: serif;"
	case Sans:
		return "font-family: sans-serif;"
	case Bold:
		return "font-weight: bold;"
	case Italic:
		return "font-style: italic;"
	case Underline:
		return "text-decoration: underline;"
	case Strike:
		return "text-decoration: line-through;"
	case Fg:
		return fmt.Sprintf("color: #%02x%02x%02x;", style.RGB[0], style.RGB[1], style.RGB[2])
	case Bg:
		return fmt.Sprintf("background-color: #%02x%02x%02x;", style.RGB[0], style.RGB[1], style.RGB[2])
	case Fill:
		return fmt.Sprintf("flex-grow: %d;", style.Byte)
	case Size:
		return fmt.Sprintf("font-size: %dpx;", style.Num)
	default:
		return ""
	}
}
