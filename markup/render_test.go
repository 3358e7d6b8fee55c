package markup

import (
	"strings"
	"testing"
)

func TestToHTMLIncludesAnchorDiv(t *testing.T) {
	page, errs := Parse(`(# "bottom")`)
	if errs != nil {
		t.Fatalf("parse: %v", errs)
	}
	html := ToHTML(page)
	if !strings.Contains(html, `id="bottom"`) {
		t.Errorf("html missing anchor id, got:\n%s", html)
	}
}

func TestToHTMLBlobRendersImgTag(t *testing.T) {
	page, errs := Parse(`(& "pic.jpg" "a description")`)
	if errs != nil {
		t.Fatalf("parse: %v", errs)
	}
	html := ToHTML(page)
	if !strings.Contains(html, `<img src="pic.jpg"`) {
		t.Errorf("html missing img tag, got:\n%s", html)
	}
	if !strings.Contains(html, `alt="a description"`) {
		t.Errorf("html missing alt text, got:\n%s", html)
	}
}

func TestToHTMLLinkRendersAnchorTag(t *testing.T) {
	page, errs := Parse(`(^ "frgi://x/" "click here")`)
	if errs != nil {
		t.Fatalf("parse: %v", errs)
	}
	html := ToHTML(page)
	if !strings.Contains(html, `<a href="frgi://x/">click here</a>`) {
		t.Errorf("html missing link, got:\n%s", html)
	}
}

func TestToHTMLLinkWithoutTextUsesTarget(t *testing.T) {
	page, errs := Parse(`(^ "frgi://x/")`)
	if errs != nil {
		t.Fatalf("parse: %v", errs)
	}
	html := ToHTML(page)
	if !strings.Contains(html, `<a href="frgi://x/">frgi://x/</a>`) {
		t.Errorf("html missing fallback link text, got:\n%s", html)
	}
}

func TestToHTMLPageStyleEmitsCSS(t *testing.T) {
	page, errs := Parse(`{(footnote italic (fg "303030"))} (* {footnote} "hi")`)
	if errs != nil {
		t.Fatalf("parse: %v", errs)
	}
	html := ToHTML(page)
	if !strings.Contains(html, ".footnote {") {
		t.Errorf("html missing selector rule, got:\n%s", html)
	}
	if !strings.Contains(html, "font-style: italic;") {
		t.Errorf("html missing italic rule, got:\n%s", html)
	}
	if !strings.Contains(html, "color: #303030;") {
		t.Errorf("html missing fg rule, got:\n%s", html)
	}
	if !strings.Contains(html, `class="footnote"`) {
		t.Errorf("html missing class reference on item, got:\n%s", html)
	}
}

func TestToHTMLVBoxAddsLineBreaks(t *testing.T) {
	page, errs := Parse(`(| ("a") ("b"))`)
	if errs != nil {
		t.Fatalf("parse: %v", errs)
	}
	html := ToHTML(page)
	if !strings.Contains(html, "<div") {
		t.Errorf("html missing div for vbox, got:\n%s", html)
	}
}
