package render

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"ao3/document"
)

// XHTMLOptions control standalone chapter document generation.
type XHTMLOptions struct {
	Title string
	Lang  string
	// ID identifies the generated document. When empty a fresh UUID is
	// assigned so every saved chapter file can be told apart.
	ID string
}

// ToXHTML serializes rendered output into a standalone XHTML document.
// Block breaks map to container elements, merged styles to inline CSS on
// span elements, so the result views correctly without any external
// stylesheet.
func ToXHTML(items []Item, opts XHTMLOptions) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	if opts.Lang != "" {
		html.CreateAttr("xml:lang", opts.Lang)
	}

	head := html.CreateElement("head")

	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=utf-8")

	id := opts.ID
	if id == "" {
		if u, err := uuid.NewV7(); err == nil {
			id = u.String()
		}
	}
	if id != "" {
		idMeta := head.CreateElement("meta")
		idMeta.CreateAttr("name", "identifier")
		idMeta.CreateAttr("content", id)
	}

	titleElem := head.CreateElement("title")
	titleElem.SetText(opts.Title)

	body := html.CreateElement("body")
	appendItems(body, items)
	return doc
}

// appendItems translates the flat run/break sequence back into nested-free
// sibling elements: each block break opens a fresh container that collects
// the runs up to the next break.
func appendItems(body *etree.Element, items []Item) {
	var current *etree.Element

	container := func() *etree.Element {
		if current == nil {
			current = body.CreateElement("p")
		}
		return current
	}

	for _, it := range items {
		switch {
		case it.Break != nil:
			current = openBlock(body, it.Break)
		case it.Run != nil:
			appendRun(container(), it.Run)
		}
	}
}

func openBlock(body *etree.Element, brk *BlockBreak) *etree.Element {
	switch brk.Kind {
	case BreakHeading:
		level := brk.Level
		if level < 1 || level > 6 {
			level = 1
		}
		return body.CreateElement(fmt.Sprintf("h%d", level))

	case BreakQuote:
		return body.CreateElement("blockquote").CreateElement("p")

	case BreakCode, BreakPre:
		pre := body.CreateElement("pre")
		if brk.Kind == BreakCode {
			code := pre.CreateElement("code")
			if brk.Language != "" {
				code.CreateAttr("class", "language-"+brk.Language)
			}
			return code
		}
		return pre

	case BreakRule:
		body.CreateElement("hr")
		return nil

	case BreakList:
		return nil

	case BreakListItem:
		p := body.CreateElement("p")
		p.CreateAttr("class", "list-item")
		if brk.Label != "" {
			label := p.CreateElement("span")
			label.CreateAttr("class", "list-label")
			label.SetText(brk.Label + " ")
		}
		if brk.Depth > 0 {
			p.CreateAttr("style", fmt.Sprintf("margin-left: %dem", brk.Depth))
		}
		return p

	case BreakSummary:
		p := body.CreateElement("p")
		p.CreateAttr("class", "summary")
		return p

	case BreakDiv, BreakDetails, BreakParagraph, BreakEmpty:
		return body.CreateElement("p")

	default:
		return body.CreateElement("p")
	}
}

func appendRun(parent *etree.Element, run *StyledRun) {
	if parent == nil {
		return
	}
	target := parent
	if run.Link != "" {
		a := parent.CreateElement("a")
		a.CreateAttr("href", run.Link)
		target = a
	}
	style := inlineCSS(run.Style)
	if style == "" {
		appendText(target, run.Text)
		return
	}
	span := target.CreateElement("span")
	span.CreateAttr("style", style)
	appendText(span, run.Text)
}

// appendText adds run text, turning embedded newlines into <br/> elements
// so inline line breaks survive XML whitespace normalization.
func appendText(parent *etree.Element, text string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			parent.CreateElement("br")
		}
		if line != "" {
			parent.CreateCharData(line)
		}
	}
}

// inlineCSS maps a merged style onto CSS declarations.
func inlineCSS(s document.TextStyle) string {
	var parts []string
	if s.Bold {
		parts = append(parts, "font-weight: bold")
	}
	if s.Italic {
		parts = append(parts, "font-style: italic")
	}
	if s.Underline && s.Strikethrough {
		parts = append(parts, "text-decoration: underline line-through")
	} else if s.Underline {
		parts = append(parts, "text-decoration: underline")
	} else if s.Strikethrough {
		parts = append(parts, "text-decoration: line-through")
	}
	if s.Superscript {
		parts = append(parts, "vertical-align: super", "font-size: smaller")
	}
	if s.Subscript {
		parts = append(parts, "vertical-align: sub", "font-size: smaller")
	}
	if s.Code {
		parts = append(parts, "font-family: monospace")
	}
	if s.RTL {
		parts = append(parts, "direction: rtl", "unicode-bidi: embed")
	}
	if s.Color != nil {
		parts = append(parts, fmt.Sprintf("color: rgb(%d, %d, %d)",
			channel(s.Color.R), channel(s.Color.G), channel(s.Color.B)))
	}
	if s.Alignment != document.AlignDefault {
		parts = append(parts, "text-align: "+s.Alignment.String())
	}
	return strings.Join(parts, "; ")
}

func channel(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return int(v*255 + 0.5)
}
