// Package document defines the intermediate representation a chapter body is
// converted into before styling: a tree of block and inline nodes, plus the
// style-merge algebra applied while walking it. The tree is a pure value -
// immutable once constructed and safe to share between renders.
package document

import (
	"strings"

	"ao3/skin"
)

// NodeKind distinguishes the different node variants.
type NodeKind string

const (
	// Block variants. Block nodes force a structural break in output.
	KindParagraph    NodeKind = "paragraph"
	KindHeading      NodeKind = "heading"
	KindBlockquote   NodeKind = "blockquote"
	KindCodeBlock    NodeKind = "code-block"
	KindPreformatted NodeKind = "preformatted"
	KindRule         NodeKind = "horizontal-rule"
	KindList         NodeKind = "list"
	KindListItem     NodeKind = "list-item"
	KindDiv          NodeKind = "div"
	KindDetails      NodeKind = "details"

	// Inline variants. Inline nodes never force a break.
	KindText      NodeKind = "text"
	KindFormatted NodeKind = "formatted"
	KindLink      NodeKind = "link"
	KindLineBreak NodeKind = "line-break"
	KindSpan      NodeKind = "span"
)

// Node stores a single piece of document content, keeping the original
// ordering of its children. Only the fields relevant to the Kind are set.
type Node struct {
	Kind NodeKind

	Text     string            // KindText, KindPreformatted
	Level    int               // KindHeading: 1-6
	Code     string            // KindCodeBlock
	Language string            // KindCodeBlock: optional language hint
	Ordered  bool              // KindList
	Attrs    map[string]string // KindDiv
	Href     string            // KindLink
	Class    string            // KindSpan: optional skin class
	Style    TextStyle         // KindFormatted: the style delta
	Summary  []Node            // KindDetails: disclosure header content

	Children []Node
}

// IsBlock reports whether the node variant forces a structural break in
// output. The classification is fixed by the variant and never overridden.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case KindParagraph, KindHeading, KindBlockquote, KindCodeBlock,
		KindPreformatted, KindRule, KindList, KindListItem, KindDiv, KindDetails:
		return true
	default:
		return false
	}
}

// AsPlainText extracts the text content of the node and its children,
// in depth-first order, ignoring all styling.
func (n *Node) AsPlainText() string {
	var buf strings.Builder
	n.appendPlainText(&buf)
	return strings.TrimSpace(buf.String())
}

func (n *Node) appendPlainText(buf *strings.Builder) {
	switch n.Kind {
	case KindText:
		buf.WriteString(n.Text)
	case KindPreformatted:
		buf.WriteString(n.Text)
	case KindCodeBlock:
		buf.WriteString(n.Code)
	case KindLineBreak:
		buf.WriteString("\n")
	case KindDetails:
		for i := range n.Summary {
			n.Summary[i].appendPlainText(buf)
		}
	}
	for i := range n.Children {
		n.Children[i].appendPlainText(buf)
	}
}

// Alignment names a horizontal text alignment. The zero value means
// "not specified" and lets the parent (or the host default) win.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "justify"
	default:
		return ""
	}
}

// TextStyle describes the accumulated text styling at a point in the tree.
// On a KindFormatted node it holds that node's delta instead; deltas become
// accumulated style through Merge on the way down.
type TextStyle struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Superscript   bool
	Subscript     bool
	Code          bool
	RTL           bool

	// Color, when set, is a literal color override. ColorClass, when set,
	// defers resolution to the active work skin at render time.
	Color      *skin.Color
	ColorClass string

	Alignment Alignment
}

// Merge combines a child style delta into the receiver (the accumulated
// ancestor style) and returns the result. Boolean flags are monotonic - once
// true anywhere in the ancestor chain they stay true for all descendants.
// Color and alignment are child-wins. Because of that single child-wins bias
// merging is order-sensitive and must always be applied root-to-leaf.
func (s TextStyle) Merge(child TextStyle) TextStyle {
	out := s
	out.Bold = s.Bold || child.Bold
	out.Italic = s.Italic || child.Italic
	out.Underline = s.Underline || child.Underline
	out.Strikethrough = s.Strikethrough || child.Strikethrough
	out.Superscript = s.Superscript || child.Superscript
	out.Subscript = s.Subscript || child.Subscript
	out.Code = s.Code || child.Code
	out.RTL = s.RTL || child.RTL
	if child.Color != nil {
		c := *child.Color
		out.Color = &c
	}
	if child.ColorClass != "" {
		out.ColorClass = child.ColorClass
	}
	if child.Alignment != AlignDefault {
		out.Alignment = child.Alignment
	}
	return out
}

// IsZero reports whether the style specifies nothing at all.
func (s TextStyle) IsZero() bool {
	return s == TextStyle{}
}
