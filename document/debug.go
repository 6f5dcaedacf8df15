package document

import (
	"ao3/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// Dump returns a readable tree of the node sequence. It exists solely for
// manual inspection during debugging.
func Dump(nodes []Node) string {
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Document: %d top-level node(s)", len(nodes))
	for i := range nodes {
		tw.node(1, &nodes[i])
	}
	return tw.String()
}

func (tw treeWriter) node(depth int, n *Node) {
	switch n.Kind {
	case KindText:
		tw.TextBlock(depth, "Text", n.Text)
		return
	case KindHeading:
		tw.Line(depth, "Heading level=%d", n.Level)
	case KindList:
		tw.Line(depth, "List ordered=%t items=%d", n.Ordered, len(n.Children))
	case KindCodeBlock:
		tw.Line(depth, "CodeBlock language=%q", n.Language)
		tw.TextBlock(depth+1, "Code", n.Code)
	case KindPreformatted:
		tw.Line(depth, "Preformatted")
		tw.TextBlock(depth+1, "Text", n.Text)
	case KindLink:
		tw.Line(depth, "Link href=%q", n.Href)
	case KindSpan:
		tw.Line(depth, "Span class=%q", n.Class)
	case KindFormatted:
		tw.Line(depth, "Formatted %s", styleDelta(n.Style))
	case KindDiv:
		tw.Line(depth, "Div")
		tw.Attrs(depth+1, n.Attrs)
	case KindDetails:
		tw.Line(depth, "Details")
		for i := range n.Summary {
			tw.Line(depth+1, "Summary")
			tw.node(depth+2, &n.Summary[i])
		}
	default:
		tw.Line(depth, "%s", string(n.Kind))
	}
	for i := range n.Children {
		tw.node(depth+1, &n.Children[i])
	}
}

func styleDelta(s TextStyle) string {
	var parts []byte
	add := func(on bool, name string) {
		if on {
			if len(parts) > 0 {
				parts = append(parts, ',')
			}
			parts = append(parts, name...)
		}
	}
	add(s.Bold, "bold")
	add(s.Italic, "italic")
	add(s.Underline, "underline")
	add(s.Strikethrough, "strikethrough")
	add(s.Superscript, "sup")
	add(s.Subscript, "sub")
	add(s.Code, "code")
	add(s.RTL, "rtl")
	add(s.Color != nil, "color")
	add(s.ColorClass != "", "class="+s.ColorClass)
	add(s.Alignment != AlignDefault, "align="+s.Alignment.String())
	if len(parts) == 0 {
		return "(empty)"
	}
	return string(parts)
}
