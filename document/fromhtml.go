package document

import (
	"strings"

	"golang.org/x/net/html"

	"ao3/skin"
)

// FromHTML converts a generic tag tree produced by an external HTML parser
// into a document node sequence. This stage is pure tree-shape translation:
// no style computation, no color resolution - both are deferred to rendering
// so the same tree can be re-rendered under a different skin without
// re-parsing.
//
// Each supported tag maps to exactly one variant. Unknown tags are dropped
// but their children are converted and spliced in at the parent's position,
// so text content is never silently lost. Script and style subtrees are the
// exception: their text is code, not content, and is skipped entirely.
func FromHTML(n *html.Node) []Node {
	if n == nil {
		return nil
	}
	nodes := convertChildren(n)
	return suppressEdgeWhitespace(nodes)
}

// FromHTMLNodes converts an ordered list of sibling tag-tree nodes.
func FromHTMLNodes(siblings []*html.Node) []Node {
	var out []Node
	for _, s := range siblings {
		out = append(out, convertNode(s)...)
	}
	return suppressEdgeWhitespace(out)
}

func convertChildren(n *html.Node) []Node {
	var out []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, convertNode(c)...)
	}
	return out
}

// convertNode translates a single tag-tree node into zero or more document
// nodes. Most tags produce exactly one; unknown tags splice their children.
func convertNode(n *html.Node) []Node {
	switch n.Type {
	case html.TextNode:
		return []Node{{Kind: KindText, Text: n.Data}}
	case html.ElementNode:
		// handled below
	default:
		// comments, doctypes and the like carry no content
		return nil
	}

	switch n.Data {
	case "script", "style", "head":
		return nil

	case "p":
		return []Node{blockNode(n, Node{Kind: KindParagraph, Children: blockChildren(n)})}

	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		return []Node{blockNode(n, Node{Kind: KindHeading, Level: level, Children: blockChildren(n)})}

	case "blockquote":
		return []Node{blockNode(n, Node{Kind: KindBlockquote, Children: blockChildren(n)})}

	case "pre":
		return []Node{convertPre(n)}

	case "hr":
		return []Node{{Kind: KindRule}}

	case "ol":
		return []Node{{Kind: KindList, Ordered: true, Children: listItems(n)}}

	case "ul":
		return []Node{{Kind: KindList, Ordered: false, Children: listItems(n)}}

	case "div":
		return []Node{blockNode(n, Node{Kind: KindDiv, Attrs: attrMap(n), Children: blockChildren(n)})}

	case "details":
		return []Node{convertDetails(n)}

	case "a":
		return []Node{{Kind: KindLink, Href: attr(n, "href"), Children: convertChildren(n)}}

	case "br":
		return []Node{{Kind: KindLineBreak}}

	case "span":
		return []Node{{Kind: KindSpan, Class: attr(n, "class"), Children: convertChildren(n)}}

	case "b", "strong":
		return []Node{formatted(n, TextStyle{Bold: true})}
	case "i", "em", "cite", "q", "var", "dfn":
		return []Node{formatted(n, TextStyle{Italic: true})}
	case "u", "ins":
		return []Node{formatted(n, TextStyle{Underline: true})}
	case "s", "del", "strike":
		return []Node{formatted(n, TextStyle{Strikethrough: true})}
	case "sup":
		return []Node{formatted(n, TextStyle{Superscript: true})}
	case "sub":
		return []Node{formatted(n, TextStyle{Subscript: true})}
	case "code", "tt", "kbd", "samp":
		return []Node{formatted(n, TextStyle{Code: true})}
	case "center":
		return []Node{formatted(n, TextStyle{Alignment: AlignCenter})}

	default:
		// Unknown tag: drop it, splice converted children in place.
		return convertChildren(n)
	}
}

// formatted wraps converted children in a style delta, folding in any
// dir/color attributes the tag carries.
func formatted(n *html.Node, delta TextStyle) Node {
	applyCommonAttrs(n, &delta)
	return Node{Kind: KindFormatted, Style: delta, Children: convertChildren(n)}
}

// blockNode folds dir/align attributes of a block tag into a formatted
// wrapper around its children, since block variants carry no style of their
// own. Without attributes the node is returned unchanged.
func blockNode(n *html.Node, node Node) Node {
	var delta TextStyle
	applyCommonAttrs(n, &delta)
	switch attr(n, "align") {
	case "left":
		delta.Alignment = AlignLeft
	case "right":
		delta.Alignment = AlignRight
	case "center":
		delta.Alignment = AlignCenter
	case "justify":
		delta.Alignment = AlignJustify
	}
	if delta.IsZero() {
		return node
	}
	node.Children = []Node{{Kind: KindFormatted, Style: delta, Children: node.Children}}
	return node
}

func applyCommonAttrs(n *html.Node, delta *TextStyle) {
	if strings.EqualFold(attr(n, "dir"), "rtl") {
		delta.RTL = true
	}
	if c := attr(n, "color"); c != "" {
		col := skin.ParseHex(c)
		delta.Color = &col
	}
}

// blockChildren converts a block container's children and suppresses
// whitespace-only text at block boundaries so structural markup indentation
// does not turn into spurious runs.
func blockChildren(n *html.Node) []Node {
	return suppressEdgeWhitespace(convertChildren(n))
}

func convertPre(n *html.Node) Node {
	// <pre><code> is a code block, a bare <pre> keeps its literal text
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			lang := ""
			for _, cls := range strings.Fields(attr(c, "class")) {
				if l, ok := strings.CutPrefix(cls, "language-"); ok {
					lang = l
					break
				}
			}
			return Node{Kind: KindCodeBlock, Code: rawText(c), Language: lang}
		}
	}
	return Node{Kind: KindPreformatted, Text: rawText(n)}
}

func convertDetails(n *html.Node) Node {
	node := Node{Kind: KindDetails}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "summary" {
			node.Summary = append(node.Summary, suppressEdgeWhitespace(convertChildren(c))...)
			continue
		}
		node.Children = append(node.Children, convertNode(c)...)
	}
	node.Children = suppressEdgeWhitespace(node.Children)
	return node
}

// listItems collects only direct <li> children as items. Other children are
// not structural list content: they are kept in place unwrapped, so their
// text is not lost, but the renderer does not count or label them.
func listItems(n *html.Node) []Node {
	var items []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			items = append(items, Node{Kind: KindListItem, Children: blockChildren(c)})
			continue
		}
		for _, stray := range convertNode(c) {
			if stray.Kind == KindText && strings.TrimSpace(stray.Text) == "" {
				// whitespace between items
				continue
			}
			items = append(items, stray)
		}
	}
	return items
}

// suppressEdgeWhitespace removes whitespace-only text nodes that sit at a
// block boundary: the edges of the sequence and either side of a block
// sibling. Whitespace between two inline siblings is meaningful and kept.
func suppressEdgeWhitespace(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nodes
	}
	isWS := func(n *Node) bool {
		return n.Kind == KindText && strings.TrimSpace(n.Text) == ""
	}
	out := make([]Node, 0, len(nodes))
	for i := range nodes {
		if isWS(&nodes[i]) {
			prevBlock := i == 0 || nodes[i-1].IsBlock()
			nextBlock := i == len(nodes)-1 || nodes[i+1].IsBlock()
			if prevBlock || nextBlock {
				continue
			}
		}
		out = append(out, nodes[i])
	}
	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func attrMap(n *html.Node) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

func rawText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Trim(buf.String(), "\n")
}
