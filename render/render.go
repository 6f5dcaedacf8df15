// Package render flattens a document tree into a presentation-ready sequence
// of styled runs and block breaks. The walk is a pure synchronous recursive
// traversal: each call receives its own context value and mutates only its
// own copy, so independent chapters can be rendered in parallel without any
// synchronization.
package render

import (
	"strconv"

	"ao3/document"
	"ao3/skin"
)

// BreakKind names the structural boundary a block break stands for,
// one kind per block variant.
type BreakKind string

const (
	BreakParagraph BreakKind = "paragraph"
	BreakHeading   BreakKind = "heading"
	BreakQuote     BreakKind = "quote"
	BreakCode      BreakKind = "code"
	BreakPre       BreakKind = "pre"
	BreakRule      BreakKind = "rule"
	BreakList      BreakKind = "list"
	BreakListItem  BreakKind = "list-item"
	BreakDiv       BreakKind = "div"
	BreakSummary   BreakKind = "summary"
	BreakDetails   BreakKind = "details"
	// BreakEmpty marks a node the walker did not recognize. It renders as
	// an empty block instead of failing so one malformed chapter cannot
	// take down a batch render.
	BreakEmpty BreakKind = "empty"
)

// StyledRun is the leaf output unit: a contiguous span of text paired with
// its fully resolved, merged style. Link carries the enclosing hyperlink
// target, if any, for host-side attribute ranges.
type StyledRun struct {
	Text  string
	Style document.TextStyle
	Link  string
}

// BlockBreak marks a structural boundary in the output sequence.
type BlockBreak struct {
	Kind     BreakKind
	Level    int    // heading level for BreakHeading
	Label    string // ordinal or bullet glyph for BreakListItem
	Depth    int    // list nesting depth at the break
	Language string // language hint for BreakCode
}

// Item is a single element of the flattened output: exactly one of Run and
// Break is set. Output order is the tree's depth-first left-to-right order -
// the only ordering guarantee the host may rely on.
type Item struct {
	Run   *StyledRun
	Break *BlockBreak
}

// Defaults carries host presentation defaults that seed style resolution
// when a node specifies no override.
type Defaults struct {
	BaseFontSize    float64
	FontDesign      string
	TextColor       skin.Color
	BackgroundColor skin.Color
}

// Context is the traversal accumulator. It is threaded by value through the
// recursive walk: every recursive call receives a snapshot and the parent's
// copy is unaffected after the call returns. That is how sibling subtrees
// get independent list counters while style and skin flow downward.
type Context struct {
	Style    document.TextStyle
	Skin     skin.WorkSkin
	Defaults Defaults

	listDepth int
	link      string
}

// NewContext creates a per-chapter render context with the given skin and
// host defaults. One context is created per chapter render.
func NewContext(ws skin.WorkSkin, defaults Defaults) Context {
	return Context{Skin: ws, Defaults: defaults}
}

// bullets are the unordered list glyphs, cycled by nesting depth.
var bullets = []string{"•", "◦", "▪"}

// Render walks the node sequence depth-first and emits the flattened styled
// output. It never fails: degradable defects (unknown kinds, malformed
// colors) render as empty blocks or fallback colors.
func Render(nodes []document.Node, ctx Context) []Item {
	var out []Item
	for i := range nodes {
		out = renderNode(&nodes[i], ctx, out)
	}
	return out
}

// renderNode emits output for one node. The context is a by-value snapshot:
// structural deltas made for this node's subtree never leak to siblings.
func renderNode(n *document.Node, ctx Context, out []Item) []Item {
	switch n.Kind {

	case document.KindText:
		run := StyledRun{Text: n.Text, Style: ctx.Style, Link: ctx.link}
		return append(out, Item{Run: &run})

	case document.KindLineBreak:
		run := StyledRun{Text: "\n", Style: ctx.Style, Link: ctx.link}
		return append(out, Item{Run: &run})

	case document.KindFormatted:
		ctx.Style = ctx.Style.Merge(resolveDelta(n.Style, ctx.Skin))
		return renderChildren(n, ctx, out)

	case document.KindSpan:
		// style-transparent unless it references a skin class
		if n.Class != "" {
			c := ctx.Skin.Resolve(n.Class)
			ctx.Style = ctx.Style.Merge(document.TextStyle{Color: &c})
		}
		return renderChildren(n, ctx, out)

	case document.KindLink:
		ctx.link = n.Href
		return renderChildren(n, ctx, out)

	case document.KindParagraph:
		out = append(out, Item{Break: &BlockBreak{Kind: BreakParagraph, Depth: ctx.listDepth}})
		return renderChildren(n, ctx, out)

	case document.KindHeading:
		out = append(out, Item{Break: &BlockBreak{Kind: BreakHeading, Level: n.Level}})
		return renderChildren(n, ctx, out)

	case document.KindBlockquote:
		out = append(out, Item{Break: &BlockBreak{Kind: BreakQuote, Depth: ctx.listDepth}})
		return renderChildren(n, ctx, out)

	case document.KindCodeBlock:
		out = append(out, Item{Break: &BlockBreak{Kind: BreakCode, Language: n.Language}})
		style := ctx.Style.Merge(document.TextStyle{Code: true})
		run := StyledRun{Text: n.Code, Style: style}
		return append(out, Item{Run: &run})

	case document.KindPreformatted:
		out = append(out, Item{Break: &BlockBreak{Kind: BreakPre}})
		style := ctx.Style.Merge(document.TextStyle{Code: true})
		run := StyledRun{Text: n.Text, Style: style}
		return append(out, Item{Run: &run})

	case document.KindRule:
		return append(out, Item{Break: &BlockBreak{Kind: BreakRule, Depth: ctx.listDepth}})

	case document.KindDiv:
		out = append(out, Item{Break: &BlockBreak{Kind: BreakDiv, Depth: ctx.listDepth}})
		return renderChildren(n, ctx, out)

	case document.KindDetails:
		out = append(out, Item{Break: &BlockBreak{Kind: BreakSummary}})
		for i := range n.Summary {
			out = renderNode(&n.Summary[i], ctx, out)
		}
		out = append(out, Item{Break: &BlockBreak{Kind: BreakDetails}})
		return renderChildren(n, ctx, out)

	case document.KindList:
		out = append(out, Item{Break: &BlockBreak{Kind: BreakList, Depth: ctx.listDepth}})
		// The counter for this list level lives in this frame: items at the
		// same level share it, while sibling and nested lists each start
		// from scratch.
		childCtx := ctx
		childCtx.listDepth++
		counter := 0
		for i := range n.Children {
			item := &n.Children[i]
			if item.Kind != document.KindListItem {
				// stray list content, rendered but never counted or labeled
				out = renderNode(item, childCtx, out)
				continue
			}
			counter++
			out = append(out, Item{Break: &BlockBreak{
				Kind:  BreakListItem,
				Label: listLabel(n.Ordered, counter, childCtx.listDepth),
				Depth: childCtx.listDepth,
			}})
			out = renderChildren(item, childCtx, out)
		}
		return out

	case document.KindListItem:
		// A list item outside a list renders as an anonymous block.
		out = append(out, Item{Break: &BlockBreak{Kind: BreakListItem, Depth: ctx.listDepth}})
		return renderChildren(n, ctx, out)

	default:
		return append(out, Item{Break: &BlockBreak{Kind: BreakEmpty}})
	}
}

func renderChildren(n *document.Node, ctx Context, out []Item) []Item {
	for i := range n.Children {
		out = renderNode(&n.Children[i], ctx, out)
	}
	return out
}

// resolveDelta installs a concrete color into a style delta that references
// a skin class instead of a literal color.
func resolveDelta(delta document.TextStyle, ws skin.WorkSkin) document.TextStyle {
	if delta.ColorClass == "" {
		return delta
	}
	c := ws.Resolve(delta.ColorClass)
	delta.Color = &c
	delta.ColorClass = ""
	return delta
}

// listLabel computes the marker attached to a list item break: the ordinal
// for ordered lists, a depth-cycled bullet glyph otherwise.
func listLabel(ordered bool, ordinal, depth int) string {
	if ordered {
		return strconv.Itoa(ordinal) + "."
	}
	if depth < 1 {
		depth = 1
	}
	return bullets[(depth-1)%len(bullets)]
}

// PlainText flattens rendered output back to readable text, inserting
// paragraph gaps at block boundaries and list labels before items. Useful
// for text output mode and for computing reading statistics.
func PlainText(items []Item) string {
	var buf []byte
	for _, it := range items {
		switch {
		case it.Break != nil:
			if len(buf) > 0 && buf[len(buf)-1] != '\n' {
				buf = append(buf, '\n')
			}
			if it.Break.Kind == BreakListItem && it.Break.Label != "" {
				buf = append(buf, it.Break.Label...)
				buf = append(buf, ' ')
			}
			if it.Break.Kind == BreakRule {
				buf = append(buf, "* * *\n"...)
			}
		case it.Run != nil:
			buf = append(buf, it.Run.Text...)
		}
	}
	return string(buf)
}
