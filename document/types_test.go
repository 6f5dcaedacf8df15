package document

import (
	"testing"

	"ao3/skin"
)

func TestTextStyle_Merge_Monotonic(t *testing.T) {
	parent := TextStyle{Bold: true, Underline: true}
	child := TextStyle{Italic: true}

	got := parent.Merge(child)

	if !got.Bold || !got.Underline || !got.Italic {
		t.Errorf("Merge lost flags: %+v", got)
	}

	// a child can never turn an inherited flag off
	off := parent.Merge(TextStyle{Bold: false})
	if !off.Bold {
		t.Error("Merge turned inherited Bold off")
	}
}

func TestTextStyle_Merge_AllFlags(t *testing.T) {
	flags := []struct {
		name  string
		child TextStyle
		check func(TextStyle) bool
	}{
		{"bold", TextStyle{Bold: true}, func(s TextStyle) bool { return s.Bold }},
		{"italic", TextStyle{Italic: true}, func(s TextStyle) bool { return s.Italic }},
		{"underline", TextStyle{Underline: true}, func(s TextStyle) bool { return s.Underline }},
		{"strikethrough", TextStyle{Strikethrough: true}, func(s TextStyle) bool { return s.Strikethrough }},
		{"superscript", TextStyle{Superscript: true}, func(s TextStyle) bool { return s.Superscript }},
		{"subscript", TextStyle{Subscript: true}, func(s TextStyle) bool { return s.Subscript }},
		{"code", TextStyle{Code: true}, func(s TextStyle) bool { return s.Code }},
		{"rtl", TextStyle{RTL: true}, func(s TextStyle) bool { return s.RTL }},
	}

	for _, tt := range flags {
		t.Run(tt.name, func(t *testing.T) {
			got := TextStyle{}.Merge(tt.child)
			if !tt.check(got) {
				t.Errorf("Merge did not carry %s flag", tt.name)
			}
		})
	}
}

func TestTextStyle_Merge_ChildWinsColor(t *testing.T) {
	red := skin.Color{R: 1}
	blue := skin.Color{B: 1}

	parent := TextStyle{Color: &red}
	child := TextStyle{Color: &blue}

	got := parent.Merge(child)
	if got.Color == nil || *got.Color != blue {
		t.Errorf("child color should win, got %+v", got.Color)
	}

	// merged color must be a fresh copy, not an alias of the child's pointer
	if got.Color == child.Color {
		t.Error("merged color aliases child pointer")
	}

	// child without color inherits parent's
	kept := parent.Merge(TextStyle{Bold: true})
	if kept.Color == nil || *kept.Color != red {
		t.Errorf("parent color should be inherited, got %+v", kept.Color)
	}
}

func TestTextStyle_Merge_ChildWinsColorClass(t *testing.T) {
	parent := TextStyle{ColorClass: "outer"}

	got := parent.Merge(TextStyle{ColorClass: "inner"})
	if got.ColorClass != "inner" {
		t.Errorf("ColorClass = %q, want inner", got.ColorClass)
	}

	kept := parent.Merge(TextStyle{})
	if kept.ColorClass != "outer" {
		t.Errorf("ColorClass = %q, want outer", kept.ColorClass)
	}
}

func TestTextStyle_Merge_ChildWinsAlignment(t *testing.T) {
	parent := TextStyle{Alignment: AlignLeft}

	got := parent.Merge(TextStyle{Alignment: AlignCenter})
	if got.Alignment != AlignCenter {
		t.Errorf("Alignment = %v, want center", got.Alignment)
	}

	kept := parent.Merge(TextStyle{})
	if kept.Alignment != AlignLeft {
		t.Errorf("Alignment = %v, want left", kept.Alignment)
	}
}

func TestTextStyle_IsZero(t *testing.T) {
	if !(TextStyle{}).IsZero() {
		t.Error("zero style should report IsZero")
	}
	if (TextStyle{Bold: true}).IsZero() {
		t.Error("bold style should not report IsZero")
	}
	if (TextStyle{ColorClass: "x"}).IsZero() {
		t.Error("classed style should not report IsZero")
	}
}

func TestNode_IsBlock(t *testing.T) {
	blocks := []NodeKind{
		KindParagraph, KindHeading, KindBlockquote, KindCodeBlock,
		KindPreformatted, KindRule, KindList, KindListItem, KindDiv, KindDetails,
	}
	inlines := []NodeKind{
		KindText, KindFormatted, KindLink, KindLineBreak, KindSpan,
	}

	for _, k := range blocks {
		n := Node{Kind: k}
		if !n.IsBlock() {
			t.Errorf("%s should be a block", k)
		}
	}
	for _, k := range inlines {
		n := Node{Kind: k}
		if n.IsBlock() {
			t.Errorf("%s should be inline", k)
		}
	}

	// unknown kinds never force a break
	unknown := Node{Kind: NodeKind("widget")}
	if unknown.IsBlock() {
		t.Error("unknown kind should be treated as inline")
	}
}

func TestNode_AsPlainText(t *testing.T) {
	n := Node{
		Kind: KindParagraph,
		Children: []Node{
			{Kind: KindText, Text: "Hello, "},
			{Kind: KindFormatted, Style: TextStyle{Bold: true}, Children: []Node{
				{Kind: KindText, Text: "world"},
			}},
			{Kind: KindLineBreak},
			{Kind: KindText, Text: "again"},
		},
	}

	got := n.AsPlainText()
	want := "Hello, world\nagain"
	if got != want {
		t.Errorf("AsPlainText() = %q, want %q", got, want)
	}
}

func TestNode_AsPlainText_DetailsSummary(t *testing.T) {
	n := Node{
		Kind: KindDetails,
		Summary: []Node{
			{Kind: KindText, Text: "spoiler"},
		},
		Children: []Node{
			{Kind: KindParagraph, Children: []Node{{Kind: KindText, Text: " inside"}}},
		},
	}

	if got := n.AsPlainText(); got != "spoiler inside" {
		t.Errorf("AsPlainText() = %q, want %q", got, "spoiler inside")
	}
}

func TestAlignment_String(t *testing.T) {
	tests := []struct {
		a    Alignment
		want string
	}{
		{AlignDefault, ""},
		{AlignLeft, "left"},
		{AlignRight, "right"},
		{AlignCenter, "center"},
		{AlignJustify, "justify"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Alignment(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
