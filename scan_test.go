package mathmark

import (
	"reflect"
	"strings"
	"testing"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "plain text",
			in:   "plain",
			want: []Span{{Kind: SpanText, Start: 0, End: 5, Source: "plain"}},
		},
		{
			name: "inline between text",
			in:   "a $x$ b",
			want: []Span{
				{Kind: SpanText, Start: 0, End: 2, Source: "a "},
				{Kind: SpanInlineMath, Start: 2, End: 5, Source: "$x$", Expr: "x"},
				{Kind: SpanText, Start: 5, End: 7, Source: " b"},
			},
		},
		{
			name: "display only",
			in:   "$$x$$",
			want: []Span{{Kind: SpanDisplayMath, Start: 0, End: 5, Source: "$$x$$", Expr: "x"}},
		},
		{
			name: "display then inline",
			in:   "$$a$$ and $b$",
			want: []Span{
				{Kind: SpanDisplayMath, Start: 0, End: 5, Source: "$$a$$", Expr: "a"},
				{Kind: SpanText, Start: 5, End: 10, Source: " and "},
				{Kind: SpanInlineMath, Start: 10, End: 13, Source: "$b$", Expr: "b"},
			},
		},
		{
			name: "display spans newlines",
			in:   "see\n$$x\ny$$",
			want: []Span{
				{Kind: SpanText, Start: 0, End: 4, Source: "see\n"},
				{Kind: SpanDisplayMath, Start: 4, End: 11, Source: "$$x\ny$$", Expr: "x\ny"},
			},
		},
		{
			name: "adjacent inline spans",
			in:   "$a$$b$",
			want: []Span{
				{Kind: SpanInlineMath, Start: 0, End: 3, Source: "$a$", Expr: "a"},
				{Kind: SpanInlineMath, Start: 3, End: 6, Source: "$b$", Expr: "b"},
			},
		},
		{
			name: "unterminated inline",
			in:   "cost is $5",
			want: []Span{{Kind: SpanText, Start: 0, End: 10, Source: "cost is $5"}},
		},
		{
			name: "unterminated display",
			in:   "see $$x",
			want: []Span{{Kind: SpanText, Start: 0, End: 7, Source: "see $$x"}},
		},
		{
			name: "empty delimiters",
			in:   "$$$$",
			want: []Span{{Kind: SpanText, Start: 0, End: 4, Source: "$$$$"}},
		},
		{
			name: "shortest display match",
			in:   "$$a$$b$$c$$",
			want: []Span{
				{Kind: SpanDisplayMath, Start: 0, End: 5, Source: "$$a$$", Expr: "a"},
				{Kind: SpanText, Start: 5, End: 6, Source: "b"},
				{Kind: SpanDisplayMath, Start: 6, End: 11, Source: "$$c$$", Expr: "c"},
			},
		},
		{
			name: "raw interior keeps markup characters",
			in:   "if $a<b$ then",
			want: []Span{
				{Kind: SpanText, Start: 0, End: 3, Source: "if "},
				{Kind: SpanInlineMath, Start: 3, End: 8, Source: "$a<b$", Expr: "a<b"},
				{Kind: SpanText, Start: 8, End: 13, Source: " then"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Scan(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan(%q) =\n%+v\nwant\n%+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScan_Coverage(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"The area is $\\pi r^2$ approximately.",
		"$$\\sum_i i$$ equals $n(n+1)/2$, see $also",
		"a $b$ c $$d$$ e $f",
		"$$$x$$$",
		"no math at all",
		"€ $x$ ünïcödé $$y$$",
	}

	for _, in := range inputs {
		spans := Scan(in)
		var b strings.Builder
		pos := 0
		for i, s := range spans {
			if s.Start != pos {
				t.Errorf("Scan(%q) span %d starts at %d, want %d", in, i, s.Start, pos)
			}
			if s.End <= s.Start {
				t.Errorf("Scan(%q) span %d is empty", in, i)
			}
			if in[s.Start:s.End] != s.Source {
				t.Errorf("Scan(%q) span %d source %q does not match range", in, i, s.Source)
			}
			if s.Kind == SpanText && i > 0 && spans[i-1].Kind == SpanText {
				t.Errorf("Scan(%q) produced adjacent text spans at %d", in, i)
			}
			b.WriteString(s.Source)
			pos = s.End
		}
		if b.String() != in {
			t.Errorf("Scan(%q) spans rebuild %q", in, b.String())
		}
	}
}

func TestSpanKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind SpanKind
		want string
	}{
		{SpanText, "text"},
		{SpanInlineMath, "inline"},
		{SpanDisplayMath, "display"},
		{SpanKind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("SpanKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
