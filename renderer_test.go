package mathmark

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// bracketTypesetter renders "[mode:expr]" and rejects expressions holding a
// dollar sign or the \bad command, like a real typesetter would.
func bracketTypesetter(expr string, display bool) (string, error) {
	if expr == "" || strings.Contains(expr, "$") || strings.Contains(expr, `\bad`) {
		return "", fmt.Errorf("%w: rejected %q", ErrTypeset, expr)
	}
	mode := "inline"
	if display {
		mode = "display"
	}
	return "[" + mode + ":" + expr + "]", nil
}

func failingTypesetter(expr string, _ bool) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrTypeset, expr)
}

var identitySanitizer = SanitizerFunc(func(h string) string { return h })

func newTestRenderer(t *testing.T, ts Typesetter, opts ...Option) *Renderer {
	t.Helper()
	opts = append([]Option{WithTypesetter(ts), WithSanitizer(identitySanitizer)}, opts...)
	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}
	return r
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, TypesetterFunc(bracketTypesetter))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whole display", "$$x^2$$", "[display:x^2]"},
		{"whole inline", "$a+b$", "[inline:a+b]"},
		{"whole inline with surrounding space", "  $x$  ", "[inline:x]"},
		{"whole display interior normalized", "$$ \\\\frac{1}{2} $$", `[display:\frac{1}{2}]`},
		{"bare command", `\sqrt{5}`, `[inline:\sqrt{5}]`},
		{"bare coefficient and command", `5\sqrt{5}`, `[inline:5\sqrt{5}]`},
		{"bare doubled backslash", `5\\sqrt{5}`, `[inline:5\sqrt{5}]`},
		{"bare short expression", "x^2+1", "[inline:x^2+1]"},
		{
			name: "mixed text",
			in:   `The area is $\pi r^2$ approximately.`,
			want: `The area is [inline:\pi r^2] approximately.`,
		},
		{
			name: "mixed display and inline",
			in:   "Given $$a$$ then $b$, done!",
			want: "Given [display:a] then [inline:b], done!",
		},
		{
			name: "mixed text is escaped around math",
			in:   `If <b> & "c" then $x$!`,
			want: `If &lt;b&gt; &amp; &quot;c&quot; then [inline:x]!`,
		},
		{
			name: "span interior keeps markup characters",
			in:   "Is it true that $a<b$ here?",
			want: "Is it true that [inline:a<b] here?",
		},
		{
			name: "span interior normalized",
			in:   "Use $ \\\\alpha’ $ now!",
			want: `Use [inline:\alpha'] now!`,
		},
		{
			name: "inline span collapses doubled backslashes twice",
			in:   `Take $\\\\alpha$ and $$\\\\beta$$ now!`,
			want: `Take [inline:\alpha] and [display:\\beta] now!`,
		},
		{
			name: "failed span falls back to its source",
			in:   `Price: $\bad$ and $y$ here!`,
			want: `Price: $\bad$ and [inline:y] here!`,
		},
		{
			name: "failed display span falls back to its source",
			in:   "See $$\\bad<x$$ now!",
			want: "See $$\\bad&lt;x$$ now!",
		},
		{"unterminated inline", "It costs $5, right?", "It costs $5, right?"},
		{"unterminated display", "see $$x, right?", "see $$x, right?"},
		{
			name: "whole inline with interior dollars falls back whole",
			in:   "$a$ and $b$",
			want: "$a$ and $b$",
		},
		{"whole display failure", `$$\bad$$`, `$$\bad$$`},
		{"whole inline failure is escaped", `$\bad<1$`, `$\bad&lt;1$`},
		{"bare failure falls through to text", `\bad{x}`, `\bad{x}`},
		{"empty whole display", "$$  $$", "$$  $$"},
		{"whitespace only", "   ", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Render(tt.in); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderer_ProseRendersEscaped(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, TypesetterFunc(bracketTypesetter))

	inputs := []string{
		"Hello, world!",
		"What is the capital of France?",
		`He said "yes" & left.`,
		"a < b > c",
		"It's fine.",
		strings.Repeat("long prose ", 10),
	}

	for _, in := range inputs {
		if got, want := r.Render(in), EscapeHTML(in); got != want {
			t.Errorf("Render(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRender_DefaultProseMatchesEscape(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello, world!",
		`He said "hi" & left.`,
		"a < b > c",
		"It's fine?",
		`Tom & "Jerry" <3, isn't it?`,
	}

	for _, in := range inputs {
		if got, want := Render(in), EscapeHTML(in); got != want {
			t.Errorf("Render(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderer_FailingTypesetter(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, TypesetterFunc(failingTypesetter))

	inputs := []string{
		"$$x^2$$",
		"$a+b$",
		`\sqrt{5}`,
		"(A)",
		`The area is $\pi r^2$ approximately.`,
		"<i>$x$</i>",
	}

	for _, in := range inputs {
		if got, want := r.Render(in), EscapeHTML(strings.TrimSpace(in)); got != want {
			t.Errorf("Render(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderer_DoubledBackslashes(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, TypesetterFunc(bracketTypesetter))

	pairs := [][2]string{
		{`$5\\sqrt{5}$`, `$5\sqrt{5}$`},
		{`$$\\frac{1}{2}$$`, `$$\frac{1}{2}$$`},
		{`Take $\\sqrt{2}$ now!`, `Take $\sqrt{2}$ now!`},
	}

	for _, p := range pairs {
		if a, b := r.Render(p[0]), r.Render(p[1]); a != b {
			t.Errorf("Render(%q) = %q, Render(%q) = %q, want equal", p[0], a, p[1], b)
		}
	}
}

func TestRenderer_SanitizesEveryBranch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	wrap := SanitizerFunc(func(h string) string {
		calls.Add(1)
		return "<s>" + h + "</s>"
	})

	r, err := NewRenderer(WithTypesetter(TypesetterFunc(bracketTypesetter)), WithSanitizer(wrap))
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}

	inputs := []string{
		"$$x$$",       // whole display
		`$\bad$`,      // whole inline fallback
		`\sqrt{2}`,    // bare math
		"Hi, $x$ !",   // mixed
		"plain text!", // mixed without math
	}

	for _, in := range inputs {
		before := calls.Load()
		got := r.Render(in)
		if calls.Load()-before != 1 {
			t.Errorf("Render(%q) sanitized %d times, want 1", in, calls.Load()-before)
		}
		if !strings.HasPrefix(got, "<s>") || strings.Count(got, "<s>") != 1 {
			t.Errorf("Render(%q) = %q, want output sanitized once", in, got)
		}
	}
}

func TestRenderer_RecoversTypesetterPanic(t *testing.T) {
	t.Parallel()

	panicky := TypesetterFunc(func(expr string, _ bool) (string, error) {
		if expr == "boom" {
			panic("typesetter exploded")
		}
		return "[" + expr + "]", nil
	})
	r := newTestRenderer(t, panicky)

	if got, want := r.Render("Go $boom$ and $ok$!"), "Go $boom$ and [ok]!"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if got, want := r.Render("$boom$"), "$boom$"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderer_LogsFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newTestRenderer(t, TypesetterFunc(bracketTypesetter), WithLogger(logger))

	r.Render(`Oops: $\bad$ here!`)

	out := buf.String()
	for _, want := range []string{"typesetting failed", `expr=\bad`, "display=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_Cache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	counting := TypesetterFunc(func(expr string, display bool) (string, error) {
		calls.Add(1)
		return bracketTypesetter(expr, display)
	})
	r := newTestRenderer(t, counting, WithCache(16))

	first := r.Render("$x^2$")
	for i := 0; i < 5; i++ {
		if got := r.Render("$x^2$"); got != first {
			t.Fatalf("cached Render() = %q, want %q", got, first)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("typesetter called %d times, want 1", n)
	}
	if n := r.cache.len(); n != 1 {
		t.Errorf("cache holds %d entries, want 1", n)
	}
}

func TestRenderer_CacheConcurrent(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, TypesetterFunc(bracketTypesetter), WithCache(4))
	plain := newTestRenderer(t, TypesetterFunc(bracketTypesetter))

	inputs := []string{"$a$", "$$b$$", "c and $d$!", `\sqrt{e}`, "$f$", "$g$"}

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(in string) {
			defer wg.Done()
			if got, want := r.Render(in), plain.Render(in); got != want {
				errs <- fmt.Errorf("Render(%q) = %q, want %q", in, got, want)
			}
		}(inputs[i%len(inputs)])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestNewRenderer_InvalidCacheSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1, -5} {
		if _, err := NewRenderer(WithCache(size)); !errors.Is(err, ErrInvalidCacheSize) {
			t.Errorf("NewRenderer(WithCache(%d)) error = %v, want ErrInvalidCacheSize", size, err)
		}
	}
}

func TestNewRenderer_NilOptionsKeepDefaults(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(WithTypesetter(nil), WithSanitizer(nil), WithLogger(nil))
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}
	if r.typesetter == nil || r.sanitizer == nil || r.logger == nil {
		t.Fatal("nil options replaced defaults")
	}
}

func TestRender_Default(t *testing.T) {
	t.Parallel()

	t.Run("inline math becomes KaTeX", func(t *testing.T) {
		t.Parallel()

		got := Render("$x^2$")
		for _, want := range []string{`<span class="katex">`, "<math", "<msup><mi>x</mi><mn>2</mn></msup>"} {
			if !strings.Contains(got, want) {
				t.Errorf("Render() = %q, missing %q", got, want)
			}
		}
	})

	t.Run("display math has no dollars", func(t *testing.T) {
		t.Parallel()

		got := Render("$$x^2$$")
		if !strings.Contains(got, `class="katex-display"`) {
			t.Errorf("Render() = %q, want display math", got)
		}
		if strings.Contains(got, "$") {
			t.Errorf("Render() = %q, contains raw '$'", got)
		}
	})

	t.Run("mixed text keeps order", func(t *testing.T) {
		t.Parallel()

		got := Render(`The area is $\pi r^2$ approximately.`)
		before := strings.Index(got, "The area is ")
		math := strings.Index(got, "<mi>π</mi>")
		after := strings.Index(got, " approximately.")
		if before != 0 || math < before || after < math {
			t.Errorf("Render() = %q, want text, math, text in order", got)
		}
	})

	t.Run("bare command is typeset", func(t *testing.T) {
		t.Parallel()

		if got := Render(`\sqrt{5}`); !strings.Contains(got, "<msqrt><mn>5</mn></msqrt>") {
			t.Errorf("Render() = %q, want typeset root", got)
		}
	})

	t.Run("environments are typeset", func(t *testing.T) {
		t.Parallel()

		got := Render(`Let $A = \begin{pmatrix}1&2\end{pmatrix}$ be given!`)
		if !strings.Contains(got, "<mtable") || !strings.HasPrefix(got, "Let ") {
			t.Errorf("Render() = %q, want a typeset matrix", got)
		}
	})

	t.Run("invalid math falls back to source", func(t *testing.T) {
		t.Parallel()

		got := Render(`Try $\nosuchcommand$ now!`)
		if html.UnescapeString(got) != `Try $\nosuchcommand$ now!` {
			t.Errorf("Render() = %q, want escaped source", got)
		}
	})

	t.Run("prose survives sanitization", func(t *testing.T) {
		t.Parallel()

		in := `Tom & "Jerry" <3, isn't it?`
		if got := Render(in); html.UnescapeString(got) != in {
			t.Errorf("Render(%q) = %q, want escaped prose", in, got)
		}
	})
}

func TestRender_NeverEmitsScript(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<script>alert(1)</script>",
		"$x$<script>alert(1)</script>",
		"$<script>alert(1)</script>$",
		"$$\\text{<script>alert(1)</script>}$$",
		"Hi $\\text{</mtext><script>alert(1)</script>}$ there!",
		"<img src=x onerror=alert(1)>",
	}

	for _, in := range inputs {
		got := Render(in)
		lower := strings.ToLower(got)
		if strings.Contains(lower, "<script") {
			t.Errorf("Render(%q) = %q, contains a script tag", in, got)
		}
		if strings.Contains(lower, "<img") {
			t.Errorf("Render(%q) = %q, contains a raw img tag", in, got)
		}
	}
}

func TestRenderer_Concurrent(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}

	inputs := []string{"$x^2$", "$$\\frac{1}{2}$$", "a $b$ c", `\sqrt{5}`, "plain!"}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		want[i] = r.Render(in)
	}

	var wg sync.WaitGroup
	var mismatches atomic.Int32
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if r.Render(inputs[i%len(inputs)]) != want[i%len(inputs)] {
				mismatches.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if n := mismatches.Load(); n != 0 {
		t.Errorf("%d concurrent renders differed from sequential output", n)
	}
}
