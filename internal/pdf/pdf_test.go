package pdf

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestPage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    Page
		wantErr bool
	}{
		{"zero value", Page{}, false},
		{"letter", Page{Size: "letter", Margin: 1}, false},
		{"a4 upper case", Page{Size: "A4"}, false},
		{"legal max margin", Page{Size: "legal", Margin: MaxMargin}, false},
		{"unknown size", Page{Size: "tabloid"}, true},
		{"negative margin", Page{Margin: -0.1}, true},
		{"margin too large", Page{Margin: MaxMargin + 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidPage) {
				t.Errorf("Validate() error = %v, want ErrInvalidPage", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestPrintOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		page                  Page
		width, height, margin float64
	}{
		{"defaults", Page{}, 8.5, 11, DefaultMargin},
		{"a4", Page{Size: "a4", Margin: 1}, 8.27, 11.69, 1},
		{"legal", Page{Size: "Legal", Margin: 0.25}, 8.5, 14, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := printOptions(tt.page)
			if *opts.PaperWidth != tt.width || *opts.PaperHeight != tt.height {
				t.Errorf("paper = %vx%v, want %vx%v", *opts.PaperWidth, *opts.PaperHeight, tt.width, tt.height)
			}
			for _, m := range []*float64{opts.MarginTop, opts.MarginBottom, opts.MarginLeft, opts.MarginRight} {
				if *m != tt.margin {
					t.Errorf("margin = %v, want %v", *m, tt.margin)
				}
			}
			if !opts.PrintBackground {
				t.Error("PrintBackground = false, want true")
			}
		})
	}
}

// fakeRenderer records the file it was asked to render.
type fakeRenderer struct {
	content string
	page    Page
	out     []byte
	err     error
	closed  bool
}

func (f *fakeRenderer) RenderFile(_ context.Context, path string, page Page) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- test temp file
	if err != nil {
		return nil, err
	}
	f.content = string(data)
	f.page = page
	return f.out, f.err
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

func TestPrinter_Print(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{out: []byte("%PDF-1.4")}
	p := &Printer{renderer: fake}

	got, err := p.Print(context.Background(), "<p>sheet</p>", Page{Size: "a4"})
	if err != nil {
		t.Fatalf("Print() unexpected error: %v", err)
	}
	if string(got) != "%PDF-1.4" {
		t.Errorf("Print() = %q, want %q", got, "%PDF-1.4")
	}
	if fake.content != "<p>sheet</p>" {
		t.Errorf("rendered file content = %q", fake.content)
	}
	if fake.page.Size != "a4" {
		t.Errorf("page = %+v, want a4", fake.page)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if !fake.closed {
		t.Error("Close() did not close the renderer")
	}
}

func TestPrinter_PrintInvalidPage(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{}
	p := &Printer{renderer: fake}

	_, err := p.Print(context.Background(), "<p></p>", Page{Size: "b5"})
	if !errors.Is(err, ErrInvalidPage) {
		t.Errorf("Print() error = %v, want ErrInvalidPage", err)
	}
	if fake.content != "" {
		t.Error("renderer called for an invalid page")
	}
}

func TestPrinter_PrintRendererError(t *testing.T) {
	t.Parallel()

	p := &Printer{renderer: &fakeRenderer{err: ErrPageLoad}}

	_, err := p.Print(context.Background(), "<p></p>", Page{})
	if !errors.Is(err, ErrPageLoad) {
		t.Errorf("Print() error = %v, want ErrPageLoad", err)
	}
}

func TestRodRenderer_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &rodRenderer{timeout: DefaultTimeout}
	if _, err := r.RenderFile(ctx, "/nonexistent.html", Page{}); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFile() error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("browser launched for a cancelled context")
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	if err := (&rodRenderer{}).Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}
}

func TestNoSandbox(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"nothing set", map[string]string{}, false},
		{"ROD_NO_SANDBOX", map[string]string{"ROD_NO_SANDBOX": "1"}, true},
		{"CI", map[string]string{"CI": "true"}, true},
		{"custom browser", map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ROD_NO_SANDBOX", "")
			t.Setenv("CI", "")
			t.Setenv("ROD_BROWSER_BIN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := noSandbox(); got != tt.want {
				t.Errorf("noSandbox() = %v, want %v", got, tt.want)
			}
		})
	}
}
