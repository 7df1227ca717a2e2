package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mathmark/internal/fileutil"
	"github.com/alnah/go-mathmark/internal/process"
)

// fileRenderer renders a local HTML file to PDF bytes.
type fileRenderer interface {
	RenderFile(ctx context.Context, path string, page Page) ([]byte, error)
	Close() error
}

var _ fileRenderer = (*rodRenderer)(nil)

// Printer converts HTML documents to PDF. It launches Chrome on first use
// and is safe for concurrent use. Call Close to release the browser.
type Printer struct {
	renderer fileRenderer
}

// NewPrinter creates a Printer whose page loads time out after timeout
// when the context carries no deadline. A zero timeout means DefaultTimeout.
// Rod downloads Chromium on first use unless ROD_BROWSER_BIN is set.
func NewPrinter(timeout time.Duration) *Printer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Printer{renderer: &rodRenderer{timeout: timeout}}
}

// Print writes htmlContent to a temp file, opens it in the browser and
// prints it with the given page layout.
func (p *Printer) Print(ctx context.Context, htmlContent string, page Page) ([]byte, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return p.renderer.RenderFile(ctx, path, page)
}

// Close releases browser resources.
func (p *Printer) Close() error {
	if p.renderer == nil {
		return nil
	}
	return p.renderer.Close()
}

// rodRenderer implements fileRenderer with go-rod.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newLauncher configures Chrome from the environment.
func newLauncher() *launcher.Launcher {
	l := launcher.New()

	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if noSandbox() {
		l = l.NoSandbox(true)
	}
	return l
}

// noSandbox reports whether Chrome must run without its sandbox, as in
// containers and CI.
func noSandbox() bool {
	return os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := newLauncher()
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	return browser, nil
}

// Close closes the browser and kills its process tree.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillTree(r.launcher.PID())
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFile opens a local HTML file and prints it to PDF.
func (r *rodRenderer) RenderFile(ctx context.Context, path string, page Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	tab, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = tab.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := tab.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := tab.PDF(printOptions(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// printOptions converts page into Chrome print settings.
func printOptions(page Page) *proto.PagePrintToPDF {
	width, height, margin := page.dimensions()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
