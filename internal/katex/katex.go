// Package katex runs KaTeX inside embedded JavaScript runtimes.
//
// RenderBundled uses the KaTeX build shipped with goldmark-katex and needs
// no setup. Engine runs a caller-supplied bundle instead: it is compiled once and instantiated into a small pool of
// goja runtimes. A goja.Runtime is not safe for concurrent use, so every
// render call borrows one runtime for its duration.
package katex

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"
)

// Sentinel errors for engine operations.
var (
	ErrNoRenderFunc = errors.New("script does not define katex.renderToString")
	ErrRender       = errors.New("katex render failed")
	ErrClosed       = errors.New("katex engine closed")
)

// scriptName labels the compiled program in JavaScript stack traces.
const scriptName = "katex.js"

// runtime is one JavaScript VM with KaTeX loaded.
type runtime struct {
	vm     *goja.Runtime
	render goja.Callable
}

// Engine renders math with a pool of KaTeX runtimes.
// Runtimes are created lazily, up to size.
type Engine struct {
	program *goja.Program
	size    int
	sem     chan *runtime
	mu      sync.Mutex
	created int
	closed  bool
}

// New compiles script and loads it into a first runtime so that a broken
// bundle fails here rather than on the first render.
func New(script string, size int) (*Engine, error) {
	if size < 1 {
		size = 1
	}

	program, err := goja.Compile(scriptName, script, false)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", scriptName, err)
	}

	first, err := newRuntime(program)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		program: program,
		size:    size,
		sem:     make(chan *runtime, size),
		created: 1,
	}
	e.sem <- first
	return e, nil
}

// newRuntime runs the compiled bundle in a fresh VM and looks up
// katex.renderToString.
func newRuntime(program *goja.Program) (*runtime, error) {
	vm := goja.New()
	if _, err := vm.RunProgram(program); err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", scriptName, err)
	}

	katex := vm.Get("katex")
	if katex == nil || goja.IsUndefined(katex) || goja.IsNull(katex) {
		return nil, ErrNoRenderFunc
	}
	render, ok := goja.AssertFunction(katex.ToObject(vm).Get("renderToString"))
	if !ok {
		return nil, ErrNoRenderFunc
	}
	return &runtime{vm: vm, render: render}, nil
}

// acquire borrows a runtime, creating one if the pool is not full.
// Blocks while all runtimes are in use.
func (e *Engine) acquire() (*runtime, error) {
	select {
	case rt, ok := <-e.sem:
		if !ok {
			return nil, ErrClosed
		}
		return rt, nil
	default:
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	if e.created < e.size {
		e.created++
		e.mu.Unlock()

		rt, err := newRuntime(e.program)
		if err != nil {
			e.mu.Lock()
			e.created--
			e.mu.Unlock()
			return nil, err
		}
		return rt, nil
	}
	e.mu.Unlock()

	rt, ok := <-e.sem
	if !ok {
		return nil, ErrClosed
	}
	return rt, nil
}

// release returns a runtime to the pool. Runtimes released after Close are
// dropped.
func (e *Engine) release(rt *runtime) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.closed {
		e.sem <- rt
	}
}

// RenderToString typesets expr with throwOnError enabled.
// KaTeX parse errors are returned wrapped in ErrRender.
func (e *Engine) RenderToString(expr string, display bool) (string, error) {
	rt, err := e.acquire()
	if err != nil {
		return "", err
	}
	defer e.release(rt)

	opts := rt.vm.NewObject()
	_ = opts.Set("displayMode", display)
	_ = opts.Set("throwOnError", true)

	v, err := rt.render(goja.Undefined(), rt.vm.ToValue(expr), opts)
	if err != nil {
		var jsErr *goja.Exception
		if errors.As(err, &jsErr) {
			return "", fmt.Errorf("%w: %s", ErrRender, jsErr.Value().String())
		}
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return v.String(), nil
}

// Size returns the pool capacity.
func (e *Engine) Size() int {
	return e.size
}

// Close drops all runtimes. Renders started afterwards fail with ErrClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	close(e.sem)
	for range e.sem {
	}
	return nil
}
