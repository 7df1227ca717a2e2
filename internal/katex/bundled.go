package katex

import (
	"bytes"
	"fmt"

	gmkatex "github.com/FurqanSoftware/goldmark-katex"
)

// RenderBundled renders expr with the KaTeX build compiled into the binary.
// Parse errors are returned, never rendered as error markup. Each call gets
// its own JavaScript context, so RenderBundled is safe for concurrent use.
func RenderBundled(expr string, display bool) (string, error) {
	var buf bytes.Buffer
	if err := gmkatex.Render(&buf, []byte(expr), display); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}
