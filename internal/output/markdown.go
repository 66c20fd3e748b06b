package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Markdown writes a markdown block to the output writer. On a terminal it is
// rendered with glamour; otherwise the raw markdown is written unchanged.
func Markdown(md string) {
	w := Writer()
	if !IsTerminal(w) {
		fmt.Fprint(w, md)
		return
	}

	rendered, err := renderMarkdown(md, terminalWidth(w))
	if err != nil {
		Debug("markdown render failed", "err", err)
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, rendered)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func renderMarkdown(md string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
