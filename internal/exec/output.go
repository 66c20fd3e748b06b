package exec

import (
	"bytes"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// PrefixWriter adds a prefix to each line of output. Incomplete lines are
// held until a newline arrives or Flush is called.
type PrefixWriter struct {
	prefix string
	writer io.Writer
	buffer []byte
}

// NewPrefixWriter creates a writer that prefixes each line
func NewPrefixWriter(writer io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{
		prefix: prefix,
		writer: writer,
	}
}

// Write adds prefix to each complete line
func (p *PrefixWriter) Write(data []byte) (int, error) {
	p.buffer = append(p.buffer, data...)

	for {
		i := bytes.IndexByte(p.buffer, '\n')
		if i < 0 {
			break
		}
		line := p.buffer[:i]
		if _, err := io.WriteString(p.writer, p.prefix+string(line)+"\n"); err != nil {
			return 0, err
		}
		p.buffer = p.buffer[i+1:]
	}

	return len(data), nil
}

// Flush writes any remaining buffered content
func (p *PrefixWriter) Flush() error {
	if len(p.buffer) == 0 {
		return nil
	}
	_, err := io.WriteString(p.writer, p.prefix+string(p.buffer)+"\n")
	p.buffer = p.buffer[:0]
	return err
}

// Quote renders a command line the way a POSIX shell would accept it.
func Quote(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, s := range append([]string{name}, args...) {
		q, err := syntax.Quote(s, syntax.LangBash)
		if err != nil {
			q = s
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " ")
}
