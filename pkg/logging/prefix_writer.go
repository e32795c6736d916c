package logging

import (
	"bytes"
	"io"
)

// PrefixWriter wraps an io.Writer and writes a prefix before every line.
// Incomplete lines are held back until their newline arrives or Flush is called.
type PrefixWriter struct {
	prefix  []byte
	writer  io.Writer
	pending bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		writer: w,
	}
}

// Write implements io.Writer
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			pw.pending.Write(p)
			break
		}
		pw.pending.Write(p[:i+1])
		if err := pw.emit(); err != nil {
			return 0, err
		}
		p = p[i+1:]
	}
	return n, nil
}

// Flush writes any held back partial line
func (pw *PrefixWriter) Flush() error {
	if pw.pending.Len() == 0 {
		return nil
	}
	return pw.emit()
}

func (pw *PrefixWriter) emit() error {
	defer pw.pending.Reset()
	line := make([]byte, 0, len(pw.prefix)+pw.pending.Len())
	line = append(line, pw.prefix...)
	line = append(line, pw.pending.Bytes()...)
	_, err := pw.writer.Write(line)
	return err
}
