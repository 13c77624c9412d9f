// Package stream implements incremental decoding of the chat completions
// event stream: line framing over arbitrary chunk boundaries, SSE event
// classification, and merging of content/tool-call deltas.
package stream

import (
	"bytes"

	"github.com/zfifteen/Grok-Codex/internal/errors"
)

// LineBuffer reassembles complete lines from an arbitrarily-chunked byte
// stream. Bytes after the last newline are carried forward to the next Feed.
type LineBuffer struct {
	buf   []byte
	limit int
}

// NewLineBuffer creates a line buffer with the given capacity ceiling in
// bytes. The ceiling bounds the retained partial line, not a single Feed.
func NewLineBuffer(limit int) *LineBuffer {
	return &LineBuffer{limit: limit}
}

// Feed appends p and extracts every complete line, in arrival order, with
// the trailing newline (and any carriage return) stripped. An incomplete
// trailing line is retained for the next call.
//
// If the retained partial would exceed the capacity ceiling, the extracted
// lines are still returned together with an explicit overflow error; the
// oversized partial is kept so the caller can decide whether to abandon the
// stream.
func (b *LineBuffer) Feed(p []byte) ([][]byte, error) {
	b.buf = append(b.buf, p...)

	var lines [][]byte
	for {
		idx := bytes.IndexByte(b.buf, '\n')
		if idx < 0 {
			break
		}
		line := bytes.TrimSuffix(b.buf[:idx], []byte("\r"))
		// Copy: the backing array is about to be reused.
		lines = append(lines, append([]byte(nil), line...))
		b.buf = b.buf[idx+1:]
	}

	// Reclaim capacity once everything parseable is extracted.
	if len(b.buf) == 0 {
		b.buf = nil
	}

	if b.limit > 0 && len(b.buf) > b.limit {
		return lines, errors.NewBuilder(errors.CodeStreamOverflow, "stream line exceeds buffer limit").
			Permanent().
			WithContext("pending_bytes", len(b.buf)).
			WithContext("limit", b.limit).
			Build()
	}

	return lines, nil
}

// Pending returns the number of buffered bytes awaiting a newline.
func (b *LineBuffer) Pending() int {
	return len(b.buf)
}
