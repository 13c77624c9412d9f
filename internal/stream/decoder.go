package stream

// Decoder drives transport bytes through the line buffer, the event filter,
// and the delta merger. One instance serves exactly one request's stream.
type Decoder struct {
	lines *LineBuffer
	acc   *Accumulator
	done  bool
}

// NewDecoder creates a decoder with the given line-buffer ceiling.
// onContent, if non-nil, receives each content fragment as it arrives.
func NewDecoder(bufferLimit int, onContent func(string)) *Decoder {
	return &Decoder{
		lines: NewLineBuffer(bufferLimit),
		acc:   NewAccumulator(onContent),
	}
}

// Feed consumes one transport chunk of any size, including empty. It
// returns true once the termination sentinel has been seen; bytes after the
// sentinel are decoded but ignored.
func (d *Decoder) Feed(p []byte) (bool, error) {
	lines, err := d.lines.Feed(p)
	for _, line := range lines {
		if d.done {
			break
		}
		event := ParseLine(line)
		switch event.Kind {
		case EventData:
			d.acc.Ingest(event.Data)
		case EventDone:
			d.done = true
		}
	}
	return d.done, err
}

// Done reports whether the termination sentinel has been seen.
func (d *Decoder) Done() bool {
	return d.done
}

// Answer returns the accumulated content.
func (d *Decoder) Answer() string {
	return d.acc.Answer()
}

// ToolCall returns the accumulated tool-call record, or nil.
func (d *Decoder) ToolCall() *ToolCall {
	return d.acc.ToolCall()
}
