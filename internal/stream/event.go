package stream

import "bytes"

// EventKind classifies a decoded stream line.
type EventKind int

const (
	// EventNoise is a comment, keep-alive, or any unrecognized line.
	EventNoise EventKind = iota

	// EventData carries a JSON payload.
	EventData

	// EventDone is the stream termination sentinel.
	EventDone
)

// doneSentinel is the literal payload signalling end of stream.
var doneSentinel = []byte("[DONE]")

// Event is one classified stream line.
type Event struct {
	Kind EventKind

	// Data is the payload for EventData, nil otherwise.
	Data []byte
}

// ParseLine classifies a single decoded line. Lines with a "data:" prefix
// yield their payload; the [DONE] sentinel terminates the stream; anything
// else (blank keep-alives, ": comment" lines, other SSE fields) is noise.
func ParseLine(line []byte) Event {
	payload, ok := bytes.CutPrefix(line, []byte("data:"))
	if !ok {
		return Event{Kind: EventNoise}
	}
	// A single optional space may follow the colon.
	payload = bytes.TrimPrefix(payload, []byte(" "))

	if bytes.Equal(payload, doneSentinel) {
		return Event{Kind: EventDone}
	}
	if len(payload) == 0 {
		return Event{Kind: EventNoise}
	}
	return Event{Kind: EventData, Data: payload}
}
