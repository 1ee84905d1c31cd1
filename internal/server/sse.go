package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// Interview stream event names.
const (
	eventFragment = "fragment"
	eventTurn     = "turn"
	eventError    = "error"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// eventStream writes Server-Sent Events, flushing after each one.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

// openEventStream switches the response to text/event-stream. It fails when the
// writer cannot flush.
func openEventStream(w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	return &eventStream{w: w, flusher: flusher}, nil
}

// send writes one event whose data is payload encoded as JSON.
func (s *eventStream) send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.seq++

	var buf bytes.Buffer
	buf.WriteString("id: " + strconv.Itoa(s.seq) + "\n")
	buf.WriteString("event: " + event + "\n")
	buf.WriteString("data: ")
	buf.Write(data)
	buf.WriteString("\n\n")
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// fail sends a terminal error event. Write errors are dropped since the client
// is already gone.
func (s *eventStream) fail(err error) {
	_ = s.send(eventError, map[string]string{"error": err.Error()})
}
