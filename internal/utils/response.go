package utils

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the {success, data?, error?, meta?} shape every
// compliance-intel HTTP response uses.
type Envelope struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
	Meta    *EnvelopeMeta `json:"meta,omitempty"`
}

// EnvelopeMeta carries request-timing metadata alongside the payload.
type EnvelopeMeta struct {
	Timestamp        time.Time `json:"timestamp"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	Cached           bool      `json:"cached,omitempty"`
}

// WriteJSON writes a JSON response to the client.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteEnvelopeSuccess writes {success:true, data, meta} with a
// processing-time meta computed from start.
func WriteEnvelopeSuccess(w http.ResponseWriter, statusCode int, data interface{}, start time.Time) {
	WriteJSON(w, statusCode, Envelope{
		Success: true,
		Data:    data,
		Meta:    newEnvelopeMeta(start),
	})
}

// WriteEnvelopeError writes {success:false, error, meta}.
func WriteEnvelopeError(w http.ResponseWriter, statusCode int, message string, start time.Time) {
	WriteJSON(w, statusCode, Envelope{
		Success: false,
		Error:   message,
		Meta:    newEnvelopeMeta(start),
	})
}

func newEnvelopeMeta(start time.Time) *EnvelopeMeta {
	return &EnvelopeMeta{
		Timestamp:        time.Now(),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
}
