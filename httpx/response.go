package httpx

import (
	"bytes"
	"net/http"
)

// ResponseBuffer is an http.ResponseWriter that records the response in
// memory instead of sending it, so a handler can delegate to another
// handler and replay the result (the refresh grant does this).
type ResponseBuffer struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func NewResponseBuffer() *ResponseBuffer {
	return &ResponseBuffer{header: http.Header{}}
}

func (b *ResponseBuffer) Header() http.Header {
	return b.header
}

func (b *ResponseBuffer) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

func (b *ResponseBuffer) WriteHeader(statusCode int) {
	b.status = statusCode
}

func (b *ResponseBuffer) Status() int {
	return b.status
}

func (b *ResponseBuffer) Body() []byte {
	return b.body.Bytes()
}

// Flush replays the recorded headers, status and body onto w.
func (b *ResponseBuffer) Flush(w http.ResponseWriter) error {
	dst := w.Header()
	for key, values := range b.header {
		dst[key] = values
	}
	if b.status != 0 {
		w.WriteHeader(b.status)
	}
	_, err := w.Write(b.body.Bytes())
	return err
}
