package httpx

import (
	"bytes"
	"net/http"
)

// ResponseBuffer holds a complete response in memory so that a handler can
// still fail cleanly after it started writing, e.g. halfway through a
// template.
type ResponseBuffer struct {
	bytes.Buffer
	status int
	header http.Header
}

func NewResponseBuffer() *ResponseBuffer {
	return &ResponseBuffer{header: http.Header{}}
}

func (b *ResponseBuffer) Header() http.Header {
	return b.header
}

func (b *ResponseBuffer) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

// Status defaults to 200 if nothing was set.
func (b *ResponseBuffer) Status() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}

func (b *ResponseBuffer) Flush(w http.ResponseWriter) error {
	header := w.Header()
	for key, values := range b.header {
		header[key] = values
	}
	w.WriteHeader(b.Status())
	_, err := w.Write(b.Bytes())
	return err
}
