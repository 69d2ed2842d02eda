package httpx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseBuffer_Flush(t *testing.T) {
	buf := NewResponseBuffer()
	buf.Header().Set("content-type", "text/plain")
	buf.WriteHeader(http.StatusAccepted)
	buf.WriteHeader(http.StatusTeapot)
	fmt.Fprint(buf, "hello")

	rec := httptest.NewRecorder()
	if err := buf.Flush(rec); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("content-type"); ct != "text/plain" {
		t.Fatalf("content-type = %q", ct)
	}
	if rec.Body.String() != "hello" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestResponseBuffer_DefaultStatus(t *testing.T) {
	buf := NewResponseBuffer()
	rec := httptest.NewRecorder()
	buf.Flush(rec)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
