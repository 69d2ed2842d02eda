package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mbolis/case-report/config"
	"github.com/mbolis/case-report/httpx"
	"github.com/mbolis/case-report/model"
)

func TestRunServer_DrainsInFlightRequests(t *testing.T) {
	var mu sync.Mutex
	posts := 0
	sheet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		posts++
		mu.Unlock()
	}))
	defer sheet.Close()

	tr := httpx.NewFormTransmitter(sheet.URL, 5*time.Second)

	started := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(300 * time.Millisecond)
		tr.Transmit(model.Payload{Name: "Jane Doe"})
		w.WriteHeader(http.StatusNoContent)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := newServer(config.Config{Addr: ln.Addr().String()}, handler)
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv, ln) }()

	client := make(chan int, 1)
	go func() {
		resp, err := http.Post("http://"+ln.Addr().String()+"/report", "text/plain", nil)
		if err != nil {
			client <- 0
			return
		}
		resp.Body.Close()
		client <- resp.StatusCode
	}()

	<-started
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServer() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not return after shutdown")
	}

	// once runServer is back every dispatch has been registered
	tr.Wait()
	mu.Lock()
	n := posts
	mu.Unlock()
	if n != 1 {
		t.Fatalf("expected the in-flight submission to be delivered, got %d posts", n)
	}

	if status := <-client; status != http.StatusNoContent {
		t.Fatalf("in-flight request status = %d", status)
	}
}

func TestRunServer_ServeError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ln.Close()

	srv := newServer(config.Config{}, http.NotFoundHandler())
	if err := runServer(context.Background(), srv, ln); err == nil {
		t.Fatal("expected an error from a closed listener")
	}
}
