package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

func TestServe_ShutsDownAndRunsHooks(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := NewServer(DefaultServerConfig("0"), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	log := logger.NewWithWriter(io.Discard, "test", "error")

	ctx, cancel := context.WithCancel(context.Background())
	var order []string
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, srv, ln, log, "test", time.Second,
			func(context.Context) error { order = append(order, "feed"); return nil },
			func(context.Context) error { order = append(order, "pool"); return nil },
		)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}

	if len(order) != 2 || order[0] != "feed" || order[1] != "pool" {
		t.Errorf("hooks ran as %v", order)
	}
}
