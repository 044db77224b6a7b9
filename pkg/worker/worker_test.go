package worker

import (
	"io"
	"log/slog"
	"net"
	"reflect"
	"testing"
	"time"

	"github.com/dtnitsch/distwc/pkg/wire"
)

func startTestWorker(t *testing.T) (*Server, <-chan error) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(logger, 5*time.Second)
	if err := s.Listen("127.0.0.1:0"); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	served := make(chan error, 1)
	go func() { served <- s.Serve() }()
	return s, served
}

func dialWorker(t *testing.T, addr string) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Dial(%s) error = %v", addr, err)
	}
	return conn
}

func requestCount(t *testing.T, addr, text string) wire.Table {
	t.Helper()
	conn := dialWorker(t, addr)
	defer conn.Close()

	if err := wire.WritePayload(conn, wire.Chunk{Text: text}); err != nil {
		t.Fatalf("WritePayload(chunk) error = %v", err)
	}
	payload, err := wire.ReadPayload(conn)
	if err != nil {
		t.Fatalf("ReadPayload(table) error = %v", err)
	}
	table, ok := payload.(wire.Table)
	if !ok {
		t.Fatalf("response payload = %T, want wire.Table", payload)
	}
	return table
}

func waitForExit(t *testing.T, served <-chan error) {
	t.Helper()
	select {
	case err := <-served:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not shut down")
	}
}

func TestServeCountsChunk(t *testing.T) {
	s, served := startTestWorker(t)

	got := requestCount(t, s.Addr(), "hello again\nfun fun fun")
	want := wire.Table{"hello": 1, "again": 1, "fun": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("count = %v, want %v", got, want)
	}

	conn := dialWorker(t, s.Addr())
	if err := wire.WritePayload(conn, wire.Done{}); err != nil {
		t.Fatalf("WritePayload(done) error = %v", err)
	}
	conn.Close()
	waitForExit(t, served)
}

func TestServeEmptyChunk(t *testing.T) {
	s, served := startTestWorker(t)

	got := requestCount(t, s.Addr(), "")
	if len(got) != 0 {
		t.Errorf("count of empty chunk = %v, want empty table", got)
	}

	conn := dialWorker(t, s.Addr())
	_ = wire.WritePayload(conn, wire.Done{})
	conn.Close()
	waitForExit(t, served)
}

func TestServeSurvivesMalformedPayload(t *testing.T) {
	s, served := startTestWorker(t)

	// Garbage frame: unknown kind. Worker must drop the connection and
	// keep serving.
	conn := dialWorker(t, s.Addr())
	if _, err := conn.Write([]byte{0x7f, 0, 0, 0, 0}); err != nil {
		t.Fatalf("Write(garbage) error = %v", err)
	}
	conn.Close()

	got := requestCount(t, s.Addr(), "still alive")
	want := wire.Table{"still": 1, "alive": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("count after malformed payload = %v, want %v", got, want)
	}

	conn = dialWorker(t, s.Addr())
	_ = wire.WritePayload(conn, wire.Done{})
	conn.Close()
	waitForExit(t, served)
}

func TestServeTreatsHangupAsShutdown(t *testing.T) {
	s, served := startTestWorker(t)

	// Connect and close without sending a payload.
	conn := dialWorker(t, s.Addr())
	conn.Close()

	waitForExit(t, served)
}

func TestChunkTextDoneIsNotShutdown(t *testing.T) {
	s, served := startTestWorker(t)

	got := requestCount(t, s.Addr(), "DONE")
	want := wire.Table{"DONE": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("count = %v, want %v", got, want)
	}

	conn := dialWorker(t, s.Addr())
	_ = wire.WritePayload(conn, wire.Done{})
	conn.Close()
	waitForExit(t, served)
}
