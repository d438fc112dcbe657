// Package testutil provides a scripted analysis-server fake for
// hermetic transport tests. It owns the far ends of the three
// subprocess streams and speaks the Content-Length wire format.
package testutil

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"
)

// FakeServer simulates the subprocess side of a transport connection.
type FakeServer struct {
	// Stdout, Stdin, and Stderr are the transport-side stream ends.
	Stdout io.Reader
	Stdin  io.Writer
	Stderr io.Reader

	stdoutW *io.PipeWriter
	stderrW *io.PipeWriter
	stdinR  *bufio.Reader
}

// NewFakeServer creates connected stream pairs for one transport.
func NewFakeServer() *FakeServer {
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()
	stdinR, stdinW := io.Pipe()

	return &FakeServer{
		Stdout:  stdoutR,
		Stdin:   stdinW,
		Stderr:  stderrR,
		stdoutW: stdoutW,
		stderrW: stderrW,
		stdinR:  bufio.NewReader(stdinR),
	}
}

// Send frames body and writes it to the transport's stdout.
func (s *FakeServer) Send(t *testing.T, body string) {
	t.Helper()
	s.SendRaw(t, fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body))
}

// SendRaw writes raw bytes to the transport's stdout, unframed.
func (s *FakeServer) SendRaw(t *testing.T, raw string) {
	t.Helper()
	if _, err := io.WriteString(s.stdoutW, raw); err != nil {
		t.Fatalf("write to transport stdout: %v", err)
	}
}

// Recv reads one framed message the transport wrote to stdin and
// returns its body.
func (s *FakeServer) Recv(t *testing.T) string {
	t.Helper()

	contentLength := -1
	for {
		line, err := s.stdinR.ReadString('\n')
		if err != nil {
			t.Fatalf("read header from transport stdin: %v", err)
		}
		if line == "\r\n" {
			break
		}
		if value, ok := strings.CutPrefix(strings.TrimSpace(line), "Content-Length: "); ok {
			contentLength, err = strconv.Atoi(value)
			if err != nil {
				t.Fatalf("bad content length from transport: %v", err)
			}
		}
	}
	if contentLength < 0 {
		t.Fatal("transport frame missing content length")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.stdinR, body); err != nil {
		t.Fatalf("read body from transport stdin: %v", err)
	}

	return string(body)
}

// WriteStderrLine emits one diagnostic line on the transport's stderr.
func (s *FakeServer) WriteStderrLine(t *testing.T, line string) {
	t.Helper()
	if _, err := io.WriteString(s.stderrW, line+"\n"); err != nil {
		t.Fatalf("write to transport stderr: %v", err)
	}
}

// CloseStdout simulates the server exiting: the transport's reader
// observes a clean end-of-stream.
func (s *FakeServer) CloseStdout() {
	_ = s.stdoutW.Close()
}

// CloseStderr closes the diagnostic stream.
func (s *FakeServer) CloseStderr() {
	_ = s.stderrW.Close()
}
