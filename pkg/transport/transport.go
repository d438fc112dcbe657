// Package transport implements the client-side stdio transport for an
// analysis server: Content-Length framed JSON messages over the
// subprocess's stdout/stdin/stderr, request/response correlation, and
// the one-time initialization handshake gate.
package transport

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/lspwire/lspwire/pkg/jsonrpc"
	"github.com/lspwire/lspwire/pkg/rpcerrs"
	"github.com/lspwire/lspwire/pkg/transport/internal/queue"
)

// Well-known handshake and lifecycle method names.
const (
	MethodInitialize  = "initialize"
	MethodInitialized = "initialized"
	MethodShutdown    = "shutdown"
	MethodExit        = "exit"
)

// ServerID identifies one server connection to the upstream consumer.
type ServerID uint32

// Event is one server-originated call surfaced to the consumer, tagged
// with the transport it arrived on. The synthesized "initialized" and
// "exit" notifications flow through the same channel as real calls.
type Event struct {
	Server ServerID
	Call   jsonrpc.Call
}

// InitSignal is the one-time trigger the caller fires after its own
// initialize request succeeds. Fire is idempotent.
type InitSignal struct {
	once sync.Once
	ch   chan struct{}
}

// Fire signals that initialization completed. Safe to call more than
// once; only the first call has any effect.
func (s *InitSignal) Fire() {
	s.once.Do(func() { close(s.ch) })
}

// Transport is one stdio connection to an analysis server. The pending
// table is the only state shared between the reader and writer
// goroutines; the lock is never held across stream I/O.
type Transport struct {
	id     ServerID
	name   string
	logger *zap.Logger

	mu      sync.Mutex
	pending map[jsonrpc.ID]chan Result
}

// Start wires a transport onto three already-open subprocess streams
// and launches its reader, stderr reader, and writer goroutines. It
// returns the inbound event channel, the outbound payload sender, and
// the initialization trigger. The transport runs until stdout closes,
// a fatal framing error occurs, or the caller closes the payload
// sender. A nil logger disables logging.
func Start(
	stdout io.Reader,
	stdin io.Writer,
	stderr io.Reader,
	id ServerID,
	name string,
	logger *zap.Logger,
) (<-chan Event, chan<- Payload, *InitSignal) {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Transport{
		id:      id,
		name:    name,
		logger:  logger.With(zap.String("server", name)),
		pending: make(map[jsonrpc.ID]chan Result),
	}

	eventsIn, eventsOut := queue.New[Event]()
	payloadsIn, payloadsOut := queue.New[Payload]()
	init := &InitSignal{ch: make(chan struct{})}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		t.readLoop(stdout, eventsIn)
	}()
	go func() {
		defer wg.Done()
		t.writeLoop(stdin, payloadsOut, eventsIn, init)
	}()
	go t.stderrLoop(stderr)

	// The event channel has two producers; close it once both exit.
	go func() {
		wg.Wait()
		close(eventsIn)
	}()

	return eventsOut, payloadsIn, init
}

// register inserts a pending request. Called only by the writer
// goroutine, immediately before the request is written.
func (t *Transport) register(id jsonrpc.ID, done chan Result) {
	t.mu.Lock()
	t.pending[id] = done
	t.mu.Unlock()
}

// resolve removes the pending entry for out's id and delivers the
// result. A response with no matching entry is discarded.
func (t *Transport) resolve(out *jsonrpc.Output) {
	t.mu.Lock()
	done, ok := t.pending[out.ID]
	if ok {
		delete(t.pending, out.ID)
	}
	t.mu.Unlock()

	if !ok {
		t.logger.Warn(
			"discarding response without a matching request",
			zap.Stringer("id", out.ID),
		)

		return
	}

	if out.Error != nil {
		t.logger.Error("server reported an error", zap.Error(out.Error))
		t.deliver(out.ID, done, Result{Err: rpcerrs.NewPeerError(out.Error)})

		return
	}

	t.deliver(out.ID, done, Result{Value: out.Result})
}

// drainAll removes every pending entry and delivers reason to each.
func (t *Transport) drainAll(reason error) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[jsonrpc.ID]chan Result)
	t.mu.Unlock()

	for id, done := range pending {
		t.deliver(id, done, Result{Err: reason})
	}
}

// deliver completes a one-shot channel without ever blocking. A full
// channel means the request was already completed once; the duplicate
// is logged and dropped.
func (t *Transport) deliver(id jsonrpc.ID, done chan Result, res Result) {
	select {
	case done <- res:
	default:
		t.logger.Warn(
			"dropping result for an already-completed request",
			zap.Stringer("id", id),
		)
	}
}
