package transport

import (
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/lspwire/lspwire/pkg/jsonrpc"
	"github.com/lspwire/lspwire/pkg/rpcerrs"
)

// isHandshake reports whether p is the handshake's own initiation
// message, which bypasses the deferred queue while pending.
func isHandshake(p Payload) bool {
	switch p := p.(type) {
	case *Request:
		return p.Call.Method == MethodInitialize
	case *Notification:
		return p.Note.Method == MethodInitialized
	}

	return false
}

// isShutdown reports whether p is a shutdown request.
func isShutdown(p Payload) bool {
	req, ok := p.(*Request)

	return ok && req.Call.Method == MethodShutdown
}

// writeLoop owns the server's stdin and the handshake gate. It consumes
// the outbound payload queue and the one-time initialization signal,
// with the signal taking priority so the deferred queue drains before
// new traffic interleaves. It exits when the payload sender is closed
// or when a shutdown request arrives before initialization completed.
func (t *Transport) writeLoop(
	stdin io.Writer,
	payloads <-chan Payload,
	events chan<- Event,
	init *InitSignal,
) {
	fw := newFrameWriter(stdin, t.logger)

	var deferred []Payload
	initCh := init.ch

	becomeReady := func() {
		initCh = nil

		// Synthesize an initialized notification upstream so
		// downstream logic observes it uniformly with real calls.
		events <- Event{
			Server: t.id,
			Call:   &jsonrpc.Notification{Method: MethodInitialized},
		}

		for _, p := range deferred {
			t.logger.Debug("draining deferred payload")
			t.writePayload(fw, p)
		}
		deferred = nil
	}

	// Requests still parked behind the handshake when the loop exits
	// must not leave their callers waiting forever.
	defer func() {
		for _, p := range deferred {
			if req, ok := p.(*Request); ok {
				t.deliver(req.Call.ID, req.Done, Result{Err: rpcerrs.NewStreamClosed()})
			}
		}
	}()

	for {
		// The signal is level-triggered; prefer it over new payloads.
		select {
		case <-initCh:
			becomeReady()

			continue
		default:
		}

		select {
		case <-initCh:
			becomeReady()
		case p, ok := <-payloads:
			if !ok {
				return
			}

			switch {
			case initCh == nil, isHandshake(p):
				t.writePayload(fw, p)
			case isShutdown(p):
				t.logger.Warn("shutdown requested before initialization; terminating")
				req := p.(*Request)
				t.deliver(req.Call.ID, req.Done, Result{Err: rpcerrs.NewStreamClosed()})

				return
			default:
				if note, ok := p.(*Notification); ok {
					t.logger.Debug(
						"dropping notification before initialization",
						zap.String("method", note.Note.Method),
					)

					continue
				}

				t.logger.Debug("server not initialized, deferring payload")
				deferred = append(deferred, p)
			}
		}
	}
}

// writePayload serializes one payload and frames it onto the wire,
// registering request payloads in the pending table first. Write
// failures are logged; the reader's termination sequence settles any
// affected requests when the stream dies.
func (t *Transport) writePayload(fw *frameWriter, p Payload) {
	var (
		body []byte
		err  error
	)
	switch p := p.(type) {
	case *Request:
		body, err = json.Marshal(&p.Call)
		if err == nil {
			t.register(p.Call.ID, p.Done)
		}
	case *Notification:
		body, err = json.Marshal(&p.Note)
	case *Response:
		body, err = json.Marshal(&p.Output)
	}
	if err != nil {
		t.logger.Error("marshal payload", zap.Error(err))
		if req, ok := p.(*Request); ok {
			t.deliver(req.Call.ID, req.Done, Result{Err: rpcerrs.NewFrameError("marshal request", err)})
		}

		return
	}

	if err := fw.write(body); err != nil {
		t.logger.Error("write payload", zap.Error(err))
	}
}
