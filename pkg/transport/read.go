package transport

import (
	"bufio"
	"io"

	"go.uber.org/zap"

	"github.com/lspwire/lspwire/pkg/jsonrpc"
	"github.com/lspwire/lspwire/pkg/rpcerrs"
)

// readLoop owns the server's stdout. It decodes frames, resolves
// responses against the pending table, and forwards server-originated
// calls upstream. On stream closure or a fatal decode error it drains
// every pending request with StreamClosed, forwards a synthesized
// "exit" notification so higher layers run their post-exit cleanup
// through the same channel, and returns.
func (t *Transport) readLoop(stdout io.Reader, events chan<- Event) {
	fr := newFrameReader(stdout, t.logger)

	for {
		msg, err := fr.read()
		if err != nil {
			if !rpcerrs.IsStreamClosed(err) {
				t.logger.Error("exiting after unexpected read error", zap.Error(err))
			}

			t.drainAll(rpcerrs.NewStreamClosed())
			events <- Event{
				Server: t.id,
				Call:   &jsonrpc.Notification{Method: MethodExit},
			}

			return
		}

		switch m := msg.(type) {
		case *jsonrpc.Output:
			t.resolve(m)
		case jsonrpc.Call:
			events <- Event{Server: t.id, Call: m}
		}
	}
}

// stderrLoop owns the server's stderr, echoing each diagnostic line to
// the log until the stream closes.
func (t *Transport) stderrLoop(stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		t.logger.Warn("stderr", zap.String("line", scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		t.logger.Debug("stderr stream error", zap.Error(err))
	}
}
