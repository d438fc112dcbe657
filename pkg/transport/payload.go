package transport

import (
	"encoding/json"

	"github.com/lspwire/lspwire/pkg/jsonrpc"
)

// Payload is something the local side wants written to the wire.
type Payload interface {
	payload()
}

// Request pairs an outbound method call with the one-shot channel its
// eventual result is delivered on.
type Request struct {
	Done chan Result
	Call jsonrpc.MethodCall
}

func (*Request) payload() {}

// NewRequest builds a Request and the completion channel its caller
// waits on. The channel receives at most one Result and is safe to
// abandon: a late result is dropped, not retried.
func NewRequest(call jsonrpc.MethodCall) (*Request, <-chan Result) {
	done := make(chan Result, 1)

	return &Request{Done: done, Call: call}, done
}

// Notification is an outbound notification; no response is expected.
type Notification struct {
	Note jsonrpc.Notification
}

func (*Notification) payload() {}

// Response is a locally produced output answering a server-originated
// request.
type Response struct {
	Output jsonrpc.Output
}

func (*Response) payload() {}

// Result is the outcome of one request: a raw result value, or an
// error (a server-reported failure or stream termination).
type Result struct {
	Value json.RawMessage
	Err   error
}
