// Package jsonrpc defines the wire message model spoken with an
// analysis server: method calls, notifications, and outputs, plus the
// two-phase decoder that classifies inbound bodies.
package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Message is anything that can arrive from the server: an Output
// answering one of our requests, or a Call the server originated.
type Message interface {
	message()
}

// Call is a request or notification originated by the server. The
// transport forwards these upstream and never answers them itself.
type Call interface {
	Message
	call()
}

// MethodCall is a request carrying a correlation id; the sender expects
// exactly one Output back for it.
type MethodCall struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      ID              `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (*MethodCall) message() {}
func (*MethodCall) call()    {}

// Notification is a method invocation with no id and no response.
type Notification struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (*Notification) message() {}
func (*Notification) call()    {}

// Output is the response to a previously issued request. Exactly one of
// Result and Error is set.
type Output struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      ID              `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

func (*Output) message() {}

// NewSuccess builds a successful Output for the given id.
func NewSuccess(id ID, result json.RawMessage) Output {
	return Output{ID: id, Result: result}
}

// NewFailure builds a failed Output for the given id.
func NewFailure(id ID, err *Error) Output {
	return Output{ID: id, Error: err}
}

// Error is a server-reported error object attached to a failed Output.
type Error struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}
