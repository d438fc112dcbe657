// Package rpcerrs defines the error framework for the transport: error
// categories, codes, and constructors for the failure kinds callers can
// observe. All errors support errors.Is/errors.As against *BaseError.
package rpcerrs

// ErrorCategory groups errors by the layer that produced them.
type ErrorCategory string

const (
	// CategoryTransport covers stream-level failures.
	CategoryTransport ErrorCategory = "transport"
	// CategoryProtocol covers wire framing and message shape failures.
	CategoryProtocol ErrorCategory = "protocol"
	// CategoryPeer covers error objects reported by the server itself.
	CategoryPeer ErrorCategory = "peer"
	// CategoryChannel covers local channel lifecycle failures.
	CategoryChannel ErrorCategory = "channel"
)

// ErrorCode identifies a specific failure within a category.
type ErrorCode string

const (
	// ErrCodeStreamClosed is a clean end-of-stream on one of the
	// subprocess streams.
	ErrCodeStreamClosed ErrorCode = "stream_closed"
	// ErrCodeMalformedFrame is a bad length header, truncated body,
	// invalid text encoding, or structurally invalid message body.
	ErrCodeMalformedFrame ErrorCode = "malformed_frame"
	// ErrCodePeerError is a failure response carrying a server-reported
	// error object; it is not a transport failure.
	ErrCodePeerError ErrorCode = "peer_error"
	// ErrCodeChannelClosed means a local channel end was dropped.
	ErrCodeChannelClosed ErrorCode = "channel_closed"
)

// NewStreamClosed reports clean stream termination.
func NewStreamClosed() *BaseError {
	return NewBaseError(CategoryTransport, ErrCodeStreamClosed, "stream closed", nil)
}

// NewFrameError reports a fatal framing or decoding failure.
func NewFrameError(message string, cause error) *BaseError {
	return NewBaseError(CategoryProtocol, ErrCodeMalformedFrame, message, cause)
}

// NewPeerError wraps an error object the server reported for a request.
func NewPeerError(cause error) *BaseError {
	return NewBaseError(CategoryPeer, ErrCodePeerError, "request failed", cause)
}

// NewChannelClosed reports a dropped local channel end.
func NewChannelClosed(message string) *BaseError {
	return NewBaseError(CategoryChannel, ErrCodeChannelClosed, message, nil)
}

// IsStreamClosed reports whether err is a clean stream termination.
func IsStreamClosed(err error) bool { return hasCode(err, ErrCodeStreamClosed) }

// IsMalformedFrame reports whether err is a fatal framing failure.
func IsMalformedFrame(err error) bool { return hasCode(err, ErrCodeMalformedFrame) }

// IsPeerError reports whether err carries a server-reported error.
func IsPeerError(err error) bool { return hasCode(err, ErrCodePeerError) }

// IsChannelClosed reports whether err is a dropped local channel end.
func IsChannelClosed(err error) bool { return hasCode(err, ErrCodeChannelClosed) }
