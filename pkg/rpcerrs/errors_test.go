package rpcerrs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lspwire/lspwire/pkg/rpcerrs"
)

func TestPredicates(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		category rpcerrs.ErrorCategory
		code     rpcerrs.ErrorCode
		pred     func(error) bool
	}{
		{
			name:     "stream closed",
			err:      rpcerrs.NewStreamClosed(),
			category: rpcerrs.CategoryTransport,
			code:     rpcerrs.ErrCodeStreamClosed,
			pred:     rpcerrs.IsStreamClosed,
		},
		{
			name:     "malformed frame",
			err:      rpcerrs.NewFrameError("bad header", cause),
			category: rpcerrs.CategoryProtocol,
			code:     rpcerrs.ErrCodeMalformedFrame,
			pred:     rpcerrs.IsMalformedFrame,
		},
		{
			name:     "peer error",
			err:      rpcerrs.NewPeerError(cause),
			category: rpcerrs.CategoryPeer,
			code:     rpcerrs.ErrCodePeerError,
			pred:     rpcerrs.IsPeerError,
		},
		{
			name:     "channel closed",
			err:      rpcerrs.NewChannelClosed("consumer gone"),
			category: rpcerrs.CategoryChannel,
			code:     rpcerrs.ErrCodeChannelClosed,
			pred:     rpcerrs.IsChannelClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Error("predicate = false on its own error")
			}

			var base *rpcerrs.BaseError
			if !errors.As(tt.err, &base) {
				t.Fatal("errors.As(*BaseError) = false")
			}
			if base.Category() != tt.category {
				t.Errorf("category = %s, want %s", base.Category(), tt.category)
			}
			if base.Code() != tt.code {
				t.Errorf("code = %s, want %s", base.Code(), tt.code)
			}

			// Predicates must see through wrapping.
			wrapped := fmt.Errorf("request failed: %w", tt.err)
			if !tt.pred(wrapped) {
				t.Error("predicate = false on wrapped error")
			}
		})
	}
}

func TestPredicatesRejectOtherErrors(t *testing.T) {
	if rpcerrs.IsStreamClosed(errors.New("plain")) {
		t.Error("IsStreamClosed(plain error) = true")
	}
	if rpcerrs.IsStreamClosed(rpcerrs.NewFrameError("x", nil)) {
		t.Error("IsStreamClosed(frame error) = true")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := rpcerrs.NewFrameError("decode", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if err.Error() != "protocol: decode: underlying" {
		t.Errorf("Error() = %q", err.Error())
	}
}
